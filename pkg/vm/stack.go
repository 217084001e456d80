package vm

import (
	"skard/pkg/utils"
	"skard/pkg/value"
)

// StackMin is the capacity of the first stack allocation. Later growth
// doubles.
const StackMin = 256

// Stack is a LIFO value buffer. It grows on push and never shrinks.
type Stack struct {
	values []value.Value
}

func (s *Stack) Push(v value.Value) error {
	values, err := utils.ReserveFrom(s.values, StackMin)
	if err != nil {
		return err
	}
	s.values = append(values, v)
	return nil
}

// Pop removes the top value. ok is false on an empty stack.
func (s *Stack) Pop() (v value.Value, ok bool) {
	n := len(s.values)
	if n == 0 {
		return value.Value{}, false
	}
	v = s.values[n-1]
	s.values = s.values[:n-1]
	return v, true
}

func (s *Stack) Len() int { return len(s.values) }
func (s *Stack) Cap() int { return cap(s.values) }

// Values returns the live part of the stack, bottom first.
func (s *Stack) Values() []value.Value { return s.values }

// Reset empties the stack but keeps its buffer.
func (s *Stack) Reset() { s.values = s.values[:0] }

// Free releases the buffer.
func (s *Stack) Free() { s.values = nil }
