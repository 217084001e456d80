// Package vm executes chunks on a value stack.
package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"skard/pkg/chunk"
	"skard/pkg/disasm"
)

// Result is the outcome of running a chunk.
type Result int

const (
	ResultOK Result = iota
	ResultRuntimeError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultRuntimeError:
		return "runtime error"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrCodeOverrun    = errors.New("ran past the end of the chunk")
	ErrBadConstant    = errors.New("constant index out of range")
	ErrNoChunk        = errors.New("no chunk loaded")
)

// RuntimeError locates a failed instruction.
type RuntimeError struct {
	Offset int
	Line   int
	Column int
	Err    error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d][column %d] runtime error at offset %d: %v", e.Line, e.Column, e.Offset, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

type VM struct {
	chunk  *chunk.Chunk
	ip     int
	Stack  Stack
	Halted bool

	// Output receives DUMP output. Nil means os.Stdout.
	Output io.Writer
	// Trace, when set, receives the stack and the disassembled instruction
	// before every step.
	Trace io.Writer
}

func New() *VM {
	return &VM{}
}

func (vm *VM) outputSink() io.Writer {
	if vm.Output != nil {
		return vm.Output
	}
	return os.Stdout
}

// Load points the machine at c and rewinds it. The stack keeps its buffer.
func (vm *VM) Load(c *chunk.Chunk) {
	vm.chunk = c
	vm.ip = 0
	vm.Halted = false
	vm.Stack.Reset()
}

// IP is the offset of the next instruction.
func (vm *VM) IP() int { return vm.ip }

// Chunk is the loaded chunk.
func (vm *VM) Chunk() *chunk.Chunk { return vm.chunk }

// Run loads c and executes it until OP_RETURN or a failure. Failed stack
// growth comes back as the allocator's fatal error, everything else as a
// *RuntimeError.
func (vm *VM) Run(c *chunk.Chunk) (Result, error) {
	vm.Load(c)
	return vm.Resume()
}

// Resume continues from the current instruction pointer.
func (vm *VM) Resume() (Result, error) {
	for !vm.Halted {
		if err := vm.Step(); err != nil {
			return ResultRuntimeError, err
		}
	}
	return ResultOK, nil
}

// Step executes a single instruction. A halted machine does nothing.
func (vm *VM) Step() error {
	if vm.Halted {
		return nil
	}
	if vm.chunk == nil {
		return ErrNoChunk
	}
	if vm.Trace != nil {
		vm.trace()
	}

	start := vm.ip
	b, ok := vm.readByte()
	if !ok {
		return vm.fail(start, ErrCodeOverrun)
	}

	switch op := chunk.OpCode(b); op {
	case chunk.OpReturn:
		vm.Halted = true
	case chunk.OpDump:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fail(start, ErrStackUnderflow)
		}
		fmt.Fprintln(vm.outputSink(), v)
	case chunk.OpConstant, chunk.OpConstantLong:
		width := op.OperandWidth()
		if vm.ip+width > len(vm.chunk.Code) {
			return vm.fail(start, ErrCodeOverrun)
		}
		index := chunk.DecodeIndex(vm.chunk.Code[vm.ip : vm.ip+width])
		vm.ip += width
		if index >= len(vm.chunk.Constants) {
			return vm.fail(start, fmt.Errorf("%w: %d", ErrBadConstant, index))
		}
		if err := vm.Stack.Push(vm.chunk.Constants[index]); err != nil {
			return err
		}
	default:
		return vm.fail(start, fmt.Errorf("%w 0x%02X", ErrUnknownOpcode, b))
	}
	return nil
}

func (vm *VM) readByte() (byte, bool) {
	if vm.ip >= len(vm.chunk.Code) {
		return 0, false
	}
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b, true
}

func (vm *VM) fail(offset int, err error) error {
	vm.Halted = true
	return &RuntimeError{
		Offset: offset,
		Line:   vm.chunk.Debug.Line(offset),
		Column: vm.chunk.Debug.Column(offset),
		Err:    err,
	}
}

// StackString renders the stack as "{ [ a ] [ b ] }", bottom first.
func (vm *VM) StackString() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, v := range vm.Stack.Values() {
		sb.WriteString("[ ")
		sb.WriteString(v.String())
		sb.WriteString(" ]")
	}
	sb.WriteString(" }")
	return sb.String()
}

func (vm *VM) trace() {
	fmt.Fprintln(vm.Trace, vm.StackString())
	if vm.ip < vm.chunk.Len() {
		disasm.Instruction(vm.Trace, vm.chunk, vm.ip)
	}
}

// Free drops the stack buffer and forgets the chunk.
func (vm *VM) Free() {
	vm.Stack.Free()
	vm.chunk = nil
}
