// Package chunk implements the bytecode container: an append-only
// instruction stream, its constant pool and the debug table mapping every
// instruction byte back to a source position.
//
//	code:      [02 00 01 00]          OP_CONSTANT 0, OP_DUMP, OP_RETURN
//	constants: [0.42]
//	lines:     [(1, 4)]               one run covering four bytes
//	columns:   [1 1 5 10]
package chunk

import (
	"skard/pkg/utils"
	"skard/pkg/value"
)

const (
	// MaxShortIndex is the largest pool index OP_CONSTANT can address.
	MaxShortIndex = 0xFF
	// MaxConstants is the constant pool ceiling; OP_CONSTANT_LONG indexes
	// are 24 bits wide.
	MaxConstants = 1 << 24
)

type Chunk struct {
	Code      []byte
	Constants []value.Value
	Debug     DebugInfo

	// limit overrides MaxConstants when non-zero.
	limit int
}

func New() *Chunk {
	return &Chunk{}
}

// Emit appends one instruction byte tagged with its source position.
func (c *Chunk) Emit(b byte, line, column int) error {
	code, err := utils.Reserve(c.Code)
	if err != nil {
		return err
	}
	c.Code = append(code, b)
	return c.Debug.Add(line, column)
}

// EmitOp appends an operand-less instruction.
func (c *Chunk) EmitOp(op OpCode, line, column int) error {
	return c.Emit(byte(op), line, column)
}

// AddConstant appends v to the pool and returns its index. It fails with
// utils.ErrTooManyConstants once the pool is full; the pool is left as it
// was.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= c.maxConstants() {
		return 0, utils.ErrTooManyConstants
	}
	constants, err := utils.Reserve(c.Constants)
	if err != nil {
		return 0, err
	}
	c.Constants = append(constants, v)
	return len(c.Constants) - 1, nil
}

// EmitConstant adds v to the pool and emits the instruction that loads it:
// OP_CONSTANT for indexes up to MaxShortIndex, OP_CONSTANT_LONG above. Every
// byte of the instruction carries the same position.
func (c *Chunk) EmitConstant(v value.Value, line, column int) (int, error) {
	index, err := c.AddConstant(v)
	if err != nil {
		return 0, err
	}
	if index <= MaxShortIndex {
		return index, c.emitAll(line, column, byte(OpConstant), byte(index))
	}
	return index, c.emitAll(line, column,
		byte(OpConstantLong), byte(index), byte(index>>8), byte(index>>16))
}

func (c *Chunk) emitAll(line, column int, bytes ...byte) error {
	for _, b := range bytes {
		if err := c.Emit(b, line, column); err != nil {
			return err
		}
	}
	return nil
}

// ConstantIndex decodes the pool index of the constant-loading instruction
// at offset. ok is false when offset does not hold one or its operand is
// truncated.
func (c *Chunk) ConstantIndex(offset int) (index int, ok bool) {
	if offset < 0 || offset >= len(c.Code) {
		return 0, false
	}
	op := OpCode(c.Code[offset])
	w := op.OperandWidth()
	if w == 0 || offset+w >= len(c.Code) {
		return 0, false
	}
	return DecodeIndex(c.Code[offset+1 : offset+1+w]), true
}

// DecodeIndex reads a little-endian pool index of one to three bytes.
func DecodeIndex(operand []byte) int {
	index := 0
	for i, b := range operand {
		index |= int(b) << (8 * i)
	}
	return index
}

// Len is the number of instruction bytes.
func (c *Chunk) Len() int { return len(c.Code) }

// Free releases all three buffers at once.
func (c *Chunk) Free() {
	c.Code = nil
	c.Constants = nil
	c.Debug.Free()
}

func (c *Chunk) maxConstants() int {
	if c.limit > 0 {
		return c.limit
	}
	return MaxConstants
}
