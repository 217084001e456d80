package chunk

import "fmt"

// OpCode is the first byte of every instruction.
type OpCode byte

const (
	OpReturn       OpCode = iota // halt
	OpDump                       // pop and print
	OpConstant                   // 1-byte pool index
	OpConstantLong               // 3-byte little-endian pool index
)

var opNames = [...]string{
	OpReturn:       "OP_RETURN",
	OpDump:         "OP_DUMP",
	OpConstant:     "OP_CONSTANT",
	OpConstantLong: "OP_CONSTANT_LONG",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// Known reports whether op is part of the instruction set.
func (op OpCode) Known() bool { return int(op) < len(opNames) }

// OperandWidth is the number of operand bytes following op.
func (op OpCode) OperandWidth() int {
	switch op {
	case OpConstant:
		return 1
	case OpConstantLong:
		return 3
	}
	return 0
}

// Lookup maps a mnemonic (with or without the OP_ prefix) to its opcode.
func Lookup(name string) (OpCode, bool) {
	for i, n := range opNames {
		if n == name || n[len("OP_"):] == name {
			return OpCode(i), true
		}
	}
	return 0, false
}
