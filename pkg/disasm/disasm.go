// Package disasm renders chunks as a fixed-width table, one row per
// instruction:
//
//	OFFSET |  LINE  | COLUMN |      OPCODE      | OPERAND | VALUE
//	000000 | 000001 | 000001 | OP_CONSTANT      | 0000000 | 0.42
package disasm

import (
	"fmt"
	"io"
	"strings"

	"skard/pkg/chunk"
)

const (
	header    = "OFFSET |  LINE  | COLUMN |      OPCODE      | OPERAND | VALUE"
	separator = "-------------------------------------------------------------"
)

// Chunk writes the whole of c under a title line.
func Chunk(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "DISASSEMBLING CHUNK: %s\n", name)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, separator)
	for offset := 0; offset < c.Len(); {
		offset = Instruction(w, c, offset)
	}
	fmt.Fprintln(w, separator)
}

// Instruction writes the row for the instruction at offset and returns the
// offset of the next one. Unknown opcodes take one byte. An operand running
// past the end of the code ends the walk.
func Instruction(w io.Writer, c *chunk.Chunk, offset int) int {
	row, next := Format(c, offset)
	fmt.Fprintln(w, row)
	return next
}

// Format is Instruction without the writer.
func Format(c *chunk.Chunk, offset int) (string, int) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%06d | %06d | %06d | ", offset, c.Debug.Line(offset), c.Debug.Column(offset))

	op := chunk.OpCode(c.Code[offset])
	if !op.Known() {
		fmt.Fprintf(&sb, "%-16s |", "UNKNOWN")
		return sb.String(), offset + 1
	}
	fmt.Fprintf(&sb, "%-16s |", op)

	width := op.OperandWidth()
	if width == 0 {
		return sb.String(), offset + 1
	}
	index, ok := c.ConstantIndex(offset)
	if !ok {
		sb.WriteString(" <truncated>")
		return sb.String(), c.Len()
	}
	fmt.Fprintf(&sb, " %07d | ", index)
	if index < len(c.Constants) {
		sb.WriteString(c.Constants[index].String())
	} else {
		sb.WriteString("UNKNOWN")
	}
	return sb.String(), offset + 1 + width
}
