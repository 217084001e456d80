// Package asm assembles a line-oriented text form into a chunk. It exists
// so bytecode can be written by hand and fed to the machine.
//
//	.EQU ANSWER 0.42   ; named literal
//	CONSTANT ANSWER    ; OP_CONSTANT or OP_CONSTANT_LONG, picked by pool index
//	DUMP
//	RETURN
//
// Every emitted byte is tagged with the source line and the column of the
// mnemonic.
package asm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"skard/pkg/chunk"
	"skard/pkg/value"
)

// operandCounts lists the instructions and directives with the number of
// operands they take; -1 means one or more.
var operandCounts = map[string]int{
	"RETURN":        0,
	"DUMP":          0,
	"CONSTANT":      1,
	"CONSTANT_LONG": 1,
	".BYTE":         -1,
	".CONST":        -1,
	".FILL":         2,
	".EQU":          2,
}

type Assembler struct {
	symbols map[string]value.Value
}

type parsedLine struct {
	lineNo   int
	column   int
	mnemonic string
	operands []string
}

func NewAssembler() *Assembler {
	return &Assembler{
		symbols: make(map[string]value.Value),
	}
}

func Assemble(code string) (*chunk.Chunk, error) {
	return NewAssembler().Assemble(code)
}

// Assemble runs two passes: the first collects .EQU symbols so they may be
// used before their definition, the second emits code.
func (a *Assembler) Assemble(code string) (*chunk.Chunk, error) {
	lines := strings.Split(code, "\n")

	parsed := make([]parsedLine, 0, len(lines))
	for i, raw := range lines {
		p, err := parseLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		if p.mnemonic != "" {
			parsed = append(parsed, p)
		}
	}

	if err := a.pass1(parsed); err != nil {
		return nil, err
	}
	return a.pass2(parsed)
}

func (a *Assembler) pass1(lines []parsedLine) error {
	for _, p := range lines {
		if p.mnemonic != ".EQU" {
			continue
		}
		name := p.operands[0]
		if !isIdentifier(name) {
			return fmt.Errorf("invalid symbol '%s' on line %d", name, p.lineNo)
		}
		key := normalizeSymbol(name)
		if _, dup := a.symbols[key]; dup {
			return fmt.Errorf("symbol '%s' redefined on line %d", name, p.lineNo)
		}
		v, err := parseNumber(p.operands[1])
		if err != nil {
			return fmt.Errorf("invalid value '%s' for symbol '%s' on line %d", p.operands[1], name, p.lineNo)
		}
		a.symbols[key] = v
	}
	return nil
}

func (a *Assembler) pass2(lines []parsedLine) (*chunk.Chunk, error) {
	c := chunk.New()

	for _, p := range lines {
		lineNo, col := p.lineNo, p.column

		switch p.mnemonic {
		case ".EQU":
			continue

		case "RETURN", "DUMP":
			op, _ := chunk.Lookup(p.mnemonic)
			if err := c.EmitOp(op, lineNo, col); err != nil {
				return nil, wrapChunkError(err, lineNo)
			}

		case "CONSTANT":
			v, err := a.parseLiteral(p.operands[0], lineNo)
			if err != nil {
				return nil, err
			}
			if _, err := c.EmitConstant(v, lineNo, col); err != nil {
				return nil, wrapChunkError(err, lineNo)
			}

		case "CONSTANT_LONG":
			v, err := a.parseLiteral(p.operands[0], lineNo)
			if err != nil {
				return nil, err
			}
			index, err := c.AddConstant(v)
			if err != nil {
				return nil, wrapChunkError(err, lineNo)
			}
			bytes := []byte{byte(chunk.OpConstantLong), byte(index), byte(index >> 8), byte(index >> 16)}
			if err := emitBytes(c, bytes, lineNo, col); err != nil {
				return nil, err
			}

		case ".BYTE":
			bytes := make([]byte, 0, len(p.operands))
			for _, tok := range p.operands {
				n, err := strconv.ParseUint(tok, 0, 8)
				if err != nil {
					return nil, fmt.Errorf("invalid byte '%s' on line %d", tok, lineNo)
				}
				bytes = append(bytes, byte(n))
			}
			if err := emitBytes(c, bytes, lineNo, col); err != nil {
				return nil, err
			}

		case ".CONST":
			for _, tok := range p.operands {
				v, err := a.parseLiteral(tok, lineNo)
				if err != nil {
					return nil, err
				}
				if _, err := c.AddConstant(v); err != nil {
					return nil, wrapChunkError(err, lineNo)
				}
			}

		case ".FILL":
			count, err := strconv.ParseUint(p.operands[0], 0, 32)
			if err != nil || count > chunk.MaxConstants {
				return nil, fmt.Errorf("invalid .FILL count '%s' on line %d", p.operands[0], lineNo)
			}
			v, err := a.parseLiteral(p.operands[1], lineNo)
			if err != nil {
				return nil, err
			}
			for i := uint64(0); i < count; i++ {
				if _, err := c.AddConstant(v); err != nil {
					return nil, wrapChunkError(err, lineNo)
				}
			}

		default:
			return nil, fmt.Errorf("unknown instruction on line %d: %s", lineNo, p.mnemonic)
		}
	}

	return c, nil
}

func emitBytes(c *chunk.Chunk, bytes []byte, lineNo, col int) error {
	for _, b := range bytes {
		if err := c.Emit(b, lineNo, col); err != nil {
			return wrapChunkError(err, lineNo)
		}
	}
	return nil
}

func wrapChunkError(err error, lineNo int) error {
	return fmt.Errorf("line %d: %w", lineNo, err)
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := stripComments(raw)
	if strings.TrimSpace(line) == "" {
		return p, nil
	}
	p.column = strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) }) + 1

	line = normalizeInstructionText(line)
	fields := strings.Fields(line)

	p.mnemonic = strings.TrimPrefix(strings.ToUpper(fields[0]), "OP_")
	if len(fields) > 1 {
		p.operands = fields[1:]
	}

	want, ok := operandCounts[p.mnemonic]
	if !ok {
		return p, fmt.Errorf("unknown instruction on line %d: %s", lineNo, fields[0])
	}
	switch {
	case want < 0 && len(p.operands) == 0:
		return p, fmt.Errorf("%s expects at least one operand on line %d", p.mnemonic, lineNo)
	case want >= 0 && len(p.operands) != want:
		return p, fmt.Errorf("%s expects %d operands on line %d", p.mnemonic, want, lineNo)
	}
	return p, nil
}

func stripComments(line string) string {
	semicolon := strings.Index(line, ";")
	doubleSlash := strings.Index(line, "//")

	cut := -1
	if semicolon >= 0 {
		cut = semicolon
	}
	if doubleSlash >= 0 && (cut == -1 || doubleSlash < cut) {
		cut = doubleSlash
	}
	if cut >= 0 {
		return line[:cut]
	}
	return line
}

func normalizeInstructionText(line string) string {
	return strings.ReplaceAll(line, ",", " ")
}

// parseLiteral resolves a number or an .EQU symbol.
func (a *Assembler) parseLiteral(token string, lineNo int) (value.Value, error) {
	if v, err := parseNumber(token); err == nil {
		return v, nil
	}
	if v, ok := a.symbols[normalizeSymbol(token)]; ok {
		return v, nil
	}
	if isIdentifier(token) {
		return value.Value{}, fmt.Errorf("undefined symbol '%s' on line %d", token, lineNo)
	}
	return value.Value{}, fmt.Errorf("invalid literal '%s' on line %d", token, lineNo)
}

// parseNumber reads integers (decimal, 0x, 0b, 0o) as Int and anything else
// strconv accepts as a float as Real.
func parseNumber(token string) (value.Value, error) {
	if i, err := strconv.ParseInt(token, 0, 64); err == nil {
		return value.Int(i), nil
	}
	if !strings.ContainsAny(token, "0123456789") {
		return value.Value{}, fmt.Errorf("not a number: %s", token)
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return value.Value{}, err
	}
	return value.Real(f), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func normalizeSymbol(name string) string {
	return strings.ToUpper(name)
}
