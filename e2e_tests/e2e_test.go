package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"skard/pkg/asm"
	"skard/pkg/chunk"
	"skard/pkg/compiler"
	"skard/pkg/disasm"
	"skard/pkg/vm"
)

func TestSourceToVM(t *testing.T) {
	// 1. Front end
	source := "// the answer\n(0.42)\n"
	expr, err := compiler.Compile(source, compiler.NewDiagnostics(io.Discard))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if got := expr.String(); got != "(Real (x) (Real 0.42))" {
		t.Errorf("typed AST = %s", got)
	}

	// 2. Lower
	c := chunk.New()
	if err := compiler.Lower(expr, c); err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	// 3. Persist and reload
	path := filepath.Join(t.TempDir(), "answer.skc")
	if err := c.SaveFile(path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	loaded, err := chunk.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	// 4. Run
	var out bytes.Buffer
	machine := vm.New()
	machine.Output = &out
	res, err := machine.Run(loaded)
	if err != nil || res != vm.ResultOK {
		t.Fatalf("Run = %v, %v", res, err)
	}
	if out.String() != "0.42\n" {
		t.Errorf("output = %q; want %q", out.String(), "0.42\n")
	}
	if machine.Stack.Len() != 0 {
		t.Errorf("stack not empty after run: %s", machine.StackString())
	}
}

func TestAssemblyToVM(t *testing.T) {
	code := `
.FILL 300 0        ; push the next constant past the short range
CONSTANT 0.42
CONSTANT 12
DUMP
DUMP
RETURN
`
	c, err := asm.Assemble(code)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	var listing bytes.Buffer
	disasm.Chunk(&listing, c, "E2E")
	for _, want := range []string{"DISASSEMBLING CHUNK: E2E", "OP_CONSTANT_LONG | 0000300 | 0.42", "OP_CONSTANT_LONG | 0000301 | 12"} {
		if !strings.Contains(listing.String(), want) {
			t.Errorf("disassembly lacks %q:\n%s", want, listing.String())
		}
	}

	var out, trace bytes.Buffer
	machine := vm.New()
	machine.Output = &out
	machine.Trace = &trace
	if res, err := machine.Run(c); err != nil || res != vm.ResultOK {
		t.Fatalf("Run = %v, %v", res, err)
	}
	if out.String() != "12\n0.42\n" {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(trace.String(), "{ [ 0.42 ] [ 12 ] }") {
		t.Errorf("trace lacks the full stack:\n%s", trace.String())
	}
}

func TestRuntimeErrorIsReported(t *testing.T) {
	c, err := asm.Assemble("CONSTANT 1\n.BYTE 0x99\nRETURN")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	machine := vm.New()
	machine.Output = io.Discard
	res, err := machine.Run(c)
	if res != vm.ResultRuntimeError || err == nil {
		t.Fatalf("Run = %v, %v; want runtime error", res, err)
	}
	if !strings.Contains(err.Error(), "[line 2][column 1]") {
		t.Errorf("error %q should point at line 2", err)
	}
}
