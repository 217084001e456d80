package main

import (
	"bytes"
	"strings"
	"testing"
)

func newTestConsole() (*console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &console{out: &out, err: &errOut}, &out, &errOut
}

func TestConsoleSource(t *testing.T) {
	c, out, errOut := newTestConsole()

	c.handle("1 + 2.5")
	if got := strings.TrimSpace(out.String()); got != "(Real + (Int 1) (Real 2.5))" {
		t.Errorf("output = %q", got)
	}

	out.Reset()
	c.handle("1 +")
	if out.Len() != 0 {
		t.Errorf("a failed parse printed %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Expected expression.") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestConsoleCommands(t *testing.T) {
	c, out, _ := newTestConsole()

	if c.handle(":tokens") || !c.showTokens {
		t.Fatal(":tokens should toggle token printing")
	}
	c.handle("7")
	if !strings.Contains(out.String(), "INTEGER") {
		t.Errorf("tokens not printed: %q", out.String())
	}
	c.handle(":bogus")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("unknown command not reported: %q", out.String())
	}
	if !c.handle(":quit") {
		t.Error(":quit should exit")
	}
}

func TestConsoleAssembly(t *testing.T) {
	c, out, errOut := newTestConsole()

	c.handle(":asm")
	for _, line := range []string{"CONSTANT 0.42", "DUMP", "RETURN"} {
		c.handle(line)
	}
	if len(c.asmLines) != 3 {
		t.Fatalf("collected %d lines; want 3", len(c.asmLines))
	}
	c.handle(":go")
	got := out.String()
	if !strings.Contains(got, "DISASSEMBLING CHUNK: console") || !strings.Contains(got, "0.42\nresult: ok\n") {
		t.Errorf("output:\n%s", got)
	}
	if c.asmLines != nil {
		t.Error(":go should clear the collected lines")
	}

	c.handle("PUSH 1")
	c.handle(":go")
	if !strings.Contains(errOut.String(), "assembly failed") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
