package compiler

import (
	"fmt"
	"io"
	"os"
)

// DiagnosticKind separates recoverable syntax errors from type errors.
type DiagnosticKind int

const (
	SyntaxError DiagnosticKind = iota
	TypeError
)

// Diagnostic is one reported problem with its source position.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Column  int
	Where   string // " at end of file", " at 'x'", ... (syntax errors only)
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == TypeError {
		return fmt.Sprintf("[line %d][column %d] Type error: %s", d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("[line %d][column %d] Error%s: %s", d.Line, d.Column, d.Where, d.Message)
}

// Diagnostics collects reported problems and echoes each one to Out as it
// arrives. A nil Out means os.Stderr.
type Diagnostics struct {
	Out  io.Writer
	List []Diagnostic
}

func NewDiagnostics(out io.Writer) *Diagnostics {
	return &Diagnostics{Out: out}
}

func (d *Diagnostics) sink() io.Writer {
	if d.Out != nil {
		return d.Out
	}
	return os.Stderr
}

// Report records diag and prints it.
func (d *Diagnostics) Report(diag Diagnostic) {
	d.List = append(d.List, diag)
	fmt.Fprintln(d.sink(), diag)
}

func (d *Diagnostics) Len() int { return len(d.List) }

// Reset forgets everything reported so far.
func (d *Diagnostics) Reset() { d.List = nil }
