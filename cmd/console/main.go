// Command console is an interactive skard prompt. Source lines are parsed
// and type checked; in assembly mode lines are collected and run on :go.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"skard/pkg/asm"
	"skard/pkg/compiler"
	"skard/pkg/disasm"
	"skard/pkg/utils"
	"skard/pkg/vm"
)

const (
	banner      = "skard 0.2.1 console. Type :help for commands."
	historyFile = ".skard_history"
	promptMain  = "skard> "
	promptAsm   = "asm> "
)

const helpText = `:help          show this text
:tokens        toggle printing of the token stream
:asm           toggle assembly mode
:go            assemble, disassemble and run the collected assembly
:clear         drop the collected assembly
:quit          leave the console`

// console holds the REPL state. It is kept apart from liner so it can be
// driven from tests.
type console struct {
	out io.Writer
	err io.Writer

	showTokens bool
	asmMode    bool
	asmLines   []string
}

func main() {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	c := &console{out: os.Stdout, err: os.Stderr}
	for {
		prompt := promptMain
		if c.asmMode {
			prompt = promptAsm
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if err != nil {
			// Ctrl-C drops the current line
			continue
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if c.handle(line) {
			return
		}
	}
}

// handle processes one input line and reports whether the console should
// exit.
func (c *console) handle(line string) (exit bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		return c.command(strings.ToLower(trimmed))
	}
	if trimmed == "" {
		return false
	}
	if c.asmMode {
		c.asmLines = append(c.asmLines, line)
		return false
	}
	c.evalSource(line)
	return false
}

func (c *console) command(cmd string) (exit bool) {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(c.out, helpText)
	case ":tokens":
		c.showTokens = !c.showTokens
		fmt.Fprintf(c.out, "token printing %s\n", onOff(c.showTokens))
	case ":asm":
		c.asmMode = !c.asmMode
		fmt.Fprintf(c.out, "assembly mode %s\n", onOff(c.asmMode))
	case ":clear":
		c.asmLines = nil
	case ":go":
		c.runAssembly()
	default:
		fmt.Fprintln(c.out, "unknown command. Type :help for a list.")
	}
	return false
}

func (c *console) evalSource(src string) {
	if c.showTokens {
		for _, tok := range compiler.Lex(src) {
			fmt.Fprintln(c.out, " ", tok)
		}
	}
	diags := compiler.NewDiagnostics(c.err)
	p := compiler.NewParser(src, diags)
	expr, ok := p.Parse()
	defer p.Free()
	if !ok {
		return
	}
	if compiler.NewChecker(diags).Typecheck(expr) {
		fmt.Fprintln(c.out, expr)
	}
}

func (c *console) runAssembly() {
	src := strings.Join(c.asmLines, "\n")
	c.asmLines = nil

	ch, err := asm.Assemble(src)
	if err != nil {
		fmt.Fprintf(c.err, "assembly failed: %v\n", err)
		return
	}
	disasm.Chunk(c.out, ch, "console")

	machine := vm.New()
	machine.Output = c.out
	res, err := machine.Run(ch)
	switch {
	case err != nil && utils.IsFatal(err):
		utils.Die(err)
	case err != nil:
		fmt.Fprintf(c.err, "%v: %v\n", res, err)
	default:
		fmt.Fprintf(c.out, "result: %v\n", res)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
