//go:build !js

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skard/pkg/asm"
	"skard/pkg/chunk"
	"skard/pkg/compiler"
	"skard/pkg/disasm"
	"skard/pkg/utils"
	"skard/pkg/value"
	"skard/pkg/vm"
)

const version = "0.2.1"

func main() {
	inPath := flag.String("in", "", "input file: .sk source or .ska chunk assembly")
	outPath := flag.String("out", "", "output chunk image path (default: input with .skc extension)")
	runProgram := flag.Bool("run", false, "run the chunk built from -in")
	runBinPath := flag.String("run-bin", "", "run an existing chunk image")
	showTokens := flag.Bool("tokens", false, "print the token stream of a .sk source")
	lower := flag.Bool("lower", false, "lower a type-checked .sk literal into a chunk")
	showDisasm := flag.Bool("disasm", false, "print the disassembly of the chunk")
	trace := flag.Bool("trace", false, "trace every instruction while running")
	demo := flag.Bool("demo", false, "disassemble and run the built-in demo chunk")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("skard", version)
		return
	}
	if *runProgram && *runBinPath != "" {
		fmt.Fprintln(os.Stderr, "use either -run or -run-bin, not both")
		os.Exit(2)
	}
	if *inPath == "" && *runBinPath == "" && !*demo {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file>, -run-bin <image> or -demo")
		flag.Usage()
		os.Exit(2)
	}

	var (
		c    *chunk.Chunk
		name string
	)
	switch {
	case *demo:
		var err error
		c, err = demoChunk()
		if err != nil {
			utils.Die(err)
		}
		name = "TEST"
		disasm.Chunk(os.Stdout, c, name)

	case *inPath != "" && isSource(*inPath):
		src, err := utils.ReadSource(*inPath)
		if err != nil {
			utils.Die(err)
		}
		if *showTokens {
			printTokens(os.Stdout, src)
		}
		expr, err := compiler.Compile(src, compiler.NewDiagnostics(os.Stderr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(expr)
		if !*lower {
			return
		}
		c = chunk.New()
		if err := compiler.Lower(expr, c); err != nil {
			fmt.Fprintf(os.Stderr, "lowering failed: %v\n", err)
			os.Exit(1)
		}
		name = filepath.Base(*inPath)

	case *inPath != "":
		src, err := utils.ReadSource(*inPath)
		if err != nil {
			utils.Die(err)
		}
		c, err = asm.Assemble(src)
		if err != nil {
			if utils.IsFatal(err) {
				utils.Die(err)
			}
			fmt.Fprintf(os.Stderr, "assembly failed: %v\n", err)
			os.Exit(1)
		}
		name = filepath.Base(*inPath)

		output := *outPath
		if output == "" {
			output = defaultOutputPath(*inPath)
		}
		if err := c.SaveFile(output); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write chunk image %q: %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("assembled %d bytes, %d constants -> %s\n", c.Len(), len(c.Constants), output)

	default:
		var err error
		c, err = chunk.LoadFile(*runBinPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load chunk image %q: %v\n", *runBinPath, err)
			os.Exit(1)
		}
		name = filepath.Base(*runBinPath)
	}

	if *showDisasm && !*demo {
		disasm.Chunk(os.Stdout, c, name)
	}
	if !*demo && !*runProgram && *runBinPath == "" && !*lower {
		return
	}

	var traceOut io.Writer
	if *trace {
		traceOut = os.Stdout
	}
	if err := runChunk(c, os.Stdout, traceOut); err != nil {
		if utils.IsFatal(err) {
			utils.Die(err)
		}
		fmt.Fprintf(os.Stderr, "run failed for %q: %v\n", name, err)
		os.Exit(1)
	}
}

// isSource tells front-end sources apart from chunk assembly.
func isSource(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), ".ska")
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".skc"
	}
	return strings.TrimSuffix(inPath, ext) + ".skc"
}

// demoChunk builds the chunk the runtime has always shipped with: load 0.42,
// dump it, return.
func demoChunk() (*chunk.Chunk, error) {
	c := chunk.New()
	if _, err := c.EmitConstant(value.Real(0.42), 1, 1); err != nil {
		return nil, err
	}
	if err := c.EmitOp(chunk.OpDump, 1, 2); err != nil {
		return nil, err
	}
	if err := c.EmitOp(chunk.OpReturn, 1, 3); err != nil {
		return nil, err
	}
	return c, nil
}

func printTokens(w io.Writer, src string) {
	tokens := compiler.Lex(src)
	fmt.Fprintf(w, "Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Fprintln(w, " ", tok)
	}
	fmt.Fprintln(w)
}

func runChunk(c *chunk.Chunk, out, trace io.Writer) error {
	machine := vm.New()
	machine.Output = out
	machine.Trace = trace
	defer machine.Free()

	res, err := machine.Run(c)
	if err != nil {
		return err
	}
	if res != vm.ResultOK {
		return fmt.Errorf("interpreter finished with %v", res)
	}
	return nil
}
