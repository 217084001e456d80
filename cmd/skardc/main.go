// Command skardc walks one source text through the front end and prints
// every stage: tokens, the untyped tree, and the tree after type checking.
package main

import (
	"fmt"
	"os"

	"skard/pkg/compiler"
	"skard/pkg/utils"
)

const testSource = `(1 + 2.5) * -3 | 2
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		var err error
		src, err = utils.ReadSource(os.Args[1])
		if err != nil {
			utils.Die(err)
		}
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	tokens := compiler.Lex(src)
	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	diags := compiler.NewDiagnostics(os.Stderr)
	p := compiler.NewParser(src, diags)
	expr, ok := p.Parse()
	defer p.Free()
	fmt.Println("AST")
	fmt.Println(" ", expr)
	fmt.Println()
	if !ok {
		fmt.Fprintln(os.Stderr, "parse error")
		os.Exit(1)
	}

	// Typecheck
	if !compiler.NewChecker(diags).Typecheck(expr) {
		fmt.Fprintln(os.Stderr, "type error")
		os.Exit(1)
	}
	fmt.Println("Typed AST")
	fmt.Println(" ", expr)
}
