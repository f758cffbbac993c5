package main

import (
	"flag"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/cs164spring2019/pa3-chocopy-codegen/compiler/internal"
)

// Compiles a type-annotated ChocoPy AST (the JSON the front end writes
// out) to RISC-V 32-bit assembly runnable on the Venus simulator.

var (
	inputPath  = flag.String("i", "./input.ast.typed.json", "the type-annotated AST to compile")
	outputPath = flag.String("o", "./output.s", "the assembly output path")
	verbose    = flag.Bool("v", false, "whether dump the descriptor graph")
)

func main() {
	flag.Parse()
	gen, err := internal.CompileFile(*inputPath, *outputPath)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		return
	}
	if *verbose {
		spew.Dump(gen.Classes)
		spew.Dump(gen.Functions)
		spew.Dump(gen.GlobalVars)
	}
}
