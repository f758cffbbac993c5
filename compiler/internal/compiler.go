package internal

import (
	"bytes"
	"fmt"
	"io/ioutil"
)

// CompileProgram runs the full pipeline on a type-annotated program and
// returns the generator (for inspection) along with the assembly text.
func CompileProgram(program *Program) (*Generator, string) {
	var out bytes.Buffer
	gen := NewGenerator(NewRiscVBackend(&out))
	gen.Generate(program, NewStackMachineEmitter(gen))
	return gen, out.String()
}

// CompileFile reads a type-annotated JSON AST, compiles it, and writes
// the assembly to outputPath.
func CompileFile(inputPath, outputPath string) (*Generator, error) {
	data, err := ioutil.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %v", err)
	}
	program, err := ParseProgram(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AST: %v", err)
	}
	if len(program.Errors) > 0 {
		return nil, fmt.Errorf("program has %d semantic errors; first: %s",
			len(program.Errors), program.Errors[0].Message)
	}
	gen, asm := CompileProgram(program)
	if err := ioutil.WriteFile(outputPath, []byte(asm), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %v", err)
	}
	return gen, nil
}
