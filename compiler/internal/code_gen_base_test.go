package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func compileForTest(program *Program) (*Generator, string) {
	return CompileProgram(program)
}

func TestPredefinedWorld(t *testing.T) {
	gen, _ := compileForTest(&Program{})

	assert.Equal(t, 0, gen.ObjectClass.TypeTag)
	assert.Equal(t, 1, gen.IntClass.TypeTag)
	assert.Equal(t, 2, gen.BoolClass.TypeTag)
	assert.Equal(t, 3, gen.StrClass.TypeTag)
	assert.Equal(t, -1, gen.ListClass.TypeTag)
	assert.Equal(t, Label(""), gen.ListClass.DispatchTableLabel)

	// str and .list keep __len__ at the same slot; len() depends on it
	assert.Equal(t, 0, gen.StrClass.GetAttributeIndex("__len__"))
	assert.Equal(t, 0, gen.ListClass.GetAttributeIndex("__len__"))

	// every predefined class reaches object
	for _, classInfo := range gen.Classes {
		ancestor := classInfo
		for ancestor.SuperClass != nil {
			ancestor = ancestor.SuperClass
		}
		assert.Equal(t, gen.ObjectClass, ancestor)
	}

	assert.Equal(t, "object.__init__", gen.Functions[0].FuncName)
	assert.Equal(t, gen.PrintFunc, gen.GlobalSymbols.Get("print"))
	assert.Equal(t, gen.LenFunc, gen.GlobalSymbols.Get("len"))
	assert.Equal(t, gen.InputFunc, gen.GlobalSymbols.Get("input"))
}

func TestEmptyProgram(t *testing.T) {
	_, asm := compileForTest(&Program{})

	assert.Contains(t, asm, ".globl $object$prototype")
	assert.Contains(t, asm, ".globl $int$prototype")
	assert.Contains(t, asm, ".globl $bool$prototype")
	assert.Contains(t, asm, ".globl $str$prototype")
	assert.Contains(t, asm, ".globl $.list$prototype")
	assert.Contains(t, asm, ".globl $object$dispatchTable")
	assert.NotContains(t, asm, "$.list$dispatchTable")
	assert.Contains(t, asm, ".globl main")
	assert.Contains(t, asm, "jal heap.init")
	assert.Contains(t, asm, "li a0, 10")
	assert.Contains(t, asm, ".globl alloc\n")
	assert.Contains(t, asm, ".globl alloc2\n")
	assert.Contains(t, asm, ".globl abort\n")
	assert.Contains(t, asm, ".globl heap.init\n")
	assert.Contains(t, asm, ".globl const_0")
	assert.Contains(t, asm, ".globl const_1")
}

func TestLayoutIsDeterministic(t *testing.T) {
	program := &Program{
		Declarations: []Declaration{
			&VarDef{
				Var:   &TypedVar{Identifier: &Identifier{Name: "x"}, TypeName: "int"},
				Value: &IntegerLiteral{Value: 5, InferredType: "int"},
			},
			&VarDef{
				Var:   &TypedVar{Identifier: &Identifier{Name: "s"}, TypeName: "str"},
				Value: &StringLiteral{Value: "hello", InferredType: "str"},
			},
		},
	}
	_, first := compileForTest(program)
	_, second := compileForTest(program)
	assert.Equal(t, first, second)
}

func TestGlobalVarCell(t *testing.T) {
	program := &Program{
		Declarations: []Declaration{
			&VarDef{
				Var:   &TypedVar{Identifier: &Identifier{Name: "x"}, TypeName: "int"},
				Value: &IntegerLiteral{Value: 5, InferredType: "int"},
			},
		},
	}
	gen, asm := compileForTest(program)

	assert.Len(t, gen.GlobalVars, 1)
	assert.Equal(t, Label("$x"), gen.GlobalVars[0].Label)
	assert.Equal(t, gen.Constants.GetIntConstant(5), gen.GlobalVars[0].InitialValue)

	// the cell holds the address of the interned 5
	assert.Contains(t, asm, ".globl $x")
	assert.Contains(t, asm, ".word "+string(gen.Constants.GetIntConstant(5)))
	// and the constant itself carries the int header and payload
	assert.Contains(t, asm, ".globl "+string(gen.Constants.GetIntConstant(5)))
	assert.Contains(t, asm, ".word 5")
}

func TestClassPrototypeAndDispatchTable(t *testing.T) {
	program := &Program{
		Declarations: []Declaration{
			&ClassDef{
				Name:       &Identifier{Name: "C"},
				SuperClass: &Identifier{Name: "object"},
				Declarations: []Declaration{
					&VarDef{
						Var:   &TypedVar{Identifier: &Identifier{Name: "y"}, TypeName: "int"},
						Value: &IntegerLiteral{Value: 7, InferredType: "int"},
					},
				},
			},
		},
	}
	gen, asm := compileForTest(program)

	classInfo, ok := gen.GlobalSymbols.Get("C").(*ClassInfo)
	assert.True(t, ok)
	assert.Equal(t, 4, classInfo.TypeTag)
	assert.Equal(t, gen.ObjectClass, classInfo.SuperClass)
	assert.Len(t, classInfo.Attributes, 1)

	assert.Contains(t, asm, ".globl $C$prototype")
	assert.Contains(t, asm, "Type tag for class: C")
	assert.Contains(t, asm, "Initial value of attribute: y")
	assert.Contains(t, asm, ".globl $C$dispatchTable")
	assert.Contains(t, asm, ".word $object.__init__")
}

func TestMethodOverrideKeepsSlot(t *testing.T) {
	makeMethod := func(name string) *FuncDef {
		return &FuncDef{
			Name:       &Identifier{Name: name},
			Params:     []*TypedVar{{Identifier: &Identifier{Name: "self"}, TypeName: "A"}},
			Statements: []Stmt{&ReturnStmt{}},
		}
	}
	program := &Program{
		Declarations: []Declaration{
			&ClassDef{
				Name:         &Identifier{Name: "A"},
				SuperClass:   &Identifier{Name: "object"},
				Declarations: []Declaration{makeMethod("speak")},
			},
			&ClassDef{
				Name:         &Identifier{Name: "B"},
				SuperClass:   &Identifier{Name: "A"},
				Declarations: []Declaration{makeMethod("speak")},
			},
		},
	}
	gen, _ := compileForTest(program)

	classA := gen.GlobalSymbols.Get("A").(*ClassInfo)
	classB := gen.GlobalSymbols.Get("B").(*ClassInfo)
	assert.Equal(t, classA.GetMethodIndex("speak"), classB.GetMethodIndex("speak"))
	assert.Equal(t, "A.speak", classA.Methods[classA.GetMethodIndex("speak")].FuncName)
	assert.Equal(t, "B.speak", classB.Methods[classB.GetMethodIndex("speak")].FuncName)
	assert.Equal(t, 0, classB.GetMethodIndex("__init__"))
}

func TestNestedFunctionAnalysis(t *testing.T) {
	// def outer():
	//     x: int = 0
	//     def inner():
	//         nonlocal x
	//         x = 1
	program := &Program{
		Declarations: []Declaration{
			&FuncDef{
				Name: &Identifier{Name: "outer"},
				Declarations: []Declaration{
					&VarDef{
						Var:   &TypedVar{Identifier: &Identifier{Name: "x"}, TypeName: "int"},
						Value: &IntegerLiteral{Value: 0, InferredType: "int"},
					},
					&FuncDef{
						Name: &Identifier{Name: "inner"},
						Declarations: []Declaration{
							&NonLocalDecl{Variable: &Identifier{Name: "x"}},
						},
						Statements: []Stmt{
							&AssignStmt{
								Targets: []Expr{&Identifier{Name: "x", InferredType: "int"}},
								Value:   &IntegerLiteral{Value: 1, InferredType: "int"},
							},
						},
					},
				},
				Statements: []Stmt{&ReturnStmt{}},
			},
		},
	}
	gen, asm := compileForTest(program)

	var outer, inner *FuncInfo
	for _, funcInfo := range gen.Functions {
		switch funcInfo.FuncName {
		case "outer":
			outer = funcInfo
		case "outer.inner":
			inner = funcInfo
		}
	}
	assert.NotNil(t, outer)
	assert.NotNil(t, inner)
	assert.Equal(t, 0, outer.Depth)
	assert.Equal(t, 1, inner.Depth)
	assert.Equal(t, outer, inner.ParentFuncInfo)

	// inner resolves x through the scope chain to outer's stack var
	stackVar, ok := inner.SymbolTable.Get("x").(*StackVarInfo)
	assert.True(t, ok)
	assert.Equal(t, outer, stackVar.FuncInfo)

	// and the emitted assignment goes through the static link
	assert.Contains(t, asm, "Load static link")
	assert.Contains(t, asm, "Assign nonlocal var: x")
}

func TestGlobalDeclBindsGlobalVar(t *testing.T) {
	program := &Program{
		Declarations: []Declaration{
			&VarDef{
				Var:   &TypedVar{Identifier: &Identifier{Name: "x"}, TypeName: "int"},
				Value: &IntegerLiteral{Value: 0, InferredType: "int"},
			},
			&FuncDef{
				Name: &Identifier{Name: "bump"},
				Declarations: []Declaration{
					&GlobalDecl{Variable: &Identifier{Name: "x"}},
				},
				Statements: []Stmt{
					&AssignStmt{
						Targets: []Expr{&Identifier{Name: "x", InferredType: "int"}},
						Value:   &IntegerLiteral{Value: 1, InferredType: "int"},
					},
				},
			},
		},
	}
	gen, asm := compileForTest(program)

	var bump *FuncInfo
	for _, funcInfo := range gen.Functions {
		if funcInfo.FuncName == "bump" {
			bump = funcInfo
		}
	}
	assert.NotNil(t, bump)
	_, ok := bump.SymbolTable.GetLocal("x").(*GlobalVarInfo)
	assert.True(t, ok)
	assert.Contains(t, asm, "sw a0, $x, t0")
}

func TestStringConstantLayout(t *testing.T) {
	program := &Program{
		Declarations: []Declaration{
			&VarDef{
				Var:   &TypedVar{Identifier: &Identifier{Name: "s"}, TypeName: "str"},
				Value: &StringLiteral{Value: "hello", InferredType: "str"},
			},
		},
	}
	gen, asm := compileForTest(program)

	label := gen.Constants.GetStrConstant("hello")
	idx := strings.Index(asm, string(label)+":")
	assert.True(t, idx >= 0)
	tail := asm[idx:]
	// header: tag 3, size 3+1+ceil((5+1)/4) = 6, dispatch table
	assert.Contains(t, tail, ".word 3")
	assert.Contains(t, tail, ".word 6")
	assert.Contains(t, tail, ".word $str$dispatchTable")
	assert.Contains(t, tail, `.string "hello"`)
	// the string's length is interned as an int constant
	assert.Contains(t, asm, ".globl "+string(gen.Constants.GetIntConstant(5)))
}
