package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgram(t *testing.T) {
	data := `{
		"kind": "Program",
		"declarations": [
			{
				"kind": "VarDef",
				"var": {
					"kind": "TypedVar",
					"identifier": {"kind": "Identifier", "name": "x"},
					"type": {"kind": "ClassType", "className": "int"}
				},
				"value": {
					"kind": "IntegerLiteral",
					"value": 5,
					"inferredType": {"kind": "ClassValueType", "className": "int"}
				}
			},
			{
				"kind": "FuncDef",
				"name": {"kind": "Identifier", "name": "same"},
				"params": [
					{
						"kind": "TypedVar",
						"identifier": {"kind": "Identifier", "name": "a"},
						"type": {"kind": "ClassType", "className": "int"}
					}
				],
				"returnType": {"kind": "ClassType", "className": "int"},
				"declarations": [],
				"statements": [
					{
						"kind": "ReturnStmt",
						"value": {
							"kind": "Identifier",
							"name": "a",
							"inferredType": {"kind": "ClassValueType", "className": "int"}
						}
					}
				]
			}
		],
		"statements": [
			{
				"kind": "ExprStmt",
				"expr": {
					"kind": "CallExpr",
					"function": {"kind": "Identifier", "name": "print"},
					"args": [
						{
							"kind": "Identifier",
							"name": "x",
							"inferredType": {"kind": "ClassValueType", "className": "int"}
						}
					],
					"inferredType": {"kind": "ClassValueType", "className": "<None>"}
				}
			}
		],
		"errors": {"kind": "Errors", "errors": []}
	}`
	program, err := ParseProgram([]byte(data))
	assert.Nil(t, err)
	assert.Len(t, program.Declarations, 2)
	assert.Len(t, program.Statements, 1)
	assert.Empty(t, program.Errors)

	varDef, ok := program.Declarations[0].(*VarDef)
	assert.True(t, ok)
	assert.Equal(t, "x", varDef.Var.Identifier.Name)
	assert.Equal(t, "int", varDef.Var.TypeName)
	literal, ok := varDef.Value.(*IntegerLiteral)
	assert.True(t, ok)
	assert.Equal(t, 5, literal.Value)
	assert.Equal(t, "int", literal.Type())

	funcDef, ok := program.Declarations[1].(*FuncDef)
	assert.True(t, ok)
	assert.Equal(t, "same", funcDef.Name.Name)
	assert.Equal(t, "int", funcDef.ReturnType)
	assert.Len(t, funcDef.Params, 1)
	assert.Len(t, funcDef.Statements, 1)

	exprStmt, ok := program.Statements[0].(*ExprStmt)
	assert.True(t, ok)
	call, ok := exprStmt.Expr.(*CallExpr)
	assert.True(t, ok)
	assert.Equal(t, "print", call.Function.Name)
	assert.Len(t, call.Args, 1)

	// the decoded program compiles end to end
	_, asm := CompileProgram(program)
	assert.Contains(t, asm, ".globl $x")
	assert.Contains(t, asm, ".globl $same")
	assert.Contains(t, asm, "jal $print")
}

func TestParseProgramWithErrors(t *testing.T) {
	data := `{
		"kind": "Program",
		"declarations": [],
		"statements": [],
		"errors": {
			"kind": "Errors",
			"errors": [
				{"kind": "CompilerError", "message": "Duplicate declaration of identifier: x", "location": [1, 1, 1, 1]}
			]
		}
	}`
	program, err := ParseProgram([]byte(data))
	assert.Nil(t, err)
	assert.Len(t, program.Errors, 1)
	assert.Equal(t, "Duplicate declaration of identifier: x", program.Errors[0].Message)
}

func TestParseProgramRejectsUnknownKinds(t *testing.T) {
	_, err := ParseProgram([]byte(`{"kind": "NotAProgram"}`))
	assert.NotNil(t, err)

	_, err = ParseProgram([]byte(`{
		"kind": "Program",
		"declarations": [{"kind": "Mystery"}],
		"statements": []
	}`))
	assert.NotNil(t, err)
}
