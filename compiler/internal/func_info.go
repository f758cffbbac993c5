package internal

import (
	"fmt"

	"github.com/cs164spring2019/pa3-chocopy-codegen/util"
)

// FuncInfo describes a function, method, or nested function: its
// parameters and locals (which fix the activation-record layout), its
// scope, its body, and the label of its generated code.
type FuncInfo struct {
	// Fully-qualified name: `f` for a global function, `C.m` for a
	// method, `outer.inner` for a nested function.
	FuncName string

	// Static nesting level: 0 for global functions and methods, D+1
	// for a function defined in the body of a function at depth D.
	Depth int

	Params     []string
	Locals     []*StackVarInfo
	Statements []Stmt

	SymbolTable *SymbolTable
	CodeLabel   Label

	// Non-nil only for nested functions.
	ParentFuncInfo *FuncInfo

	// Emitter is invoked to emit the function's body: the generic
	// user-function emitter for user code, a specialized one for the
	// predefined functions.
	Emitter func(*FuncInfo)
}

func NewFuncInfo(funcName string, depth int, parentSymbolTable *SymbolTable,
	parentFuncInfo *FuncInfo, emitter func(*FuncInfo)) *FuncInfo {
	return &FuncInfo{
		FuncName:       funcName,
		Depth:          depth,
		SymbolTable:    NewSymbolTable(parentSymbolTable),
		CodeLabel:      Label("$" + funcName),
		ParentFuncInfo: parentFuncInfo,
		Emitter:        emitter,
	}
}

// AddParam registers a parameter and binds it in the function's scope.
func (funcInfo *FuncInfo) AddParam(paramInfo *StackVarInfo) {
	funcInfo.Params = append(funcInfo.Params, paramInfo.VarName)
	funcInfo.SymbolTable.Put(paramInfo.VarName, paramInfo)
}

// AddLocal registers a local variable and binds it in the function's scope.
func (funcInfo *FuncInfo) AddLocal(stackVarInfo *StackVarInfo) {
	funcInfo.Locals = append(funcInfo.Locals, stackVarInfo)
	funcInfo.SymbolTable.Put(stackVarInfo.VarName, stackVarInfo)
}

func (funcInfo *FuncInfo) AddBody(stmts []Stmt) {
	funcInfo.Statements = append(funcInfo.Statements, stmts...)
}

// GetVarIndex returns the flat activation-record index of a parameter or
// local: the i-th of N params is at index i, the j-th local at N+j.
// The name must be defined in this function; semantic analysis
// guarantees that for every reference handed to code generation.
func (funcInfo *FuncInfo) GetVarIndex(name string) int {
	for i, param := range funcInfo.Params {
		if param == name {
			return i
		}
	}
	for j, local := range funcInfo.Locals {
		if local.VarName == name {
			return j + len(funcInfo.Params)
		}
	}
	panic(fmt.Sprintf("%s is not a var defined in function %s", name, funcInfo.FuncName))
}

// BaseName returns the last component of the fully-qualified name.
func (funcInfo *FuncInfo) BaseName() string {
	return util.BaseName(funcInfo.FuncName)
}

// EmitBody invokes the function's body emitter.
func (funcInfo *FuncInfo) EmitBody() {
	funcInfo.Emitter(funcInfo)
}
