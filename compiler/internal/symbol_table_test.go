package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableLookupWalksParents(t *testing.T) {
	global := NewSymbolTable(nil)
	globalVar := NewGlobalVarInfo("x", "")
	global.Put("x", globalVar)

	inner := NewSymbolTable(global)
	assert.Equal(t, SymbolInfo(globalVar), inner.Get("x"))
	assert.Nil(t, inner.GetLocal("x"))
	assert.Nil(t, inner.Get("y"))
}

func TestSymbolTableShadowing(t *testing.T) {
	global := NewSymbolTable(nil)
	globalVar := NewGlobalVarInfo("x", "")
	global.Put("x", globalVar)

	funcInfo := NewFuncInfo("f", 0, global, nil, nil)
	local := NewStackVarInfo("x", "", funcInfo)
	funcInfo.SymbolTable.Put("x", local)

	assert.Equal(t, SymbolInfo(local), funcInfo.SymbolTable.Get("x"))
	assert.Equal(t, SymbolInfo(globalVar), global.Get("x"))
	assert.Equal(t, global, funcInfo.SymbolTable.Parent())
}
