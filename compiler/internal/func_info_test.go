package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVarIndex(t *testing.T) {
	global := NewSymbolTable(nil)
	funcInfo := NewFuncInfo("f", 0, global, nil, nil)
	funcInfo.AddParam(NewStackVarInfo("a", "", funcInfo))
	funcInfo.AddParam(NewStackVarInfo("b", "", funcInfo))
	funcInfo.AddLocal(NewStackVarInfo("x", "", funcInfo))
	funcInfo.AddLocal(NewStackVarInfo("y", "", funcInfo))

	testDatas := []struct {
		name     string
		expected int
	}{
		{"a", 0},
		{"b", 1},
		{"x", 2},
		{"y", 3},
	}
	for _, testData := range testDatas {
		assert.Equal(t, testData.expected, funcInfo.GetVarIndex(testData.name))
	}
	assert.Panics(t, func() { funcInfo.GetVarIndex("missing") })
}

func TestBaseNameAndCodeLabel(t *testing.T) {
	testDatas := []struct {
		funcName  string
		baseName  string
		codeLabel Label
	}{
		{"f", "f", "$f"},
		{"C.m", "m", "$C.m"},
		{"outer.inner", "inner", "$outer.inner"},
	}
	for _, testData := range testDatas {
		funcInfo := NewFuncInfo(testData.funcName, 0, nil, nil, nil)
		assert.Equal(t, testData.baseName, funcInfo.BaseName())
		assert.Equal(t, testData.codeLabel, funcInfo.CodeLabel)
	}
}

func TestAddParamBindsInScope(t *testing.T) {
	global := NewSymbolTable(nil)
	funcInfo := NewFuncInfo("f", 0, global, nil, nil)
	param := NewStackVarInfo("a", "", funcInfo)
	funcInfo.AddParam(param)
	assert.Equal(t, SymbolInfo(param), funcInfo.SymbolTable.Get("a"))
	assert.Equal(t, []string{"a"}, funcInfo.Params)
}
