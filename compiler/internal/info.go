package internal

// SymbolInfo is the sum of everything a name can resolve to: a class, a
// function, a stack variable, a global variable, or an attribute.
// Consumers type-switch on the concrete descriptor.
type SymbolInfo interface {
	symbolInfo()
}

func (*ClassInfo) symbolInfo()     {}
func (*FuncInfo) symbolInfo()      {}
func (*StackVarInfo) symbolInfo()  {}
func (*GlobalVarInfo) symbolInfo() {}
func (*AttrInfo) symbolInfo()      {}

// VarInfo carries the fields shared by every variable-like descriptor:
// the name and the label of the constant holding its initial value (the
// empty label when the initial value is None).
type VarInfo struct {
	VarName      string
	InitialValue Label
}

// StackVarInfo describes a parameter or local variable, which lives in
// the activation record of FuncInfo.
type StackVarInfo struct {
	VarInfo
	FuncInfo *FuncInfo
}

func NewStackVarInfo(varName string, initialValue Label, funcInfo *FuncInfo) *StackVarInfo {
	return &StackVarInfo{
		VarInfo:  VarInfo{VarName: varName, InitialValue: initialValue},
		FuncInfo: funcInfo,
	}
}

// GlobalVarInfo describes a global variable stored in static memory
// under Label. The label is prepended with "$" to prevent name clashes.
type GlobalVarInfo struct {
	VarInfo
	Label Label
}

func NewGlobalVarInfo(varName string, initialValue Label) *GlobalVarInfo {
	return &GlobalVarInfo{
		VarInfo: VarInfo{VarName: varName, InitialValue: initialValue},
		Label:   Label("$" + varName),
	}
}

// AttrInfo describes an instance attribute.
type AttrInfo struct {
	VarInfo
}

func NewAttrInfo(attrName string, initialValue Label) *AttrInfo {
	return &AttrInfo{VarInfo: VarInfo{VarName: attrName, InitialValue: initialValue}}
}
