package internal

import "fmt"

// ClassInfo fixes the object layout and dispatch-table layout of one
// class. The attribute and method lists start as copies of the
// superclass's lists, so a slot index assigned in an ancestor stays
// valid in every subclass; that stability is what makes statically
// computed attribute and dispatch-table offsets sound.
type ClassInfo struct {
	ClassName  string
	TypeTag    int
	SuperClass *ClassInfo

	Attributes []*AttrInfo
	Methods    []*FuncInfo

	PrototypeLabel Label
	// Empty to suppress dispatch-table emission (only the internal
	// .list pseudo-class does this).
	DispatchTableLabel Label
}

// NewClassInfo creates a class descriptor with a fresh copy of the
// superclass's attribute and method lists. superClass is nil only for
// `object`.
func NewClassInfo(className string, typeTag int, superClass *ClassInfo) *ClassInfo {
	classInfo := &ClassInfo{
		ClassName:          className,
		TypeTag:            typeTag,
		SuperClass:         superClass,
		PrototypeLabel:     Label(fmt.Sprintf("$%s$prototype", className)),
		DispatchTableLabel: Label(fmt.Sprintf("$%s$dispatchTable", className)),
	}
	if superClass != nil {
		classInfo.Attributes = append(classInfo.Attributes, superClass.Attributes...)
		classInfo.Methods = append(classInfo.Methods, superClass.Methods...)
	}
	return classInfo
}

// AddAttribute appends an attribute, or overrides the inherited slot in
// place when one with the same name exists.
func (classInfo *ClassInfo) AddAttribute(attrInfo *AttrInfo) {
	idx := classInfo.GetAttributeIndex(attrInfo.VarName)
	if idx >= 0 {
		classInfo.Attributes[idx] = attrInfo
		return
	}
	classInfo.Attributes = append(classInfo.Attributes, attrInfo)
}

// AddMethod appends a method, or overrides the inherited slot in place
// when one with the same base name exists.
func (classInfo *ClassInfo) AddMethod(methodInfo *FuncInfo) {
	idx := classInfo.GetMethodIndex(methodInfo.BaseName())
	if idx >= 0 {
		classInfo.Methods[idx] = methodInfo
		return
	}
	classInfo.Methods = append(classInfo.Methods, methodInfo)
}

// GetAttributeIndex returns the slot index of an attribute, or -1.
func (classInfo *ClassInfo) GetAttributeIndex(attrName string) int {
	for i, attr := range classInfo.Attributes {
		if attr.VarName == attrName {
			return i
		}
	}
	return -1
}

// GetMethodIndex returns the slot index of a method, or -1.
func (classInfo *ClassInfo) GetMethodIndex(methodName string) int {
	for i, method := range classInfo.Methods {
		if method.BaseName() == methodName {
			return i
		}
	}
	return -1
}
