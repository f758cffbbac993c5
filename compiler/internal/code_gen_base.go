package internal

import (
	"fmt"

	"github.com/cs164spring2019/pa3-chocopy-codegen/util"
)

// The Generator lowers a type-checked program into descriptors (classes,
// functions, variables) and then emits the full assembly image: data
// section with prototypes, dispatch tables and globals, code section
// with the program entry, every function body, and the runtime routines,
// and finally the constant pool.
//
// Emission of user-defined function bodies and top-level statements is
// delegated to an Emitter so the descriptor machinery stays independent
// of any particular lowering strategy.

const objectHeaderSize = 3

const heapSizeBytes = 1024 * 1024 * 32

// Runtime routine labels.
const (
	objectAllocLabel       Label = "alloc"
	objectAllocResizeLabel Label = "alloc2"
	abortLabel             Label = "abort"
	heapInitLabel          Label = "heap.init"
)

// Runtime error codes. These are stable; the emitted program exits with
// them.
const (
	errorArg     = 1
	errorDivZero = 2
	errorOOB     = 3
	errorNone    = 4
	errorOOM     = 5
	errorNYI     = 6
)

// Emitter supplies the parts of code generation that depend on the
// lowering strategy for user code.
type Emitter interface {
	// EmitTopLevel emits the top-level statements, run inside `main`.
	EmitTopLevel(statements []Stmt)
	// EmitUserFunction emits the body of a user-defined function.
	EmitUserFunction(funcInfo *FuncInfo)
	// EmitCustomCode emits assembly routines outside the program
	// proper that emitted statements may jump to.
	EmitCustomCode()
}

type Generator struct {
	backend *RiscVBackend
	emitter Emitter

	nextTypeTag     int
	nextLabelSuffix int

	ObjectClass *ClassInfo
	IntClass    *ClassInfo
	BoolClass   *ClassInfo
	StrClass    *ClassInfo
	ListClass   *ClassInfo

	PrintFunc *FuncInfo
	LenFunc   *FuncInfo
	InputFunc *FuncInfo

	GlobalVars []*GlobalVarInfo
	Classes    []*ClassInfo
	Functions  []*FuncInfo

	GlobalSymbols *SymbolTable
	Constants     *Constants
}

// NewGenerator creates a generator that emits through backend, with the
// predefined classes and functions already in place: object (tag 0),
// int, bool, str, the internal .list pseudo-class (tag -1, no dispatch
// table), and print/len/input with their specialized emitters.
func NewGenerator(backend *RiscVBackend) *Generator {
	gen := &Generator{
		backend:       backend,
		GlobalSymbols: NewSymbolTable(nil),
		Constants:     NewConstants(),
	}

	objectInit := NewFuncInfo("object.__init__", 0, gen.GlobalSymbols, nil, gen.emitObjectInit)
	objectInit.AddParam(NewStackVarInfo("self", "", objectInit))
	gen.Functions = append(gen.Functions, objectInit)

	gen.ObjectClass = NewClassInfo("object", gen.getNextTypeTag(), nil)
	gen.ObjectClass.AddMethod(objectInit)
	gen.Classes = append(gen.Classes, gen.ObjectClass)
	gen.GlobalSymbols.Put(gen.ObjectClass.ClassName, gen.ObjectClass)

	gen.IntClass = NewClassInfo("int", gen.getNextTypeTag(), gen.ObjectClass)
	gen.IntClass.AddAttribute(NewAttrInfo("__int__", ""))
	gen.Classes = append(gen.Classes, gen.IntClass)
	gen.GlobalSymbols.Put(gen.IntClass.ClassName, gen.IntClass)

	gen.BoolClass = NewClassInfo("bool", gen.getNextTypeTag(), gen.ObjectClass)
	gen.BoolClass.AddAttribute(NewAttrInfo("__bool__", ""))
	gen.Classes = append(gen.Classes, gen.BoolClass)
	gen.GlobalSymbols.Put(gen.BoolClass.ClassName, gen.BoolClass)

	gen.StrClass = NewClassInfo("str", gen.getNextTypeTag(), gen.ObjectClass)
	gen.StrClass.AddAttribute(NewAttrInfo("__len__", gen.Constants.GetIntConstant(0)))
	gen.StrClass.AddAttribute(NewAttrInfo("__str__", ""))
	gen.Classes = append(gen.Classes, gen.StrClass)
	gen.GlobalSymbols.Put(gen.StrClass.ClassName, gen.StrClass)

	// The .list pseudo-class only exists to give empty lists a
	// prototype; it is not nameable and never dispatches.
	gen.ListClass = NewClassInfo(".list", -1, gen.ObjectClass)
	gen.ListClass.AddAttribute(NewAttrInfo("__len__", gen.Constants.GetIntConstant(0)))
	gen.Classes = append(gen.Classes, gen.ListClass)
	gen.ListClass.DispatchTableLabel = ""

	gen.PrintFunc = NewFuncInfo("print", 0, gen.GlobalSymbols, nil, gen.emitPrint)
	gen.PrintFunc.AddParam(NewStackVarInfo("arg", "", gen.PrintFunc))
	gen.Functions = append(gen.Functions, gen.PrintFunc)
	gen.GlobalSymbols.Put(gen.PrintFunc.BaseName(), gen.PrintFunc)

	gen.LenFunc = NewFuncInfo("len", 0, gen.GlobalSymbols, nil, gen.emitLen)
	gen.LenFunc.AddParam(NewStackVarInfo("arg", "", gen.LenFunc))
	gen.Functions = append(gen.Functions, gen.LenFunc)
	gen.GlobalSymbols.Put(gen.LenFunc.BaseName(), gen.LenFunc)

	gen.InputFunc = NewFuncInfo("input", 0, gen.GlobalSymbols, nil, gen.emitInput)
	gen.Functions = append(gen.Functions, gen.InputFunc)
	gen.GlobalSymbols.Put(gen.InputFunc.BaseName(), gen.InputFunc)

	return gen
}

func (gen *Generator) getNextTypeTag() int {
	tag := gen.nextTypeTag
	gen.nextTypeTag++
	return tag
}

// GenerateLocalLabel returns a fresh label for jump targets inside a
// routine. All such labels have the prefix `label_` and are unique for
// the lifetime of the generator.
func (gen *Generator) GenerateLocalLabel() Label {
	label := Label(fmt.Sprintf("label_%d", gen.nextLabelSuffix))
	gen.nextLabelSuffix++
	return label
}

func (gen *Generator) Backend() *RiscVBackend {
	return gen.backend
}

// Generate analyzes the program and emits the complete assembly image
// through the backend, using emitter for user code.
func (gen *Generator) Generate(program *Program, emitter Emitter) {
	gen.emitter = emitter
	gen.analyzeProgram(program)

	backend := gen.backend
	backend.StartData()

	for _, classInfo := range gen.Classes {
		gen.emitPrototype(classInfo)
	}
	for _, classInfo := range gen.Classes {
		gen.emitDispatchTable(classInfo)
	}
	for _, global := range gen.GlobalVars {
		backend.EmitGlobalLabel(global.Label)
		backend.EmitWordAddress(global.InitialValue,
			fmt.Sprintf("Initial value of global var: %s", global.VarName))
	}

	backend.StartCode()

	backend.EmitGlobalLabel("main")
	backend.EmitLUI(A0, heapSizeBytes>>12, "Initialize heap size (in multiples of 4KB)")
	backend.EmitADD(S11, S11, A0, "Save heap size")
	backend.EmitJAL(heapInitLabel, "Call heap.init routine")
	backend.EmitMV(GP, A0, "Initialize heap pointer")
	backend.EmitMV(S10, GP, "Set beginning of heap")
	backend.EmitADD(S11, S10, S11, "Set end of heap (= start of heap + heap size)")
	backend.EmitADDI(FP, SP, backend.GetWordSize(), "New fp is just below stack top")

	gen.emitter.EmitTopLevel(program.Statements)

	backend.EmitLI(A0, 10, "Code for ecall: exit")
	backend.EmitEcall("")

	for _, funcInfo := range gen.Functions {
		funcInfo.EmitBody()
	}

	gen.emitBuiltinAlloc()
	gen.emitBuiltinAllocResize()
	gen.emitBuiltinAbort()
	gen.emitBuiltinHeapInit()

	gen.emitter.EmitCustomCode()

	backend.StartData()
	gen.emitConstants()
}

/* ------------------ analysis of the AST into descriptors ------------------ */

// analyzeProgram populates the descriptor lists and the global symbol
// table. Global variables are bound first so that `global x`
// declarations inside functions resolve during function analysis.
func (gen *Generator) analyzeProgram(program *Program) {
	for _, decl := range program.Declarations {
		if varDef, ok := decl.(*VarDef); ok {
			globalVar := NewGlobalVarInfo(varDef.Var.Identifier.Name,
				gen.Constants.FromLiteral(varDef.Value))
			gen.GlobalVars = append(gen.GlobalVars, globalVar)
			gen.GlobalSymbols.Put(globalVar.VarName, globalVar)
		}
	}
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ClassDef:
			classInfo := gen.analyzeClass(d)
			gen.Classes = append(gen.Classes, classInfo)
			gen.GlobalSymbols.Put(classInfo.ClassName, classInfo)
		case *FuncDef:
			funcInfo := gen.analyzeFunction("", d, 0, gen.GlobalSymbols, nil)
			gen.Functions = append(gen.Functions, funcInfo)
			gen.GlobalSymbols.Put(funcInfo.BaseName(), funcInfo)
		}
	}
}

// analyzeClass builds a ClassInfo with a fresh type tag, inheriting the
// attribute and method slots of the superclass. Methods are analyzed
// like functions at depth 0 with the class name as container.
func (gen *Generator) analyzeClass(classDef *ClassDef) *ClassInfo {
	className := classDef.Name.Name
	superInfo, ok := gen.GlobalSymbols.Get(classDef.SuperClass.Name).(*ClassInfo)
	if !ok {
		panic(fmt.Sprintf("semantic analysis should ensure super-class %s is defined",
			classDef.SuperClass.Name))
	}
	classInfo := NewClassInfo(className, gen.getNextTypeTag(), superInfo)
	for _, decl := range classDef.Declarations {
		switch d := decl.(type) {
		case *VarDef:
			classInfo.AddAttribute(NewAttrInfo(d.Var.Identifier.Name,
				gen.Constants.FromLiteral(d.Value)))
		case *FuncDef:
			methodInfo := gen.analyzeFunction(className, d, 0, gen.GlobalSymbols, nil)
			gen.Functions = append(gen.Functions, methodInfo)
			classInfo.AddMethod(methodInfo)
		}
	}
	return classInfo
}

// analyzeFunction builds the FuncInfo for one function or method and
// recurses into nested definitions. Params and locals are processed
// before nested functions so that `nonlocal x` inside them resolves.
func (gen *Generator) analyzeFunction(container string, funcDef *FuncDef, depth int,
	parentSymbolTable *SymbolTable, parentFuncInfo *FuncInfo) *FuncInfo {

	funcBaseName := funcDef.Name.Name
	funcQualifiedName := funcBaseName
	if container != "" {
		funcQualifiedName = fmt.Sprintf("%s.%s", container, funcBaseName)
	}

	funcInfo := NewFuncInfo(funcQualifiedName, depth, parentSymbolTable, parentFuncInfo,
		gen.emitUserFunction)

	for _, param := range funcDef.Params {
		funcInfo.AddParam(NewStackVarInfo(param.Identifier.Name, "", funcInfo))
	}

	for _, decl := range funcDef.Declarations {
		switch d := decl.(type) {
		case *VarDef:
			funcInfo.AddLocal(NewStackVarInfo(d.Var.Identifier.Name,
				gen.Constants.FromLiteral(d.Value), funcInfo))
		case *GlobalDecl:
			// `global x` rebinds x in this scope to the global cell.
			globalVar, ok := gen.GlobalSymbols.Get(d.Variable.Name).(*GlobalVarInfo)
			if !ok {
				panic(fmt.Sprintf("semantic analysis should ensure global var %s exists",
					d.Variable.Name))
			}
			funcInfo.SymbolTable.Put(globalVar.VarName, globalVar)
		case *NonLocalDecl:
			// Nothing to bind: the var is inherited through the scope
			// chain. It must already resolve to a stack var.
			if _, ok := funcInfo.SymbolTable.Get(d.Variable.Name).(*StackVarInfo); !ok {
				panic(fmt.Sprintf("semantic analysis should ensure nonlocal var %s exists",
					d.Variable.Name))
			}
		}
	}

	for _, decl := range funcDef.Declarations {
		if nestedFuncDef, ok := decl.(*FuncDef); ok {
			nestedFuncInfo := gen.analyzeFunction(funcQualifiedName, nestedFuncDef,
				depth+1, funcInfo.SymbolTable, funcInfo)
			gen.Functions = append(gen.Functions, nestedFuncInfo)
			funcInfo.SymbolTable.Put(nestedFuncInfo.BaseName(), nestedFuncInfo)
		}
	}

	funcInfo.AddBody(funcDef.Statements)
	return funcInfo
}

func (gen *Generator) emitUserFunction(funcInfo *FuncInfo) {
	gen.emitter.EmitUserFunction(funcInfo)
}

/* -------------- data section: prototypes, tables, constants -------------- */

func (gen *Generator) alignObject() {
	gen.backend.AlignNext(util.Log2(gen.backend.GetWordSize()))
}

// emitPrototype emits the data image the allocator copies to make a new
// instance: the three header words followed by one word per attribute.
func (gen *Generator) emitPrototype(classInfo *ClassInfo) {
	backend := gen.backend
	backend.EmitGlobalLabel(classInfo.PrototypeLabel)
	backend.EmitWordLiteral(classInfo.TypeTag,
		fmt.Sprintf("Type tag for class: %s", classInfo.ClassName))
	backend.EmitWordLiteral(len(classInfo.Attributes)+objectHeaderSize, "Object size")
	backend.EmitWordAddress(classInfo.DispatchTableLabel, "Pointer to dispatch table")
	for _, attr := range classInfo.Attributes {
		backend.EmitWordAddress(attr.InitialValue,
			fmt.Sprintf("Initial value of attribute: %s", attr.VarName))
	}
	gen.alignObject()
}

func (gen *Generator) emitDispatchTable(classInfo *ClassInfo) {
	if classInfo.DispatchTableLabel == "" {
		return
	}
	backend := gen.backend
	backend.EmitGlobalLabel(classInfo.DispatchTableLabel)
	for _, method := range classInfo.Methods {
		backend.EmitWordAddress(method.CodeLabel,
			fmt.Sprintf("Implementation for method: %s.%s", classInfo.ClassName, method.BaseName()))
	}
}

// emitConstants flushes the constant pool: the two bool objects, then
// every string constant in insertion order, then every int constant in
// insertion order. String emission interns the length ints it needs, so
// the int loop must run last and re-read the order list.
func (gen *Generator) emitConstants() {
	backend := gen.backend
	constants := gen.Constants

	backend.EmitGlobalLabel(constants.FalseConstant)
	backend.EmitWordLiteral(gen.BoolClass.TypeTag, "Type tag for class: bool")
	backend.EmitWordLiteral(len(gen.BoolClass.Attributes)+objectHeaderSize, "Object size")
	backend.EmitWordAddress(gen.BoolClass.DispatchTableLabel, "Pointer to dispatch table")
	backend.EmitWordLiteral(0, "Constant value of attribute: __bool__")
	gen.alignObject()

	backend.EmitGlobalLabel(constants.TrueConstant)
	backend.EmitWordLiteral(gen.BoolClass.TypeTag, "Type tag for class: bool")
	backend.EmitWordLiteral(len(gen.BoolClass.Attributes)+objectHeaderSize, "Object size")
	backend.EmitWordAddress(gen.BoolClass.DispatchTableLabel, "Pointer to dispatch table")
	backend.EmitWordLiteral(1, "Constant value of attribute: __bool__")
	gen.alignObject()

	for _, value := range constants.strOrder {
		label := constants.strConstants[value]
		numWordsForCharacters := util.WordsForChars(len(value), backend.GetWordSize())
		backend.EmitGlobalLabel(label)
		backend.EmitWordLiteral(gen.StrClass.TypeTag, "Type tag for class: str")
		backend.EmitWordLiteral(3+1+numWordsForCharacters, "Object size")
		backend.EmitWordAddress(gen.StrClass.DispatchTableLabel, "Pointer to dispatch table")
		backend.EmitWordAddress(constants.GetIntConstant(len(value)),
			"Constant value of attribute: __len__")
		backend.EmitString(value, "Constant value of attribute: __str__")
		gen.alignObject()
	}

	// Indexed loop: string emission above may have appended lengths.
	for i := 0; i < len(constants.intOrder); i++ {
		value := constants.intOrder[i]
		label := constants.intConstants[value]
		backend.EmitGlobalLabel(label)
		backend.EmitWordLiteral(gen.IntClass.TypeTag, "Type tag for class: int")
		backend.EmitWordLiteral(len(gen.IntClass.Attributes)+objectHeaderSize, "Object size")
		backend.EmitWordAddress(gen.IntClass.DispatchTableLabel, "Pointer to dispatch table")
		backend.EmitWordLiteral(value, "Constant value of attribute: __int__")
		gen.alignObject()
	}
}

/* ------------------- object layout offset helpers ------------------- */

func (gen *Generator) GetTypeTagOffset() int {
	return 0 * gen.backend.GetWordSize()
}

func (gen *Generator) GetObjectSizeOffset() int {
	return 1 * gen.backend.GetWordSize()
}

func (gen *Generator) GetDispatchTableOffset() int {
	return 2 * gen.backend.GetWordSize()
}

// GetAttrOffset returns the byte offset of an attribute within an
// object of the given class.
func (gen *Generator) GetAttrOffset(classInfo *ClassInfo, attrName string) int {
	attrIndex := classInfo.GetAttributeIndex(attrName)
	if attrIndex < 0 {
		panic(fmt.Sprintf("type checker ensures that attribute %s.%s is valid",
			classInfo.ClassName, attrName))
	}
	return gen.backend.GetWordSize() * (objectHeaderSize + attrIndex)
}

// GetMethodOffset returns the byte offset of a method's slot within the
// class's dispatch table.
func (gen *Generator) GetMethodOffset(classInfo *ClassInfo, methodName string) int {
	methodIndex := classInfo.GetMethodIndex(methodName)
	if methodIndex < 0 {
		panic(fmt.Sprintf("type checker ensures that method %s.%s is valid",
			classInfo.ClassName, methodName))
	}
	return gen.backend.GetWordSize() * methodIndex
}

/* ---------------- predefined functions and runtime routines ---------------- */

// emitAbortWith loads an error code and message and jumps to the abort
// routine. A1 ends up pointing at the raw characters of the message.
func (gen *Generator) emitAbortWith(code int, message string) {
	backend := gen.backend
	backend.EmitLI(A0, code, fmt.Sprintf("Exit code for: %s", message))
	backend.EmitLA(A1, gen.Constants.GetStrConstant(message), "Load error message as str")
	backend.EmitADDI(A1, A1, gen.GetAttrOffset(gen.StrClass, "__str__"),
		"Load address of attribute __str__")
	backend.EmitJ(abortLabel, "Abort")
}

// emitPrint emits the predefined `print` function. It is a leaf: no
// frame is built because it neither uses the stack nor calls anything.
func (gen *Generator) emitPrint(funcInfo *FuncInfo) {
	backend := gen.backend
	backend.EmitGlobalLabel(funcInfo.CodeLabel)

	epilogue := gen.GenerateLocalLabel()
	illegalArg := gen.GenerateLocalLabel()
	printInt := gen.GenerateLocalLabel()
	printStr := gen.GenerateLocalLabel()
	printBool := gen.GenerateLocalLabel()
	putsA1 := gen.GenerateLocalLabel()

	backend.EmitLW(A0, SP, backend.GetWordSize(), "Load arg")
	backend.EmitBEQ(A0, ZERO, illegalArg, "None is an illegal argument")
	backend.EmitLW(T0, A0, gen.GetTypeTagOffset(), "Get type tag of arg")

	backend.EmitLI(T1, gen.IntClass.TypeTag, "Load type tag of `int`")
	backend.EmitBEQ(T0, T1, printInt, "Go to print(int)")
	backend.EmitLI(T1, gen.StrClass.TypeTag, "Load type tag of `str`")
	backend.EmitBEQ(T0, T1, printStr, "Go to print(str)")
	backend.EmitLI(T1, gen.BoolClass.TypeTag, "Load type tag of `bool`")
	backend.EmitBEQ(T0, T1, printBool, "Go to print(bool)")

	backend.EmitLocalLabel(illegalArg, "Invalid argument")
	gen.emitAbortWith(errorArg, "Invalid argument")

	strAttrOffset := gen.GetAttrOffset(gen.StrClass, "__str__")

	backend.EmitLocalLabel(printBool, "Print bool object in A0")
	backend.EmitLW(A0, A0, gen.GetAttrOffset(gen.BoolClass, "__bool__"), "Load attribute __bool__")
	printFalse := gen.GenerateLocalLabel()
	backend.EmitBEQ(A0, ZERO, printFalse, "Go to: print(False)")
	backend.EmitLA(A0, gen.Constants.GetStrConstant("True"), "String representation: True")
	backend.EmitJ(printStr, "Go to: print(str)")
	backend.EmitLocalLabel(printFalse, "Print False object in A0")
	backend.EmitLA(A0, gen.Constants.GetStrConstant("False"), "String representation: False")
	backend.EmitJ(printStr, "Go to: print(str)")

	backend.EmitLocalLabel(printStr, "Print str object in A0")
	backend.EmitADDI(A1, A0, strAttrOffset, "Load address of attribute __str__")
	backend.EmitJ(putsA1, "Print the null-terminated string now in A1")

	backend.EmitLocalLabel(printInt, "Print int object in A0")
	backend.EmitLW(A1, A0, gen.GetAttrOffset(gen.IntClass, "__int__"), "Load attribute __int__")
	backend.EmitLI(A0, 1, "Code for ecall: print_int")
	backend.EmitEcall("Print integer")
	backend.EmitLI(A1, int('\n'), "Load newline character")
	backend.EmitLI(A0, 11, "Code for ecall: print_char")
	backend.EmitEcall("Print character")
	backend.EmitMV(A0, ZERO, "Load None")
	backend.EmitJ(epilogue, "Go to return")

	backend.EmitLocalLabel(putsA1, "Print null-terminated string in A1")
	backend.EmitLI(A0, 4, "Code for ecall: print_string")
	backend.EmitEcall("Print string")
	backend.EmitLI(A1, int('\n'), "Load newline character")
	backend.EmitLI(A0, 11, "Code for ecall: print_char")
	backend.EmitEcall("Print character")
	backend.EmitMV(A0, ZERO, "Load None")

	backend.EmitLocalLabel(epilogue, "End of function")
	backend.EmitJR(RA, "Return to caller")
}

// emitLen emits the predefined `len` function. Leaf, like print.
func (gen *Generator) emitLen(funcInfo *FuncInfo) {
	backend := gen.backend
	backend.EmitGlobalLabel(funcInfo.CodeLabel)

	illegalArg := gen.GenerateLocalLabel()
	strLen := gen.GenerateLocalLabel()
	listLen := gen.GenerateLocalLabel()

	backend.EmitLW(A0, SP, backend.GetWordSize(), "Load arg")
	backend.EmitBEQ(A0, ZERO, illegalArg, "None is an illegal argument")
	backend.EmitLW(T0, A0, gen.GetTypeTagOffset(), "Get type tag of arg")

	backend.EmitLI(T1, gen.StrClass.TypeTag, "Load type tag of `str`")
	backend.EmitBEQ(T0, T1, strLen, "Go to len(str)")
	backend.EmitLI(T1, gen.ListClass.TypeTag, "Load type tag for list objects")
	backend.EmitBEQ(T0, T1, listLen, "Go to len(list)")

	backend.EmitLocalLabel(illegalArg, "Invalid argument")
	gen.emitAbortWith(errorArg, "Invalid argument")

	backend.EmitLocalLabel(strLen, "Get length of string")
	backend.EmitLW(A0, A0, gen.GetAttrOffset(gen.StrClass, "__len__"), "Load attribute: __len__")
	backend.EmitJR(RA, "Return to caller")

	backend.EmitLocalLabel(listLen, "Get length of list")
	backend.EmitLW(A0, A0, gen.GetAttrOffset(gen.ListClass, "__len__"), "Load attribute: __len__")
	backend.EmitJR(RA, "Return to caller")
}

// emitObjectInit emits `object.__init__`, which just returns None.
func (gen *Generator) emitObjectInit(funcInfo *FuncInfo) {
	backend := gen.backend
	backend.EmitGlobalLabel(funcInfo.CodeLabel)
	backend.EmitMV(A0, ZERO, "`None` constant")
	backend.EmitJR(RA, "Return")
}

// emitInput emits the predefined `input` function, which is not
// supported by this runtime and aborts.
func (gen *Generator) emitInput(funcInfo *FuncInfo) {
	gen.backend.EmitGlobalLabel(funcInfo.CodeLabel)
	gen.emitAbortWith(errorNYI, "Unsupported operation")
}

// emitBuiltinAlloc emits `alloc`: allocate an object of exactly the
// prototype's size. The prototype address arrives in A0.
func (gen *Generator) emitBuiltinAlloc() {
	backend := gen.backend
	backend.EmitGlobalLabel(objectAllocLabel)
	backend.EmitLW(A1, A0, gen.GetObjectSizeOffset(), "Get size of object in words")
	backend.EmitJ(objectAllocResizeLabel, "Allocate object with exact size")
}

// emitBuiltinAllocResize emits `alloc2`: allocate A1 words on the heap
// and initialize them by copying the prototype at A0, patching the new
// object's size word to the requested size.
func (gen *Generator) emitBuiltinAllocResize() {
	backend := gen.backend
	backend.EmitGlobalLabel(objectAllocResizeLabel)

	outOfMemory := gen.GenerateLocalLabel()
	backend.EmitLI(A2, backend.GetWordSize(), "Word size in bytes")
	backend.EmitMUL(A2, A1, A2, "Calculate number of bytes to allocate")
	backend.EmitADD(A2, GP, A2, "Estimate where GP will move")
	backend.EmitBGEU(A2, S11, outOfMemory, "Go to OOM handler if too large")

	// T0 words left to copy, T1 copy temp, T2 src cursor, T3 dest cursor.
	backend.EmitLW(T0, A0, gen.GetObjectSizeOffset(), "Get size of object in words")
	backend.EmitMV(T2, A0, "Initialize src ptr")
	backend.EmitMV(T3, GP, "Initialize dest ptr")

	loopHeader := gen.GenerateLocalLabel()
	backend.EmitLocalLabel(loopHeader, "Copy-loop header")
	backend.EmitLW(T1, T2, 0, "Load next word from src")
	backend.EmitSW(T1, T3, 0, "Store next word to dest")
	backend.EmitADDI(T2, T2, backend.GetWordSize(), "Increment src")
	backend.EmitADDI(T3, T3, backend.GetWordSize(), "Increment dest")
	backend.EmitADDI(T0, T0, -1, "Decrement counter")
	backend.EmitBNE(T0, ZERO, loopHeader, "Loop if more words left to copy")

	backend.EmitMV(A0, GP, "Save new object's address to return")
	backend.EmitSW(A1, A0, gen.GetObjectSizeOffset(),
		"Set size of new object in words (same as requested size)")
	backend.EmitMV(GP, A2, "Set next free slot in the heap")
	backend.EmitJR(RA, "Return to caller")

	backend.EmitLocalLabel(outOfMemory, "OOM handler")
	gen.emitAbortWith(errorOOM, "Out of memory")
}

// emitBuiltinAbort emits `abort`: print the message in A1, a newline,
// and exit with the code in A0. Never returns.
func (gen *Generator) emitBuiltinAbort() {
	backend := gen.backend
	backend.EmitGlobalLabel(abortLabel)

	backend.EmitMV(T0, A0, "Save exit code in temp")
	backend.EmitLI(A0, 4, "Code for ecall: print_string")
	backend.EmitEcall("Print error message in a1")
	backend.EmitLI(A1, int('\n'), "Load newline character")
	backend.EmitLI(A0, 11, "Code for ecall: print_char")
	backend.EmitEcall("Print newline")
	backend.EmitMV(A1, T0, "Move exit code to a1")
	backend.EmitLI(A0, 17, "Code for ecall: exit2")
	backend.EmitEcall("Exit with code")

	// The simulator may ignore the exit ecall; never fall through.
	loop := gen.GenerateLocalLabel()
	backend.EmitLocalLabel(loop, "Infinite loop")
	backend.EmitJ(loop, "Prevent fallthrough")
}

// emitBuiltinHeapInit emits `heap.init`: sbrk A0 bytes and return the
// start of the region in A0.
func (gen *Generator) emitBuiltinHeapInit() {
	backend := gen.backend
	backend.EmitGlobalLabel(heapInitLabel)
	backend.EmitMV(A1, A0, "Move requested size to A1")
	backend.EmitLI(A0, 9, "Code for ecall: sbrk")
	backend.EmitEcall("Request A1 bytes")
	backend.EmitJR(RA, "Return to caller")
}
