package internal

import "fmt"

// StackMachineEmitter is the concrete lowering strategy for user code.
// Every expression leaves its value in A0; intermediate values live on
// the stack. All values are object pointers: int results are boxed
// through the allocator, bool results are the two interned bool
// constants, None is the null pointer. That keeps the representation
// uniform with what the predefined functions expect.
//
// Calling convention: the caller pushes a static link (for nested
// callees only), then the arguments in source order, jumps, and pops
// what it pushed after the call returns. The callee saves RA and FP and
// points FP at the entry SP, so the i-th of N arguments lives at
// FP + (N-i)*wordSize and local j at FP - (3+j)*wordSize.

// Labels of the custom routines emitted after the runtime.
const (
	strcatLabel    Label = "strcat"
	streqlLabel    Label = "streql"
	errorDivLabel  Label = "error.Div"
	errorNoneLabel Label = "error.None"
)

type StackMachineEmitter struct {
	gen     *Generator
	backend *RiscVBackend

	// Emission context; a nil currentFunc means top level.
	currentFunc *FuncInfo
	epilogue    Label
}

func NewStackMachineEmitter(gen *Generator) *StackMachineEmitter {
	return &StackMachineEmitter{gen: gen, backend: gen.Backend()}
}

func (e *StackMachineEmitter) EmitTopLevel(statements []Stmt) {
	e.currentFunc = nil
	for _, stmt := range statements {
		e.emitStmt(stmt)
	}
}

func (e *StackMachineEmitter) EmitUserFunction(funcInfo *FuncInfo) {
	backend := e.backend
	backend.EmitGlobalLabel(funcInfo.CodeLabel)

	prevFunc, prevEpilogue := e.currentFunc, e.epilogue
	e.currentFunc = funcInfo
	e.epilogue = e.gen.GenerateLocalLabel()

	backend.EmitADDI(SP, SP, -2*wordSize, "Reserve space for caller's ra and fp")
	backend.EmitSW(RA, SP, wordSize, "Save caller's ra")
	backend.EmitSW(FP, SP, 0, "Save caller's fp")
	backend.EmitADDI(FP, SP, 2*wordSize, "New fp is at the entry sp")
	backend.EmitADDI(SP, SP, -wordSize, "Point sp at the first free slot")

	for _, local := range funcInfo.Locals {
		if local.InitialValue != "" {
			backend.EmitLA(A0, local.InitialValue,
				fmt.Sprintf("Initial value of local: %s", local.VarName))
		} else {
			backend.EmitMV(A0, ZERO,
				fmt.Sprintf("Initial value of local: %s", local.VarName))
		}
		e.emitPush(A0, fmt.Sprintf("Push local: %s", local.VarName))
	}

	for _, stmt := range funcInfo.Statements {
		e.emitStmt(stmt)
	}
	backend.EmitMV(A0, ZERO, "Implicit return None")

	backend.EmitLocalLabel(e.epilogue, "Function epilogue")
	backend.EmitLW(RA, FP, -wordSize, "Restore caller's ra")
	backend.EmitMV(T0, FP, "Entry sp in temp")
	backend.EmitLW(FP, FP, -2*wordSize, "Restore caller's fp")
	backend.EmitMV(SP, T0, "Pop frame")
	backend.EmitJR(RA, "Return to caller")

	e.currentFunc, e.epilogue = prevFunc, prevEpilogue
}

// EmitCustomCode emits the string routines and the shared error
// handlers that emitted statements branch to.
func (e *StackMachineEmitter) EmitCustomCode() {
	e.emitStrcat()
	e.emitStreql()
	e.emitErrorHandler(errorDivLabel, errorDivZero, "Division by zero")
	e.emitErrorHandler(errorNoneLabel, errorNone, "Operation on None")
}

/* ------------------------------ statements ------------------------------ */

func (e *StackMachineEmitter) emitStmt(stmt Stmt) {
	backend := e.backend
	switch s := stmt.(type) {
	case *ExprStmt:
		e.emitExpr(s.Expr)
	case *AssignStmt:
		e.emitExpr(s.Value)
		e.emitPush(A0, "Push assigned value")
		for _, target := range s.Targets {
			backend.EmitLW(A0, SP, wordSize, "Reload assigned value")
			e.emitStore(target)
		}
		e.emitDiscard(1, "Pop assigned value")
	case *IfStmt:
		elseBody := e.gen.GenerateLocalLabel()
		done := e.gen.GenerateLocalLabel()
		e.emitExpr(s.Condition)
		backend.EmitLW(T0, A0, e.boolValueOffset(), "Load attribute __bool__")
		backend.EmitBEQZ(T0, elseBody, "Branch on false")
		for _, inner := range s.ThenBody {
			e.emitStmt(inner)
		}
		backend.EmitJ(done, "Skip else body")
		backend.EmitLocalLabel(elseBody, "Else body")
		for _, inner := range s.ElseBody {
			e.emitStmt(inner)
		}
		backend.EmitLocalLabel(done, "End of if")
	case *WhileStmt:
		header := e.gen.GenerateLocalLabel()
		exit := e.gen.GenerateLocalLabel()
		backend.EmitLocalLabel(header, "While loop header")
		e.emitExpr(s.Condition)
		backend.EmitLW(T0, A0, e.boolValueOffset(), "Load attribute __bool__")
		backend.EmitBEQZ(T0, exit, "Exit loop on false")
		for _, inner := range s.Body {
			e.emitStmt(inner)
		}
		backend.EmitJ(header, "Loop back to condition")
		backend.EmitLocalLabel(exit, "End of while")
	case *ReturnStmt:
		if e.currentFunc == nil {
			panic("return outside of a function")
		}
		if s.Value != nil {
			e.emitExpr(s.Value)
		} else {
			backend.EmitMV(A0, ZERO, "Return None")
		}
		backend.EmitJ(e.epilogue, "Go to epilogue")
	default:
		panic(fmt.Sprintf("unknown statement type: %T", stmt))
	}
}

// emitStore stores the value in A0 into an assignment target.
func (e *StackMachineEmitter) emitStore(target Expr) {
	backend := e.backend
	switch t := target.(type) {
	case *Identifier:
		switch v := e.scope().Get(t.Name).(type) {
		case *GlobalVarInfo:
			backend.EmitSWLabel(A0, v.Label, T0, fmt.Sprintf("Assign global: %s", t.Name))
		case *StackVarInfo:
			if e.currentFunc != nil && v.FuncInfo == e.currentFunc {
				backend.EmitSW(A0, FP, e.varOffset(e.currentFunc, v.VarName),
					fmt.Sprintf("Assign var: %s", t.Name))
			} else {
				e.emitFrameAddr(T0, v.FuncInfo)
				backend.EmitSW(A0, T0, e.varOffset(v.FuncInfo, v.VarName),
					fmt.Sprintf("Assign nonlocal var: %s", t.Name))
			}
		default:
			panic(fmt.Sprintf("cannot assign to %s", t.Name))
		}
	case *MemberExpr:
		e.emitPush(A0, "Save assigned value")
		e.emitExpr(t.Object)
		backend.EmitBEQZ(A0, errorNoneLabel, "Ensure not None")
		e.emitPop(T1, "Restore assigned value")
		classInfo := e.classOf(t.Object.Type())
		backend.EmitSW(T1, A0, e.gen.GetAttrOffset(classInfo, t.Member.Name),
			fmt.Sprintf("Set attribute: %s.%s", classInfo.ClassName, t.Member.Name))
	default:
		panic(fmt.Sprintf("unknown assignment target: %T", target))
	}
}

/* ------------------------------ expressions ------------------------------ */

func (e *StackMachineEmitter) emitExpr(expr Expr) {
	backend := e.backend
	switch ex := expr.(type) {
	case *IntegerLiteral:
		backend.EmitLA(A0, e.gen.Constants.GetIntConstant(ex.Value),
			fmt.Sprintf("Load integer literal: %d", ex.Value))
	case *StringLiteral:
		backend.EmitLA(A0, e.gen.Constants.GetStrConstant(ex.Value), "Load string literal")
	case *BooleanLiteral:
		if ex.Value {
			backend.EmitLA(A0, e.gen.Constants.TrueConstant, "Load literal: True")
		} else {
			backend.EmitLA(A0, e.gen.Constants.FalseConstant, "Load literal: False")
		}
	case *NoneLiteral:
		backend.EmitMV(A0, ZERO, "Load literal: None")
	case *Identifier:
		e.emitLoadIdentifier(ex)
	case *BinaryExpr:
		e.emitBinaryExpr(ex)
	case *UnaryExpr:
		e.emitUnaryExpr(ex)
	case *CallExpr:
		e.emitCallExpr(ex)
	case *MethodCallExpr:
		e.emitMethodCall(ex)
	case *MemberExpr:
		e.emitExpr(ex.Object)
		backend.EmitBEQZ(A0, errorNoneLabel, "Ensure not None")
		classInfo := e.classOf(ex.Object.Type())
		backend.EmitLW(A0, A0, e.gen.GetAttrOffset(classInfo, ex.Member.Name),
			fmt.Sprintf("Get attribute: %s.%s", classInfo.ClassName, ex.Member.Name))
	default:
		panic(fmt.Sprintf("unknown expression type: %T", expr))
	}
}

func (e *StackMachineEmitter) emitLoadIdentifier(ident *Identifier) {
	backend := e.backend
	switch v := e.scope().Get(ident.Name).(type) {
	case *GlobalVarInfo:
		backend.EmitLWLabel(A0, v.Label, fmt.Sprintf("Load global: %s", ident.Name))
	case *StackVarInfo:
		if e.currentFunc != nil && v.FuncInfo == e.currentFunc {
			backend.EmitLW(A0, FP, e.varOffset(e.currentFunc, v.VarName),
				fmt.Sprintf("Load var: %s", ident.Name))
		} else {
			e.emitFrameAddr(T0, v.FuncInfo)
			backend.EmitLW(A0, T0, e.varOffset(v.FuncInfo, v.VarName),
				fmt.Sprintf("Load nonlocal var: %s", ident.Name))
		}
	default:
		panic(fmt.Sprintf("%s does not name a value", ident.Name))
	}
}

func (e *StackMachineEmitter) emitBinaryExpr(ex *BinaryExpr) {
	backend := e.backend

	// and/or evaluate the right operand only when needed; since both
	// operands are bool objects the left one doubles as the result.
	if ex.Operator == "and" || ex.Operator == "or" {
		done := e.gen.GenerateLocalLabel()
		e.emitExpr(ex.Left)
		backend.EmitLW(T0, A0, e.boolValueOffset(), "Load attribute __bool__")
		if ex.Operator == "and" {
			backend.EmitBEQZ(T0, done, "Short-circuit and")
		} else {
			backend.EmitBNEZ(T0, done, "Short-circuit or")
		}
		e.emitExpr(ex.Right)
		backend.EmitLocalLabel(done, "End of and/or")
		return
	}

	if ex.Operator == "is" {
		e.emitExpr(ex.Left)
		e.emitPush(A0, "Push left operand")
		e.emitExpr(ex.Right)
		e.emitPop(T0, "Pop left operand")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQ(T0, A0, onTrue, "Operands are identical")
		})
		return
	}

	if ex.Left.Type() == "str" {
		e.emitStrBinaryExpr(ex)
		return
	}

	e.emitExpr(ex.Left)
	e.emitPush(A0, "Push left operand")
	e.emitExpr(ex.Right)
	e.emitPop(T0, "Pop left operand")

	valueOffset := e.intValueOffset()
	if ex.Left.Type() == "bool" {
		valueOffset = e.boolValueOffset()
	}
	backend.EmitLW(T0, T0, valueOffset, "Unbox left operand")
	backend.EmitLW(T1, A0, valueOffset, "Unbox right operand")

	switch ex.Operator {
	case "+":
		backend.EmitADD(T2, T0, T1, "Add")
		e.emitBoxInt(T2)
	case "-":
		backend.EmitSUB(T2, T0, T1, "Subtract")
		e.emitBoxInt(T2)
	case "*":
		backend.EmitMUL(T2, T0, T1, "Multiply")
		e.emitBoxInt(T2)
	case "//":
		adjusted := e.gen.GenerateLocalLabel()
		backend.EmitBEQZ(T1, errorDivLabel, "Abort on division by zero")
		backend.EmitDIV(T2, T0, T1, "Divide")
		backend.EmitREM(T3, T0, T1, "Remainder")
		backend.EmitBEQZ(T3, adjusted, "No adjustment if division is exact")
		backend.EmitXOR(T3, T0, T1, "Compare operand signs")
		backend.EmitBGEZ(T3, adjusted, "No adjustment if signs agree")
		backend.EmitADDI(T2, T2, -1, "Adjust quotient towards -inf")
		backend.EmitLocalLabel(adjusted, "Floor division done")
		e.emitBoxInt(T2)
	case "%":
		adjusted := e.gen.GenerateLocalLabel()
		backend.EmitBEQZ(T1, errorDivLabel, "Abort on modulus by zero")
		backend.EmitREM(T2, T0, T1, "Remainder")
		backend.EmitBEQZ(T2, adjusted, "No adjustment if division is exact")
		backend.EmitXOR(T3, T0, T1, "Compare operand signs")
		backend.EmitBGEZ(T3, adjusted, "No adjustment if signs agree")
		backend.EmitADD(T2, T2, T1, "Adjust remainder to divisor's sign")
		backend.EmitLocalLabel(adjusted, "Floor modulus done")
		e.emitBoxInt(T2)
	case "==":
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQ(T0, T1, onTrue, "Operands are equal")
		})
	case "!=":
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBNE(T0, T1, onTrue, "Operands are not equal")
		})
	case "<":
		backend.EmitSLT(T2, T0, T1, "Compare: less than")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBNEZ(T2, onTrue, "Left is smaller")
		})
	case ">":
		backend.EmitSLT(T2, T1, T0, "Compare: greater than")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBNEZ(T2, onTrue, "Left is greater")
		})
	case "<=":
		backend.EmitSLT(T2, T1, T0, "Compare: greater than")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQZ(T2, onTrue, "Left is not greater")
		})
	case ">=":
		backend.EmitSLT(T2, T0, T1, "Compare: less than")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQZ(T2, onTrue, "Left is not smaller")
		})
	default:
		panic(fmt.Sprintf("unknown binary operator: %s", ex.Operator))
	}
}

// emitStrBinaryExpr lowers +, == and != on strings through the custom
// strcat/streql routines.
func (e *StackMachineEmitter) emitStrBinaryExpr(ex *BinaryExpr) {
	backend := e.backend
	e.emitExpr(ex.Left)
	e.emitPush(A0, "Push argument 0")
	e.emitExpr(ex.Right)
	e.emitPush(A0, "Push argument 1")
	switch ex.Operator {
	case "+":
		backend.EmitJAL(strcatLabel, "Concatenate strings")
	case "==":
		backend.EmitJAL(streqlLabel, "Compare strings")
	case "!=":
		backend.EmitJAL(streqlLabel, "Compare strings")
	default:
		panic(fmt.Sprintf("unknown string operator: %s", ex.Operator))
	}
	e.emitDiscard(2, "Pop arguments")
	if ex.Operator == "!=" {
		backend.EmitLW(T0, A0, e.boolValueOffset(), "Load attribute __bool__")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQZ(T0, onTrue, "Strings are not equal")
		})
	}
}

func (e *StackMachineEmitter) emitUnaryExpr(ex *UnaryExpr) {
	backend := e.backend
	e.emitExpr(ex.Operand)
	switch ex.Operator {
	case "-":
		backend.EmitLW(T0, A0, e.intValueOffset(), "Unbox operand")
		backend.EmitSUB(T2, ZERO, T0, "Negate")
		e.emitBoxInt(T2)
	case "not":
		backend.EmitLW(T0, A0, e.boolValueOffset(), "Load attribute __bool__")
		e.emitSelectBool(func(onTrue Label) {
			backend.EmitBEQZ(T0, onTrue, "Operand is False")
		})
	default:
		panic(fmt.Sprintf("unknown unary operator: %s", ex.Operator))
	}
}

func (e *StackMachineEmitter) emitCallExpr(ex *CallExpr) {
	switch callee := e.scope().Get(ex.Function.Name).(type) {
	case *FuncInfo:
		pushed := len(ex.Args)
		if callee.Depth > 0 {
			e.emitStaticLink(callee)
			pushed++
		}
		for i, arg := range ex.Args {
			e.emitExpr(arg)
			e.emitPush(A0, fmt.Sprintf("Push argument %d", i))
		}
		e.backend.EmitJAL(callee.CodeLabel, fmt.Sprintf("Invoke function: %s", callee.FuncName))
		e.emitDiscard(pushed, "Pop arguments")
	case *ClassInfo:
		e.emitConstructorCall(callee)
	default:
		panic(fmt.Sprintf("%s is not callable", ex.Function.Name))
	}
}

// emitConstructorCall allocates a new instance from the prototype and
// runs its __init__ through the dispatch table.
func (e *StackMachineEmitter) emitConstructorCall(classInfo *ClassInfo) {
	backend := e.backend
	backend.EmitLA(A0, classInfo.PrototypeLabel,
		fmt.Sprintf("Load prototype of: %s", classInfo.ClassName))
	backend.EmitJAL(objectAllocLabel, "Allocate new object")
	e.emitPush(A0, "Save new object")
	e.emitPush(A0, "Push argument 0 (self)")
	backend.EmitLW(A1, A0, e.gen.GetDispatchTableOffset(), "Load address of object's dispatch table")
	backend.EmitLW(A1, A1, e.gen.GetMethodOffset(classInfo, "__init__"),
		"Load address of method: __init__")
	backend.EmitJALR(A1, "Invoke method: __init__")
	e.emitDiscard(1, "Pop argument")
	e.emitPop(A0, "Restore new object")
}

func (e *StackMachineEmitter) emitMethodCall(ex *MethodCallExpr) {
	backend := e.backend
	classInfo := e.classOf(ex.Method.Object.Type())
	methodName := ex.Method.Member.Name

	e.emitExpr(ex.Method.Object)
	backend.EmitBEQZ(A0, errorNoneLabel, "Ensure not None")
	e.emitPush(A0, "Push argument 0 (self)")
	for i, arg := range ex.Args {
		e.emitExpr(arg)
		e.emitPush(A0, fmt.Sprintf("Push argument %d", i+1))
	}
	total := len(ex.Args) + 1
	backend.EmitLW(A1, SP, total*wordSize, "Reload self")
	backend.EmitLW(A1, A1, e.gen.GetDispatchTableOffset(), "Load address of object's dispatch table")
	backend.EmitLW(A1, A1, e.gen.GetMethodOffset(classInfo, methodName),
		fmt.Sprintf("Load address of method: %s", methodName))
	backend.EmitJALR(A1, fmt.Sprintf("Invoke method: %s.%s", classInfo.ClassName, methodName))
	e.emitDiscard(total, "Pop arguments")
}

/* ------------------------------- helpers ------------------------------- */

func (e *StackMachineEmitter) scope() *SymbolTable {
	if e.currentFunc != nil {
		return e.currentFunc.SymbolTable
	}
	return e.gen.GlobalSymbols
}

func (e *StackMachineEmitter) classOf(className string) *ClassInfo {
	classInfo, ok := e.gen.GlobalSymbols.Get(className).(*ClassInfo)
	if !ok {
		panic(fmt.Sprintf("%s does not name a class", className))
	}
	return classInfo
}

func (e *StackMachineEmitter) intValueOffset() int {
	return e.gen.GetAttrOffset(e.gen.IntClass, "__int__")
}

func (e *StackMachineEmitter) boolValueOffset() int {
	return e.gen.GetAttrOffset(e.gen.BoolClass, "__bool__")
}

// varOffset returns the FP-relative byte offset of a parameter or local
// in fn's activation record.
func (e *StackMachineEmitter) varOffset(fn *FuncInfo, name string) int {
	idx := fn.GetVarIndex(name)
	numParams := len(fn.Params)
	if idx < numParams {
		return (numParams - idx) * wordSize
	}
	return -(idx - numParams + 3) * wordSize
}

// emitFrameAddr walks static links from the current frame and leaves the
// frame pointer of target (a proper ancestor of the current function)
// in reg.
func (e *StackMachineEmitter) emitFrameAddr(reg Register, target *FuncInfo) {
	e.backend.EmitLW(reg, FP, (len(e.currentFunc.Params)+1)*wordSize, "Load static link")
	for g := e.currentFunc.ParentFuncInfo; g != target; g = g.ParentFuncInfo {
		e.backend.EmitLW(reg, reg, (len(g.Params)+1)*wordSize,
			fmt.Sprintf("Load static link of: %s", g.FuncName))
	}
}

// emitStaticLink pushes the frame pointer of the callee's defining
// function, which the callee finds just above its arguments.
func (e *StackMachineEmitter) emitStaticLink(callee *FuncInfo) {
	if e.currentFunc == callee.ParentFuncInfo {
		e.emitPush(FP, "Push static link (current frame)")
		return
	}
	e.emitFrameAddr(T0, callee.ParentFuncInfo)
	e.emitPush(T0, "Push static link")
}

func (e *StackMachineEmitter) emitPush(rs Register, comment string) {
	e.backend.EmitSW(rs, SP, 0, comment)
	e.backend.EmitADDI(SP, SP, -wordSize, "")
}

func (e *StackMachineEmitter) emitPop(rd Register, comment string) {
	e.backend.EmitADDI(SP, SP, wordSize, "")
	e.backend.EmitLW(rd, SP, 0, comment)
}

func (e *StackMachineEmitter) emitDiscard(words int, comment string) {
	e.backend.EmitADDI(SP, SP, words*wordSize, comment)
}

// emitBoxInt wraps the raw integer in rs into a fresh int object in A0.
// The raw value is parked on the stack across the allocator call.
func (e *StackMachineEmitter) emitBoxInt(rs Register) {
	backend := e.backend
	e.emitPush(rs, "Save raw result")
	backend.EmitLA(A0, e.gen.IntClass.PrototypeLabel, "Load prototype of: int")
	backend.EmitJAL(objectAllocLabel, "Allocate boxed int")
	e.emitPop(T0, "Restore raw result")
	backend.EmitSW(T0, A0, e.intValueOffset(), "Set attribute: __int__")
}

// emitSelectBool emits a branch (supplied by the caller) that jumps to
// the True arm, and loads the matching bool constant into A0.
func (e *StackMachineEmitter) emitSelectBool(branch func(onTrue Label)) {
	backend := e.backend
	onTrue := e.gen.GenerateLocalLabel()
	done := e.gen.GenerateLocalLabel()
	branch(onTrue)
	backend.EmitLA(A0, e.gen.Constants.FalseConstant, "Load False")
	backend.EmitJ(done, "")
	backend.EmitLocalLabel(onTrue, "")
	backend.EmitLA(A0, e.gen.Constants.TrueConstant, "Load True")
	backend.EmitLocalLabel(done, "")
}

func (e *StackMachineEmitter) emitErrorHandler(label Label, code int, message string) {
	e.backend.EmitGlobalLabel(label)
	e.gen.emitAbortWith(code, message)
}

// emitStrcat emits the `strcat` routine: a two-argument function under
// the standard calling convention that returns the concatenation of two
// strings as a fresh str object.
func (e *StackMachineEmitter) emitStrcat() {
	backend := e.backend
	gen := e.gen
	strLenOffset := gen.GetAttrOffset(gen.StrClass, "__len__")
	strDataOffset := gen.GetAttrOffset(gen.StrClass, "__str__")
	intValueOffset := e.intValueOffset()

	backend.EmitGlobalLabel(strcatLabel)
	backend.EmitADDI(SP, SP, -6*wordSize, "Reserve space for ra, fp and saved registers")
	backend.EmitSW(RA, SP, 5*wordSize, "Save caller's ra")
	backend.EmitSW(FP, SP, 4*wordSize, "Save caller's fp")
	backend.EmitSW(S1, SP, 3*wordSize, "Save s1")
	backend.EmitSW(S2, SP, 2*wordSize, "Save s2")
	backend.EmitSW(S3, SP, wordSize, "Save s3")
	backend.EmitSW(S4, SP, 0, "Save s4")
	backend.EmitADDI(FP, SP, 6*wordSize, "New fp is at the entry sp")
	backend.EmitADDI(SP, SP, -wordSize, "Point sp at the first free slot")

	backend.EmitLW(S1, FP, 2*wordSize, "Load left str")
	backend.EmitLW(S2, FP, wordSize, "Load right str")
	backend.EmitLW(T0, S1, strLenOffset, "Load left __len__")
	backend.EmitLW(T0, T0, intValueOffset, "Unbox left length")
	backend.EmitLW(T1, S2, strLenOffset, "Load right __len__")
	backend.EmitLW(T1, T1, intValueOffset, "Unbox right length")
	backend.EmitADD(S3, T0, T1, "Combined length")

	backend.EmitLA(A0, gen.IntClass.PrototypeLabel, "Load prototype of: int")
	backend.EmitJAL(objectAllocLabel, "Allocate boxed length")
	backend.EmitSW(S3, A0, intValueOffset, "Set attribute: __int__")
	backend.EmitMV(S4, A0, "Save boxed length")

	backend.EmitLI(T0, wordSize, "Word size in bytes")
	backend.EmitDIV(T0, S3, T0, "Words filled by characters")
	backend.EmitADDI(A1, T0, 5, "Object size: header, __len__, characters, terminator")
	backend.EmitLA(A0, gen.StrClass.PrototypeLabel, "Load prototype of: str")
	backend.EmitJAL(objectAllocResizeLabel, "Allocate result str")
	backend.EmitSW(S4, A0, strLenOffset, "Set attribute: __len__")

	backend.EmitADDI(T0, A0, strDataOffset, "Destination cursor")

	backend.EmitLW(T1, S1, strLenOffset, "Load left __len__")
	backend.EmitLW(T1, T1, intValueOffset, "Unbox left length")
	backend.EmitADDI(T2, S1, strDataOffset, "Left source cursor")
	copyLeft := gen.GenerateLocalLabel()
	leftDone := gen.GenerateLocalLabel()
	backend.EmitLocalLabel(copyLeft, "Copy left characters")
	backend.EmitBEQZ(T1, leftDone, "Left characters done")
	backend.EmitLBU(T3, T2, 0, "Load character")
	backend.EmitSB(T3, T0, 0, "Store character")
	backend.EmitADDI(T2, T2, 1, "Increment src")
	backend.EmitADDI(T0, T0, 1, "Increment dest")
	backend.EmitADDI(T1, T1, -1, "Decrement counter")
	backend.EmitJ(copyLeft, "Loop")
	backend.EmitLocalLabel(leftDone, "Left copy done")

	backend.EmitLW(T1, S2, strLenOffset, "Load right __len__")
	backend.EmitLW(T1, T1, intValueOffset, "Unbox right length")
	backend.EmitADDI(T2, S2, strDataOffset, "Right source cursor")
	copyRight := gen.GenerateLocalLabel()
	rightDone := gen.GenerateLocalLabel()
	backend.EmitLocalLabel(copyRight, "Copy right characters")
	backend.EmitBEQZ(T1, rightDone, "Right characters done")
	backend.EmitLBU(T3, T2, 0, "Load character")
	backend.EmitSB(T3, T0, 0, "Store character")
	backend.EmitADDI(T2, T2, 1, "Increment src")
	backend.EmitADDI(T0, T0, 1, "Increment dest")
	backend.EmitADDI(T1, T1, -1, "Decrement counter")
	backend.EmitJ(copyRight, "Loop")
	backend.EmitLocalLabel(rightDone, "Right copy done")

	backend.EmitSB(ZERO, T0, 0, "Null terminator")

	backend.EmitLW(RA, FP, -wordSize, "Restore caller's ra")
	backend.EmitLW(S1, FP, -3*wordSize, "Restore s1")
	backend.EmitLW(S2, FP, -4*wordSize, "Restore s2")
	backend.EmitLW(S3, FP, -5*wordSize, "Restore s3")
	backend.EmitLW(S4, FP, -6*wordSize, "Restore s4")
	backend.EmitMV(T0, FP, "Entry sp in temp")
	backend.EmitLW(FP, FP, -2*wordSize, "Restore caller's fp")
	backend.EmitMV(SP, T0, "Pop frame")
	backend.EmitJR(RA, "Return to caller")
}

// emitStreql emits the `streql` routine: a leaf two-argument function
// under the standard calling convention that returns True when both
// strings have equal contents.
func (e *StackMachineEmitter) emitStreql() {
	backend := e.backend
	gen := e.gen
	strLenOffset := gen.GetAttrOffset(gen.StrClass, "__len__")
	strDataOffset := gen.GetAttrOffset(gen.StrClass, "__str__")
	intValueOffset := e.intValueOffset()

	backend.EmitGlobalLabel(streqlLabel)
	equal := gen.GenerateLocalLabel()
	notEqual := gen.GenerateLocalLabel()
	loop := gen.GenerateLocalLabel()

	backend.EmitLW(T0, SP, 2*wordSize, "Load left str")
	backend.EmitLW(T1, SP, wordSize, "Load right str")
	backend.EmitLW(T2, T0, strLenOffset, "Load left __len__")
	backend.EmitLW(T2, T2, intValueOffset, "Unbox left length")
	backend.EmitLW(T3, T1, strLenOffset, "Load right __len__")
	backend.EmitLW(T3, T3, intValueOffset, "Unbox right length")
	backend.EmitBNE(T2, T3, notEqual, "Lengths differ")
	backend.EmitADDI(T0, T0, strDataOffset, "Left cursor")
	backend.EmitADDI(T1, T1, strDataOffset, "Right cursor")
	backend.EmitLocalLabel(loop, "Compare characters")
	backend.EmitBEQZ(T2, equal, "All characters equal")
	backend.EmitLBU(T4, T0, 0, "Load left character")
	backend.EmitLBU(T5, T1, 0, "Load right character")
	backend.EmitBNE(T4, T5, notEqual, "Characters differ")
	backend.EmitADDI(T0, T0, 1, "Increment left cursor")
	backend.EmitADDI(T1, T1, 1, "Increment right cursor")
	backend.EmitADDI(T2, T2, -1, "Decrement counter")
	backend.EmitJ(loop, "Loop")
	backend.EmitLocalLabel(equal, "Strings are equal")
	backend.EmitLA(A0, gen.Constants.TrueConstant, "Load True")
	backend.EmitJR(RA, "Return to caller")
	backend.EmitLocalLabel(notEqual, "Strings differ")
	backend.EmitLA(A0, gen.Constants.FalseConstant, "Load False")
	backend.EmitJR(RA, "Return to caller")
}
