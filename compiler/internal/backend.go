package internal

import (
	"fmt"
	"io"
	"strings"
)

// RiscVBackend formats RISC-V 32-bit assembly text to an output stream.
// It performs no validation and no optimization; callers are responsible
// for emitting well-formed instruction sequences. Every emitted line is
// exactly what ends up in the .s file, so emission order is output order.

const wordSize = 4

// A Label is a symbolic address, compared by name. The empty label stands
// for "no label" and is emitted as a zero word in data contexts.
type Label string

type Register string

const (
	A0   Register = "a0"
	A1   Register = "a1"
	A2   Register = "a2"
	A3   Register = "a3"
	A4   Register = "a4"
	A5   Register = "a5"
	A6   Register = "a6"
	A7   Register = "a7"
	T0   Register = "t0"
	T1   Register = "t1"
	T2   Register = "t2"
	T3   Register = "t3"
	T4   Register = "t4"
	T5   Register = "t5"
	T6   Register = "t6"
	S1   Register = "s1"
	S2   Register = "s2"
	S3   Register = "s3"
	S4   Register = "s4"
	S5   Register = "s5"
	S6   Register = "s6"
	S7   Register = "s7"
	S8   Register = "s8"
	S9   Register = "s9"
	S10  Register = "s10"
	S11  Register = "s11"
	FP   Register = "fp"
	SP   Register = "sp"
	GP   Register = "gp"
	RA   Register = "ra"
	ZERO Register = "zero"
)

type RiscVBackend struct {
	out io.Writer
}

func NewRiscVBackend(out io.Writer) *RiscVBackend {
	return &RiscVBackend{out: out}
}

func (backend *RiscVBackend) GetWordSize() int {
	return wordSize
}

func (backend *RiscVBackend) emit(line string) {
	fmt.Fprintln(backend.out, line)
}

// EmitInsn writes an instruction or directive, indented two spaces; when
// there is a comment, the instruction is padded to 40 characters and the
// comment follows after " # ".
func (backend *RiscVBackend) EmitInsn(insn, comment string) {
	if comment != "" {
		backend.emit(fmt.Sprintf("  %-40s # %s", insn, comment))
	} else {
		backend.emit(fmt.Sprintf("  %s", insn))
	}
}

// EmitLocalLabel marks a label local to the current routine. Invoke only
// once per unique label.
func (backend *RiscVBackend) EmitLocalLabel(label Label, comment string) {
	backend.EmitInsn(string(label)+":", comment)
}

// EmitGlobalLabel declares and marks a globally visible label. Invoke
// only once per unique label.
func (backend *RiscVBackend) EmitGlobalLabel(label Label) {
	backend.emit(fmt.Sprintf("\n.globl %s", label))
	backend.emit(fmt.Sprintf("%s:", label))
}

func (backend *RiscVBackend) EmitWordLiteral(value int, comment string) {
	backend.EmitInsn(fmt.Sprintf(".word %d", value), comment)
}

// EmitWordAddress emits a data word holding the address of a label, or a
// zero word if the label is empty.
func (backend *RiscVBackend) EmitWordAddress(addr Label, comment string) {
	if addr == "" {
		backend.EmitWordLiteral(0, comment)
	} else {
		backend.EmitInsn(fmt.Sprintf(".word %s", addr), comment)
	}
}

// EmitString emits a null-terminated ASCII string with assembler escapes.
func (backend *RiscVBackend) EmitString(value, comment string) {
	quoted := strings.NewReplacer(
		"\\", "\\\\",
		"\n", "\\n",
		"\t", "\\t",
		"\"", "\\\"",
	).Replace(value)
	backend.EmitInsn(fmt.Sprintf(".string \"%s\"", quoted), comment)
}

func (backend *RiscVBackend) StartData() {
	backend.emit("\n.data")
}

func (backend *RiscVBackend) StartCode() {
	backend.emit("\n.text")
}

// AlignNext aligns the next instruction or data word to 2^pow bytes.
func (backend *RiscVBackend) AlignNext(pow int) {
	backend.EmitInsn(fmt.Sprintf(".align %d", pow), "")
}

func (backend *RiscVBackend) EmitEcall(comment string) {
	backend.EmitInsn("ecall", comment)
}

func (backend *RiscVBackend) EmitLA(rd Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("la %s, %s", rd, label), comment)
}

// EmitLI loads an immediate; imm must fit the `li` pseudo-instruction.
func (backend *RiscVBackend) EmitLI(rd Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("li %s, %d", rd, imm), comment)
}

// EmitLUI sets the upper 20 bits of rd; imm must be in [0, 1048575].
func (backend *RiscVBackend) EmitLUI(rd Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("lui %s, %d", rd, imm), comment)
}

func (backend *RiscVBackend) EmitMV(rd, rs Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("mv %s, %s", rd, rs), comment)
}

func (backend *RiscVBackend) EmitJR(rs Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("jr %s", rs), comment)
}

func (backend *RiscVBackend) EmitJ(label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("j %s", label), comment)
}

func (backend *RiscVBackend) EmitJAL(label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("jal %s", label), comment)
}

func (backend *RiscVBackend) EmitJALR(rs Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("jalr %s", rs), comment)
}

func (backend *RiscVBackend) EmitADDI(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("addi %s, %s, %d", rd, rs, imm), comment)
}

func (backend *RiscVBackend) EmitADD(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("add %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitSUB(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("sub %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitMUL(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("mul %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitDIV(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("div %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitREM(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("rem %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitXOR(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("xor %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitXORI(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("xori %s, %s, %d", rd, rs, imm), comment)
}

func (backend *RiscVBackend) EmitAND(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("and %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitANDI(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("andi %s, %s, %d", rd, rs, imm), comment)
}

func (backend *RiscVBackend) EmitOR(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("or %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitORI(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("ori %s, %s, %d", rd, rs, imm), comment)
}

func (backend *RiscVBackend) EmitLW(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("lw %s, %d(%s)", rd, imm, rs), comment)
}

func (backend *RiscVBackend) EmitSW(rs2, rs1 Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("sw %s, %d(%s)", rs2, imm, rs1), comment)
}

// EmitLWLabel loads a word from the address of a global label.
func (backend *RiscVBackend) EmitLWLabel(rd Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("lw %s, %s", rd, label), comment)
}

// EmitSWLabel stores a word to the address of a global label, using tmp
// to materialize the address.
func (backend *RiscVBackend) EmitSWLabel(rs Register, label Label, tmp Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("sw %s, %s, %s", rs, label, tmp), comment)
}

func (backend *RiscVBackend) EmitLB(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("lb %s, %d(%s)", rd, imm, rs), comment)
}

func (backend *RiscVBackend) EmitLBU(rd, rs Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("lbu %s, %d(%s)", rd, imm, rs), comment)
}

func (backend *RiscVBackend) EmitSB(rs2, rs1 Register, imm int, comment string) {
	backend.EmitInsn(fmt.Sprintf("sb %s, %d(%s)", rs2, imm, rs1), comment)
}

func (backend *RiscVBackend) EmitBEQ(rs1, rs2 Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("beq %s, %s, %s", rs1, rs2, label), comment)
}

func (backend *RiscVBackend) EmitBNE(rs1, rs2 Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bne %s, %s, %s", rs1, rs2, label), comment)
}

func (backend *RiscVBackend) EmitBGEU(rs1, rs2 Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bgeu %s, %s, %s", rs1, rs2, label), comment)
}

func (backend *RiscVBackend) EmitBEQZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("beqz %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitBNEZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bnez %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitBLTZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bltz %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitBGTZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bgtz %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitBLEZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("blez %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitBGEZ(rs Register, label Label, comment string) {
	backend.EmitInsn(fmt.Sprintf("bgez %s, %s", rs, label), comment)
}

func (backend *RiscVBackend) EmitSLT(rd, rs1, rs2 Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("slt %s, %s, %s", rd, rs1, rs2), comment)
}

func (backend *RiscVBackend) EmitSEQZ(rd, rs Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("seqz %s, %s", rd, rs), comment)
}

func (backend *RiscVBackend) EmitSNEZ(rd, rs Register, comment string) {
	backend.EmitInsn(fmt.Sprintf("snez %s, %s", rd, rs), comment)
}
