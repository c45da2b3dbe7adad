package cpu

import (
	"fmt"
)

// Instruction is one decoded assembly line. It is built once by the
// assembler and never modified while executing.
type Instruction struct {
	Op     CodeOp  `json:"op"`
	Rs     CodeReg `json:"rs"`
	Rt     CodeReg `json:"rt"`
	Rd     CodeReg `json:"rd"`
	Imm    int32   `json:"imm"`
	Label  string  `json:"label,omitempty"` // Branch or jump target name.
	Target int     `json:"target"`          // Instruction index of Label, -1 if unresolved.
	Text   string  `json:"text"`            // Source text, for traces.
	LineNo int     `json:"line"`            // Source line number.
}

func makeInstruction(op CodeOp, rs, rt, rd CodeReg, imm int32) Instruction {
	ins := Instruction{
		Op:     op,
		Rs:     rs,
		Rt:     rt,
		Rd:     rd,
		Imm:    imm,
		Target: -1,
	}
	ins.Text = ins.Format()
	return ins
}

// MakeR creates a register-register instruction: op rd, rs, rt
func MakeR(op CodeOp, rd, rs, rt CodeReg) Instruction {
	return makeInstruction(op, rs, rt, rd, 0)
}

// MakeShift creates a shift instruction: op rd, rt, shamt
func MakeShift(op CodeOp, rd, rt CodeReg, shamt int32) Instruction {
	return makeInstruction(op, REG_NONE, rt, rd, shamt)
}

// MakeI creates an immediate instruction: op rt, rs, imm
func MakeI(op CodeOp, rt, rs CodeReg, imm int32) Instruction {
	return makeInstruction(op, rs, rt, REG_NONE, imm)
}

// MakeMem creates a load or store: op rt, offset(base)
func MakeMem(op CodeOp, rt CodeReg, offset int32, base CodeReg) Instruction {
	return makeInstruction(op, base, rt, REG_NONE, offset)
}

// MakeBranch creates a conditional branch: op rs, rt, label
func MakeBranch(op CodeOp, rs, rt CodeReg, label string, target int) Instruction {
	ins := makeInstruction(op, rs, rt, REG_NONE, 0)
	ins.Label = label
	ins.Target = target
	ins.Text = ins.Format()
	return ins
}

// MakeJump creates an unconditional jump: j label
func MakeJump(label string, target int) Instruction {
	ins := makeInstruction(OP_J, REG_NONE, REG_NONE, REG_NONE, 0)
	ins.Label = label
	ins.Target = target
	ins.Text = ins.Format()
	return ins
}

// MakeHalt creates the halt sentinel: sll $zero, $zero, 0
func MakeHalt() Instruction {
	return MakeShift(OP_SLL, REG_ZERO, REG_ZERO, 0)
}

// IsHalt is true for 'sll $zero, $zero, 0', which stops the machine.
func (ins Instruction) IsHalt() bool {
	return ins.Op == OP_SLL &&
		ins.Rd == REG_ZERO &&
		ins.Rt == REG_ZERO &&
		(ins.Rs == REG_ZERO || ins.Rs == REG_NONE) &&
		ins.Imm == 0
}

// Family returns the opcode family, with the halt sentinel split out of
// the shift family.
func (ins Instruction) Family() CodeFamily {
	if ins.IsHalt() {
		return FAMILY_HALT
	}
	return ins.Op.Family()
}

// Immediate returns the immediate as used by the ALU for this cycle.
// I-type bitwise immediates are zero extended from 16 bits, other I-type
// immediates are sign extended. All other families use the field as is.
func (ins Instruction) Immediate() int32 {
	if ins.Op.Family() != FAMILY_I {
		return ins.Imm
	}

	if ins.Op.ZeroExtend() {
		return int32(uint32(uint16(ins.Imm)))
	}

	return int32(int16(uint16(ins.Imm)))
}

// Dest returns the register written back by the instruction, if any.
func (ins Instruction) Dest() CodeReg {
	switch ins.Family() {
	case FAMILY_R, FAMILY_SHIFT:
		return ins.Rd
	case FAMILY_I, FAMILY_LOAD:
		return ins.Rt
	}
	return REG_NONE
}

// Operands returns the three decoded registers shown in a trace.
func (ins Instruction) Operands() (regs [3]CodeReg) {
	regs = [3]CodeReg{REG_NONE, REG_NONE, REG_NONE}

	switch ins.Family() {
	case FAMILY_BEQ, FAMILY_BNE:
		regs[0], regs[1] = ins.Rs, ins.Rt
	case FAMILY_R:
		regs[0], regs[1], regs[2] = ins.Rs, ins.Rt, ins.Rd
	case FAMILY_SHIFT, FAMILY_HALT:
		regs[0], regs[2] = ins.Rt, ins.Rd
	case FAMILY_I, FAMILY_LOAD, FAMILY_STORE:
		regs[0], regs[2] = ins.Rs, ins.Rt
	}

	return
}

// Monitors returns the registers whose post-cycle values are shown in a
// trace.
func (ins Instruction) Monitors() (regs [3]CodeReg) {
	regs = [3]CodeReg{REG_NONE, REG_NONE, REG_NONE}

	switch ins.Family() {
	case FAMILY_R:
		regs[0], regs[1], regs[2] = ins.Rd, ins.Rs, ins.Rt
	case FAMILY_SHIFT, FAMILY_HALT:
		regs[0], regs[1] = ins.Rd, ins.Rt
	case FAMILY_I, FAMILY_LOAD, FAMILY_STORE, FAMILY_BEQ, FAMILY_BNE:
		regs[0], regs[1] = ins.Rt, ins.Rs
	}

	return
}

// Format renders the canonical assembly text of the instruction.
func (ins Instruction) Format() (text string) {
	switch ins.Op.Family() {
	case FAMILY_R:
		text = fmt.Sprintf("%v %v, %v, %v", ins.Op, ins.Rd, ins.Rs, ins.Rt)
	case FAMILY_SHIFT:
		text = fmt.Sprintf("%v %v, %v, %d", ins.Op, ins.Rd, ins.Rt, ins.Imm)
	case FAMILY_I:
		text = fmt.Sprintf("%v %v, %v, %d", ins.Op, ins.Rt, ins.Rs, ins.Imm)
	case FAMILY_LOAD, FAMILY_STORE:
		text = fmt.Sprintf("%v %v, %d(%v)", ins.Op, ins.Rt, ins.Imm, ins.Rs)
	case FAMILY_BEQ, FAMILY_BNE:
		text = fmt.Sprintf("%v %v, %v, %v", ins.Op, ins.Rs, ins.Rt, ins.Label)
	case FAMILY_JUMP:
		text = fmt.Sprintf("%v %v", ins.Op, ins.Label)
	default:
		text = ins.Op.String()
	}

	return
}

// String returns the source text when known.
func (ins Instruction) String() string {
	if len(ins.Text) != 0 {
		return ins.Text
	}
	return ins.Format()
}
