package cpu

import (
	"fmt"
)

// Control is the single-cycle control signal vector.
type Control struct {
	RegDst   bool `json:"reg_dst"`    // Write back to rd rather than rt.
	Jump     bool `json:"jump"`       // Unconditional jump.
	Branch   bool `json:"branch"`     // Conditional branch.
	MemRead  bool `json:"mem_read"`   // Read data memory.
	MemToReg bool `json:"mem_to_reg"` // Write back the loaded word.
	AluOp    int  `json:"alu_op"`     // 2-bit ALU operation class.
	MemWrite bool `json:"mem_write"`  // Write data memory.
	AluSrc   bool `json:"alu_src"`    // Second ALU operand is the immediate.
	RegWrite bool `json:"reg_write"`  // Write back to a register.
}

// controlTable holds the signals of every family. Families not listed
// (FAMILY_INVALID) get the zero value.
var controlTable = map[CodeFamily]Control{
	FAMILY_R:     {RegDst: true, AluOp: 2, RegWrite: true},
	FAMILY_SHIFT: {AluOp: 2, AluSrc: true, RegWrite: true},
	FAMILY_HALT:  {AluOp: 2, AluSrc: true, RegWrite: true},
	FAMILY_I:     {AluSrc: true, RegWrite: true},
	FAMILY_LOAD:  {MemRead: true, MemToReg: true, AluSrc: true, RegWrite: true},
	FAMILY_STORE: {MemWrite: true, AluSrc: true},
	FAMILY_BEQ:   {Branch: true, AluOp: 1},
	FAMILY_BNE:   {Branch: true, AluOp: 1},
	FAMILY_JUMP:  {Jump: true},
}

// ControlFor returns the control signals for an opcode family.
func ControlFor(family CodeFamily) Control {
	return controlTable[family]
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String renders the signals in datapath order, ALU op as two bits.
func (ctl Control) String() string {
	return fmt.Sprintf("%d %d %d %d %d %02b %d %d %d",
		bit(ctl.RegDst), bit(ctl.Jump), bit(ctl.Branch),
		bit(ctl.MemRead), bit(ctl.MemToReg), ctl.AluOp&0b11,
		bit(ctl.MemWrite), bit(ctl.AluSrc), bit(ctl.RegWrite))
}
