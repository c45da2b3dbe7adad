package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	regT0 = REG_T0
	regT1 = REG_T0 + 1
	regT2 = REG_T0 + 2
)

func TestInstructionImmediate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		ins       Instruction
		immediate int32
	}){
		{MakeI(OP_ANDI, regT0, regT1, 0xffff), 0x0000ffff},
		{MakeI(OP_ORI, regT0, regT1, 0x8000), 0x00008000},
		{MakeI(OP_ANDI, regT0, regT1, -1), 0x0000ffff},
		{MakeI(OP_ADDI, regT0, regT1, 0xffff), -1},
		{MakeI(OP_ADDIU, regT0, regT1, 0x8000), -0x8000},
		{MakeI(OP_SLTI, regT0, regT1, -5), -5},
		{MakeI(OP_SLTIU, regT0, regT1, 0x7fff), 0x7fff},
		{MakeMem(OP_LW, regT0, -4, REG_GP), -4},
		{MakeShift(OP_SLL, regT0, regT1, 31), 31},
	}

	for _, entry := range table {
		assert.Equal(entry.immediate, entry.ins.Immediate(), entry.ins.String())
	}
}

func TestInstructionHalt(t *testing.T) {
	assert := assert.New(t)

	halt := MakeHalt()
	assert.True(halt.IsHalt())
	assert.Equal(FAMILY_HALT, halt.Family())
	assert.Equal("sll $zero, $zero, 0", halt.String())

	assert.False(MakeShift(OP_SLL, REG_ZERO, REG_ZERO, 1).IsHalt())
	assert.False(MakeShift(OP_SLL, regT0, REG_ZERO, 0).IsHalt())
	assert.False(MakeShift(OP_SRL, REG_ZERO, REG_ZERO, 0).IsHalt())
	assert.Equal(FAMILY_SHIFT, MakeShift(OP_SLL, regT0, regT1, 2).Family())
}

func TestInstructionSlots(t *testing.T) {
	assert := assert.New(t)

	none := REG_NONE

	table := [](struct {
		ins      Instruction
		text     string
		dest     CodeReg
		operands [3]CodeReg
		monitors [3]CodeReg
	}){
		{MakeR(OP_ADD, regT2, regT0, regT1), "add $t2, $t0, $t1",
			regT2, [3]CodeReg{regT0, regT1, regT2}, [3]CodeReg{regT2, regT0, regT1}},
		{MakeShift(OP_SRL, regT2, regT0, 3), "srl $t2, $t0, 3",
			regT2, [3]CodeReg{regT0, none, regT2}, [3]CodeReg{regT2, regT0, none}},
		{MakeHalt(), "sll $zero, $zero, 0",
			none, [3]CodeReg{REG_ZERO, none, REG_ZERO}, [3]CodeReg{REG_ZERO, REG_ZERO, none}},
		{MakeI(OP_ADDI, regT0, REG_ZERO, 5), "addi $t0, $zero, 5",
			regT0, [3]CodeReg{REG_ZERO, none, regT0}, [3]CodeReg{regT0, REG_ZERO, none}},
		{MakeMem(OP_LW, regT1, 4, REG_GP), "lw $t1, 4($gp)",
			regT1, [3]CodeReg{REG_GP, none, regT1}, [3]CodeReg{regT1, REG_GP, none}},
		{MakeMem(OP_SW, regT1, -8, REG_SP), "sw $t1, -8($sp)",
			none, [3]CodeReg{REG_SP, none, regT1}, [3]CodeReg{regT1, REG_SP, none}},
		{MakeBranch(OP_BEQ, regT0, regT1, "loop", 2), "beq $t0, $t1, loop",
			none, [3]CodeReg{regT0, regT1, none}, [3]CodeReg{regT1, regT0, none}},
		{MakeJump("end", 7), "j end",
			none, [3]CodeReg{none, none, none}, [3]CodeReg{none, none, none}},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.ins.String())
		assert.Equal(entry.dest, entry.ins.Dest(), entry.text)
		assert.Equal(entry.operands, entry.ins.Operands(), entry.text)
		assert.Equal(entry.monitors, entry.ins.Monitors(), entry.text)
	}
}
