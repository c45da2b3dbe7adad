package cpu

const (
	GP_INIT = uint32(0x10008000) // Initial global pointer ($gp).
	SP_INIT = uint32(0x7ffffffc) // Initial stack pointer ($sp).
)

// Registers is the general purpose register file and program counter.
type Registers struct {
	Reg [REG_COUNT]int32
	Pc  uint32
}

// Reset clears all registers, then sets $gp, $sp and pc to their power-on
// values.
func (rf *Registers) Reset() {
	clear(rf.Reg[:])
	rf.Reg[REG_GP] = int32(GP_INIT)
	rf.Reg[REG_SP] = int32(SP_INIT)
	rf.Pc = 0
}

// Get reads a register. $zero and unused slots read as 0.
func (rf *Registers) Get(reg CodeReg) int32 {
	if reg <= REG_ZERO || reg >= REG_COUNT {
		return 0
	}
	return rf.Reg[reg]
}

// Set writes a register. Writes to $zero or unused slots are discarded.
func (rf *Registers) Set(reg CodeReg, value int32) {
	if reg <= REG_ZERO || reg >= REG_COUNT {
		return
	}
	rf.Reg[reg] = value
}

// Snapshot copies the register bank with $zero forced to 0.
func (rf *Registers) Snapshot() (regs [REG_COUNT]int32) {
	regs = rf.Reg
	regs[REG_ZERO] = 0
	return
}
