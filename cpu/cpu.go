// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
)

// CpuState is the run state of the CPU.
type CpuState int

//go:generate go tool stringer -linecomment -type=CpuState
const (
	STATE_RUNNING     = CpuState(0) // running
	STATE_HALTED      = CpuState(1) // halted
	STATE_EXHAUSTED   = CpuState(2) // exhausted
	STATE_LABEL_ERROR = CpuState(3) // label-error
	STATE_FAULT       = CpuState(4) // fault
)

// Terminal is true once the CPU has stopped.
func (state CpuState) Terminal() bool {
	return state != STATE_RUNNING
}

// Cpu is the single-cycle execution engine. It exclusively owns the
// register file and data memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program   *Program  // Instruction memory.
	Registers Registers // Register file and program counter.
	Memory    Memory    // Data memory.

	Cycles int      // Cycles executed since reset.
	State  CpuState // Run state.
}

// NewCpu creates a CPU, reset, for a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
	}

	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears data memory.
// - Sets registers to their power-on values.
// - Zeros the cycle counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Cycles = 0
	cpu.State = STATE_RUNNING
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %08X\n", "pc", cpu.Registers.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	for n, value := range cpu.Registers.Snapshot() {
		text += fmt.Sprintf("% 5s: %08X\n", CodeReg(n).String(), uint32(value))
	}
	return
}

// Fetch returns the instruction at the program counter. Running past the
// end of the program moves the CPU to STATE_EXHAUSTED.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	if cpu.Program == nil {
		err = ErrProgramMissing
		return
	}

	ins, ok := cpu.Program.Fetch(cpu.Registers.Pc)
	if !ok {
		if cpu.Verbose {
			log.Printf("cpu: pc 0x%x past %d instructions", cpu.Registers.Pc, cpu.Program.Len())
		}
		cpu.State = STATE_EXHAUSTED
		err = ErrPcExhausted
		return
	}

	return
}

// Tick executes a single instruction cycle, and returns its trace record.
// A record is returned for every cycle that fetched an instruction, even if
// the cycle ended the run.
func (cpu *Cpu) Tick() (rec *Record, err error) {
	if cpu.State.Terminal() {
		err = ErrStopped
		return
	}

	pc := cpu.Registers.Pc

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	cpu.Cycles++

	rec = &Record{
		Cycle:    cpu.Cycles,
		Pc:       pc,
		Text:     ins.String(),
		Op:       ins.Op,
		Family:   ins.Family(),
		Operands: ins.Operands(),
		AluClass: ins.Op.AluClass(),
	}

	err = cpu.Execute(ins, rec)

	for n, reg := range ins.Monitors() {
		rec.Monitors[n] = RegValue{Reg: reg, Value: cpu.Registers.Get(reg)}
	}
	rec.Registers = cpu.Registers.Snapshot()
	rec.NextPc = cpu.Registers.Pc

	return
}

// Execute executes a single decoded instruction, filling in the record.
// Control flow is resolved before any ALU, memory or register effect, so a
// failed instruction leaves the machine state untouched.
func (cpu *Cpu) Execute(ins Instruction, rec *Record) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins), err)
		}
	}()

	if rec == nil {
		rec = &Record{}
	}

	regs := &cpu.Registers
	family := ins.Family()
	ctl := ControlFor(family)
	rec.Control = ctl

	if cpu.Verbose {
		log.Printf("%08x: %v [%v] %v", regs.Pc, ins, family, ctl)
	}

	if family == FAMILY_INVALID {
		cpu.State = STATE_FAULT
		err = ErrOpcodeUnsupported
		return
	}

	a := regs.Get(ins.Rs)
	b := regs.Get(ins.Rt)
	imm := ins.Immediate()

	switch family {
	case FAMILY_JUMP:
		var target uint32
		target, err = cpu.target(ins)
		if err != nil {
			return
		}
		if cpu.Verbose {
			log.Printf("%08x: jump %v => 0x%x", regs.Pc, ins.Label, target)
		}
		regs.Pc = target
		return
	case FAMILY_BEQ, FAMILY_BNE:
		rec.Label = ins.Label
		taken := a == b
		if family == FAMILY_BNE {
			taken = !taken
		}
		if cpu.Verbose {
			log.Printf("%08x: %v a=0x%x b=0x%x taken=%v", regs.Pc, ins.Op, uint32(a), uint32(b), taken)
		}
		if !taken {
			regs.Pc += 4
			return
		}
		var target uint32
		target, err = cpu.target(ins)
		if err != nil {
			return
		}
		regs.Pc = target
		return
	}

	var out AluOutput
	switch family {
	case FAMILY_SHIFT, FAMILY_HALT:
		out = Alu(ins.Op, b, imm)
	default:
		src := b
		if ctl.AluSrc {
			src = imm
		}
		out = Alu(ins.Op, a, src)
	}
	rec.AluOut = out.Output

	value := out.Value
	addr := uint32(out.Value)
	if ctl.MemRead {
		value = cpu.Memory.Load(addr)
		rec.MemAccess, rec.MemAddr = true, addr
		rec.Loaded, rec.LoadValue = true, value
	}
	if ctl.MemWrite {
		cpu.Memory.Store(addr, b)
		rec.MemAccess, rec.MemAddr = true, addr
		rec.Stored, rec.StoreValue = true, b
	}

	if family == FAMILY_HALT {
		if cpu.Verbose {
			log.Printf("%08x: halt", regs.Pc)
		}
		cpu.State = STATE_HALTED
		regs.Pc += 4
		return
	}

	if ctl.RegWrite {
		regs.Set(ins.Dest(), value)
	}

	regs.Pc += 4

	return
}

// target resolves the branch or jump destination of an instruction.
func (cpu *Cpu) target(ins Instruction) (pc uint32, err error) {
	index := ins.Target
	if index < 0 {
		var ok bool
		if cpu.Program != nil {
			index, ok = cpu.Program.Labels.Lookup(ins.Label)
		}
		if !ok {
			cpu.State = STATE_LABEL_ERROR
			err = ErrLabelMissing(ins.Label)
			return
		}
	}

	pc = uint32(index) * 4
	return
}

// Summary returns the final architectural state.
func (cpu *Cpu) Summary() *Summary {
	return &Summary{
		Pc:        cpu.Registers.Pc,
		Registers: cpu.Registers.Snapshot(),
		Memory:    cpu.Memory.Entries(),
		Cycles:    cpu.Cycles,
		State:     cpu.State,
	}
}
