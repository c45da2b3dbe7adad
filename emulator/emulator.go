// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/scmips/cpu"
	"github.com/ezrec/scmips/trace"
)

// Sink receives traced cycles and the final state of a run.
type Sink interface {
	Cycle(ctx context.Context, rec *cpu.Record) error
	Final(ctx context.Context, summary *cpu.Summary) error
}

// Emulator state. CPU + program + trace sinks.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Selection trace.Selection // Cycles to hand to the sinks.
	Sinks     []Sink          // Trace sinks.
	Limit     int             // If non-zero, Run stops after this many cycles.

	Record *cpu.Record // Record of the most recent cycle.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(nil),
		Program:   &cpu.Program{},
		Selection: trace.Last,
	}

	return
}

// Load assembles a program and resets the emulator to run it.
func (emu *Emulator) Load(input io.Reader, asm *cpu.Assembler) (err error) {
	if asm == nil {
		asm = &cpu.Assembler{}
	}
	asm.Verbose = asm.Verbose || emu.Verbose

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Reset the CPU to run the current program.
func (emu *Emulator) Reset() {
	emu.Cpu.Program = emu.Program
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Record = nil
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Cycles
}

// Pc returns current program counter.
func (emu *Emulator) Pc() uint32 {
	return emu.Cpu.Registers.Pc
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Pc())
}

// Tick performs a single cycle of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	emu.Record, err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcExhausted) {
		err = nil
		done = true
		return
	}

	if emu.Verbose && emu.Record != nil {
		log.Printf("emulator: %s", spew.Sdump(emu.Record))
	}

	done = emu.Cpu.State.Terminal()

	return
}

// Run cycles the emulator until the CPU stops, handing the selected cycle
// records to every sink, then the final state if selected.
func (emu *Emulator) Run(ctx context.Context) (summary *cpu.Summary, err error) {
	var done bool
	for !done {
		var terr error
		done, terr = emu.Tick()

		rec := emu.Record
		if rec != nil && emu.Selection.Contains(rec.Cycle) {
			rec.Memory = emu.Cpu.Memory.Entries()
			for _, sink := range emu.Sinks {
				err = sink.Cycle(ctx, rec)
				if err != nil {
					return
				}
			}
		}

		if terr != nil {
			err = terr
			break
		}

		if !done && emu.Limit > 0 && emu.Ticks() >= emu.Limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrCycleLimit}
			break
		}
	}

	summary = emu.Cpu.Summary()

	if emu.Verbose {
		log.Printf("emulator: %v after %d cycles", summary.State, summary.Cycles)
	}

	if emu.Selection.Final {
		for _, sink := range emu.Sinks {
			serr := sink.Final(ctx, summary)
			if serr != nil {
				err = errors.Join(err, serr)
				return
			}
		}
	}

	return
}
