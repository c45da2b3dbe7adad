package emulator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/scmips/cpu"
	"github.com/ezrec/scmips/trace"
)

// memorySink keeps everything it is handed.
type memorySink struct {
	records []*cpu.Record
	finals  []*cpu.Summary
	err     error
}

func (ms *memorySink) Cycle(ctx context.Context, rec *cpu.Record) error {
	ms.records = append(ms.records, rec)
	return ms.err
}

func (ms *memorySink) Final(ctx context.Context, summary *cpu.Summary) error {
	ms.finals = append(ms.finals, summary)
	return ms.err
}

func (ms *memorySink) cycles() (cycles []int) {
	for _, rec := range ms.records {
		cycles = append(cycles, rec.Cycle)
	}
	return
}

var exampleProgram = []string{
	"addi $t0, $zero, 5",
	"addi $t1, $zero, 3",
	"add  $t2, $t0, $t1",
	"sw   $t2, 0($gp)",
	"lw   $t3, 0($gp)",
	"sll  $zero, $zero, 0",
}

func doLoad(emu *Emulator, program []string, asm *cpu.Assembler, t *testing.T) {
	err := emu.Load(strings.NewReader(strings.Join(program, "\n")), asm)
	require.NoError(t, err)
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(trace.Last, emu.Selection)
	assert.Equal(0, emu.Program.Len())
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, exampleProgram, nil, t)

	for n := range exampleProgram {
		assert.Equal(n+1, emu.LineNo())
		assert.Equal(uint32(n*4), emu.Pc())
		done, err := emu.Tick()
		assert.NoError(err, exampleProgram[n])
		assert.Equal(n == len(exampleProgram)-1, done, exampleProgram[n])
		assert.Equal(n+1, emu.Record.Cycle)
	}

	assert.Equal(6, emu.Ticks())
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(int32(8), emu.Cpu.Memory.Load(cpu.GP_INIT))
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		selection string
		cycles    []int
		finals    int
	}){
		{"all,last", []int{1, 2, 3, 4, 5, 6}, 1},
		{"all", []int{1, 2, 3, 4, 5, 6}, 0},
		{"2,5,99", []int{2, 5}, 0},
		{"last", nil, 1},
	}

	for _, entry := range table {
		sel, err := trace.ParseSelection(entry.selection)
		require.NoError(t, err)

		sink := &memorySink{}
		emu := NewEmulator()
		emu.Selection = sel
		emu.Sinks = []Sink{sink}
		doLoad(emu, exampleProgram, nil, t)

		summary, err := emu.Run(context.Background())
		assert.NoError(err, entry.selection)
		assert.Equal(6, summary.Cycles, entry.selection)
		assert.Equal(uint32(0x18), summary.Pc, entry.selection)
		assert.Equal(cpu.STATE_HALTED, summary.State, entry.selection)
		assert.Equal(entry.cycles, sink.cycles(), entry.selection)
		assert.Len(sink.finals, entry.finals, entry.selection)
	}
}

func TestEmulatorMemorySnapshot(t *testing.T) {
	assert := assert.New(t)

	sink := &memorySink{}
	emu := NewEmulator()
	emu.Selection = trace.Selection{All: true}
	emu.Sinks = []Sink{sink}
	doLoad(emu, exampleProgram, nil, t)

	_, err := emu.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sink.records, 6)

	assert.Empty(sink.records[2].Memory)
	assert.Equal([]cpu.MemoryEntry{{Address: cpu.GP_INIT, Value: 8}}, sink.records[3].Memory)
}

func TestEmulatorExhausted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{"addi $t0, $zero, 1", "addi $t1, $zero, 2"}, nil, t)

	summary, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATE_EXHAUSTED, summary.State)
	assert.Equal(2, summary.Cycles)
	assert.Equal(uint32(8), summary.Pc)
}

func TestEmulatorLabelError(t *testing.T) {
	assert := assert.New(t)

	sink := &memorySink{}
	emu := NewEmulator()
	emu.Selection = trace.Selection{All: true, Final: true}
	emu.Sinks = []Sink{sink}
	doLoad(emu, []string{
		"addi $t0, $zero, 1",
		"j nowhere",
		"sll $zero, $zero, 0",
	}, &cpu.Assembler{Lenient: true}, t)

	summary, err := emu.Run(context.Background())

	var runtime *ErrRuntime
	require.True(t, errors.As(err, &runtime))
	assert.Equal(2, runtime.LineNo)
	assert.ErrorIs(err, cpu.ErrLabelMissing("nowhere"))
	assert.Equal(cpu.STATE_LABEL_ERROR, summary.State)
	assert.Equal([]int{1, 2}, sink.cycles())
	assert.Len(sink.finals, 1)

	// Strict loading rejects the same program.
	err = emu.Load(strings.NewReader("j nowhere"), nil)
	var syntax *cpu.ErrSyntax
	assert.True(errors.As(err, &syntax))
}

func TestEmulatorSinkError(t *testing.T) {
	assert := assert.New(t)

	failed := errors.New("sink failed")
	sink := &memorySink{err: failed}
	emu := NewEmulator()
	emu.Selection = trace.Selection{Cycles: []int{3}}
	emu.Sinks = []Sink{sink}
	doLoad(emu, exampleProgram, nil, t)

	_, err := emu.Run(context.Background())
	assert.ErrorIs(err, failed)
	assert.Equal(3, emu.Ticks())
}

func TestEmulatorTextTrace(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Selection = trace.Selection{Cycles: []int{1}, Final: true}
	emu.Sinks = []Sink{trace.NewTextWriter(out)}
	doLoad(emu, exampleProgram, nil, t)

	_, err := emu.Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.True(strings.HasPrefix(text, "-----Cycle 1-----\n"))
	assert.NotContains(text, "-----Cycle 2-----")
	assert.Contains(text, "-----Final State-----\n")
	assert.True(strings.HasSuffix(text, "Total Cycles:\n6\n"))
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Limit = 10
	doLoad(emu, []string{"loop: j loop"}, nil, t)

	summary, err := emu.Run(context.Background())
	assert.ErrorIs(err, ErrCycleLimit)
	assert.Equal(10, summary.Cycles)
	assert.Equal(cpu.STATE_RUNNING, summary.State)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(1, runtime.LineNo)
	}
}
