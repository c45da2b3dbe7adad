package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/scmips/cpu"
)

const exampleProgram = `addi $t0, $zero, 5
addi $t1, $zero, 3
add  $t2, $t0, $t1
sw   $t2, 0($gp)
lw   $t3, 0($gp)
sll  $zero, $zero, 0
`

func TestShort(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value int32
		short string
		hex   string
	}){
		{0, "0", "0"},
		{5, "5", "5"},
		{0xffff, "FFFF", "FFFF"},
		{0x12345, "12345", "12345"},
		{-1, "FFFF", "FFFFFFFF"},
		{-0x10000, "0", "FFFF0000"},
		{0x10008000, "10008000", "10008000"},
		{0x7ffffffc, "7FFFFFFC", "7FFFFFFC"},
	}

	for _, entry := range table {
		assert.Equal(entry.short, Short(entry.value), entry.hex)
		assert.Equal(entry.hex, Hex(entry.value), entry.hex)
	}
}

// registerLine renders the expected register list for a trace line.
func registerLine(format func(int32) string, pc int32, set map[cpu.CodeReg]int32) string {
	fields := []string{format(pc)}
	for n := range cpu.REG_COUNT {
		fields = append(fields, format(set[cpu.CodeReg(n)]))
	}
	return strings.Join(fields, "\t") + "\t"
}

func TestTextWriter(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(exampleProgram))
	require.NoError(t, err)

	ctx := context.Background()
	out := &bytes.Buffer{}
	tw := NewTextWriter(out)

	cp := cpu.NewCpu(prog)
	for range 4 {
		var rec *cpu.Record
		rec, err = cp.Tick()
		require.NoError(t, err)
		rec.Memory = cp.Memory.Entries()
		out.Reset()
		assert.NoError(tw.Cycle(ctx, rec))
	}

	regs := map[cpu.CodeReg]int32{
		cpu.REG_T0:     5,
		cpu.REG_T0 + 1: 3,
		cpu.REG_T0 + 2: 8,
		cpu.REG_GP:     int32(cpu.GP_INIT),
		cpu.REG_SP:     int32(cpu.SP_INIT),
	}

	expected := "-----Cycle 4-----\n" +
		"Registers:\n" +
		registerLine(Short, 0x10, regs) + "\n\n" +
		"Monitors:\n" +
		"C\tsw   $t2, 0($gp)\t$gp\t-\t$t2\t8\t10008000\t-\t10008000\t-\t10008000\t8\t-\t" +
		"0\t0\t0\t0\t0\t00\t1\t1\t0\n\n" +
		"Memory State:\n" +
		"8\t\n\n"
	assert.Equal(expected, out.String())

	for !cp.State.Terminal() {
		_, err = cp.Tick()
		require.NoError(t, err)
	}

	out.Reset()
	assert.NoError(tw.Final(ctx, cp.Summary()))

	regs[cpu.REG_T0+3] = 8
	expected = "-----Final State-----\n" +
		"Registers:\n" +
		registerLine(Hex, 0x18, regs) +
		"\n\nMemory State:\n" +
		"8\t" +
		"\n\nTotal Cycles:\n6\n"
	assert.Equal(expected, out.String())
}

func TestFormatCycleJump(t *testing.T) {
	assert := assert.New(t)

	none := cpu.REG_NONE
	rec := &cpu.Record{
		Cycle:    2,
		Pc:       4,
		NextPc:   20,
		Text:     "j end",
		Op:       cpu.OP_J,
		Family:   cpu.FAMILY_JUMP,
		Operands: [3]cpu.CodeReg{none, none, none},
		Monitors: [3]cpu.RegValue{{Reg: none}, {Reg: none}, {Reg: none}},
		Control:  cpu.ControlFor(cpu.FAMILY_JUMP),
		AluClass: cpu.ALU_CLASS_NONE,
		Memory:   []cpu.MemoryEntry{{Address: 0x100, Value: 3}},
	}

	expected := "-----Cycle 2-----\n" +
		"Registers:\n" +
		registerLine(Short, 20, nil) + "\n\n" +
		"Monitors:\n" +
		"4\tj end\t-\t-\t-\t-\t-\t-\t0\t-\t-\t-\t-\t0\t1\t0\t0\t0\t--\t0\t0\t0\n\n" +
		"Memory State:\n" +
		"\n\n"
	assert.Equal(expected, FormatCycle(rec))
}
