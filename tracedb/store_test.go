package tracedb

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/scmips/cpu"
	"github.com/ezrec/scmips/emulator"
	"github.com/ezrec/scmips/trace"
)

var _ emulator.Sink = (*Store)(nil)

const exampleProgram = `addi $t0, $zero, 5
addi $t1, $zero, 3
add  $t2, $t0, $t1
sw   $t2, 0($gp)
lw   $t3, 0($gp)
sll  $zero, $zero, 0
`

func openStore(t *testing.T) *Store {
	ctx := context.Background()
	store, err := Open(ctx, "file:"+t.Name()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	store := openStore(t)

	emu := emulator.NewEmulator()
	emu.Selection = trace.Selection{Cycles: []int{3, 4}, Final: true}
	emu.Sinks = []emulator.Sink{store}
	require.NoError(t, emu.Load(strings.NewReader(exampleProgram), nil))

	_, err := emu.Run(ctx)
	require.NoError(t, err)

	cycles, err := store.Cycles(ctx)
	require.NoError(t, err)
	require.Len(t, cycles, 2)

	add := cycles[0]
	assert.Equal(3, add.Cycle)
	assert.Equal(uint32(8), add.Pc)
	assert.Equal("add", add.Op)
	assert.Equal("rtype", add.Family)
	assert.Equal(int32(8), add.AluOut)
	assert.Equal("10", add.AluClass)
	assert.Equal("1 0 0 0 0 10 0 0 1", add.Control)
	assert.Len(add.Registers, cpu.REG_COUNT)
	assert.Equal(int32(8), add.Registers[cpu.REG_T0+2])

	sw := cycles[1]
	assert.True(sw.Stored)
	assert.Equal(cpu.GP_INIT, sw.MemAddr)
	assert.Equal(int32(8), sw.StoreValue)

	memory, err := store.Memory(ctx)
	require.NoError(t, err)
	assert.Equal([]cpu.MemoryEntry{{Address: cpu.GP_INIT, Value: 8}}, memory)

	finals, err := store.Finals(ctx)
	require.NoError(t, err)
	require.Len(t, finals, 1)
	assert.Equal(uint32(0x18), finals[0].Pc)
	assert.Equal(6, finals[0].Cycles)
	assert.Equal("halted", finals[0].State)

	require.NoError(t, store.Reset(ctx))
	cycles, err = store.Cycles(ctx)
	require.NoError(t, err)
	assert.Empty(cycles)
	memory, err = store.Memory(ctx)
	require.NoError(t, err)
	assert.Empty(memory)
}

func TestStoreFinalReplacesMemory(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	store := openStore(t)

	summary := &cpu.Summary{
		Memory: []cpu.MemoryEntry{{Address: 4, Value: 1}, {Address: 8, Value: -2}},
		State:  cpu.STATE_EXHAUSTED,
	}
	require.NoError(t, store.Final(ctx, summary))

	summary.Memory = []cpu.MemoryEntry{{Address: 12, Value: 3}}
	require.NoError(t, store.Final(ctx, summary))

	memory, err := store.Memory(ctx)
	require.NoError(t, err)
	assert.Equal([]cpu.MemoryEntry{{Address: 12, Value: 3}}, memory)

	summary.Memory = nil
	require.NoError(t, store.Final(ctx, summary))
	memory, err = store.Memory(ctx)
	require.NoError(t, err)
	assert.Empty(memory)

	finals, err := store.Finals(ctx)
	require.NoError(t, err)
	assert.Len(finals, 3)
	assert.Equal("exhausted", finals[2].State)
}
