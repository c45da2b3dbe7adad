package tracedb

import (
	"github.com/uptrace/bun"

	"github.com/ezrec/scmips/cpu"
)

// CycleRow is one traced cycle.
type CycleRow struct {
	bun.BaseModel `bun:"table:cycles"`

	Cycle      int `bun:",pk"`
	Pc         uint32
	NextPc     uint32
	Text       string
	Op         string
	Family     string
	AluOut     int32
	Label      string
	MemAccess  bool
	MemAddr    uint32
	Stored     bool
	StoreValue int32
	Loaded     bool
	LoadValue  int32
	Control    string
	AluClass   string
	Registers  []int32
}

// FinalRow is the final state of a run.
type FinalRow struct {
	bun.BaseModel `bun:"table:finals"`

	ID        int64 `bun:",pk,autoincrement"`
	Pc        uint32
	Registers []int32
	Cycles    int
	State     string
}

// MemoryRow is one word of data memory.
type MemoryRow struct {
	bun.BaseModel `bun:"table:memory"`

	Address uint32 `bun:",pk"`
	Value   int32
}

func newCycleRow(rec *cpu.Record) *CycleRow {
	return &CycleRow{
		Cycle:      rec.Cycle,
		Pc:         rec.Pc,
		NextPc:     rec.NextPc,
		Text:       rec.Text,
		Op:         rec.Op.String(),
		Family:     rec.Family.String(),
		AluOut:     rec.AluOut,
		Label:      rec.Label,
		MemAccess:  rec.MemAccess,
		MemAddr:    rec.MemAddr,
		Stored:     rec.Stored,
		StoreValue: rec.StoreValue,
		Loaded:     rec.Loaded,
		LoadValue:  rec.LoadValue,
		Control:    rec.Control.String(),
		AluClass:   rec.AluClass.String(),
		Registers:  rec.Registers[:],
	}
}
