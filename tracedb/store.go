package tracedb

import (
	"context"
	"database/sql"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/ezrec/scmips/cpu"
)

// MemoryDSN is an in-memory database shared by all connections.
const MemoryDSN = "file::memory:?cache=shared"

var models = []any{
	(*CycleRow)(nil),
	(*FinalRow)(nil),
	(*MemoryRow)(nil),
}

// Store persists cycle records and final states to SQLite.
type Store struct {
	Verbose bool // If set, logs every query.

	db *bun.DB
}

// Open opens, and creates if needed, a trace database.
func Open(ctx context.Context, dsn string, verbose bool) (store *Store, err error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if verbose {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.WithEnabled(true),
		))
	}

	for _, model := range models {
		_, err = db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		if err != nil {
			db.Close()
			return
		}
	}

	store = &Store{
		Verbose: verbose,
		db:      db,
	}

	return
}

// Close the database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Reset discards all stored rows.
func (store *Store) Reset(ctx context.Context) (err error) {
	for _, model := range models {
		_, err = store.db.NewDelete().Model(model).Where("1 = 1").Exec(ctx)
		if err != nil {
			return
		}
	}
	return
}

// Cycle stores a cycle record.
func (store *Store) Cycle(ctx context.Context, rec *cpu.Record) (err error) {
	_, err = store.db.NewInsert().Model(newCycleRow(rec)).Exec(ctx)
	return
}

// Final stores the final state, replacing the stored memory image.
func (store *Store) Final(ctx context.Context, summary *cpu.Summary) (err error) {
	if store.Verbose {
		log.Printf("tracedb: final %v, %d words", summary.State, len(summary.Memory))
	}

	return store.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) (err error) {
		final := &FinalRow{
			Pc:        summary.Pc,
			Registers: summary.Registers[:],
			Cycles:    summary.Cycles,
			State:     summary.State.String(),
		}
		_, err = tx.NewInsert().Model(final).Exec(ctx)
		if err != nil {
			return
		}

		_, err = tx.NewDelete().Model((*MemoryRow)(nil)).Where("1 = 1").Exec(ctx)
		if err != nil {
			return
		}

		if len(summary.Memory) == 0 {
			return
		}

		rows := make([]MemoryRow, len(summary.Memory))
		for n, entry := range summary.Memory {
			rows[n] = MemoryRow{Address: entry.Address, Value: entry.Value}
		}
		_, err = tx.NewInsert().Model(&rows).Exec(ctx)
		return
	})
}

// Cycles returns the stored cycles in ascending order.
func (store *Store) Cycles(ctx context.Context) (rows []CycleRow, err error) {
	err = store.db.NewSelect().Model(&rows).Order("cycle ASC").Scan(ctx)
	return
}

// Finals returns the stored final states, oldest first.
func (store *Store) Finals(ctx context.Context) (rows []FinalRow, err error) {
	err = store.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx)
	return
}

// Memory returns the stored memory image in ascending address order.
func (store *Store) Memory(ctx context.Context) (entries []cpu.MemoryEntry, err error) {
	var rows []MemoryRow
	err = store.db.NewSelect().Model(&rows).Order("address ASC").Scan(ctx)
	if err != nil {
		return
	}

	for _, row := range rows {
		entries = append(entries, cpu.MemoryEntry{Address: row.Address, Value: row.Value})
	}
	return
}
