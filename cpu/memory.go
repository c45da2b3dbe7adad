package cpu

import (
	"iter"

	"github.com/ezrec/scmips/internal"
)

// MemoryEntry is one written word of memory.
type MemoryEntry struct {
	Address uint32 `json:"address"`
	Value   int32  `json:"value"`
}

// Memory is a sparse word store. Addresses never written read as 0.
type Memory struct {
	data map[uint32]int32
}

// Reset discards all stored words.
func (mem *Memory) Reset() {
	clear(mem.data)
}

// Load reads the word at an address.
func (mem *Memory) Load(addr uint32) (value int32) {
	value = mem.data[addr]
	return
}

// Store writes the word at an address.
func (mem *Memory) Store(addr uint32, value int32) {
	if mem.data == nil {
		mem.data = make(map[uint32]int32)
	}
	mem.data[addr] = value
}

// Len returns the number of stored words.
func (mem *Memory) Len() int {
	return len(mem.data)
}

// All iterates the stored words in ascending address order.
func (mem *Memory) All() iter.Seq2[uint32, int32] {
	return internal.Sorted(mem.data)
}

// Entries returns the stored words in ascending address order.
func (mem *Memory) Entries() (entries []MemoryEntry) {
	entries = make([]MemoryEntry, 0, mem.Len())
	for addr, value := range mem.All() {
		entries = append(entries, MemoryEntry{Address: addr, Value: value})
	}
	return
}
