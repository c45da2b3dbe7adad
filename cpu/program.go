package cpu

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LabelTable maps label names to instruction indexes, in definition order.
type LabelTable struct {
	labels *orderedmap.OrderedMap[string, int]
}

// NewLabelTable creates an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{
		labels: orderedmap.New[string, int](),
	}
}

// Define binds a label to an instruction index. Redefinition is an error.
func (lt *LabelTable) Define(label string, index int) (err error) {
	_, ok := lt.labels.Get(label)
	if ok {
		err = ErrLabelDuplicate
		return
	}
	lt.labels.Set(label, index)
	return
}

// Lookup returns the instruction index of a label.
func (lt *LabelTable) Lookup(label string) (index int, ok bool) {
	if lt == nil {
		return
	}
	return lt.labels.Get(label)
}

// Len returns the number of labels.
func (lt *LabelTable) Len() int {
	if lt == nil {
		return 0
	}
	return lt.labels.Len()
}

// All iterates the labels in definition order.
func (lt *LabelTable) All() iter.Seq2[string, int] {
	return func(yield func(label string, index int) bool) {
		if lt == nil {
			return
		}
		for pair := lt.labels.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Program is a loaded instruction memory with its label table.
type Program struct {
	Instructions []Instruction
	Labels       *LabelTable
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Instructions)
}

// Fetch returns the instruction at pc/4.
func (prog *Program) Fetch(pc uint32) (ins Instruction, ok bool) {
	index := pc / 4
	if index >= uint32(prog.Len()) {
		return
	}

	ins = prog.Instructions[index]
	ok = true
	return
}

// LineNo returns the source line of the instruction at pc, or 0.
func (prog *Program) LineNo(pc uint32) int {
	ins, ok := prog.Fetch(pc)
	if !ok {
		return 0
	}
	return ins.LineNo
}
