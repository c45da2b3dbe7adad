package trace

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/scmips/cpu"
)

// Short formats a word as uppercase hex. When the upper half word is all
// zeros or all ones only the lower half word is shown.
func Short(value int32) string {
	u := uint32(value)
	switch u & 0xffff0000 {
	case 0, 0xffff0000:
		u &= 0xffff
	}
	return fmt.Sprintf("%X", u)
}

// Hex formats a word as full uppercase hex.
func Hex(value int32) string {
	return fmt.Sprintf("%X", uint32(value))
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// TextWriter writes cycle and final state traces as tab separated text.
type TextWriter struct {
	Writer io.Writer
}

// NewTextWriter creates a text trace writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{Writer: w}
}

// FormatCycle renders a cycle record.
func FormatCycle(rec *cpu.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "-----Cycle %d-----\n", rec.Cycle)

	b.WriteString("Registers:\n")
	b.WriteString(Short(int32(rec.NextPc)) + "\t")
	for _, value := range rec.Registers {
		b.WriteString(Short(value) + "\t")
	}
	b.WriteString("\n\n")

	b.WriteString("Monitors:\n")
	fields := []string{fmt.Sprintf("%X", rec.Pc), rec.Text}
	for _, reg := range rec.Operands {
		fields = append(fields, reg.String())
	}
	for _, mon := range rec.Monitors {
		if !mon.Reg.Valid() {
			fields = append(fields, "-")
			continue
		}
		fields = append(fields, Short(mon.Value))
	}
	fields = append(fields, Short(rec.AluOut))

	label := rec.Label
	if len(label) == 0 {
		label = "-"
	}
	fields = append(fields, label)

	field := func(ok bool, value int32) string {
		if !ok {
			return "-"
		}
		return Hex(value)
	}
	fields = append(fields,
		field(rec.MemAccess && rec.MemAddr != 0, int32(rec.MemAddr)),
		field(rec.Stored, rec.StoreValue),
		field(rec.Loaded, rec.LoadValue),
	)

	ctl := rec.Control
	fields = append(fields,
		bit(ctl.RegDst), bit(ctl.Jump), bit(ctl.Branch),
		bit(ctl.MemRead), bit(ctl.MemToReg), rec.AluClass.String(),
		bit(ctl.MemWrite), bit(ctl.AluSrc), bit(ctl.RegWrite),
	)
	b.WriteString(strings.Join(fields, "\t"))
	b.WriteString("\n\n")

	b.WriteString("Memory State:\n")
	for _, entry := range rec.Memory {
		if entry.Address >= cpu.GP_INIT {
			b.WriteString(Hex(entry.Value) + "\t")
		}
	}
	b.WriteString("\n\n")

	return b.String()
}

// FormatFinal renders the final state.
func FormatFinal(summary *cpu.Summary) string {
	var b strings.Builder

	b.WriteString("-----Final State-----\n")
	b.WriteString("Registers:\n")
	b.WriteString(Hex(int32(summary.Pc)) + "\t")
	for _, value := range summary.Registers {
		b.WriteString(Hex(value) + "\t")
	}

	b.WriteString("\n\nMemory State:\n")
	for _, entry := range summary.Memory {
		b.WriteString(Hex(entry.Value) + "\t")
	}

	fmt.Fprintf(&b, "\n\nTotal Cycles:\n%d\n", summary.Cycles)

	return b.String()
}

// Cycle writes a cycle record.
func (tw *TextWriter) Cycle(_ context.Context, rec *cpu.Record) (err error) {
	_, err = io.WriteString(tw.Writer, FormatCycle(rec))
	return
}

// Final writes the final state.
func (tw *TextWriter) Final(_ context.Context, summary *cpu.Summary) (err error) {
	_, err = io.WriteString(tw.Writer, FormatFinal(summary))
	return
}
