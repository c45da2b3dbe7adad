// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/scmips/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":  "0",
	"GP_BASE": fmt.Sprintf("%#x", GP_INIT),
	"SP_INIT": fmt.Sprintf("%#x", SP_INIT),
}

var (
	labelRe   = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.$]*$`)
	addressRe = regexp.MustCompile(`^(.*)\(\s*([^()\s]+)\s*\)$`)
	exprRe    = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass loader for MIPS assembly text. The first pass
// decodes each line, the second resolves branch and jump labels.
type Assembler struct {
	Verbose       bool // If set, verbosely logs the assembler actions.
	Lenient       bool // If set, missing labels are left for the CPU to report.
	KeepAfterHalt bool // If set, lines after the halt instruction are loaded.

	Instructions []Instruction     // Decoded instructions.
	Labels       *LabelTable       // Map of labels to instruction indexes.
	Equate       map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Defines returns an iterator over the system equates and predefines.
func (asm *Assembler) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(sysEquate), maps.All(asm.predefine))
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// immediate returns the value of a word, which must be within [lo, hi].
func (asm *Assembler) immediate(word string, lo, hi int64) (value int32, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 < lo || v64 > hi {
		err = fmt.Errorf("%w: %v", ErrImmediateRange, word)
		return
	}

	value = int32(v64)
	return
}

// registers decodes a list of register words.
func (asm *Assembler) registers(words ...string) (regs []CodeReg, err error) {
	regs = make([]CodeReg, len(words))
	for n, word := range words {
		regs[n], err = ParseRegister(word)
		if err != nil {
			return
		}
	}
	return
}

// address decodes an 'offset($base)' memory operand.
func (asm *Assembler) address(word string) (offset int32, base CodeReg, err error) {
	match := addressRe.FindStringSubmatch(word)
	if match == nil {
		err = fmt.Errorf("%w: %v", ErrAddressInvalid, word)
		return
	}

	off := strings.TrimSpace(match[1])
	if equate, ok := asm.Equate[off]; ok {
		off = equate
	}
	if len(off) != 0 {
		offset, err = asm.immediate(off, -0x8000, 0x7fff)
		if err != nil {
			return
		}
	}

	reg := match[2]
	if equate, ok := asm.Equate[reg]; ok {
		reg = equate
	}
	base, err = ParseRegister(reg)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces $(...) expressions with their values.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = exprRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	return
}

// directive handles a '.name' line.
func (asm *Assembler) directive(words []string) (err error) {
	switch words[0] {
	case ".equ":
		// .equ CONST VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
	case ".globl", ".global", ".align":
		// no-op
	default:
		err = ErrDirectiveInvalid
	}
	return
}

// parseLine parses a single line, returning the instruction on it, if any.
func (asm *Assembler) parseLine(line string, lineno int) (ins *Instruction, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	text := line

	if strings.HasPrefix(line, ".") {
		line, err = asm.expand(line)
		if err != nil {
			return
		}
		err = asm.directive(strings.Fields(line))
		return
	}

	// Labels bind to the next instruction, which may be on a later line.
	for {
		before, after, found := strings.Cut(line, ":")
		if !found {
			break
		}
		label := strings.TrimSpace(before)
		if !labelRe.MatchString(label) {
			err = fmt.Errorf("%w: %v", ErrLabelInvalid, label)
			return
		}
		err = asm.Labels.Define(label, len(asm.Instructions))
		if err != nil {
			return
		}
		if asm.Verbose {
			log.Printf("%v: label %v = %d", lineno, label, len(asm.Instructions))
		}
		line = strings.TrimSpace(after)
	}

	if len(line) == 0 {
		return
	}

	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(strings.ReplaceAll(line, ",", " "))
	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	decoded, err := asm.parseWords(words)
	if err != nil {
		return
	}

	decoded.Text = text
	decoded.LineNo = lineno
	ins = &decoded

	return
}

// operandCount is the number of operands taken by each family.
var operandCount = map[CodeFamily]int{
	FAMILY_R:     3,
	FAMILY_SHIFT: 3,
	FAMILY_I:     3,
	FAMILY_LOAD:  2,
	FAMILY_STORE: 2,
	FAMILY_BEQ:   3,
	FAMILY_BNE:   3,
	FAMILY_JUMP:  1,
}

// parseWords decodes the words of one instruction.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	op, ok := LookupOp(words[0])
	if !ok {
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, words[0])
		return
	}

	family := op.Family()
	args := words[1:]
	need := operandCount[family]
	if len(args) < need {
		err = ErrOpcodeMissing
		return
	}
	if len(args) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	var regs []CodeReg
	var imm int32

	switch family {
	case FAMILY_R:
		// op $rd, $rs, $rt
		regs, err = asm.registers(args...)
		if err != nil {
			return
		}
		ins = MakeR(op, regs[0], regs[1], regs[2])
	case FAMILY_SHIFT:
		// op $rd, $rt, shamt
		regs, err = asm.registers(args[0:2]...)
		if err != nil {
			return
		}
		imm, err = asm.immediate(args[2], 0, 31)
		if err != nil {
			return
		}
		ins = MakeShift(op, regs[0], regs[1], imm)
	case FAMILY_I:
		// op $rt, $rs, imm
		regs, err = asm.registers(args[0:2]...)
		if err != nil {
			return
		}
		imm, err = asm.immediate(args[2], -0x8000, 0xffff)
		if err != nil {
			return
		}
		ins = MakeI(op, regs[0], regs[1], imm)
	case FAMILY_LOAD, FAMILY_STORE:
		// op $rt, offset($rs)
		regs, err = asm.registers(args[0])
		if err != nil {
			return
		}
		var base CodeReg
		imm, base, err = asm.address(args[1])
		if err != nil {
			return
		}
		ins = MakeMem(op, regs[0], imm, base)
	case FAMILY_BEQ, FAMILY_BNE:
		// op $rs, $rt, label
		regs, err = asm.registers(args[0:2]...)
		if err != nil {
			return
		}
		if !labelRe.MatchString(args[2]) {
			err = fmt.Errorf("%w: %v", ErrLabelInvalid, args[2])
			return
		}
		ins = MakeBranch(op, regs[0], regs[1], args[2], -1)
	case FAMILY_JUMP:
		// j label
		if !labelRe.MatchString(args[0]) {
			err = fmt.Errorf("%w: %v", ErrLabelInvalid, args[0])
			return
		}
		ins = MakeJump(args[0], -1)
	default:
		err = ErrInstructionInvalid
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Instructions = asm.Instructions[:0]
	asm.Labels = NewLabelTable()
	asm.Equate = make(map[string]string)
	for attr, val := range asm.Defines() {
		asm.Equate[attr] = val
	}

	data := false

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment, _, _ := strings.Cut(text, "#")
		line = strings.TrimSpace(text_comment)
		if len(line) == 0 {
			continue
		}

		switch strings.Fields(line)[0] {
		case ".data":
			data = true
			continue
		case ".text":
			data = false
			continue
		}

		if data {
			if asm.Verbose {
				log.Printf("%v: skipped in .data", lineno)
			}
			continue
		}

		var ins *Instruction
		ins, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if ins == nil {
			continue
		}

		asm.Instructions = append(asm.Instructions, *ins)

		if ins.IsHalt() && !asm.KeepAfterHalt {
			if asm.Verbose {
				log.Printf("%v: halt, stopping input", lineno)
			}
			break
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of branch and jump labels.
	for n := range asm.Instructions {
		ins := &asm.Instructions[n]

		if len(ins.Label) == 0 {
			continue
		}
		index, ok := asm.Labels.Lookup(ins.Label)
		if !ok {
			if asm.Lenient {
				if asm.Verbose {
					log.Printf("%v: label '%v' unresolved", ins.LineNo, ins.Label)
				}
				continue
			}
			lineno, line = ins.LineNo, ins.Text
			err = ErrLabelMissing(ins.Label)
			return
		}
		ins.Target = index
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instructions),
		Labels:       asm.Labels,
	}

	return
}
