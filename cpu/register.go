package cpu

import (
	"strconv"
	"strings"
)

// CodeReg is a general purpose register index.
type CodeReg int

const (
	REG_NONE = CodeReg(-1) // Unused operand slot.
	REG_ZERO = CodeReg(0)
	REG_AT   = CodeReg(1)
	REG_V0   = CodeReg(2)
	REG_A0   = CodeReg(4)
	REG_T0   = CodeReg(8)
	REG_S0   = CodeReg(16)
	REG_T8   = CodeReg(24)
	REG_K0   = CodeReg(26)
	REG_GP   = CodeReg(28)
	REG_SP   = CodeReg(29)
	REG_FP   = CodeReg(30)
	REG_RA   = CodeReg(31)

	REG_COUNT = 32
)

var registerNames = [REG_COUNT]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// regMap maps register names, without the leading '$', to indexes.
var regMap = func() map[string]CodeReg {
	m := make(map[string]CodeReg, REG_COUNT)
	for n, name := range registerNames {
		m[name[1:]] = CodeReg(n)
	}
	return m
}()

// Valid is true for the 32 architectural registers.
func (reg CodeReg) Valid() bool {
	return reg >= 0 && reg < REG_COUNT
}

// String returns the conventional register name, or "-" for unused slots.
func (reg CodeReg) String() string {
	if !reg.Valid() {
		return "-"
	}
	return registerNames[reg]
}

// ParseRegister converts '$t0', '$ra' or '$8' style names to a register.
// Unknown names are an error, never a sentinel index.
func ParseRegister(word string) (reg CodeReg, err error) {
	name, ok := strings.CutPrefix(word, "$")
	if !ok || len(name) == 0 {
		err = ErrRegisterName(word)
		return
	}

	reg, ok = regMap[name]
	if ok {
		return
	}

	n, perr := strconv.ParseUint(name, 10, 8)
	if perr != nil || n >= REG_COUNT {
		err = ErrRegisterName(word)
		return
	}

	reg = CodeReg(n)
	return
}
