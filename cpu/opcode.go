package cpu

// CodeOp is an instruction mnemonic.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_INVALID = CodeOp(0)  // invalid
	OP_ADD     = CodeOp(1)  // add
	OP_ADDU    = CodeOp(2)  // addu
	OP_SUB     = CodeOp(3)  // sub
	OP_SUBU    = CodeOp(4)  // subu
	OP_AND     = CodeOp(5)  // and
	OP_OR      = CodeOp(6)  // or
	OP_NOR     = CodeOp(7)  // nor
	OP_SLT     = CodeOp(8)  // slt
	OP_SLTU    = CodeOp(9)  // sltu
	OP_SLL     = CodeOp(10) // sll
	OP_SRL     = CodeOp(11) // srl
	OP_ADDI    = CodeOp(12) // addi
	OP_ADDIU   = CodeOp(13) // addiu
	OP_ANDI    = CodeOp(14) // andi
	OP_ORI     = CodeOp(15) // ori
	OP_SLTI    = CodeOp(16) // slti
	OP_SLTIU   = CodeOp(17) // sltiu
	OP_LW      = CodeOp(18) // lw
	OP_SW      = CodeOp(19) // sw
	OP_BEQ     = CodeOp(20) // beq
	OP_BNE     = CodeOp(21) // bne
	OP_J       = CodeOp(22) // j
)

// CodeFamily is the opcode family that steers control, ALU and writeback.
type CodeFamily int

//go:generate go tool stringer -linecomment -type=CodeFamily
const (
	FAMILY_INVALID = CodeFamily(0) // invalid
	FAMILY_R       = CodeFamily(1) // rtype
	FAMILY_SHIFT   = CodeFamily(2) // shift
	FAMILY_I       = CodeFamily(3) // itype
	FAMILY_LOAD    = CodeFamily(4) // load
	FAMILY_STORE   = CodeFamily(5) // store
	FAMILY_BEQ     = CodeFamily(6) // beq
	FAMILY_BNE     = CodeFamily(7) // bne
	FAMILY_JUMP    = CodeFamily(8) // jump
	FAMILY_HALT    = CodeFamily(9) // halt
)

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]CodeOp {
	m := make(map[string]CodeOp, int(OP_J))
	for op := OP_ADD; op <= OP_J; op++ {
		m[op.String()] = op
	}
	return m
}()

// LookupOp returns the opcode for a mnemonic.
func LookupOp(name string) (op CodeOp, ok bool) {
	op, ok = opMap[name]
	return
}

// Family classifies the opcode. This is the only place opcodes are grouped;
// every other stage switches on the family.
func (op CodeOp) Family() CodeFamily {
	switch op {
	case OP_ADD, OP_ADDU, OP_SUB, OP_SUBU, OP_AND, OP_OR, OP_NOR, OP_SLT, OP_SLTU:
		return FAMILY_R
	case OP_SLL, OP_SRL:
		return FAMILY_SHIFT
	case OP_ADDI, OP_ADDIU, OP_ANDI, OP_ORI, OP_SLTI, OP_SLTIU:
		return FAMILY_I
	case OP_LW:
		return FAMILY_LOAD
	case OP_SW:
		return FAMILY_STORE
	case OP_BEQ:
		return FAMILY_BEQ
	case OP_BNE:
		return FAMILY_BNE
	case OP_J:
		return FAMILY_JUMP
	}

	return FAMILY_INVALID
}

// SetLessThan is true for the compare opcodes, whose written value is a
// boolean rather than the ALU output.
func (op CodeOp) SetLessThan() bool {
	switch op {
	case OP_SLT, OP_SLTU, OP_SLTI, OP_SLTIU:
		return true
	}
	return false
}

// ZeroExtend is true for the bitwise immediates.
func (op CodeOp) ZeroExtend() bool {
	return op == OP_ANDI || op == OP_ORI
}

// AluClass is the 2-bit ALU operation class reported in traces.
type AluClass int

const (
	ALU_CLASS_NONE  = AluClass(-1)
	ALU_CLASS_LOGIC = AluClass(0b00) // and, andi, nor, lw, sw
	ALU_CLASS_OR    = AluClass(0b01) // or, ori, beq, bne
	ALU_CLASS_ARITH = AluClass(0b10) // add, sub and shifts
	ALU_CLASS_SLT   = AluClass(0b11) // set-less-than
)

// String returns the class as two binary digits, or "--" when absent.
func (ac AluClass) String() string {
	switch ac {
	case ALU_CLASS_LOGIC:
		return "00"
	case ALU_CLASS_OR:
		return "01"
	case ALU_CLASS_ARITH:
		return "10"
	case ALU_CLASS_SLT:
		return "11"
	}
	return "--"
}

// AluClass returns the trace ALU class of the opcode.
func (op CodeOp) AluClass() AluClass {
	switch op {
	case OP_AND, OP_ANDI, OP_NOR, OP_LW, OP_SW:
		return ALU_CLASS_LOGIC
	case OP_OR, OP_ORI, OP_BEQ, OP_BNE:
		return ALU_CLASS_OR
	case OP_ADD, OP_ADDU, OP_ADDI, OP_ADDIU, OP_SUB, OP_SUBU, OP_SLL, OP_SRL:
		return ALU_CLASS_ARITH
	case OP_SLT, OP_SLTU, OP_SLTI, OP_SLTIU:
		return ALU_CLASS_SLT
	}
	return ALU_CLASS_NONE
}
