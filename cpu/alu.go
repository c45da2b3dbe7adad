package cpu

// AluOutput is the result of one ALU operation.
type AluOutput struct {
	Value  int32 // Value written back.
	Output int32 // Value reported on the ALU output for the cycle.
}

// Alu performs the operation selected by op on two 32-bit operands.
// Arithmetic wraps on overflow. The set-less-than operations report the raw
// a-b on Output while Value holds the 0/1 comparison.
func Alu(op CodeOp, a, b int32) (out AluOutput) {
	var value int32

	switch op {
	case OP_ADD, OP_ADDI, OP_ADDIU, OP_LW, OP_SW:
		value = a + b
	case OP_ADDU:
		value = int32(uint32(a) + uint32(b))
	case OP_SUB, OP_SUBU, OP_BEQ, OP_BNE:
		value = a - b
	case OP_AND, OP_ANDI:
		value = a & b
	case OP_OR, OP_ORI:
		value = a | b
	case OP_NOR:
		value = ^(a | b)
	case OP_SLT, OP_SLTI:
		out.Output = a - b
		if a < b {
			out.Value = 1
		}
		return
	case OP_SLTU, OP_SLTIU:
		out.Output = a - b
		if uint32(a) < uint32(b) {
			out.Value = 1
		}
		return
	case OP_SLL:
		value = int32(uint32(a) << (uint32(b) & 0x1f))
	case OP_SRL:
		value = int32(uint32(a) >> (uint32(b) & 0x1f))
	}

	out.Value = value
	out.Output = value

	return
}
