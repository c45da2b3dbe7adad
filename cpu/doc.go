// Package cpu implements a single-cycle MIPS subset processor and its loader.
//
// The processor holds a program counter, thirty-two 32-bit registers with $zero
// hardwired to 0, and a sparse word-addressed data memory. Each call to
// [Cpu.Tick] fetches, decodes, and executes exactly one instruction, and
// returns a [Record] of the datapath signals observed during that cycle.
//
// The assembler reads MIPS assembly text with labels, equates, and
// compile-time $(...) expression evaluation, and produces a [Program].
// Loading stops after the 'sll $zero, $zero, 0' halt instruction.
package cpu
