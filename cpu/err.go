package cpu

import (
	"errors"

	"github.com/ezrec/scmips/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcExhausted       = errors.New(f("pc past end of program"))
	ErrStopped           = errors.New(f("cpu stopped"))
	ErrOpcodeUnsupported = errors.New(f("opcode unsupported"))
	ErrProgramMissing    = errors.New(f("program missing"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrAddressInvalid     = errors.New(f("address operand invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrLabelMissing names a branch or jump target that is not defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrRegisterName names an unrecognised register.
type ErrRegisterName string

func (er ErrRegisterName) Error() string {
	return f("register '%v' invalid", string(er))
}

func (er ErrRegisterName) Is(err error) bool {
	return err == ErrRegisterInvalid
}

// ErrOpcode reports the instruction that failed to execute.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad instruction '%v' (%v)", eo.Text, eo.Op.String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
