package parser

import (
	"errors"

	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

var (
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroDepth         = errors.New(f(".macro expansion too deep"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrGuardMissing       = errors.New(f("guard without instruction"))
)

// ErrLabelMissing is a branch to a label that is never declared.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrLabelDuplicate is a label declared twice.
type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(err))
}

// ErrLabelInvalid is a label that is not an identifier.
type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("'%v' is not a valid label", string(err))
}

// ErrRegisterInvalid is an operand that should have been a register.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}

// ErrGuardInvalid is a malformed ?reg=min..max guard.
type ErrGuardInvalid string

func (err ErrGuardInvalid) Error() string {
	return f("'%v' is not a valid guard", string(err))
}

// ErrOperandInvalid is a malformed operand.
type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not a valid operand", string(err))
}

// ErrSyntax reports the source line of a parse error.
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

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
