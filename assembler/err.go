package assembler

import (
	"errors"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/hw"
	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

var (
	ErrPendingResolved = errors.New(f("pending block already resolved"))
	ErrExtentEmpty     = errors.New(f("pending block resolved with an empty extent"))
)

// ErrUnsupported is an instruction with no lowering.
type ErrUnsupported ast.Op

func (err ErrUnsupported) Error() string {
	return f("instruction not supported: %v", ast.Op(err))
}

// ErrAddressSpace is a memory region that needs more than 31 address bits.
type ErrAddressSpace hw.MemoryRegion

func (err ErrAddressSpace) Error() string {
	return f("memory region %v exceeds the 31-bit address space", hw.MemoryRegion(err))
}

// ErrRangeInverted is a range test with min > max.
type ErrRangeInverted ast.Op

func (err ErrRangeInverted) Error() string {
	return f("range test has min > max: %v", ast.Op(err))
}

// ErrGuardReserved is a guard on the latch register of an instruction that
// needs its guard latched.
type ErrGuardReserved ast.Op

func (err ErrGuardReserved) Error() string {
	return f("guard reads the latch register: %v", ast.Op(err))
}

// ErrStatement reports the statement that failed to assemble.
type ErrStatement struct {
	Index     int
	Statement ast.Statement
	Err       error
}

func (err ErrStatement) Error() string {
	return f("statement %d '%v' %v", err.Index, err.Statement, err.Err)
}

func (err ErrStatement) Unwrap() error {
	return err.Err
}
