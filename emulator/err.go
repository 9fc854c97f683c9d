package emulator

import (
	"errors"

	"github.com/ezrec/sbasm/commands"
	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
	ErrNotLoaded = errors.New(f("no program loaded"))
)

// ErrLabelMissing is a pending block naming a label that was never placed.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label '%v' missing", string(err))
}

// ErrLabelDuplicate is a label placed twice.
type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label '%v' duplicated", string(err))
}

// ErrAddressUnmapped is a memory address outside of every region.
type ErrAddressUnmapped uint32

func (err ErrAddressUnmapped) Error() string {
	return f("address %#x not mapped", uint32(err))
}

// ErrMemoryOp is an unknown memory controller operation.
type ErrMemoryOp int32

func (err ErrMemoryOp) Error() string {
	return f("memory operation %d unknown", int32(err))
}

// ErrBlock is a fill with a block that is neither power nor air.
type ErrBlock string

func (err ErrBlock) Error() string {
	return f("block '%v' can not be placed", string(err))
}

// ErrRuntime indicates the tick and command block of a runtime error.
type ErrRuntime struct {
	Tick  int
	Pos   commands.Vec3
	Block commands.Block
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d at %v '%v': %v", err.Tick, err.Pos, err.Block, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
