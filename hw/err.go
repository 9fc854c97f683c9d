package hw

import (
	"errors"

	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

var (
	ErrRegionEmpty = errors.New(f("memory region has no size"))
)

type ErrMachine struct {
	Err error
}

func (err ErrMachine) Error() string {
	return f("machine description: %v", err.Err)
}

func (err ErrMachine) Unwrap() error {
	return err.Err
}
