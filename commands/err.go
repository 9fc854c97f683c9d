package commands

import (
	"errors"

	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

var (
	ErrTargetInvalid = errors.New(f("target invalid"))
)
