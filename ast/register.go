// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"fmt"

	"github.com/ezrec/sbasm/commands"
)

// RegisterKind is the register file a register belongs to.
type RegisterKind int

const (
	REG_NONE = RegisterKind(iota) // _
	REG_GEN                       // r
	REG_PRED                      // p
	REG_SPEC                      // %
)

// Register is a logical register, stored as a score on the control entity.
// The zero value is no register.
type Register struct {
	Kind  RegisterKind
	Index int
	Name  string // Only for REG_SPEC.
}

// Gen is general purpose register rN.
func Gen(n int) Register {
	return Register{Kind: REG_GEN, Index: n}
}

// Pred is predicate register pN.
func Pred(n int) Register {
	return Register{Kind: REG_PRED, Index: n}
}

// Spec is a named special register.
func Spec(name string) Register {
	return Register{Kind: REG_SPEC, Name: name}
}

// IsNone returns true for the zero register.
func (reg Register) IsNone() bool {
	return reg.Kind == REG_NONE
}

// Objective is the name of the score that holds the register.
func (reg Register) Objective() string {
	switch reg.Kind {
	case REG_NONE:
		return ""
	case REG_GEN:
		return fmt.Sprintf("r%d", reg.Index)
	case REG_PRED:
		return fmt.Sprintf("p%d", reg.Index)
	default:
		return reg.Name
	}
}

func (reg Register) String() string {
	if reg.IsNone() {
		return "_"
	}
	if reg.Kind == REG_SPEC && reg.Name != "lr" {
		return "%" + reg.Name
	}
	return reg.Objective()
}

// Cond guards an instruction on a register's value.
type Cond struct {
	Reg      Register
	Interval commands.Interval
}

// NewCond guards on reg lying in interval.
func NewCond(reg Register, interval commands.Interval) Cond {
	return Cond{Reg: reg, Interval: interval}
}

// Lt guards on reg < value.
func Lt(reg Register, value int32) Cond {
	return NewCond(reg, commands.AtMost(value-1))
}

// Ge guards on reg >= value.
func Ge(reg Register, value int32) Cond {
	return NewCond(reg, commands.AtLeast(value))
}

// Eq guards on reg == value.
func Eq(reg Register, value int32) Cond {
	return NewCond(reg, commands.Bounded(value, value))
}

// Within guards on start <= reg < end.
func Within(reg Register, start, end int32) Cond {
	return NewCond(reg, commands.Bounded(start, end-1))
}

func (cond Cond) String() string {
	return fmt.Sprintf("?%v=%v", cond.Reg, cond.Interval)
}
