// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package commands

import (
	"fmt"
)

//go:generate go tool stringer -linecomment -type=PlayerOp

// PlayerOp is a `scoreboard players operation` operator.
type PlayerOp int

const (
	OP_ASN = PlayerOp(iota) // =
	OP_ADD                  // +=
	OP_SUB                  // -=
	OP_MUL                  // *=
	OP_DIV                  // /=
	OP_REM                  // %=
	OP_MIN                  // <
	OP_MAX                  // >
	OP_SWP                  // ><
)

// Apply computes `lhs op rhs` with 32-bit wrapping and truncating division.
// Division or remainder by zero leaves lhs unchanged, and ok is false.
// OP_SWP returns rhs; the caller writes lhs back to the source.
func (op PlayerOp) Apply(lhs, rhs int32) (out int32, ok bool) {
	ok = true
	switch op {
	case OP_ASN, OP_SWP:
		out = rhs
	case OP_ADD:
		out = lhs + rhs
	case OP_SUB:
		out = lhs - rhs
	case OP_MUL:
		out = lhs * rhs
	case OP_DIV, OP_REM:
		if rhs == 0 {
			out, ok = lhs, false
			return
		}
		if op == OP_DIV {
			out = lhs / rhs
		} else {
			out = lhs % rhs
		}
	case OP_MIN:
		out = min(lhs, rhs)
	case OP_MAX:
		out = max(lhs, rhs)
	default:
		out, ok = lhs, false
	}
	return
}

// Command is one target machine command.
type Command interface {
	fmt.Stringer
	isCommand()
}

// PlayersSet is `scoreboard players set`.
type PlayersSet struct {
	Target    Target
	Objective string
	Value     int32
}

// PlayersAdd is `scoreboard players add`.
type PlayersAdd struct {
	Target    Target
	Objective string
	Value     int32
}

// PlayersRemove is `scoreboard players remove`.
type PlayersRemove struct {
	Target    Target
	Objective string
	Value     int32
}

// PlayersOperation is `scoreboard players operation`.
type PlayersOperation struct {
	Target          Target
	Objective       string
	Op              PlayerOp
	Source          Target
	SourceObjective string
}

// Execute runs Command as, and at, each entity matched by Target.
type Execute struct {
	Target  Target
	Offset  Vec3 // Relative to each matched entity.
	Command Command
}

// Fill places Block in every position of the box [Min, Max].
type Fill struct {
	Min   Vec3
	Max   Vec3
	Block string
}

// Raw is an opaque command passed through unchanged.
type Raw string

func (PlayersSet) isCommand()       {}
func (PlayersAdd) isCommand()       {}
func (PlayersRemove) isCommand()    {}
func (PlayersOperation) isCommand() {}
func (Execute) isCommand()          {}
func (Fill) isCommand()             {}
func (Raw) isCommand()              {}

func (cmd PlayersSet) String() string {
	return fmt.Sprintf("scoreboard players set %v %s %d", cmd.Target, cmd.Objective, cmd.Value)
}

func (cmd PlayersAdd) String() string {
	return fmt.Sprintf("scoreboard players add %v %s %d", cmd.Target, cmd.Objective, cmd.Value)
}

func (cmd PlayersRemove) String() string {
	return fmt.Sprintf("scoreboard players remove %v %s %d", cmd.Target, cmd.Objective, cmd.Value)
}

func (cmd PlayersOperation) String() string {
	return fmt.Sprintf("scoreboard players operation %v %s %v %v %s",
		cmd.Target, cmd.Objective, cmd.Op, cmd.Source, cmd.SourceObjective)
}

func (cmd Execute) String() string {
	return fmt.Sprintf("execute %v %v %v", cmd.Target, cmd.Offset.Relative(), cmd.Command)
}

func (cmd Fill) String() string {
	return fmt.Sprintf("fill %v %v %s", cmd.Min, cmd.Max, cmd.Block)
}

func (cmd Raw) String() string {
	return string(cmd)
}

// Operation builds a `scoreboard players operation` command.
func Operation(tgt Target, obj string, op PlayerOp, src Target, srcObj string) Command {
	return PlayersOperation{Target: tgt, Objective: obj, Op: op, Source: src, SourceObjective: srcObj}
}
