package ast

import (
	"strings"
)

// Statement is a label declaration or a guarded instruction.
type Statement struct {
	Label string // Set for label declarations.
	Conds []Cond // Guards on the instruction.
	Op    Op
}

// LabelStmt declares a label at the current program point.
func LabelStmt(name string) Statement {
	return Statement{Label: name}
}

// Instr is an instruction executed only when every cond holds.
func Instr(op Op, conds ...Cond) Statement {
	return Statement{Conds: conds, Op: op}
}

// IsLabel returns true for label declarations.
func (stmt Statement) IsLabel() bool {
	return len(stmt.Label) != 0
}

func (stmt Statement) String() string {
	if stmt.IsLabel() {
		return stmt.Label + ":"
	}

	var sb strings.Builder
	for _, cond := range stmt.Conds {
		sb.WriteString(cond.String())
		sb.WriteString(" ")
	}
	sb.WriteString(stmt.Op.String())
	return sb.String()
}
