package parser

import (
	"iter"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/internal"
)

// Line is a parsed statement, and where it came from.
type Line struct {
	LineNo    int
	Text      string
	Statement ast.Statement
}

// Program is a parsed source file.
type Program struct {
	Lines []Line
}

// Statements iterates over the program's statements.
func (prog *Program) Statements() iter.Seq[ast.Statement] {
	return func(yield func(ast.Statement) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Statement) {
				return
			}
		}
	}
}

// Labels iterates over the declared labels.
func (prog *Program) Labels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range prog.Lines {
			if line.Statement.IsLabel() && !yield(line.Statement.Label) {
				return
			}
		}
	}
}

// Targets iterates over the labels named by branches, with their line.
func (prog *Program) Targets() iter.Seq2[string, Line] {
	return func(yield func(string, Line) bool) {
		for _, line := range prog.Lines {
			op := line.Statement.Op
			if op.Kind != ast.OP_BR_L && op.Kind != ast.OP_BRLNK_L {
				continue
			}
			if !yield(op.Label, line) {
				return
			}
		}
	}
}

// Link joins programs in order, checking that every branch target is
// declared exactly once across all of them.
func Link(progs ...*Program) (seq iter.Seq[ast.Statement], err error) {
	declared := map[string]bool{}

	var seqs []iter.Seq[ast.Statement]
	var targets []iter.Seq2[string, Line]
	for _, prog := range progs {
		for name := range prog.Labels() {
			if declared[name] {
				err = ErrLabelDuplicate(name)
				return
			}
			declared[name] = true
		}
		seqs = append(seqs, prog.Statements())
		targets = append(targets, prog.Targets())
	}

	for name, line := range internal.Concat2(targets...) {
		if !declared[name] {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrLabelMissing(name)}
			return
		}
	}

	seq = internal.Concat(seqs...)
	return
}
