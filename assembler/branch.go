package assembler

import (
	"cmp"
	"maps"
	"slices"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// emitBranch lowers b, bl, br and blr. Register targets go through the
// indirect jump table; label targets power the label directly.
// Both paths end the segment, and the fall through resumes at a fresh label.
func (asm *Assembler) emitBranch(conds []ast.Cond, link bool, label string, reg ast.Register) {
	r := asm.regs

	asm.emitSet(nil, r.t0, 0)
	asm.emitSet(conds, r.t0, 1)

	taken := []ast.Cond{ast.Eq(r.t0, 1)}
	notTaken := []ast.Cond{ast.Eq(r.t0, 0)}

	cont := asm.uniqueLabel("br_cont_")

	if !reg.IsNone() {
		// Before the link register is overwritten, for `blr lr`.
		asm.emitRR(taken, r.indAddr, commands.OP_ASN, reg)
		label = asm.config.JumpIndirect
	}

	if link {
		asm.emitSet(taken, r.link, asm.labelAddrOf(cont))
	}

	asm.emitPowerLabel(taken, label)
	asm.emitPowerLabel(notTaken, cont)
	asm.emit(Terminal{})
	asm.emit(Label(cont))
}

// emitJumpTable dispatches on IndAddr to every label with an address.
func (asm *Assembler) emitJumpTable() {
	type target struct {
		label string
		addr  int32
	}

	var targets []target
	for _, label := range slices.Sorted(maps.Keys(asm.labelAddr)) {
		targets = append(targets, target{label: label, addr: asm.labelAddr[label]})
	}
	slices.SortStableFunc(targets, func(a, b target) int {
		return cmp.Compare(a.addr, b.addr)
	})

	asm.emit(Label(asm.config.JumpIndirect))
	for _, tgt := range targets {
		asm.emitPowerLabel([]ast.Cond{ast.Eq(asm.regs.indAddr, tgt.addr)}, tgt.label)
	}
	asm.emit(Terminal{})
}
