package assembler

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// with returns a new guard list of conds followed by extra.
func with(conds []ast.Cond, extra ...ast.Cond) []ast.Cond {
	return slices.Concat(conds, extra)
}

// emit queues an item. Labels are held back until the next non-label item,
// so that every label at one program point shares an address and a single
// power-off block.
func (asm *Assembler) emit(item Item) {
	if label, ok := item.(Label); ok {
		asm.pendingLabels = append(asm.pendingLabels, string(label))
		return
	}

	if len(asm.pendingLabels) != 0 {
		labels := asm.pendingLabels
		asm.pendingLabels = nil

		asm.coalesceLabels(labels)
		for _, label := range labels {
			asm.buffer = append(asm.buffer, Label(label))
		}
		asm.buffer = append(asm.buffer, asm.powerOff(labels[0]))
	}

	asm.buffer = append(asm.buffer, item)
}

// labelAddrOf returns the address of label, assigning the next one if needed.
// Address zero is never assigned.
func (asm *Assembler) labelAddrOf(label string) int32 {
	addr, ok := asm.labelAddr[label]
	if ok {
		return addr
	}

	asm.nextAddr++
	asm.labelAddr[label] = asm.nextAddr
	return asm.nextAddr
}

// coalesceLabels gives labels at one program point the same address.
// The first existing address wins; addresses already handed out are kept.
func (asm *Assembler) coalesceLabels(labels []string) {
	var addr int32
	for _, label := range labels {
		if existing, ok := asm.labelAddr[label]; ok {
			addr = existing
			break
		}
	}

	if addr == 0 {
		addr = asm.labelAddrOf(labels[0])
	}

	for _, label := range labels {
		if _, ok := asm.labelAddr[label]; !ok {
			asm.labelAddr[label] = addr
		}
	}

	log.Debugf("assembler: labels %v at address %d", labels, addr)
}

// uniqueID returns a number never returned before by this assembler.
func (asm *Assembler) uniqueID() int32 {
	id := asm.unique
	asm.unique++
	return int32(id)
}

func (asm *Assembler) uniqueLabel(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, asm.uniqueID())
}

// makeBlock wraps cmd so that it only runs when conds hold on the control
// entity selected by sel.
func makeBlock(sel commands.Selector, conds []ast.Cond, cmd commands.Command, track bool) commands.Block {
	if len(conds) != 0 {
		for _, cond := range conds {
			sel = sel.WithScore(cond.Reg.Objective(), cond.Interval)
		}
		cmd = commands.Execute{Target: sel, Offset: commands.RelZero, Command: cmd}
	}

	return commands.Block{Command: cmd, TrackOutput: track}
}

func (asm *Assembler) block(conds []ast.Cond, cmd commands.Command) commands.Block {
	return makeBlock(asm.config.ComputerSelector(), conds, cmd, asm.trackOutput)
}

func (asm *Assembler) emitBlock(conds []ast.Cond, cmd commands.Command) {
	asm.emit(Complete{Block: asm.block(conds, cmd)})
}

// stat routes a block statistic to a register.
func (asm *Assembler) stat(kind commands.StatKind, reg ast.Register) commands.Stat {
	return commands.Stat{Kind: kind, Target: asm.config.ComputerSelector(), Objective: reg.Objective()}
}

// opRR is `dst op= src` on registers.
func (asm *Assembler) opRR(dst ast.Register, op commands.PlayerOp, src ast.Register) commands.Command {
	computer := asm.config.ComputerSelector()
	return commands.Operation(computer, dst.Objective(), op, computer, src.Objective())
}

// opRX is `dst op= tgt.obj`.
func (asm *Assembler) opRX(dst ast.Register, op commands.PlayerOp, tgt commands.Target, obj string) commands.Command {
	return commands.Operation(asm.config.ComputerSelector(), dst.Objective(), op, tgt, obj)
}

// opXR is `tgt.obj op= src`.
func (asm *Assembler) opXR(tgt commands.Target, obj string, op commands.PlayerOp, src ast.Register) commands.Command {
	return commands.Operation(tgt, obj, op, asm.config.ComputerSelector(), src.Objective())
}

func (asm *Assembler) emitRR(conds []ast.Cond, dst ast.Register, op commands.PlayerOp, src ast.Register) {
	asm.emitBlock(conds, asm.opRR(dst, op, src))
}

func (asm *Assembler) emitRX(conds []ast.Cond, dst ast.Register, op commands.PlayerOp, tgt commands.Target, obj string) {
	asm.emitBlock(conds, asm.opRX(dst, op, tgt, obj))
}

// emitXR writes an external score, recording the success count in success.
func (asm *Assembler) emitXR(conds []ast.Cond, tgt commands.Target, obj string, op commands.PlayerOp, src ast.Register, success ast.Register) {
	block := asm.block(conds, asm.opXR(tgt, obj, op, src))
	if !success.IsNone() {
		block.Stats = append(block.Stats, asm.stat(commands.STAT_SUCCESS_COUNT, success))
	}
	asm.emit(Complete{Block: block})
}

func (asm *Assembler) emitSet(conds []ast.Cond, dst ast.Register, value int32) {
	asm.emitXSet(conds, asm.config.ComputerSelector(), dst.Objective(), value)
}

func (asm *Assembler) emitAdd(conds []ast.Cond, dst ast.Register, value int32) {
	asm.emitBlock(conds, commands.PlayersAdd{Target: asm.config.ComputerSelector(), Objective: dst.Objective(), Value: value})
}

func (asm *Assembler) emitRemove(conds []ast.Cond, dst ast.Register, value int32) {
	asm.emitBlock(conds, commands.PlayersRemove{Target: asm.config.ComputerSelector(), Objective: dst.Objective(), Value: value})
}

func (asm *Assembler) emitXSet(conds []ast.Cond, tgt commands.Target, obj string, value int32) {
	asm.emitBlock(conds, commands.PlayersSet{Target: tgt, Objective: obj, Value: value})
}

// emitPowerLabel powers label when conds hold.
func (asm *Assembler) emitPowerLabel(conds []ast.Cond, label string) {
	asm.emit(asm.fillLabel(conds, label, commands.BLOCK_REDSTONE))
}

// powerOff removes the power from label.
func (asm *Assembler) powerOff(label string) *Pending {
	return asm.fillLabel(nil, label, commands.BLOCK_AIR)
}

// fillLabel fills the extent of label with block once it is placed.
func (asm *Assembler) fillLabel(conds []ast.Cond, label string, block string) *Pending {
	sel := asm.config.ComputerSelector()
	conds = slices.Clone(conds)
	track := asm.trackOutput

	return NewPending(label, func(extent commands.Extent) commands.Block {
		fill := commands.Fill{Min: extent.Min, Max: extent.Max, Block: block}
		return makeBlock(sel, conds, fill, track)
	})
}

// clobbers returns true if op has more than one step, and one of the steps
// may write a register that conds depend on. Branches write t0 before the
// guard is read.
func (asm *Assembler) clobbers(op ast.Op, conds []ast.Cond) bool {
	if len(conds) == 0 {
		return false
	}

	var written []ast.Register
	switch op.Kind {
	case ast.OP_AND_RR, ast.OP_ORR_RR, ast.OP_EOR_RR,
		ast.OP_ASR_RR, ast.OP_LSR_RR, ast.OP_LSL_RR,
		ast.OP_UDIV_RR, ast.OP_UREM_RR,
		ast.OP_SRNG, ast.OP_URNG,
		ast.OP_LDR:
		written = []ast.Register{op.Dst}
	case ast.OP_STR,
		ast.OP_BR_L, ast.OP_BR_R, ast.OP_BRLNK_L, ast.OP_BRLNK_R:
	default:
		return false
	}

	r := asm.regs
	written = append(written, r.t0, r.t1, r.t2)

	for _, cond := range conds {
		if slices.Contains(written, cond.Reg) {
			return true
		}
	}

	return false
}

// latchGuard evaluates conds once, and returns a guard on the result.
// The latch overwrites the guard register, so conds may not read it.
func (asm *Assembler) latchGuard(op ast.Op, conds []ast.Cond) (latched []ast.Cond, err error) {
	guard := asm.regs.guard
	for _, cond := range conds {
		if cond.Reg == guard {
			err = ErrGuardReserved(op)
			return
		}
	}

	asm.emitSet(nil, guard, 0)
	asm.emitSet(conds, guard, 1)
	latched = []ast.Cond{ast.Eq(guard, 1)}
	return
}
