// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// Bitwise operations work on the 32 bit lane entities. Lane k holds
// BitNumber = k and BitComponent = 1 << k, so lane 31 holds math.MinInt32.

// bitVecOp runs `lane.lhs op= lane.rhs` on every lane.
func (asm *Assembler) bitVecOp(conds []ast.Cond, lhs string, op commands.PlayerOp, rhs string) {
	one := asm.config.BitOne()
	asm.emitBlock(conds, commands.Execute{
		Target:  asm.config.BitAll(),
		Offset:  commands.RelZero,
		Command: commands.Operation(one, lhs, op, one, rhs),
	})
}

// expandBits sets lane objective bitObj to bit k of reg, for each lane k.
func (asm *Assembler) expandBits(conds []ast.Cond, reg ast.Register, bitObj string) {
	cfg := asm.config
	all := cfg.BitAll()
	neg := with(conds, ast.Lt(reg, 0))

	// Every lane gets the whole value.
	asm.emitBlock(conds, asm.opXR(all, bitObj, commands.OP_ASN, reg))

	// Clear the sign, lane 31 is patched up below.
	asm.emitBlock(neg, asm.opXR(all, bitObj, commands.OP_SUB, asm.regs.min))

	// Shift each lane's copy down by its own bit number...
	asm.bitVecOp(conds, bitObj, commands.OP_DIV, cfg.BitComponent)

	// ...and keep only the low bit.
	asm.emitBlock(conds, commands.Operation(all, bitObj, commands.OP_REM, cfg.ComputerSelector(), cfg.Two))

	high := all.WithScore(cfg.BitNumber, commands.Bounded(31, 31))
	asm.emitXSet(neg, high, bitObj, 1)
}

// accumBits sets dst to the sum of the weighted lane bits in bitObj.
func (asm *Assembler) accumBits(conds []ast.Cond, dst ast.Register, bitObj string) {
	cfg := asm.config

	asm.bitVecOp(conds, bitObj, commands.OP_MUL, cfg.BitComponent)
	asm.emitRR(conds, dst, commands.OP_ASN, asm.regs.zero)
	asm.emitBlock(conds, commands.Execute{
		Target:  cfg.BitAll(),
		Offset:  commands.RelZero,
		Command: asm.opRX(dst, commands.OP_ADD, cfg.BitOne(), bitObj),
	})
}

// emitLogic lowers and (OP_MUL), orr (OP_MAX) and eor (OP_ADD).
func (asm *Assembler) emitLogic(conds []ast.Cond, dst ast.Register, op commands.PlayerOp, src ast.Register) {
	asm.usesBitwise = true

	cfg := asm.config
	asm.expandBits(conds, dst, cfg.Tmp0)
	asm.expandBits(conds, src, cfg.Tmp1)
	asm.bitVecOp(conds, cfg.Tmp0, op, cfg.Tmp1)
	if op == commands.OP_ADD {
		asm.emitBlock(conds, commands.Operation(cfg.BitAll(), cfg.Tmp0, commands.OP_REM, cfg.ComputerSelector(), cfg.Two))
	}
	asm.accumBits(conds, dst, cfg.Tmp0)
}

// activateBits sets lane t0 to k - 32 + amount, so that exactly the top
// amount lanes are non-negative.
func (asm *Assembler) activateBits(conds []ast.Cond, amount ast.Register) {
	cfg := asm.config
	all := cfg.BitAll()

	asm.bitVecOp(conds, cfg.Tmp0, commands.OP_ASN, cfg.BitNumber)
	asm.emitBlock(conds, commands.PlayersRemove{Target: all, Objective: cfg.Tmp0, Value: 32})
	asm.emitBlock(conds, asm.opXR(all, cfg.Tmp0, commands.OP_ADD, amount))
}

// activeBits selects lanes whose t0 is in interval.
func (asm *Assembler) activeBits(interval commands.Interval) commands.Selector {
	return asm.config.BitAll().WithScore(asm.config.Tmp0, interval)
}

// rawShiftRight sets t0 to the low 31 bits of dst, shifted right by src.
func (asm *Assembler) rawShiftRight(conds []ast.Cond, dst, src ast.Register) {
	r := asm.regs

	asm.emitRR(conds, r.t0, commands.OP_ASN, dst)
	asm.emitRR(with(conds, ast.Lt(dst, 0)), r.t0, commands.OP_SUB, r.min)

	asm.activateBits(conds, src)

	// Halve once per active lane.
	asm.emitBlock(conds, commands.Execute{
		Target:  asm.activeBits(commands.AtLeast(0)),
		Offset:  commands.RelZero,
		Command: asm.opRR(r.t0, commands.OP_DIV, r.two),
	})
}

func (asm *Assembler) emitAsr(conds []ast.Cond, dst, src ast.Register) {
	asm.usesBitwise = true

	r := asm.regs
	asm.rawShiftRight(conds, dst, src)

	// Sign extend: add lanes 31-src through 31.
	asm.emitBlock(with(conds, ast.Lt(dst, 0)), commands.Execute{
		Target:  asm.activeBits(commands.AtLeast(-1)),
		Offset:  commands.RelZero,
		Command: asm.opRX(r.t0, commands.OP_ADD, asm.config.BitOne(), asm.config.BitComponent),
	})

	asm.emitRR(conds, dst, commands.OP_ASN, r.t0)
}

func (asm *Assembler) emitLsr(conds []ast.Cond, dst, src ast.Register) {
	asm.usesBitwise = true

	r := asm.regs
	asm.rawShiftRight(conds, dst, src)

	// Put the old sign bit back at position 31-src.
	high := asm.activeBits(commands.Bounded(-1, -1))
	high.Count = 1
	asm.emitRX(with(conds, ast.Lt(dst, 0)), r.t0, commands.OP_ADD, high, asm.config.BitComponent)

	asm.emitRR(conds, dst, commands.OP_ASN, r.t0)
}

func (asm *Assembler) emitLsl(conds []ast.Cond, dst, src ast.Register) {
	asm.usesBitwise = true

	asm.activateBits(conds, src)

	// Double once per active lane.
	asm.emitBlock(conds, commands.Execute{
		Target:  asm.activeBits(commands.AtLeast(0)),
		Offset:  commands.RelZero,
		Command: asm.opRR(dst, commands.OP_MUL, asm.regs.two),
	})
}
