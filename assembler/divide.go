// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// Unsigned division and remainder are built from the signed operations.
//
// A divisor with the high bit set is at least 2^31, so the quotient is 0 or 1.
// A dividend with the high bit set is shifted right by one to fit in 31 bits,
// divided, and the final quotient bit is computed by hand from the partial
// remainder and the dropped low bit.

func (asm *Assembler) emitUdiv(conds []ast.Cond, dst, src ast.Register) {
	if dst == src {
		// x / x, with division by zero leaving zero unchanged.
		asm.emitSet(with(conds, ast.Lt(dst, 0)), dst, 1)
		asm.emitSet(with(conds, ast.Ge(dst, 1)), dst, 1)
		return
	}

	r := asm.regs

	srcPos := with(conds, ast.Ge(src, 0))
	negPos := with(conds, ast.Lt(r.t0, 0), ast.Ge(src, 0))

	asm.emitRR(conds, r.t0, commands.OP_ASN, dst)

	// dst >>>= 1, when the dividend is negative.
	asm.emitRR(negPos, dst, commands.OP_ADD, r.min)
	asm.emitRR(negPos, dst, commands.OP_DIV, r.two)
	asm.emitAdd(negPos, dst, 1<<30)
	asm.emitRR(negPos, r.t1, commands.OP_ASN, dst)

	asm.emitRR(srcPos, dst, commands.OP_DIV, src)

	// Bring back the dropped bit, and fix up the quotient.
	asm.emitRR(negPos, dst, commands.OP_MUL, r.two)
	asm.emitRR(negPos, r.t1, commands.OP_REM, src)
	asm.emitRR(negPos, r.t1, commands.OP_MUL, r.two)
	asm.emitRR(negPos, r.t2, commands.OP_ASN, r.t0)
	asm.emitRR(negPos, r.t2, commands.OP_ADD, r.min)
	asm.emitRR(negPos, r.t2, commands.OP_REM, r.two)
	asm.emitRR(negPos, r.t1, commands.OP_ADD, r.t2)
	asm.emitRR(negPos, r.t2, commands.OP_ASN, r.t1)
	asm.emitRR(negPos, r.t2, commands.OP_SUB, src)
	asm.emitAdd(negPos, dst, 1)
	asm.emitRemove(with(negPos, ast.Ge(r.t1, 0), ast.Lt(r.t2, 0)), dst, 1)

	// Huge divisor: the quotient is 1 only if the dividend is at least as big.
	srcNeg := with(conds, ast.Lt(src, 0))
	asm.emitSet(srcNeg, dst, 0)
	asm.emitRR(srcNeg, r.t1, commands.OP_ASN, r.t0)
	asm.emitRR(srcNeg, r.t1, commands.OP_SUB, src)
	asm.emitSet(with(srcNeg, ast.Lt(r.t0, 0), ast.Ge(r.t1, 0)), dst, 1)
}

func (asm *Assembler) emitUrem(conds []ast.Cond, dst, src ast.Register) {
	if dst == src {
		asm.emitSet(conds, dst, 0)
		return
	}

	r := asm.regs

	asm.emitRR(conds, r.t0, commands.OP_ASN, dst)

	// Both huge: subtract once, and undo it if that went negative.
	negNeg := with(conds, ast.Lt(dst, 0), ast.Lt(src, 0))
	asm.emitRR(negNeg, dst, commands.OP_SUB, src)
	asm.emitRR(negNeg, dst, commands.OP_ADD, src)

	srcPos := with(conds, ast.Ge(src, 0))
	negPos := with(conds, ast.Lt(r.t0, 0), ast.Ge(src, 0))

	// dst >>>= 1, when the dividend is negative.
	asm.emitRR(negPos, dst, commands.OP_ADD, r.min)
	asm.emitRR(negPos, dst, commands.OP_DIV, r.two)
	asm.emitAdd(negPos, dst, 1<<30)

	asm.emitRR(srcPos, dst, commands.OP_REM, src)

	// Bring back the dropped bit, and reduce once more.
	asm.emitRR(negPos, dst, commands.OP_MUL, r.two)
	asm.emitRR(negPos, r.t1, commands.OP_ASN, r.t0)
	asm.emitRR(negPos, r.t1, commands.OP_ADD, r.min)
	asm.emitRR(negPos, r.t1, commands.OP_REM, r.two)
	asm.emitRR(negPos, dst, commands.OP_ADD, r.t1)
	asm.emitRR(negPos, r.t1, commands.OP_ASN, dst)
	asm.emitRR(negPos, r.t1, commands.OP_SUB, src)
	asm.emitRR(with(negPos, ast.Lt(r.t1, 0), ast.Ge(dst, 0)), dst, commands.OP_ADD, src)
	asm.emitRR(negPos, dst, commands.OP_SUB, src)
}
