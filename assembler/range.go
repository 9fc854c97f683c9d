package assembler

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// emitSrng sets dst to 1 if the signed value of test lies in [min, max],
// and to 0 otherwise. A missing bound is open.
func (asm *Assembler) emitSrng(conds []ast.Cond, op ast.Op) (err error) {
	lo, hi := op.Min.Signed(), op.Max.Signed()
	if lo != nil && hi != nil && *lo > *hi {
		err = ErrRangeInverted(op)
		return
	}

	interval, ok := commands.NewInterval(lo, hi)
	if !ok {
		log.Warnf("assembler: %v: range test has no bounds, always true", op)
	}

	asm.srng(conds, op.Dst, op.Src, []commands.Interval{interval}, ok)
	return
}

// emitUrng sets dst to 1 if the unsigned value of test lies in [min, max],
// and to 0 otherwise. A missing bound is the end of the unsigned range.
func (asm *Assembler) emitUrng(conds []ast.Cond, op ast.Op) (err error) {
	lo, ok := op.Min.Unsigned()
	if !ok {
		lo = 0
	}
	hi, ok := op.Max.Unsigned()
	if !ok {
		hi = math.MaxUint32
	}

	if lo > hi {
		err = ErrRangeInverted(op)
		return
	}

	const signedMax = uint32(math.MaxInt32)

	var intervals []commands.Interval
	switch {
	case hi <= signedMax:
		// Both non-negative when signed.
		interval := commands.Bounded(int32(lo), int32(hi))
		if hi == signedMax {
			interval = commands.AtLeast(int32(lo))
		}
		intervals = append(intervals, interval)
	case lo > signedMax:
		// Both negative when signed.
		interval := commands.Bounded(int32(lo), int32(hi))
		if int32(lo) == math.MinInt32 {
			interval = commands.AtMost(int32(hi))
		}
		intervals = append(intervals, interval)
	default:
		// Wraps through zero when signed: the union of two disjoint tests.
		intervals = append(intervals,
			commands.Bounded(int32(lo), math.MaxInt32),
			commands.Bounded(math.MinInt32, int32(hi)),
		)
	}

	asm.srng(conds, op.Dst, op.Src, intervals, true)
	return
}

// srng sets dst to 1 if test lies in any of the disjoint intervals.
// If bounded is false, dst is set to 1 unconditionally.
func (asm *Assembler) srng(conds []ast.Cond, dst, test ast.Register, intervals []commands.Interval, bounded bool) {
	if dst == test {
		asm.emitRR(conds, asm.regs.t0, commands.OP_ASN, test)
		test = asm.regs.t0
	}

	asm.emitSet(conds, dst, 0)

	if !bounded {
		asm.emitSet(conds, dst, 1)
		return
	}

	for _, interval := range intervals {
		asm.emitSet(with(conds, ast.NewCond(test, interval)), dst, 1)
	}
}
