// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"io"
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
	"github.com/ezrec/sbasm/hw"
)

// Assembler lowers a stream of statements to a stream of Items.
//
// Statements are pulled from the source one at a time, only when every item
// produced by the previous statement has been consumed.
type Assembler struct {
	config   Config
	regs     regs
	computer *hw.Computer

	next func() (ast.Statement, bool)
	stop func()

	buffer []Item
	done   bool
	err    error
	index  int // Of the next statement, from zero.

	trackOutput bool
	usesMemory  bool
	usesBitwise bool

	unique        int
	pendingLabels []string
	labelAddr     map[string]int32
	nextAddr      int32
}

// New makes an assembler with DefaultConfig.
func New(computer *hw.Computer, source iter.Seq[ast.Statement]) *Assembler {
	return NewWithConfig(DefaultConfig, computer, source)
}

// NewWithConfig makes an assembler using the names in config.
func NewWithConfig(config Config, computer *hw.Computer, source iter.Seq[ast.Statement]) *Assembler {
	next, stop := iter.Pull(source)
	return &Assembler{
		config:    config,
		regs:      config.regs(),
		computer:  computer,
		next:      next,
		stop:      stop,
		labelAddr: map[string]int32{},
	}
}

// Close releases the statement source.
func (asm *Assembler) Close() error {
	asm.stop()
	return nil
}

// Config returns the naming configuration.
func (asm *Assembler) Config() Config {
	return asm.config
}

// Computer returns the machine description.
func (asm *Assembler) Computer() *hw.Computer {
	return asm.computer
}

// SetTrackOutput sets the TrackOutput flag of blocks emitted from now on.
func (asm *Assembler) SetTrackOutput(value bool) {
	asm.trackOutput = value
}

// UsesMemory returns true if any memory access has been lowered.
func (asm *Assembler) UsesMemory() bool {
	return asm.usesMemory
}

// UsesBitwise returns true if any lowering needed the bit lanes.
func (asm *Assembler) UsesBitwise() bool {
	return asm.usesBitwise
}

// LabelAddr returns the indirect branch address of a label, if it has one.
func (asm *Assembler) LabelAddr(label string) (addr int32, ok bool) {
	addr, ok = asm.labelAddr[label]
	return
}

// Next returns the next item, or io.EOF once the stream is complete.
// An assembly error is returned again on every later call.
func (asm *Assembler) Next() (item Item, err error) {
	for len(asm.buffer) == 0 {
		if asm.err != nil {
			err = asm.err
			return
		}

		if asm.done {
			err = io.EOF
			return
		}

		stmt, ok := asm.next()
		if !ok {
			asm.finish()
			continue
		}

		index := asm.index
		asm.index++
		err = asm.assemble(stmt)
		if err != nil {
			err = ErrStatement{Index: index, Statement: stmt, Err: err}
			asm.err = err
			asm.buffer = nil
			asm.stop()
			return
		}
	}

	item = asm.buffer[0]
	asm.buffer = asm.buffer[1:]

	return
}

// Items iterates over the remaining items. Iteration stops after the first
// error, which is yielded with a nil item.
func (asm *Assembler) Items() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for {
			item, err := asm.Next()
			if err == io.EOF {
				return
			}
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// finish ends the stream with the indirect jump table.
func (asm *Assembler) finish() {
	asm.emit(Terminal{})
	asm.emitJumpTable()
	asm.done = true
	asm.stop()
}

// assemble lowers one statement.
func (asm *Assembler) assemble(stmt ast.Statement) (err error) {
	if stmt.IsLabel() {
		log.Debugf("assembler: label %v", stmt.Label)
		asm.emit(Label(stmt.Label))
		return
	}

	conds := stmt.Conds
	op := stmt.Op

	log.Debugf("assembler: %v", stmt)

	if asm.clobbers(op, conds) {
		conds, err = asm.latchGuard(op, conds)
		if err != nil {
			return
		}
	}

	switch op.Kind {
	case ast.OP_LDR:
		err = asm.emitLdr(conds, op.Dst, op.Src)
	case ast.OP_STR:
		err = asm.emitStr(conds, op.Src, op.Dst)
	case ast.OP_ADD_RR:
		asm.emitRR(conds, op.Dst, commands.OP_ADD, op.Src)
	case ast.OP_ADD_RI:
		asm.emitAdd(conds, op.Dst, op.Imm)
	case ast.OP_ADD_XR:
		asm.emitXR(conds, op.Target, op.Objective, commands.OP_ADD, op.Src, op.Success)
	case ast.OP_SUB_RR:
		asm.emitRR(conds, op.Dst, commands.OP_SUB, op.Src)
	case ast.OP_SUB_RI:
		asm.emitRemove(conds, op.Dst, op.Imm)
	case ast.OP_SUB_XR:
		asm.emitXR(conds, op.Target, op.Objective, commands.OP_SUB, op.Src, op.Success)
	case ast.OP_AND_RR:
		asm.emitLogic(conds, op.Dst, commands.OP_MUL, op.Src)
	case ast.OP_ORR_RR:
		asm.emitLogic(conds, op.Dst, commands.OP_MAX, op.Src)
	case ast.OP_EOR_RR:
		asm.emitLogic(conds, op.Dst, commands.OP_ADD, op.Src)
	case ast.OP_ASR_RR:
		asm.emitAsr(conds, op.Dst, op.Src)
	case ast.OP_LSR_RR:
		asm.emitLsr(conds, op.Dst, op.Src)
	case ast.OP_LSL_RR:
		asm.emitLsl(conds, op.Dst, op.Src)
	case ast.OP_MOV_RR:
		asm.emitRR(conds, op.Dst, commands.OP_ASN, op.Src)
	case ast.OP_MOV_RI:
		asm.emitSet(conds, op.Dst, op.Imm)
	case ast.OP_MOV_RX:
		asm.emitRX(conds, op.Dst, commands.OP_ASN, op.Target, op.Objective)
	case ast.OP_MOV_XR:
		asm.emitXR(conds, op.Target, op.Objective, commands.OP_ASN, op.Src, op.Success)
	case ast.OP_MUL_RR:
		asm.emitRR(conds, op.Dst, commands.OP_MUL, op.Src)
	case ast.OP_SDIV_RR:
		asm.emitRR(conds, op.Dst, commands.OP_DIV, op.Src)
	case ast.OP_UDIV_RR:
		asm.emitUdiv(conds, op.Dst, op.Src)
	case ast.OP_SREM_RR:
		asm.emitRR(conds, op.Dst, commands.OP_REM, op.Src)
	case ast.OP_UREM_RR:
		asm.emitUrem(conds, op.Dst, op.Src)
	case ast.OP_SRNG:
		err = asm.emitSrng(conds, op)
	case ast.OP_URNG:
		err = asm.emitUrng(conds, op)
	case ast.OP_BR_L:
		asm.emitBranch(conds, false, op.Label, ast.Register{})
	case ast.OP_BR_R:
		asm.emitBranch(conds, false, "", op.Src)
	case ast.OP_BRLNK_L:
		asm.emitBranch(conds, true, op.Label, ast.Register{})
	case ast.OP_BRLNK_R:
		asm.emitBranch(conds, true, "", op.Src)
	case ast.OP_HALT:
		asm.emit(Terminal{})
	case ast.OP_RAW:
		block := asm.block(conds, commands.Raw(op.Raw))
		for _, out := range op.Outs {
			block.Stats = append(block.Stats, asm.stat(out.Stat, out.Reg))
		}
		asm.emit(Complete{Block: block})
	default:
		err = ErrUnsupported(op)
	}

	return
}
