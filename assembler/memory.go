package assembler

import (
	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// Memory is a request/response exchange with the region controllers.
// The controller entities whose region holds the address are tagged with a
// fresh transaction id, the request is written to the tagged entities, and the
// controllers are powered. The response is read back one tick later.

const (
	MEM_OP_LOAD  = 0
	MEM_OP_STORE = 1
)

// regionConds guards on addr lying in each memory region.
func (asm *Assembler) regionConds(conds []ast.Cond, addr ast.Register) (guards [][]ast.Cond, err error) {
	for _, region := range asm.computer.Memory {
		if !region.Addressable() {
			err = ErrAddressSpace(region)
			return
		}
		guards = append(guards, with(conds, ast.Within(addr, int32(region.Start), int32(region.End()))))
	}
	return
}

// memRequest tags the controllers for addr, writes the request, and powers
// the controllers. It returns the selector for the tagged controllers.
func (asm *Assembler) memRequest(conds []ast.Cond, addr ast.Register, memOp int32, data ast.Register) (tagged commands.Selector, err error) {
	guards, err := asm.regionConds(conds, addr)
	if err != nil {
		return
	}

	asm.usesMemory = true

	cfg := asm.config
	id := asm.uniqueID()

	for n, region := range asm.computer.Memory {
		asm.emitXSet(guards[n], region.Selector(), cfg.MemTag, id)
	}

	tagged = commands.Entity().WithScore(cfg.MemTag, commands.Bounded(id, id))

	asm.emitXSet(conds, tagged, cfg.MemOp, memOp)
	asm.emitXR(conds, tagged, cfg.MemAddr, commands.OP_ASN, addr, asm.regs.t0)
	if !data.IsNone() {
		asm.emitXR(conds, tagged, cfg.MemData, commands.OP_ASN, data, asm.regs.t0)
	}

	for n, region := range asm.computer.Memory {
		asm.emitPowerLabel(guards[n], region.Label())
	}

	return
}

// memWait gives the controllers one tick to respond.
func (asm *Assembler) memWait(prefix string) {
	cont := asm.uniqueLabel(prefix)
	asm.emitPowerLabel(nil, cont)
	asm.emit(Terminal{})
	asm.emit(Label(cont))
}

func (asm *Assembler) emitLdr(conds []ast.Cond, dst, addr ast.Register) (err error) {
	tagged, err := asm.memRequest(conds, addr, MEM_OP_LOAD, ast.Register{})
	if err != nil {
		return
	}

	asm.memWait("ldr_cont_")

	asm.emitRX(conds, dst, commands.OP_ASN, tagged, asm.config.MemData)

	return
}

func (asm *Assembler) emitStr(conds []ast.Cond, value, addr ast.Register) (err error) {
	_, err = asm.memRequest(conds, addr, MEM_OP_STORE, value)
	if err != nil {
		return
	}

	asm.memWait("str_cont_")

	return
}
