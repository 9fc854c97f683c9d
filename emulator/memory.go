package emulator

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/hw"
)

// Bank is the backing store of one memory region.
// Words never written read as zero.
type Bank struct {
	Region hw.MemoryRegion
	Words  map[uint32]int32
}

// NewBank makes an empty bank for region.
func NewBank(region hw.MemoryRegion) *Bank {
	return &Bank{Region: region, Words: map[uint32]int32{}}
}

// Contains returns true if addr is inside the bank's region.
func (bank *Bank) Contains(addr uint32) bool {
	return addr >= bank.Region.Start && uint64(addr) < bank.Region.End()
}

// Load reads the word at addr.
func (bank *Bank) Load(addr uint32) (value int32, err error) {
	if !bank.Contains(addr) {
		err = ErrAddressUnmapped(addr)
		return
	}
	value = bank.Words[addr]
	return
}

// Store writes the word at addr.
func (bank *Bank) Store(addr uint32, value int32) (err error) {
	if !bank.Contains(addr) {
		err = ErrAddressUnmapped(addr)
		return
	}
	bank.Words[addr] = value
	return
}

// Clear zeroes every word.
func (bank *Bank) Clear() {
	clear(bank.Words)
}

// bank returns the bank holding addr.
func (emu *Emulator) bank(addr uint32) (bank *Bank, err error) {
	for _, bank = range emu.Banks {
		if bank.Contains(addr) {
			return
		}
	}
	bank = nil
	err = ErrAddressUnmapped(addr)
	return
}

// Peek reads memory directly.
func (emu *Emulator) Peek(addr uint32) (value int32, err error) {
	bank, err := emu.bank(addr)
	if err != nil {
		return
	}
	return bank.Load(addr)
}

// Poke writes memory directly.
func (emu *Emulator) Poke(addr uint32, value int32) (err error) {
	bank, err := emu.bank(addr)
	if err != nil {
		return
	}
	return bank.Store(addr, value)
}

// control runs the memory controller of region, serving the request
// written to the region entity.
func (emu *Emulator) control(region *hw.MemoryRegion) (err error) {
	cfg := emu.config

	ent := emu.World.Find(region.Name())
	if ent == nil {
		log.Warnf("emulator: %v: controller entity missing", region)
		return
	}

	op, hasOp := ent.Score(cfg.MemOp)
	addr, hasAddr := ent.Score(cfg.MemAddr)
	if !hasOp || !hasAddr {
		log.Warnf("emulator: %v: powered without a request", region)
		return
	}

	bank, err := emu.bank(uint32(addr))
	if err != nil {
		return
	}

	switch op {
	case assembler.MEM_OP_LOAD:
		var value int32
		value, err = bank.Load(uint32(addr))
		if err != nil {
			return
		}
		ent.SetScore(cfg.MemData, value)
		if emu.Verbose {
			log.Infof("emulator: %v: ldr [%#x] = %d", region, uint32(addr), value)
		}
	case assembler.MEM_OP_STORE:
		value, _ := ent.Score(cfg.MemData)
		err = bank.Store(uint32(addr), value)
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Infof("emulator: %v: str [%#x] = %d", region, uint32(addr), value)
		}
	default:
		err = ErrMemoryOp(op)
	}

	return
}
