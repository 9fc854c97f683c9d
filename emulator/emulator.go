// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
	"github.com/ezrec/sbasm/hw"
)

const (
	BIT_LANES     = 32    // Number of bit lane entities.
	MAX_TICKS     = 10000 // Default tick limit of Run.
	ENTITY_Y      = FABRIC_Y
	COMPUTER_Z    = -4
	LANE_Z        = -8
	LANE_SPACING  = 2
	CONTROLLER_DY = -1
)

// Emulator state. World + placed program + memory banks.
type Emulator struct {
	Verbose  bool    // If set, enables verbose logging.
	MaxTicks int     // Tick limit of Run; zero for no limit.
	World    *World  // Entities and their scores.
	Banks    []*Bank // Memory region backing stores, kept across Reset.

	config   assembler.Config
	computer *hw.Computer
	fab      *fabric
	ticks    int
}

// NewEmulator creates a new emulator with no program loaded.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		MaxTicks: MAX_TICKS,
		World:    NewWorld(),
		config:   assembler.DefaultConfig,
		computer: &hw.Computer{},
	}
	return
}

// Load places every item of the assembler's stream, and resets the emulator.
// Banks for regions already known are kept.
func (emu *Emulator) Load(asm *assembler.Assembler) (err error) {
	fab, err := place(asm.Computer(), asm.Items())
	if err != nil {
		return
	}

	emu.fab = fab
	emu.config = asm.Config()
	emu.computer = asm.Computer()

	var banks []*Bank
	for _, region := range emu.computer.Memory {
		index := slices.IndexFunc(emu.Banks, func(bank *Bank) bool {
			return bank.Region == region
		})
		if index >= 0 {
			banks = append(banks, emu.Banks[index])
		} else {
			banks = append(banks, NewBank(region))
		}
	}
	emu.Banks = banks

	emu.Reset()

	return
}

// Reset respawns every entity and removes all power.
// Memory banks are kept.
func (emu *Emulator) Reset() {
	cfg := emu.config

	emu.World = NewWorld()
	emu.ticks = 0

	control := emu.World.Spawn(cfg.Computer, "", commands.Vec3{Y: ENTITY_Y, Z: COMPUTER_Z})
	for objective, value := range cfg.Constants() {
		control.SetScore(objective, value)
	}

	for k := range BIT_LANES {
		lane := emu.World.Spawn("bit", cfg.BitTeam, commands.Vec3{X: k * LANE_SPACING, Y: ENTITY_Y, Z: LANE_Z})
		lane.SetScore(cfg.BitNumber, int32(k))
		lane.SetScore(cfg.BitComponent, int32(uint32(1)<<k))
	}

	for n, region := range emu.computer.Memory {
		pos := commands.Vec3{X: -2 * (n + 1), Y: SLOT_Y + CONTROLLER_DY, Z: CONTROLLER_Z}
		emu.World.Spawn(region.Name(), "", pos)
	}

	if emu.fab != nil {
		emu.fab.unpowerAll()
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// Register returns the value of reg on the control entity.
// A register never written reads as zero.
func (emu *Emulator) Register(reg ast.Register) (value int32) {
	control := emu.World.Find(emu.config.Computer)
	if control != nil {
		value, _ = control.Score(reg.Objective())
	}
	return
}

// SetRegister sets the value of reg on the control entity.
func (emu *Emulator) SetRegister(reg ast.Register, value int32) {
	control := emu.World.Find(emu.config.Computer)
	if control != nil {
		control.SetScore(reg.Objective(), value)
	}
}

// Power powers a label's slot.
func (emu *Emulator) Power(label string) (err error) {
	if emu.fab == nil {
		err = ErrNotLoaded
		return
	}

	s, ok := emu.fab.byLabel[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	s.powered = true
	return
}

// Powered returns the labels of the powered slots.
func (emu *Emulator) Powered() (labels []string) {
	if emu.fab == nil {
		return
	}
	for _, s := range emu.fab.slots {
		if s.powered {
			labels = append(labels, s.labels...)
		}
	}
	return
}

// Tick performs a single tick of the emulator.
// The slots powered at the start of the tick run: memory controllers first,
// then each powered segment up to its terminal.
func (emu *Emulator) Tick() (idle bool, err error) {
	if emu.fab == nil {
		err = ErrNotLoaded
		return
	}

	var controllers, segments []*slot
	for _, s := range emu.fab.slots {
		switch {
		case !s.powered:
		case s.region != nil:
			controllers = append(controllers, s)
		default:
			segments = append(segments, s)
		}
	}

	if len(controllers) == 0 && len(segments) == 0 {
		idle = true
		return
	}

	emu.ticks++

	for _, s := range controllers {
		s.powered = false
		err = emu.control(s.region)
		if err != nil {
			err = &ErrRuntime{Tick: emu.ticks, Pos: s.pos, Err: err}
			return
		}
	}

	for _, s := range segments {
		if emu.Verbose {
			log.Infof("emulator: tick %d: %v", emu.ticks, s.labels)
		}
		for c := range emu.fab.segment(s.entry) {
			err = emu.runBlock(c)
			if err != nil {
				err = &ErrRuntime{Tick: emu.ticks, Pos: c.pos, Block: c.block, Err: err}
				return
			}
		}
	}

	return
}

// Run powers entry, and ticks until nothing is powered.
func (emu *Emulator) Run(entry string) (err error) {
	err = emu.Power(entry)
	if err != nil {
		return
	}

	for ticks := 0; ; ticks++ {
		if emu.MaxTicks > 0 && ticks >= emu.MaxTicks {
			err = ErrTickLimit
			return
		}

		var idle bool
		idle, err = emu.Tick()
		if err != nil || idle {
			return
		}
	}
}
