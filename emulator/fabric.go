// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/commands"
	"github.com/ezrec/sbasm/hw"
)

// The fabric is a single line of command blocks along X, in stream order.
// Each label owns a power slot one block above the first block it names.
// Memory controllers have their own slots along -X.

const (
	FABRIC_Y     = 4
	SLOT_Y       = FABRIC_Y + 1
	CONTROLLER_Z = 4
)

// cell is one placed item: a command block, or the end of a segment.
type cell struct {
	pos      commands.Vec3
	block    commands.Block
	terminal bool
}

// slot is a power point: a label, or a memory region controller.
type slot struct {
	labels  []string
	pos     commands.Vec3
	powered bool

	entry  int              // First cell of the segment.
	region *hw.MemoryRegion // Set for controller slots.
}

func (s *slot) extent() commands.Extent {
	return commands.MinMax(s.pos, s.pos)
}

// fabric is a placed program.
type fabric struct {
	cells   []cell
	slots   []*slot
	byLabel map[string]*slot
	byPos   map[commands.Vec3]*slot
}

func newFabric() *fabric {
	return &fabric{
		byLabel: map[string]*slot{},
		byPos:   map[commands.Vec3]*slot{},
	}
}

func (fab *fabric) addSlot(s *slot) (err error) {
	for _, label := range s.labels {
		if _, ok := fab.byLabel[label]; ok {
			err = ErrLabelDuplicate(label)
			return
		}
		fab.byLabel[label] = s
	}
	fab.slots = append(fab.slots, s)
	fab.byPos[s.pos] = s
	return
}

// place lays out the item stream, and resolves every pending block against
// the extent of the label it names.
func place(computer *hw.Computer, items iter.Seq2[assembler.Item, error]) (fab *fabric, err error) {
	fab = newFabric()

	for n := range computer.Memory {
		region := &computer.Memory[n]
		err = fab.addSlot(&slot{
			labels: []string{region.Label()},
			pos:    commands.Vec3{X: -2 * (n + 1), Y: SLOT_Y, Z: CONTROLLER_Z},
			region: region,
		})
		if err != nil {
			return
		}
	}

	type pendingCell struct {
		index   int
		pending *assembler.Pending
	}

	var pendings []pendingCell
	var labels []string

	flushLabels := func() (err error) {
		if len(labels) == 0 {
			return
		}
		x := len(fab.cells)
		err = fab.addSlot(&slot{
			labels: labels,
			pos:    commands.Vec3{X: x, Y: SLOT_Y},
			entry:  x,
		})
		labels = nil
		return
	}

	for item, err_in := range items {
		if err_in != nil {
			err = err_in
			return
		}

		if label, ok := item.(assembler.Label); ok {
			labels = append(labels, string(label))
			continue
		}

		err = flushLabels()
		if err != nil {
			return
		}

		c := cell{pos: commands.Vec3{X: len(fab.cells), Y: FABRIC_Y}}
		switch it := item.(type) {
		case assembler.Complete:
			c.block = it.Block
		case *assembler.Pending:
			pendings = append(pendings, pendingCell{index: len(fab.cells), pending: it})
		case assembler.Terminal:
			c.terminal = true
		}
		fab.cells = append(fab.cells, c)
	}

	// Trailing labels name the end of the fabric.
	err = flushLabels()
	if err != nil {
		return
	}

	for _, pc := range pendings {
		target, ok := fab.byLabel[pc.pending.Name]
		if !ok {
			err = ErrLabelMissing(pc.pending.Name)
			return
		}
		var block commands.Block
		block, err = pc.pending.Resolve(target.extent())
		if err != nil {
			return
		}
		fab.cells[pc.index].block = block
	}

	return
}

// segment iterates over the blocks from entry up to the next terminal.
func (fab *fabric) segment(entry int) iter.Seq[*cell] {
	return func(yield func(*cell) bool) {
		for n := entry; n < len(fab.cells); n++ {
			c := &fab.cells[n]
			if c.terminal {
				return
			}
			if !yield(c) {
				return
			}
		}
	}
}

// fill sets the power of every slot inside extent, and returns the number
// of slots that changed.
func (fab *fabric) fill(extent commands.Extent, powered bool) (changed int) {
	for pos, s := range fab.byPos {
		if !extent.Contains(pos) || s.powered == powered {
			continue
		}
		s.powered = powered
		changed++
	}
	return
}

// unpowerAll removes the power from every slot.
func (fab *fabric) unpowerAll() {
	for _, s := range fab.slots {
		s.powered = false
	}
}

// Placed is one placed item of the fabric.
type Placed struct {
	Pos      commands.Vec3
	Labels   []string       // Labels whose slot is above this position.
	Block    commands.Block // Empty for a terminal.
	Terminal bool
}

// Layout iterates over the placed fabric, in stream order.
func (emu *Emulator) Layout() iter.Seq[Placed] {
	return func(yield func(Placed) bool) {
		if emu.fab == nil {
			return
		}
		for _, c := range emu.fab.cells {
			placed := Placed{Pos: c.pos, Block: c.block, Terminal: c.terminal}
			if s, ok := emu.fab.byPos[commands.Vec3{X: c.pos.X, Y: SLOT_Y}]; ok {
				placed.Labels = s.labels
			}
			if !yield(placed) {
				return
			}
		}
	}
}
