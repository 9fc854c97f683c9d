package assembler

import (
	"fmt"

	"github.com/ezrec/sbasm/commands"
)

// Item is one element of the assembled stream:
// a Label, a Complete block, a *Pending block, or a Terminal.
type Item interface {
	fmt.Stringer
	isItem()
}

// Label declares that the following items occupy the named program point.
type Label string

// Complete is a fully determined command block.
type Complete struct {
	Block commands.Block
}

// Terminal ends the current straight-line segment.
// Execution continues on a later tick at a powered label.
type Terminal struct{}

// ResolveFunc builds a block once the extent of a label is known.
type ResolveFunc func(extent commands.Extent) commands.Block

// Pending is a block that needs the placed extent of label Name.
type Pending struct {
	Name    string
	resolve ResolveFunc
	used    bool
}

// NewPending makes a pending block for label name.
func NewPending(name string, resolve ResolveFunc) *Pending {
	return &Pending{Name: name, resolve: resolve}
}

// Resolve produces the block for the given extent of label Name.
// A Pending can only be resolved once.
func (p *Pending) Resolve(extent commands.Extent) (block commands.Block, err error) {
	if p.used {
		err = ErrPendingResolved
		return
	}
	if extent.IsEmpty() {
		err = ErrExtentEmpty
		return
	}

	p.used = true
	block = p.resolve(extent)
	return
}

// Resolved returns true once Resolve has succeeded.
func (p *Pending) Resolved() bool {
	return p.used
}

func (Label) isItem()    {}
func (Complete) isItem() {}
func (*Pending) isItem() {}
func (Terminal) isItem() {}

func (l Label) String() string {
	return string(l) + ":"
}

func (c Complete) String() string {
	return "\t" + c.Block.String()
}

func (p *Pending) String() string {
	return fmt.Sprintf("\t<pending %s>", p.Name)
}

func (Terminal) String() string {
	return "\t<terminal>"
}
