// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package hw describes the machine the assembler targets.
package hw

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/sbasm/commands"
)

// MemoryRegion is the address range [Start, Start+Size) served by one
// memory controller.
type MemoryRegion struct {
	Start uint32 `yaml:"start"`
	Size  uint32 `yaml:"size"`
}

// End is the first address past the region.
func (region MemoryRegion) End() uint64 {
	return uint64(region.Start) + uint64(region.Size)
}

// Addressable returns true if every address of the region is a
// non-negative 32-bit signed value.
func (region MemoryRegion) Addressable() bool {
	return region.End() <= math.MaxInt32
}

// Name is the entity name of the region's controller.
func (region MemoryRegion) Name() string {
	return fmt.Sprintf("mem_%x", region.Start)
}

// Selector matches the entities that implement the region.
func (region MemoryRegion) Selector() commands.Selector {
	return commands.Selector{Kind: 'e', Name: region.Name()}
}

// Label is the program point that powers the region's controller.
func (region MemoryRegion) Label() string {
	return fmt.Sprintf("@mem_%08x", region.Start)
}

func (region MemoryRegion) String() string {
	return fmt.Sprintf("[%#x, %#x)", region.Start, region.End())
}

// Computer is the machine description.
type Computer struct {
	Memory []MemoryRegion `yaml:"memory"` // Non-overlapping, in controller order.
}

// DefaultComputer has two 256-word regions starting at zero.
func DefaultComputer() *Computer {
	return &Computer{
		Memory: []MemoryRegion{
			{Start: 0x000, Size: 0x100},
			{Start: 0x100, Size: 0x100},
		},
	}
}

// LoadComputer decodes a YAML machine description.
func LoadComputer(r io.Reader) (computer *Computer, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	computer = &Computer{}
	err = dec.Decode(computer)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		computer = nil
		err = ErrMachine{Err: err}
		return
	}

	for _, region := range computer.Memory {
		if region.Size == 0 {
			computer = nil
			err = ErrMachine{Err: ErrRegionEmpty}
			return
		}
	}

	return
}
