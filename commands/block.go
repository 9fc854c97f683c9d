// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package commands

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	BLOCK_REDSTONE = "minecraft:redstone_block"
	BLOCK_AIR      = "minecraft:air"
)

//go:generate go tool stringer -linecomment -type=StatKind

// StatKind is a command block output statistic.
type StatKind int

const (
	STAT_SUCCESS_COUNT     = StatKind(iota) // SuccessCount
	STAT_AFFECTED_BLOCKS                    // AffectedBlocks
	STAT_AFFECTED_ENTITIES                  // AffectedEntities
	STAT_AFFECTED_ITEMS                     // AffectedItems
	STAT_QUERY_RESULT                       // QueryResult
)

// ParseStatKind looks up a statistic by name.
func ParseStatKind(name string) (sk StatKind, ok bool) {
	for sk = range STAT_QUERY_RESULT + 1 {
		if strings.EqualFold(sk.String(), name) {
			return sk, true
		}
	}
	return 0, false
}

// SelectorKey is the CommandStats key naming the stat's target.
func (sk StatKind) SelectorKey() string {
	return sk.String() + "Name"
}

// ObjectiveKey is the CommandStats key naming the stat's objective.
func (sk StatKind) ObjectiveKey() string {
	return sk.String() + "Objective"
}

// Stat writes a command block statistic to Target's Objective score.
type Stat struct {
	Kind      StatKind
	Target    Target
	Objective string
}

// Block is a command block.
type Block struct {
	Command     Command
	TrackOutput bool
	Stats       []Stat
}

// NBT renders the block's tile entity data.
func (blk Block) NBT() string {
	var sb strings.Builder

	track := "0b"
	if blk.TrackOutput {
		track = "1b"
	}

	sb.WriteString("{Command:")
	sb.WriteString(strconv.Quote(blk.Command.String()))
	sb.WriteString(",TrackOutput:")
	sb.WriteString(track)
	if len(blk.Stats) != 0 {
		sb.WriteString(",CommandStats:{")
		for n, stat := range blk.Stats {
			if n > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, "%s:%s,%s:%s",
				stat.Kind.SelectorKey(), strconv.Quote(stat.Target.String()),
				stat.Kind.ObjectiveKey(), strconv.Quote(stat.Objective))
		}
		sb.WriteString("}")
	}
	sb.WriteString("}")

	return sb.String()
}

func (blk Block) String() string {
	return blk.Command.String()
}
