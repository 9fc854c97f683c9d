package emulator

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/sbasm/commands"
)

// outcome is what a command reports to its block's statistics.
type outcome struct {
	Success  int
	Entities int
	Blocks   int
	Query    int
}

func (out *outcome) merge(sub outcome) {
	if sub.Success > 0 {
		out.Success++
	}
	out.Entities += sub.Entities
	out.Blocks += sub.Blocks
	out.Query += sub.Query
}

func (out outcome) stat(kind commands.StatKind) int {
	switch kind {
	case commands.STAT_SUCCESS_COUNT:
		return out.Success
	case commands.STAT_AFFECTED_ENTITIES:
		return out.Entities
	case commands.STAT_AFFECTED_BLOCKS:
		return out.Blocks
	case commands.STAT_QUERY_RESULT:
		return out.Query
	}
	return 0
}

// update applies fn to the objective score of every target.
// A missing score reads as zero.
func (emu *Emulator) update(tgt commands.Target, objective string, pos commands.Vec3, fn func(value int32) int32) (out outcome) {
	for _, ent := range emu.World.Select(tgt, pos) {
		value, _ := ent.Score(objective)
		ent.SetScore(objective, fn(value))
		out.Entities++
	}
	out.Success = out.Entities
	out.Query = out.Entities
	return
}

// operation runs `tgt obj op= src srcObj` for every target and source pair.
// A source without the score fails for that pair, as does division by zero.
func (emu *Emulator) operation(cmd commands.PlayersOperation, pos commands.Vec3) (out outcome) {
	sources := emu.World.Select(cmd.Source, pos)
	for _, ent := range emu.World.Select(cmd.Target, pos) {
		for _, src := range sources {
			rhs, ok := src.Score(cmd.SourceObjective)
			if !ok {
				continue
			}
			lhs, _ := ent.Score(cmd.Objective)

			value, ok := cmd.Op.Apply(lhs, rhs)
			if !ok {
				continue
			}
			ent.SetScore(cmd.Objective, value)
			if cmd.Op == commands.OP_SWP {
				src.SetScore(cmd.SourceObjective, lhs)
			}
			out.Success++
			out.Entities++
		}
	}
	out.Query = out.Success
	return
}

// raw runs the few opaque commands the emulator understands.
func (emu *Emulator) raw(text string, pos commands.Vec3) (out outcome, err error) {
	verb, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	switch verb {
	case "say":
		log.Infof("emulator: [%v] %s", pos, args)
		out.Success = 1
	case "testfor":
		var tgt commands.Target
		tgt, err = commands.ParseTarget(strings.TrimSpace(args))
		if err != nil {
			return
		}
		found := len(emu.World.Select(tgt, pos))
		out.Entities = found
		out.Query = found
		if found > 0 {
			out.Success = 1
		}
	default:
		log.Warnf("emulator: [%v] %q ignored", pos, text)
	}
	return
}

// exec runs cmd as if from a command block at pos.
func (emu *Emulator) exec(cmd commands.Command, pos commands.Vec3) (out outcome, err error) {
	switch cmd := cmd.(type) {
	case commands.PlayersSet:
		out = emu.update(cmd.Target, cmd.Objective, pos, func(int32) int32 { return cmd.Value })
	case commands.PlayersAdd:
		out = emu.update(cmd.Target, cmd.Objective, pos, func(v int32) int32 { return v + cmd.Value })
	case commands.PlayersRemove:
		out = emu.update(cmd.Target, cmd.Objective, pos, func(v int32) int32 { return v - cmd.Value })
	case commands.PlayersOperation:
		out = emu.operation(cmd, pos)
	case commands.Execute:
		for _, ent := range emu.World.Select(cmd.Target, pos) {
			var sub outcome
			sub, err = emu.exec(cmd.Command, ent.Pos.Add(cmd.Offset))
			if err != nil {
				return
			}
			out.merge(sub)
		}
	case commands.Fill:
		var powered bool
		switch cmd.Block {
		case commands.BLOCK_REDSTONE:
			powered = true
		case commands.BLOCK_AIR:
		default:
			err = ErrBlock(cmd.Block)
			return
		}
		out.Blocks = emu.fab.fill(commands.MinMax(cmd.Min, cmd.Max), powered)
		if out.Blocks > 0 {
			out.Success = 1
		}
	case commands.Raw:
		out, err = emu.raw(string(cmd), pos)
	}
	return
}

// runBlock executes a placed command block, and writes its statistics.
func (emu *Emulator) runBlock(c *cell) (err error) {
	if c.block.Command == nil {
		return
	}

	out, err := emu.exec(c.block.Command, c.pos)
	if err != nil {
		return
	}

	for _, stat := range c.block.Stats {
		value := int32(out.stat(stat.Kind))
		for _, ent := range emu.World.Select(stat.Target, c.pos) {
			ent.SetScore(stat.Objective, value)
		}
	}

	if emu.Verbose {
		log.Infof("emulator: %v %v (%d)", c.pos, c.block, out.Success)
	}

	return
}
