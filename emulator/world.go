package emulator

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/sbasm/commands"
)

// Entity is a scoreboard holder: a world entity, or a fake player.
type Entity struct {
	Name   string
	Team   string
	Pos    commands.Vec3
	Scores map[string]int32

	player bool
}

// Score returns the entity's score for objective, if it has one.
func (ent *Entity) Score(objective string) (value int32, ok bool) {
	value, ok = ent.Scores[objective]
	return
}

// SetScore sets the entity's score for objective.
func (ent *Entity) SetScore(objective string, value int32) {
	if ent.Scores == nil {
		ent.Scores = map[string]int32{}
	}
	ent.Scores[objective] = value
}

func (ent *Entity) String() string {
	if ent.player {
		return ent.Name
	}
	return fmt.Sprintf("%s[%v]", ent.Name, ent.Pos)
}

// World holds every entity and fake player.
type World struct {
	entities []*Entity
	players  map[string]*Entity
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{players: map[string]*Entity{}}
}

// Spawn places a new entity.
func (w *World) Spawn(name, team string, pos commands.Vec3) (ent *Entity) {
	ent = &Entity{Name: name, Team: team, Pos: pos}
	w.entities = append(w.entities, ent)
	return
}

// Player returns the fake player name, creating it if needed.
func (w *World) Player(name string) (ent *Entity) {
	ent, ok := w.players[name]
	if !ok {
		ent = &Entity{Name: name, player: true}
		w.players[name] = ent
	}
	return
}

// Find returns the first entity named name.
func (w *World) Find(name string) *Entity {
	for _, ent := range w.entities {
		if ent.Name == name {
			return ent
		}
	}
	return nil
}

// Entities iterates over the world entities in spawn order.
func (w *World) Entities() iter.Seq[*Entity] {
	return slices.Values(w.entities)
}

// Players iterates over the fake players by name.
func (w *World) Players() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, name := range slices.Sorted(maps.Keys(w.players)) {
			if !yield(w.players[name]) {
				return
			}
		}
	}
}

// matches returns true if ent passes every filter of sel.
// An entity without a score fails that score's filter.
func matches(sel commands.Selector, ent *Entity) bool {
	if len(sel.Name) != 0 && sel.Name != ent.Name {
		return false
	}
	if len(sel.Team) != 0 && sel.Team != ent.Team {
		return false
	}
	for obj, interval := range sel.Scores {
		value, ok := ent.Score(obj)
		if !ok || !interval.Contains(value) {
			return false
		}
	}
	return true
}

// Select resolves tgt as seen from origin.
// Selectors with a count keep the entities nearest the origin, oldest first
// on a tie.
func (w *World) Select(tgt commands.Target, origin commands.Vec3) (ents []*Entity) {
	switch tgt := tgt.(type) {
	case commands.Player:
		ents = []*Entity{w.Player(string(tgt))}
	case commands.Selector:
		if tgt.Kind != 'e' && tgt.Kind != 0 {
			// No real players in the world.
			return
		}
		for _, ent := range w.entities {
			if matches(tgt, ent) {
				ents = append(ents, ent)
			}
		}
		if tgt.Count > 0 {
			slices.SortStableFunc(ents, func(a, b *Entity) int {
				return a.Pos.DistanceSq(origin) - b.Pos.DistanceSq(origin)
			})
			ents = ents[:min(len(ents), tgt.Count)]
		}
	}
	return
}
