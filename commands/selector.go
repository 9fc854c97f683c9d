// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package commands

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Target is the subject of a command: an entity selector or a named player.
type Target interface {
	fmt.Stringer
	isTarget()
}

// Player is a (possibly fake) player name used as a target.
type Player string

func (p Player) isTarget() {}

func (p Player) String() string {
	return string(p)
}

// Selector is a 1.8 target selector.
type Selector struct {
	Kind   byte                // Selector variable: 'e', 'a', 'p' or 'r'.
	Name   string              // Entity name filter, if not empty.
	Team   string              // Team filter, if not empty.
	Count  int                 // Result limit, nearest first, if not zero.
	Scores map[string]Interval // Score filters, keyed by objective.
}

func (sel Selector) isTarget() {}

// Entity returns the selector matching every entity.
func Entity() Selector {
	return Selector{Kind: 'e'}
}

// Clone returns a deep copy of the selector.
func (sel Selector) Clone() (out Selector) {
	out = sel
	out.Scores = maps.Clone(sel.Scores)
	return
}

// WithScore returns a copy of the selector with the score filter for
// objective narrowed by interval.
func (sel Selector) WithScore(objective string, interval Interval) (out Selector) {
	out = sel.Clone()
	if out.Scores == nil {
		out.Scores = map[string]Interval{}
	}
	if prior, ok := out.Scores[objective]; ok {
		interval = prior.Intersect(interval)
	}
	out.Scores[objective] = interval
	return
}

func (sel Selector) String() string {
	kind := sel.Kind
	if kind == 0 {
		kind = 'e'
	}

	var args []string
	if len(sel.Name) != 0 {
		args = append(args, "name="+sel.Name)
	}
	if len(sel.Team) != 0 {
		args = append(args, "team="+sel.Team)
	}
	if sel.Count != 0 {
		args = append(args, fmt.Sprintf("c=%d", sel.Count))
	}
	for _, obj := range slices.Sorted(maps.Keys(sel.Scores)) {
		iv := sel.Scores[obj]
		if iv.HasMin {
			args = append(args, fmt.Sprintf("score_%s_min=%d", obj, iv.Min))
		}
		if iv.HasMax {
			args = append(args, fmt.Sprintf("score_%s=%d", obj, iv.Max))
		}
	}

	if len(args) == 0 {
		return "@" + string(kind)
	}

	return fmt.Sprintf("@%c[%s]", kind, strings.Join(args, ","))
}

// ParseTarget parses a selector (@e[name=x,score_y_min=1]) or a player name.
func ParseTarget(text string) (tgt Target, err error) {
	if len(text) == 0 {
		err = ErrTargetInvalid
		return
	}

	if text[0] != '@' {
		if strings.ContainsAny(text, " []=,") {
			err = ErrTargetInvalid
			return
		}
		tgt = Player(text)
		return
	}

	if len(text) < 2 || !strings.ContainsRune("eapr", rune(text[1])) {
		err = ErrTargetInvalid
		return
	}

	sel := Selector{Kind: text[1]}
	rest := text[2:]
	if len(rest) == 0 {
		tgt = sel
		return
	}

	if rest[0] != '[' || rest[len(rest)-1] != ']' {
		err = ErrTargetInvalid
		return
	}

	for _, arg := range strings.Split(rest[1:len(rest)-1], ",") {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			err = ErrTargetInvalid
			return
		}
		switch {
		case key == "name":
			sel.Name = value
		case key == "team":
			sel.Team = value
		case key == "c":
			sel.Count, err = strconv.Atoi(value)
		case strings.HasPrefix(key, "score_"):
			var n int64
			n, err = strconv.ParseInt(value, 0, 32)
			if err != nil {
				break
			}
			obj, isMin := strings.CutSuffix(key[len("score_"):], "_min")
			bound := AtMost(int32(n))
			if isMin {
				bound = AtLeast(int32(n))
			}
			sel = sel.WithScore(obj, bound)
		default:
			err = ErrTargetInvalid
		}
		if err != nil {
			err = ErrTargetInvalid
			return
		}
	}

	tgt = sel
	return
}
