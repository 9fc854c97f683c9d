// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package commands

import (
	"fmt"
	"math"
)

// Interval is an inclusive score range, optionally open at either end.
type Interval struct {
	Min    int32
	Max    int32
	HasMin bool
	HasMax bool
}

// Bounded is the closed interval [min, max].
func Bounded(min, max int32) Interval {
	return Interval{Min: min, Max: max, HasMin: true, HasMax: true}
}

// AtLeast is the interval [min, +inf).
func AtLeast(min int32) Interval {
	return Interval{Min: min, HasMin: true}
}

// AtMost is the interval (-inf, max].
func AtMost(max int32) Interval {
	return Interval{Max: max, HasMax: true}
}

// NewInterval builds an interval from optional bounds.
// ok is false when neither bound is present.
func NewInterval(min, max *int32) (iv Interval, ok bool) {
	if min != nil {
		iv.Min = *min
		iv.HasMin = true
	}
	if max != nil {
		iv.Max = *max
		iv.HasMax = true
	}

	ok = iv.HasMin || iv.HasMax
	return
}

func (iv Interval) low() int32 {
	if iv.HasMin {
		return iv.Min
	}
	return math.MinInt32
}

func (iv Interval) high() int32 {
	if iv.HasMax {
		return iv.Max
	}
	return math.MaxInt32
}

// Contains returns true if value lies within the interval.
func (iv Interval) Contains(value int32) bool {
	return value >= iv.low() && value <= iv.high()
}

// IsEmpty returns true if no value can satisfy the interval.
func (iv Interval) IsEmpty() bool {
	return iv.low() > iv.high()
}

// Intersect returns the interval satisfied by both iv and other.
func (iv Interval) Intersect(other Interval) (out Interval) {
	out = iv
	if other.HasMin && (!out.HasMin || other.Min > out.Min) {
		out.Min = other.Min
		out.HasMin = true
	}
	if other.HasMax && (!out.HasMax || other.Max < out.Max) {
		out.Max = other.Max
		out.HasMax = true
	}
	return
}

func (iv Interval) String() string {
	text := ""
	if iv.HasMin {
		text = fmt.Sprintf("%d", iv.Min)
	}
	if iv.HasMin && iv.HasMax && iv.Min == iv.Max {
		return text
	}
	text += ".."
	if iv.HasMax {
		text += fmt.Sprintf("%d", iv.Max)
	}
	return text
}
