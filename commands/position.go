package commands

import (
	"fmt"
)

// Vec3 is a block position.
type Vec3 struct {
	X, Y, Z int
}

// RelZero is the `~ ~ ~` offset.
var RelZero = Vec3{}

// Add returns the sum of two positions.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// DistanceSq is the squared distance between two positions.
func (v Vec3) DistanceSq(o Vec3) int {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// String renders absolute coordinates.
func (v Vec3) String() string {
	return fmt.Sprintf("%d %d %d", v.X, v.Y, v.Z)
}

// Relative renders the position as a `~` offset.
func (v Vec3) Relative() string {
	rel := func(n int) string {
		if n == 0 {
			return "~"
		}
		return fmt.Sprintf("~%d", n)
	}
	return rel(v.X) + " " + rel(v.Y) + " " + rel(v.Z)
}

// Extent is the box occupied by a placed label.
// The zero value is the empty extent.
type Extent struct {
	Min Vec3
	Max Vec3
	set bool
}

// MinMax returns the extent spanning [min, max].
func MinMax(min, max Vec3) Extent {
	return Extent{Min: min, Max: max, set: true}
}

// IsEmpty returns true for an extent with no positions.
func (e Extent) IsEmpty() bool {
	return !e.set
}

// Contains returns true if pos lies inside the extent.
func (e Extent) Contains(pos Vec3) bool {
	if !e.set {
		return false
	}
	return pos.X >= e.Min.X && pos.X <= e.Max.X &&
		pos.Y >= e.Min.Y && pos.Y <= e.Max.Y &&
		pos.Z >= e.Min.Z && pos.Z <= e.Max.Z
}

func (e Extent) String() string {
	if !e.set {
		return "empty"
	}
	return fmt.Sprintf("[%v]..[%v]", e.Min, e.Max)
}
