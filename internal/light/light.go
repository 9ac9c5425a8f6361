// Package light implements the three light variants (point,
// directional, spotlight) and the direction-to-light computation
// consumed by the shader (spec section 2.7 / 4.5).
package light

import (
	"math"

	"github.com/mpetrov/raytrace/internal/vec"
)

// Kind tags which variant a Light holds.
type Kind int

const (
	Point Kind = iota
	Directional
	Spot
)

// Light is a tagged union over the three light variants. Only the
// fields relevant to Kind are meaningful.
type Light struct {
	Kind Kind

	Color vec.Color

	Position vec.Vector // Point, Spot
	Axis     vec.Vector // Directional (direction of travel), Spot (cone axis)

	HalfAngleDeg float64 // Spot only, in [0,360]
}

// NewPoint constructs a point light.
func NewPoint(position, color vec.Vector) Light {
	return Light{Kind: Point, Position: position, Color: color}
}

// NewDirectional constructs a directional light; direction is the
// direction the light travels (nonzero).
func NewDirectional(direction, color vec.Vector) Light {
	return Light{Kind: Directional, Axis: direction, Color: color}
}

// NewSpot constructs a spotlight cone.
func NewSpot(position, axis vec.Vector, halfAngleDeg float64, color vec.Vector) Light {
	return Light{Kind: Spot, Position: position, Axis: axis, HalfAngleDeg: halfAngleDeg, Color: color}
}

// DirectionToLight returns the unit vector from p toward the light,
// and the distance to it (+Inf for directional lights), or ok=false
// if p lies outside a spotlight's cone.
func (l Light) DirectionToLight(p vec.Vector) (dir vec.Vector, distance float64, ok bool) {
	switch l.Kind {
	case Point:
		toLight := l.Position.Sub(p)
		dist := toLight.Magnitude()
		return toLight.Normalize(), dist, true
	case Directional:
		return l.Axis.Negate().Normalize(), math.Inf(1), true
	case Spot:
		toLight := l.Position.Sub(p)
		dist := toLight.Magnitude()
		dir := toLight.Normalize()
		// Angle between the direction *from the light to p* and the
		// cone axis must be within the half-angle.
		angle := dir.Negate().Angle(l.Axis)
		if angle > l.HalfAngleDeg*math.Pi/180.0 {
			return vec.Vector{}, 0, false
		}
		return dir, dist, true
	default:
		return vec.Vector{}, 0, false
	}
}
