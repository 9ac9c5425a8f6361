// Package vec implements the vector algebra and color model used
// throughout the renderer: 3D floating-point vectors and the
// floating-point RGB color space built on top of them.
package vec

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for all "is this effectively zero"
// floating-point comparisons in the renderer.
const Epsilon = 1e-9

// Vector is a 3D floating-point vector. It doubles as a point and,
// via Color, as an RGB triple.
type Vector struct {
	X, Y, Z float64
}

func New(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul multiplies two vectors componentwise. Used for color modulation
// as well as plain vector arithmetic.
func (v Vector) Mul(other Vector) Vector {
	return Vector{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross computes into temporaries before writing the result, so it
// stays correct even if a caller aliases an input with the receiver.
func (v Vector) Cross(other Vector) Vector {
	x := v.Y*other.Z - v.Z*other.Y
	y := v.Z*other.X - v.X*other.Z
	z := v.X*other.Y - v.Y*other.X
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) MagnitudeSquared() float64 {
	return v.Dot(v)
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Normalize returns the unit vector in the direction of v. The zero
// vector normalizes to itself rather than producing NaN.
func (v Vector) Normalize() Vector {
	if v.IsZero() {
		return v
	}
	return v.Scale(1.0 / v.Magnitude())
}

func (v Vector) IsZero() bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon && math.Abs(v.Z) < Epsilon
}

func (v Vector) IsUnit() bool {
	return math.Abs(v.Magnitude()-1.0) < Epsilon
}

// Angle returns the unsigned angle between v and other, in radians.
func (v Vector) Angle(other Vector) float64 {
	denom := v.Magnitude() * other.Magnitude()
	if denom < Epsilon {
		return 0
	}
	cos := v.Dot(other) / denom
	// Clamp for safety against floating-point drift pushing |cos| > 1.
	cos = math.Min(1, math.Max(-1, cos))
	return math.Acos(cos)
}

// IsOrthogonal reports whether v and other are perpendicular.
func (v Vector) IsOrthogonal(other Vector) bool {
	return math.Abs(v.Dot(other)) < Epsilon
}

// IsParallel reports whether v and other point along the same line,
// in either direction (i.e. their angle is 0 or pi modulo pi).
func (v Vector) IsParallel(other Vector) bool {
	angle := math.Mod(v.Angle(other), math.Pi)
	return angle < Epsilon || math.Pi-angle < Epsilon
}

// Reflect reflects v around the unit normal axis, per the standard
// r = 2(n.v)n - v construction.
func (v Vector) Reflect(axis Vector) Vector {
	return axis.Scale(2 * axis.Dot(v)).Sub(v)
}

func clamp(lo, hi, x float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
