// Package geom implements the bare geometric primitives that shapes
// and the camera build on: rays (Line) and parametric planes (Plane).
package geom

import "github.com/mpetrov/raytrace/internal/vec"

// Line is an origin and a direction, describing the half-line t >= 0.
// Direction need not be unit; callers normalize as needed.
type Line struct {
	Origin    vec.Vector
	Direction vec.Vector
}

// At returns the point origin + t*direction.
func (l Line) At(t float64) vec.Vector {
	return l.Origin.Add(l.Direction.Scale(t))
}

// IsDegenerate reports whether the ray has a zero direction, which no
// shape can intersect.
func (l Line) IsDegenerate() bool {
	return l.Direction.IsZero()
}

// Plane is a point plus two spanning vectors; u and v need not be
// orthonormal. Normal is u cross v.
type Plane struct {
	Origin vec.Vector
	U, V   vec.Vector
}

// Normal returns the (non-normalized-input-safe) unit normal of the
// plane, or the zero vector if u and v are colinear.
func (p Plane) Normal() vec.Vector {
	return p.U.Cross(p.V).Normalize()
}

// IsDegenerate reports whether u and v fail to span a plane.
func (p Plane) IsDegenerate() bool {
	return p.U.Cross(p.V).IsZero()
}
