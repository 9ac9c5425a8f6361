// Package shape implements the four shape variants (sphere,
// ellipsoid, infinite plane, triangle face) and their ray
// intersection kernels (spec section 2.5 / 4.2).
package shape

import (
	"math"

	"github.com/mpetrov/raytrace/internal/geom"
	"github.com/mpetrov/raytrace/internal/material"
	"github.com/mpetrov/raytrace/internal/mesh"
	"github.com/mpetrov/raytrace/internal/vec"
)

// CollisionKind is the three-state enum from the data model: a
// collision starts at None and is set exactly once, to Inside or
// Surface, by a successful intersection.
type CollisionKind int

const (
	None CollisionKind = iota
	Inside
	Surface
)

// CollisionThreshold is the minimum accepted hit distance; closer
// hits are rejected as self-intersection noise (spec section 4.2).
const CollisionThreshold = 0.001

// Collision is the transient result of intersecting a ray with a
// shape: produced by Collide, consumed by the shader.
type Collision struct {
	Kind     CollisionKind
	Point    vec.Vector
	Distance float64
	Normal   vec.Vector // unit
	Incident vec.Vector // unit, points back toward ray origin
	Material *material.Material
	UV       mesh.TexCoord
}

// Shape is the sum type over the four shape variants. Each exposes
// ray intersection; Collide attaches the shape's own material to every
// collision it returns, and Mtl exposes that material directly.
type Shape interface {
	Collide(ray geom.Line) *Collision
	Mtl() *material.Material
}

func square(x float64) float64 { return x * x }

func makeIncident(ray geom.Line) vec.Vector {
	return ray.Direction.Negate().Normalize()
}

// Sphere is a shape centered at Center with the given Radius.
type Sphere struct {
	Center   vec.Vector
	Radius   float64
	Material *material.Material
}

func (s *Sphere) Mtl() *material.Material { return s.Material }

func (s *Sphere) Collide(ray geom.Line) *Collision {
	if ray.IsDegenerate() {
		return nil
	}
	d := ray.Direction.Normalize()
	m := ray.Origin.Sub(s.Center)

	b := d.Dot(m)
	c := m.Dot(m) - square(s.Radius)
	disc := b*b - c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	t, ok := smallestNonNegative(t0, t1)
	if !ok {
		return nil
	}

	point := ray.Origin.Add(d.Scale(t))
	kind := Surface
	if m.Magnitude() <= s.Radius {
		kind = Inside
	}
	normal := point.Sub(s.Center).Normalize()
	return &Collision{
		Kind:     kind,
		Point:    point,
		Distance: t,
		Normal:   normal,
		Incident: makeIncident(ray),
		Material: s.Material,
		UV:       sphereUV(normal),
	}
}

func sphereUV(normal vec.Vector) mesh.TexCoord {
	u := math.Atan2(normal.X, normal.Z) / (2 * math.Pi)
	if u < 0 {
		u += 1
	}
	v := math.Acos(clamp(-1, 1, normal.Y)) / math.Pi
	return mesh.TexCoord{U: u, V: v}
}

func clamp(lo, hi, x float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

func smallestNonNegative(t0, t1 float64) (float64, bool) {
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false
}

// Ellipsoid is an axis-aligned ellipsoid centered at Center with
// per-axis radii Dim (all components > 0).
type Ellipsoid struct {
	Center   vec.Vector
	Dim      vec.Vector // semi-axis lengths, all > 0
	Material *material.Material
}

func (e *Ellipsoid) Mtl() *material.Material { return e.Material }

func (e *Ellipsoid) Collide(ray geom.Line) *Collision {
	if ray.IsDegenerate() {
		return nil
	}
	d := ray.Direction.Normalize()
	m := ray.Origin.Sub(e.Center)

	inv := vec.New(1/square(e.Dim.X), 1/square(e.Dim.Y), 1/square(e.Dim.Z))
	weighted := func(v vec.Vector) vec.Vector {
		return vec.New(v.X*inv.X, v.Y*inv.Y, v.Z*inv.Z)
	}

	a := d.Dot(weighted(d))
	b := d.Dot(weighted(m))
	c := m.Dot(weighted(m)) - 1

	disc := b*b - a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / a
	t1 := (-b + sq) / a
	t, ok := smallestNonNegative(t0, t1)
	if !ok {
		return nil
	}

	point := ray.Origin.Add(d.Scale(t))
	kind := Surface
	if c <= 0 {
		kind = Inside
	}
	offset := point.Sub(e.Center)
	normal := vec.New(2*offset.X*inv.X, 2*offset.Y*inv.Y, 2*offset.Z*inv.Z).Normalize()
	return &Collision{
		Kind:     kind,
		Point:    point,
		Distance: t,
		Normal:   normal,
		Incident: makeIncident(ray),
		Material: e.Material,
	}
}

// Plane is an infinite plane through Origin spanned by U and V (need
// not be orthonormal); normal is U cross V.
type Plane struct {
	Geom     geom.Plane
	Material *material.Material
}

func (p *Plane) Mtl() *material.Material { return p.Material }

func (p *Plane) Collide(ray geom.Line) *Collision {
	if ray.IsDegenerate() {
		return nil
	}
	d := ray.Direction.Normalize()
	n := p.Geom.Normal()
	if n.IsZero() {
		return nil
	}
	den := n.Dot(d)
	num := n.Dot(p.Geom.Origin.Sub(ray.Origin))

	if math.Abs(den) <= vec.Epsilon {
		if math.Abs(num) <= vec.Epsilon {
			return &Collision{
				Kind:     Inside,
				Point:    ray.Origin,
				Distance: 0,
				Normal:   n,
				Incident: makeIncident(ray),
				Material: p.Material,
			}
		}
		return nil
	}
	t := num / den
	if t < 0 {
		return nil
	}
	point := ray.Origin.Add(d.Scale(t))
	return &Collision{
		Kind:     Surface,
		Point:    point,
		Distance: t,
		Normal:   n,
		Incident: makeIncident(ray),
		Material: p.Material,
	}
}

// Face is a triangle referencing a shared Mesh (spec section 2.4/2.5).
type Face struct {
	Face     *mesh.Face
	Material *material.Material
}

func (f *Face) Mtl() *material.Material { return f.Material }

func (f *Face) Collide(ray geom.Line) *Collision {
	if ray.IsDegenerate() {
		return nil
	}
	v0, v1, v2 := f.Face.Vertex(0), f.Face.Vertex(1), f.Face.Vertex(2)
	plane := geom.Plane{Origin: v0, U: v1.Sub(v0), V: v2.Sub(v0)}
	if plane.IsDegenerate() {
		return nil
	}

	d := ray.Direction.Normalize()
	n := plane.Normal()
	den := n.Dot(d)
	if math.Abs(den) <= vec.Epsilon {
		return nil
	}
	num := n.Dot(plane.Origin.Sub(ray.Origin))
	t := num / den
	if t < 0 {
		return nil
	}
	point := ray.Origin.Add(d.Scale(t))

	alpha, beta, gamma, ok := f.Face.Barycentric(point)
	if !ok {
		return nil
	}

	normal := n
	if f.Face.HasVertexNormals() {
		normal = f.Face.InterpolateNormal(alpha, beta, gamma)
	}

	var uv mesh.TexCoord
	if f.Face.HasTexCoords() {
		uv = f.Face.InterpolateTexCoord(alpha, beta, gamma)
	}

	return &Collision{
		Kind:     Surface,
		Point:    point,
		Distance: t,
		Normal:   normal,
		Incident: makeIncident(ray),
		Material: f.Material,
		UV:       uv,
	}
}
