// Package raycast implements the ray caster: scanning every shape in
// a scene for the closest non-rejected intersection (spec section
// 2.9 / 4.6).
package raycast

import (
	"github.com/mpetrov/raytrace/internal/geom"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/shape"
)

// Cast scans every shape in sc for the closest intersection with ray
// at a distance >= shape.CollisionThreshold, rejecting closer hits as
// self-intersection noise. It returns a Collision with Kind == None
// if nothing qualifies.
func Cast(ray geom.Line, sc *scene.Scene) *shape.Collision {
	best := &shape.Collision{Kind: shape.None}
	bestDistance := 0.0
	found := false

	for _, obj := range sc.Shapes {
		candidate := obj.Collide(ray)
		if candidate == nil || candidate.Kind == shape.None {
			continue
		}
		if candidate.Distance < shape.CollisionThreshold {
			continue
		}
		if !found || candidate.Distance < bestDistance {
			best = candidate
			bestDistance = candidate.Distance
			found = true
		}
	}
	return best
}
