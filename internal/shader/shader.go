// Package shader implements the recursive shading model: ambient plus
// per-light shadow-attenuated Blinn-Phong, Fresnel-weighted mirror
// reflection, and Snell-law refraction with total internal reflection
// (spec section 2.10 / 4.5 / 4.7 / 4.8).
package shader

import (
	"math"

	"github.com/mpetrov/raytrace/internal/geom"
	"github.com/mpetrov/raytrace/internal/light"
	"github.com/mpetrov/raytrace/internal/raycast"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/shape"
	"github.com/mpetrov/raytrace/internal/vec"
)

// RecursionDepth is the hard cap on reflection/refraction bounces.
const RecursionDepth = 5

// ShadowThreshold: a composed shadow factor below this contributes
// nothing from that light (spec section 4.7).
const ShadowThreshold = 0.003

// blinnPhong computes the diffuse + specular contribution of a single
// light at a collision, given the unit direction toward the light. The
// view vector is the collision's Incident, which points back along the
// ray that produced the hit (toward the eye only for primary rays).
func blinnPhong(c *shape.Collision, l light.Light, lightDir vec.Vector) vec.Color {
	mat := c.Material
	baseColor := mat.BaseColor(c.UV)

	v := c.Incident // normalize(-ray.direction)
	h := lightDir.Add(v).Normalize()
	n := c.Normal

	diffuseTerm := math.Max(0, n.Dot(lightDir)) * mat.DiffuseK
	diffuse := baseColor.Scale(diffuseTerm)

	specTerm := math.Pow(math.Max(0, n.Dot(h)), float64(mat.Shininess)) * mat.SpecularK
	specular := mat.SpecularColor.Scale(specTerm)

	sum := diffuse.Add(specular).Clamp()
	return sum.Mul(l.Color)
}

// shadowFactor casts a ray from point toward the light and composes
// the transparency of every occluder nearer than the light, per spec
// section 4.7: a fully opaque occluder anywhere along the path yields
// a factor of 0; an occluder with opacity<1 multiplies in (1-opacity)
// and the search continues recursively through it toward the light.
func shadowFactor(point vec.Vector, lightDir vec.Vector, distToLight float64, sc *scene.Scene) float64 {
	factor := 1.0
	origin := point
	remaining := distToLight

	for {
		ray := geom.Line{Origin: origin, Direction: lightDir}
		hit := raycast.Cast(ray, sc)
		if hit.Kind == shape.None {
			return factor
		}
		if hit.Distance < shape.CollisionThreshold || hit.Distance >= remaining {
			return factor
		}
		alpha := 1 - hit.Material.Opacity
		factor *= alpha
		if factor < ShadowThreshold {
			return 0
		}
		// Continue recursively through the occluder toward the light.
		origin = hit.Point
		remaining -= hit.Distance
	}
}

// Shade computes the color seen along a ray that produced collision
// c, recursively incorporating reflection and refraction up to
// shader.RecursionDepth bounces. incomingEta is the refraction index
// of the medium the ray is currently traveling through (1.0 for air
// at the primary ray).
func Shade(c *shape.Collision, sc *scene.Scene, incomingEta float64, depth int) vec.Color {
	if c.Kind == shape.None {
		return sc.Background
	}

	mat := c.Material
	baseColor := mat.BaseColor(c.UV)
	result := baseColor.Scale(mat.AmbientK)

	for _, l := range sc.Lights {
		lightDir, distToLight, ok := l.DirectionToLight(c.Point)
		if !ok {
			continue
		}
		s := shadowFactor(c.Point, lightDir, distToLight, sc)
		if s < ShadowThreshold {
			continue
		}
		contribution := blinnPhong(c, l, lightDir)
		result = result.Add(contribution.Scale(s)).Clamp()
	}

	if depth >= RecursionDepth {
		return result.Clamp()
	}

	normal, cosI := frontFacingNormal(c.Normal, c.Incident)

	eta1 := incomingEta
	if mat.Opacity >= 1 {
		// A fully opaque material has no well-defined "incoming medium"
		// on its far side, so Fresnel is computed as if from air.
		eta1 = 1
	}
	f0 := fresnelF0(eta1, mat.RefractionIndex)
	fresnel := schlick(f0, cosI)

	reflectedColor := vec.Color{}
	reflectDir := normal.Scale(2 * normal.Dot(c.Incident)).Sub(c.Incident)
	reflectRay := geom.Line{Origin: c.Point, Direction: reflectDir}
	reflectHit := raycast.Cast(reflectRay, sc)
	if reflectHit.Kind != shape.None {
		reflectedColor = Shade(reflectHit, sc, incomingEta, depth+1)
	} else {
		reflectedColor = sc.Background
	}
	result = result.Add(reflectedColor.Scale(fresnel))

	if mat.Opacity < 1 {
		ratio := eta1 / mat.RefractionIndex
		sin2T := ratio * ratio * (1 - cosI*cosI)
		if sin2T <= 1 {
			cosT := math.Sqrt(1 - sin2T)
			transmitted := normal.Scale(-cosT).Add(normal.Scale(cosI).Sub(c.Incident).Scale(ratio))
			transRay := geom.Line{Origin: c.Point, Direction: transmitted}
			transHit := raycast.Cast(transRay, sc)
			var transColor vec.Color
			if transHit.Kind != shape.None {
				transColor = Shade(transHit, sc, mat.RefractionIndex, depth+1)
			} else {
				transColor = sc.Background
			}
			result = result.Add(transColor.Scale((1 - fresnel) * (1 - mat.Opacity)))
		}
		// sin2T > 1: total internal reflection, no transmitted contribution.
	}

	return result.Clamp()
}

// frontFacingNormal returns N oriented to face the incoming ray
// (i.e. N.incident >= 0) along with the resulting non-negative
// cosine of the angle of incidence.
func frontFacingNormal(normal, incident vec.Vector) (vec.Vector, float64) {
	cos := normal.Dot(incident)
	if cos < 0 {
		return normal.Negate(), -cos
	}
	return normal, cos
}

// fresnelF0 computes Schlick's F0 reflectance-at-normal-incidence for
// the boundary between a medium of index eta1 and one of index eta2.
func fresnelF0(eta1, eta2 float64) float64 {
	r0 := (eta2 - eta1) / (eta2 + eta1)
	return r0 * r0
}

// schlick evaluates Schlick's approximation given F0 and the cosine
// of the angle of incidence (non-negative, front-facing).
func schlick(f0, cosI float64) float64 {
	return f0 + (1-f0)*math.Pow(1-cosI, 5)
}
