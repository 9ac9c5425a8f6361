package shader

import (
	"math"
	"testing"

	"github.com/mpetrov/raytrace/internal/geom"
	"github.com/mpetrov/raytrace/internal/light"
	"github.com/mpetrov/raytrace/internal/material"
	"github.com/mpetrov/raytrace/internal/raycast"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/shape"
	"github.com/mpetrov/raytrace/internal/vec"
)

func TestShadeNoneReturnsBackground(t *testing.T) {
	sc := scene.New()
	sc.Background = vec.RGB(0.1, 0.2, 0.3)
	c := &shape.Collision{Kind: shape.None}
	got := Shade(c, sc, 1.0, 0)
	if got != sc.Background {
		t.Errorf("Shade() = %v, want background %v", got, sc.Background)
	}
}

func TestShadeOutputInRange(t *testing.T) {
	sc := scene.New()
	sc.Background = vec.RGB(0.1, 0.1, 0.1)
	sc.Lights = []light.Light{light.NewPoint(vec.New(10, 10, 10), vec.RGB(1, 1, 1))}
	mat := &material.Material{DiffuseColor: vec.RGB(1, 0, 0), AmbientK: 0.1, DiffuseK: 0.9, SpecularK: 0, Opacity: 1, RefractionIndex: 1}
	sphere := &shape.Sphere{Center: vec.New(0, 0, 0), Radius: 1, Material: mat}
	sc.Shapes = []shape.Shape{sphere}

	ray := geom.Line{Origin: vec.New(0, 0, 4), Direction: vec.New(0, 0, -1)}
	hit := sphere.Collide(ray)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	got := Shade(hit, sc, 1.0, 0)
	if got.X < 0 || got.X > 1 || got.Y < 0 || got.Y > 1 || got.Z < 0 || got.Z > 1 {
		t.Errorf("Shade() = %v, components must be in [0,1]", got)
	}
	if got.X <= 0.5 {
		t.Errorf("expected a strongly lit red sphere, got R=%v", got.X)
	}
}

func TestTotalInternalReflectionSkipsTransmission(t *testing.T) {
	sc := scene.New()
	sc.Background = vec.RGB(0.5, 0.5, 0.5)
	// A translucent, less dense region (eta 1.0) struck at a grazing
	// angle from inside a denser medium (incoming eta 1.5). Shade uses
	// ratio = 1.5/1.0, so sin^2 of the transmitted angle exceeds 1:
	// total internal reflection.
	bubble := &material.Material{Opacity: 0.2, RefractionIndex: 1.0, DiffuseColor: vec.RGB(1, 1, 1), AmbientK: 0, DiffuseK: 0, SpecularK: 0}
	c := &shape.Collision{
		Kind:     shape.Surface,
		Point:    vec.New(0.999, 0.0447, 0),
		Normal:   vec.New(0.999, 0.0447, 0).Normalize(),
		Incident: vec.New(-0.05, 0.9987, 0).Normalize(),
		Material: bubble,
	}
	got := Shade(c, sc, 1.5, RecursionDepth-1)
	if got.X < 0 || got.X > 1 {
		t.Errorf("Shade() out of range: %v", got)
	}
	// With no shapes and no lights every secondary ray sees the
	// background, so only the Fresnel-weighted reflection may remain.
	_, cosI := frontFacingNormal(c.Normal, c.Incident)
	want := sc.Background.Scale(schlick(fresnelF0(1.5, bubble.RefractionIndex), cosI))
	if math.Abs(got.X-want.X) > 1e-9 {
		t.Errorf("Shade() = %v, want reflection only %v (no transmitted contribution)", got, want)
	}
}

func TestRecursionDepthCap(t *testing.T) {
	sc := scene.New()
	sc.Background = vec.RGB(0.2, 0.2, 0.2)
	mirror := &material.Material{Opacity: 1, RefractionIndex: 1, DiffuseColor: vec.RGB(0, 0, 0)}
	a := &shape.Sphere{Center: vec.New(0, 0, -2), Radius: 1, Material: mirror}
	b := &shape.Sphere{Center: vec.New(0, 0, 2), Radius: 1, Material: mirror}
	sc.Shapes = []shape.Shape{a, b}

	ray := geom.Line{Origin: vec.New(0, 0, 10), Direction: vec.New(0, 0, -1)}
	hit := raycast.Cast(ray, sc)
	if hit.Kind == shape.None {
		t.Fatal("expected a hit")
	}
	got := Shade(hit, sc, 1.0, 0)
	if got.X < 0 || got.X > 1 {
		t.Errorf("Shade() with mirrored spheres produced out-of-range color: %v", got)
	}
}

func TestSchlickFresnelRange(t *testing.T) {
	f0 := fresnelF0(1.0, 1.5)
	for _, cosI := range []float64{0, 0.3, 0.7, 1.0} {
		f := schlick(f0, cosI)
		if f < f0-1e-9 || f > 1+1e-9 {
			t.Errorf("schlick(%v, %v) = %v, want in [%v,1]", f0, cosI, f, f0)
		}
	}
}

func TestFrontFacingNormalFlipsAgainstIncident(t *testing.T) {
	normal := vec.New(0, -1, 0)
	incident := vec.New(0, 1, 0)
	got, cos := frontFacingNormal(normal, incident)
	if cos < 0 {
		t.Errorf("cosI = %v, want >= 0", cos)
	}
	if math.Abs(got.Dot(incident)-cos) > 1e-9 {
		t.Errorf("front-facing normal inconsistent with returned cosine")
	}
}
