// Package scene implements the owning Scene data structure and the
// camera pose it carries (spec section 2.8).
package scene

import (
	"fmt"

	"github.com/mpetrov/raytrace/internal/light"
	"github.com/mpetrov/raytrace/internal/material"
	"github.com/mpetrov/raytrace/internal/mesh"
	"github.com/mpetrov/raytrace/internal/shape"
	"github.com/mpetrov/raytrace/internal/vec"
)

// Projection selects how primary rays are constructed.
type Projection int

const (
	Perspective Projection = iota
	Parallel
)

// Camera is the (eye, view, up, vertical fov, resolution) tuple that
// the camera package turns into a view plane.
type Camera struct {
	Eye    vec.Vector
	View   vec.Vector // nonzero
	Up     vec.Vector // nonzero, not colinear with View
	FovDeg float64    // in (0,180)
	Width  int
	Height int
}

// Validate checks the camera invariants from the data model.
func (c Camera) Validate() error {
	if c.View.IsZero() {
		return fmt.Errorf("scene: view direction must be nonzero")
	}
	if c.Up.IsZero() {
		return fmt.Errorf("scene: up direction must be nonzero")
	}
	if c.View.IsParallel(c.Up) {
		return fmt.Errorf("scene: view direction must not be colinear with up")
	}
	if c.FovDeg <= 0 || c.FovDeg >= 180 {
		return fmt.Errorf("scene: fov must be in (0,180), got %v", c.FovDeg)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("scene: image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// Scene owns every array the renderer reads: shapes, lights,
// materials, textures, and the mesh, plus the camera and background.
type Scene struct {
	Camera     Camera
	Background vec.Color
	Projection Projection

	Shapes    []shape.Shape
	Lights    []light.Light
	Materials []*material.Material
	Textures  []*material.Texture
	Mesh      *mesh.Mesh
}

// New constructs an empty scene with an initialized mesh, ready for a
// parser to populate.
func New() *Scene {
	return &Scene{Mesh: &mesh.Mesh{}}
}
