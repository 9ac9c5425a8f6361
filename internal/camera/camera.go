// Package camera builds the view plane from a scene camera pose and
// produces a primary ray per pixel (spec section 4.9).
package camera

import (
	"fmt"
	"math"

	"github.com/mpetrov/raytrace/internal/geom"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/vec"
)

// ViewDistance is the distance from the eye to the view plane in
// perspective projection; 0 is used for parallel projection.
const ViewDistance = 1.0

// ViewPlane holds the precomputed basis and corner needed to map
// pixel coordinates to world-space rays.
type ViewPlane struct {
	cam scene.Camera

	uBasis, vBasis vec.Vector
	upperLeft      vec.Vector
	planeWidth     float64
	planeHeight    float64
}

// Build validates the camera and constructs its view plane. d is the
// eye-to-plane distance: spec section 4.9 fixes it at ViewDistance
// for Perspective and 0 for Parallel projection.
func Build(cam scene.Camera, projection scene.Projection) (*ViewPlane, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}

	uBasis := cam.View.Cross(cam.Up).Normalize()
	if uBasis.IsZero() {
		return nil, fmt.Errorf("camera: degenerate basis: view and up produced a zero u axis")
	}
	vBasis := uBasis.Cross(cam.View).Normalize()
	if vBasis.IsZero() {
		return nil, fmt.Errorf("camera: degenerate basis: u and view produced a zero v axis")
	}

	aspect := float64(cam.Width) / float64(cam.Height)
	fov := cam.FovDeg * math.Pi / 180.0
	planeHeight := 2 * math.Tan(fov/2)
	planeWidth := planeHeight * aspect

	d := ViewDistance
	if projection == scene.Parallel {
		d = 0
	}

	center := cam.Eye.Add(cam.View.Normalize().Scale(d))
	upperLeft := center.
		Sub(uBasis.Scale(planeWidth / 2)).
		Add(vBasis.Scale(planeHeight / 2))

	return &ViewPlane{
		cam:         cam,
		uBasis:      uBasis,
		vBasis:      vBasis,
		upperLeft:   upperLeft,
		planeWidth:  planeWidth,
		planeHeight: planeHeight,
	}, nil
}

// RayForPixel returns the primary ray through pixel (x,y), x in
// [0,width), y in [0,height). In Perspective projection rays fan out
// from the eye; in Parallel projection rays are offset copies of the
// view direction.
func (vp *ViewPlane) RayForPixel(x, y int, projection scene.Projection) geom.Line {
	fx := fraction(x, vp.cam.Width)
	fy := fraction(y, vp.cam.Height)

	target := vp.upperLeft.
		Add(vp.uBasis.Scale(fx * vp.planeWidth)).
		Sub(vp.vBasis.Scale(fy * vp.planeHeight))

	if projection == scene.Parallel {
		return geom.Line{Origin: target, Direction: vp.cam.View.Normalize()}
	}
	return geom.Line{Origin: vp.cam.Eye, Direction: target.Sub(vp.cam.Eye)}
}

// fraction maps pixel index i in [0,size) to a [0,1] offset across the
// view plane. A single-pixel dimension has no span to divide across,
// so it is pinned to 0 instead of dividing by zero.
func fraction(i, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(i) / float64(size-1)
}
