package camera

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/vec"
)

func straightCamera() scene.Camera {
	return scene.Camera{
		Eye:    vec.New(0, 0, 4),
		View:   vec.New(0, 0, -1),
		Up:     vec.New(0, 1, 0),
		FovDeg: 60,
		Width:  100,
		Height: 100,
	}
}

func TestCenterPixelLooksDownView(t *testing.T) {
	vp, err := Build(straightCamera(), scene.Perspective)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// Center pixel isn't exactly (W-1)/2 for an even resolution but
	// should be close enough to point nearly straight down -Z.
	ray := vp.RayForPixel(49, 49, scene.Perspective)
	dir := ray.Direction.Normalize()
	if dir.Z >= 0 {
		t.Errorf("expected the near-center ray to point toward -Z, got %v", dir)
	}
	if diff := cmp.Diff(0.0, dir.X, cmpopts.EquateApprox(0, 0.05)); diff != "" {
		t.Errorf("center ray x mismatch (-want +got):\n%s", diff)
	}
}

func TestPerspectiveRaysOriginateAtEye(t *testing.T) {
	cam := straightCamera()
	vp, err := Build(cam, scene.Perspective)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ray := vp.RayForPixel(10, 10, scene.Perspective)
	if diff := cmp.Diff(cam.Eye, ray.Origin); diff != "" {
		t.Errorf("perspective ray origin mismatch (-want +got):\n%s", diff)
	}
}

func TestParallelRaysShareDirection(t *testing.T) {
	cam := straightCamera()
	vp, err := Build(cam, scene.Parallel)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	r1 := vp.RayForPixel(0, 0, scene.Parallel)
	r2 := vp.RayForPixel(99, 99, scene.Parallel)
	if diff := cmp.Diff(r1.Direction.Normalize(), r2.Direction.Normalize(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("parallel ray directions should match (-r1 +r2):\n%s", diff)
	}
	if diff := cmp.Diff(r1.Origin, r2.Origin); diff == "" {
		t.Error("expected parallel ray origins to differ across pixels")
	}
}

func TestBuildRejectsColinearUpAndView(t *testing.T) {
	cam := straightCamera()
	cam.Up = vec.New(0, 0, 2)
	if _, err := Build(cam, scene.Perspective); err == nil {
		t.Error("Build() error = nil, want error for colinear up/view")
	}
}

func TestRayForPixelSinglePixelDimensionNoNaN(t *testing.T) {
	cam := straightCamera()
	cam.Width = 1
	cam.Height = 1
	vp, err := Build(cam, scene.Perspective)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ray := vp.RayForPixel(0, 0, scene.Perspective)
	for _, f := range []float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("RayForPixel(0,0) direction = %v, want finite", ray.Direction)
		}
	}
}
