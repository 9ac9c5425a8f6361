package light

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mpetrov/raytrace/internal/vec"
)

func TestPointDirectionToLight(t *testing.T) {
	l := NewPoint(vec.New(0, 10, 0), vec.RGB(1, 1, 1))
	dir, dist, ok := l.DirectionToLight(vec.New(0, 0, 0))
	if !ok {
		t.Fatal("expected point light to always contribute")
	}
	if diff := cmp.Diff(vec.New(0, 1, 0), dir, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("direction mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(dist-10) > 1e-9 {
		t.Errorf("distance = %v, want 10", dist)
	}
	if math.Abs(dir.Magnitude()-1) > 1e-9 {
		t.Errorf("direction is not unit: %v", dir)
	}
}

func TestDirectionalDirectionToLight(t *testing.T) {
	l := NewDirectional(vec.New(0, -1, 0), vec.RGB(1, 1, 1))
	dir, dist, ok := l.DirectionToLight(vec.New(5, 5, 5))
	if !ok {
		t.Fatal("expected directional light to always contribute")
	}
	if diff := cmp.Diff(vec.New(0, 1, 0), dir, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("direction mismatch (-want +got):\n%s", diff)
	}
	if !math.IsInf(dist, 1) {
		t.Errorf("distance = %v, want +Inf", dist)
	}
}

func TestSpotInsideCone(t *testing.T) {
	l := NewSpot(vec.New(0, 5, 0), vec.New(0, -1, 0), 30, vec.RGB(1, 1, 1))
	_, _, ok := l.DirectionToLight(vec.New(0, 0, 0))
	if !ok {
		t.Error("expected point directly below the spotlight to be inside the cone")
	}
}

func TestSpotOutsideCone(t *testing.T) {
	l := NewSpot(vec.New(0, 5, 0), vec.New(0, -1, 0), 5, vec.RGB(1, 1, 1))
	_, _, ok := l.DirectionToLight(vec.New(100, 0, 0))
	if ok {
		t.Error("expected far off-axis point to be outside a narrow cone")
	}
}
