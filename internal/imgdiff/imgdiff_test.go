package imgdiff

import (
	"testing"

	"github.com/mpetrov/raytrace/internal/ppmimage"
	"github.com/mpetrov/raytrace/internal/vec"
)

func solidImage(w, h int, c vec.RGB8) *ppmimage.Image {
	img := ppmimage.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSSIMIdenticalImagesHighScore(t *testing.T) {
	a := solidImage(20, 20, vec.RGB8{R: 128, G: 64, B: 200})
	b := solidImage(20, 20, vec.RGB8{R: 128, G: 64, B: 200})
	score, err := SSIM(a, b)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	if score < 0.9 {
		t.Errorf("SSIM(identical) = %v, want close to 1", score)
	}
}

func TestSSIMRejectsMismatchedDimensions(t *testing.T) {
	a := solidImage(20, 20, vec.RGB8{})
	b := solidImage(10, 10, vec.RGB8{})
	if _, err := SSIM(a, b); err == nil {
		t.Error("SSIM() error = nil, want error for mismatched dimensions")
	}
}

func TestSSIMRejectsTooSmall(t *testing.T) {
	a := solidImage(5, 5, vec.RGB8{})
	b := solidImage(5, 5, vec.RGB8{})
	if _, err := SSIM(a, b); err == nil {
		t.Error("SSIM() error = nil, want error for undersized images")
	}
}
