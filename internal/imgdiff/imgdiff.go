// Package imgdiff compares two rendered images for the renderer's
// golden-image regression tests. It is a tile-based, non-overlapping
// adaptation of the teacher's windowed prim.SSIM: structural
// similarity between two images of the same size, used where exact
// pixel equality is too brittle (encode/decode rounding, a future
// anti-aliasing pass, etc.).
package imgdiff

import (
	"errors"

	"github.com/mpetrov/raytrace/internal/ppmimage"
)

// tileSize is the side length of the non-overlapping square tiles SSIM
// is averaged over. Matches the teacher's kernelSize but is no longer a
// sliding window: tiles don't overlap, so a single pass over the image
// visits every pixel exactly once.
const tileSize = 11

const (
	k1 = 0.01
	k2 = 0.03

	c1 = k1 * k1
	c2 = k2 * k2
)

// channelStats holds the running mean/variance/covariance accumulators
// for one color channel across a tile.
type channelStats struct {
	sum1, sum2 float64
	sumSq1     float64
	sumSq2     float64
	sumProd    float64
	count      float64
}

func (s *channelStats) add(a, b float64) {
	s.sum1 += a
	s.sum2 += b
	s.sumSq1 += a * a
	s.sumSq2 += b * b
	s.sumProd += a * b
	s.count++
}

func (s *channelStats) ssim() float64 {
	if s.count == 0 {
		return 1
	}
	mean1 := s.sum1 / s.count
	mean2 := s.sum2 / s.count
	var1 := s.sumSq1/s.count - mean1*mean1
	var2 := s.sumSq2/s.count - mean2*mean2
	covar := s.sumProd/s.count - mean1*mean2

	numerator := (2*mean1*mean2 + c1) * (2*covar + c2)
	denominator := (mean1*mean1 + mean2*mean2 + c1) * (var1 + var2 + c2)
	return numerator / denominator
}

// SSIM computes the average structural similarity between img1 and
// img2 over non-overlapping tileSize x tileSize tiles, in [-1,1] with
// 1.0 meaning identical.
func SSIM(img1, img2 *ppmimage.Image) (float64, error) {
	if img1.Width != img2.Width || img1.Height != img2.Height {
		return 0, errors.New("imgdiff: images are not the same size")
	}
	if img1.Width < tileSize || img1.Height < tileSize {
		return 0, errors.New("imgdiff: images are too small")
	}

	var total float64
	var tiles int
	for ty := 0; ty+tileSize <= img1.Height; ty += tileSize {
		for tx := 0; tx+tileSize <= img1.Width; tx += tileSize {
			total += tileSSIM(img1, img2, tx, ty)
			tiles++
		}
	}
	if tiles == 0 {
		return 0, errors.New("imgdiff: no comparable tiles")
	}
	return total / float64(tiles), nil
}

// tileSSIM averages per-channel SSIM over one tileSize x tileSize tile
// starting at (x0,y0).
func tileSSIM(img1, img2 *ppmimage.Image, x0, y0 int) float64 {
	var red, green, blue channelStats
	for y := y0; y < y0+tileSize; y++ {
		for x := x0; x < x0+tileSize; x++ {
			p1 := img1.At(x, y)
			p2 := img2.At(x, y)
			red.add(float64(p1.R), float64(p2.R))
			green.add(float64(p1.G), float64(p2.G))
			blue.add(float64(p1.B), float64(p2.B))
		}
	}
	return (red.ssim() + green.ssim() + blue.ssim()) / 3.0
}
