// Package render implements the renderer loop: build the view plane,
// iterate pixels, dispatch primary rays, and write the output image
// (spec section 2.11 / 4.10).
package render

import (
	"github.com/mpetrov/raytrace/internal/camera"
	"github.com/mpetrov/raytrace/internal/ppmimage"
	"github.com/mpetrov/raytrace/internal/raycast"
	"github.com/mpetrov/raytrace/internal/scene"
	"github.com/mpetrov/raytrace/internal/shader"
	"github.com/mpetrov/raytrace/internal/shape"
)

// airRefractionIndex is the refraction index of the medium primary
// rays start in.
const airRefractionIndex = 1.0

// Render builds the view plane for sc's camera and returns the
// rendered image. No pixel ordering is required for correctness; this
// implementation renders row-major.
func Render(sc *scene.Scene) (*ppmimage.Image, error) {
	vp, err := camera.Build(sc.Camera, sc.Projection)
	if err != nil {
		return nil, err
	}

	img := ppmimage.NewImage(sc.Camera.Width, sc.Camera.Height)
	for y := 0; y < sc.Camera.Height; y++ {
		for x := 0; x < sc.Camera.Width; x++ {
			ray := vp.RayForPixel(x, y, sc.Projection)
			var color = sc.Background
			hit := raycast.Cast(ray, sc)
			if hit.Kind != shape.None {
				color = shader.Shade(hit, sc, airRefractionIndex, 0)
			}
			img.Set(x, y, color.Clamp().ToRGB8())
		}
	}
	return img, nil
}
