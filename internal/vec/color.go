package vec

import "math"

// Color is a floating-point RGB triple with components nominally in
// [0,1]. It is represented as a Vector so the same arithmetic
// (Add/Mul/Scale) serves both light transport and color blending.
type Color = Vector

// RGB constructs a Color from three floating-point components.
func RGB(r, g, b float64) Color {
	return Color{X: r, Y: g, Z: b}
}

// Clamp clamps each component of c to [0,1] and returns the result.
func (v Vector) Clamp() Color {
	return Color{
		X: clamp(0, 1, v.X),
		Y: clamp(0, 1, v.Y),
		Z: clamp(0, 1, v.Z),
	}
}

// RGB8 is a color expressed as three 8-bit channels, the PPM/image
// output format.
type RGB8 struct {
	R, G, B uint8
}

// ToRGB8 converts a (clamped) Color to 8-bit channels, rounding each
// component and clamping defensively against out-of-range input.
func (v Vector) ToRGB8() RGB8 {
	conv := func(c float64) uint8 {
		c = clamp(0, 1, c)
		return uint8(math.Round(c * 255))
	}
	return RGB8{R: conv(v.X), G: conv(v.Y), B: conv(v.Z)}
}

// ColorFromRGB8 is the inverse of ToRGB8.
func ColorFromRGB8(c RGB8) Color {
	return Color{
		X: float64(c.R) / 255.0,
		Y: float64(c.G) / 255.0,
		Z: float64(c.B) / 255.0,
	}
}
