// Package smath provides the small vector and matrix toolkit used by the
// softpipe pipeline.
//
// All types come from golang.org/x/image/math/f32; this package only adds
// the operations. Matrices are stored in column-major order (OpenGL/WebGPU
// convention), so element (row, col) lives at index col*4 + row.
package smath

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps v to [0, 1].
func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Floor returns the largest integer value not greater than v.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Log2 returns the base-2 logarithm of v.
func Log2(v float32) float32 {
	return float32(math.Log2(float64(v)))
}

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Dot2 returns the dot product of two 2D vectors.
func Dot2(a, b f32.Vec2) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Dot3 returns the dot product of two 3D vectors.
func Dot3(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Sub3 returns a - b.
func Sub3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Cross3 returns the 3D cross product of a and b.
func Cross3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize3 returns a unit vector in the direction of v.
// Returns the zero vector if v has zero length.
func Normalize3(v f32.Vec3) f32.Vec3 {
	l := Sqrt(Dot3(v, v))
	if l == 0 {
		return f32.Vec3{}
	}
	return f32.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp4 performs component-wise linear interpolation between a and b.
func Lerp4(a, b f32.Vec4, t float32) f32.Vec4 {
	return f32.Vec4{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
		Lerp(a[3], b[3], t),
	}
}
