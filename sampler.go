package softpipe

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe/internal/image"
	"github.com/gogpu/softpipe/internal/smath"

	"golang.org/x/image/math/f32"
)

// Sampler2D resolves wrap and filter modes over a 2D texture. Samplers
// are stateless with respect to the texture they reference; the same
// sampler value can be used against any number of textures.
type Sampler2D struct {
	// WrapU and WrapV resolve out-of-range coordinates per axis.
	WrapU, WrapV gputypes.AddressMode

	// Filter selects nearest or bilinear texel filtering within a level.
	Filter gputypes.FilterMode

	// MipFilter selects how mip levels combine: nearest snaps to the
	// closest level, linear blends the two adjacent levels (trilinear
	// when Filter is also linear).
	MipFilter gputypes.FilterMode
}

// LinearSampler returns a repeat-wrapped trilinear sampler.
func LinearSampler() Sampler2D {
	return Sampler2D{
		WrapU:     gputypes.AddressModeRepeat,
		WrapV:     gputypes.AddressModeRepeat,
		Filter:    gputypes.FilterModeLinear,
		MipFilter: gputypes.FilterModeLinear,
	}
}

// NearestSampler returns a clamped nearest-neighbor sampler.
func NearestSampler() Sampler2D {
	return Sampler2D{
		WrapU:  gputypes.AddressModeClampToEdge,
		WrapV:  gputypes.AddressModeClampToEdge,
		Filter: gputypes.FilterModeNearest,
	}
}

// Sample fetches at level 0.
func (s Sampler2D) Sample(t *Texture, u, v float32) f32.Vec4 {
	return s.SampleLOD(t, u, v, 0)
}

// SampleLOD fetches with an explicit level of detail. Fractional LODs
// blend adjacent levels when MipFilter is linear.
func (s Sampler2D) SampleLOD(t *Texture, u, v float32, lod float32) f32.Vec4 {
	if t == nil {
		return f32.Vec4{}
	}
	u = wrapCoord(u, s.WrapU)
	v = wrapCoord(v, s.WrapV)

	if lod <= 0 || t.NumLevels() == 1 {
		return s.sampleLevel(t, u, v, 0)
	}

	maxLevel := float32(t.NumLevels() - 1)
	lod = smath.Clamp(lod, 0, maxLevel)

	if s.MipFilter != gputypes.FilterModeLinear {
		return s.sampleLevel(t, u, v, int(lod+0.5))
	}

	l0 := int(smath.Floor(lod))
	frac := lod - float32(l0)
	c0 := s.sampleLevel(t, u, v, l0)
	if frac == 0 || l0+1 >= t.NumLevels() {
		return c0
	}
	c1 := s.sampleLevel(t, u, v, l0+1)
	return smath.Lerp4(c0, c1, frac)
}

// SampleGrad fetches with gradient-based level selection: the UV
// derivatives are scaled by the texture dimensions and the level of
// detail is max(0, 0.5*log2(max(|ddx|^2, |ddy|^2))).
func (s Sampler2D) SampleGrad(t *Texture, u, v float32, ddx, ddy f32.Vec2) f32.Vec4 {
	if t == nil {
		return f32.Vec4{}
	}
	sx := f32.Vec2{ddx[0] * float32(t.Width()), ddx[1] * float32(t.Height())}
	sy := f32.Vec2{ddy[0] * float32(t.Width()), ddy[1] * float32(t.Height())}

	d := max(smath.Dot2(sx, sx), smath.Dot2(sy, sy))
	var lod float32
	if d > 0 {
		lod = max(0, 0.5*smath.Log2(d))
	}
	return s.SampleLOD(t, u, v, lod)
}

// sampleLevel filters within one level of layer 0. Out-of-range levels
// degrade to transparent zero.
func (s Sampler2D) sampleLevel(t *Texture, u, v float32, level int) f32.Vec4 {
	img := t.Level(0, level)
	if img == nil {
		return f32.Vec4{}
	}
	var r, g, b, a byte
	if s.Filter == gputypes.FilterModeLinear {
		r, g, b, a = image.SampleBilinear(img, float64(u), float64(v))
	} else {
		r, g, b, a = image.SampleNearest(img, float64(u), float64(v))
	}
	return rgbaToVec(r, g, b, a)
}

// wrapCoord resolves one axis of a normalized coordinate under the given
// address mode: repeat keeps the fractional part, clamp saturates, mirror
// reflects every other integer unit.
func wrapCoord(v float32, mode gputypes.AddressMode) float32 {
	switch mode {
	case gputypes.AddressModeRepeat:
		return smath.Fract(v)
	case gputypes.AddressModeMirrorRepeat:
		f := v - 2*smath.Floor(v/2) // in [0, 2)
		if f > 1 {
			return 2 - f
		}
		return f
	default: // clamp to edge
		return smath.Saturate(v)
	}
}

func rgbaToVec(r, g, b, a byte) f32.Vec4 {
	return f32.Vec4{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}
}
