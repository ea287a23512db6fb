package image

import "math"

// MipmapChain holds pre-computed downscaled versions of an image.
//
// Level 0 is the full-resolution base image; level k+1 is exactly
// max(1, dim(k)/2) in each axis. The chain ends when both dimensions
// reach 1 pixel.
type MipmapChain struct {
	levels []*ImageBuf
}

// NumMipLevels returns the mip count for a base image of the given size:
// floor(log2(max(width, height))) + 1.
func NumMipLevels(width, height int) int {
	maxDim := max(width, height)
	if maxDim <= 0 {
		return 0
	}
	return 1 + int(math.Floor(math.Log2(float64(maxDim))))
}

// NewMipmapChain creates a chain over src and populates every level.
// src becomes level 0 and is not copied. Returns nil if src is nil or empty.
func NewMipmapChain(src *ImageBuf) *MipmapChain {
	if src.IsEmpty() {
		return nil
	}
	chain := &MipmapChain{
		levels: make([]*ImageBuf, NumMipLevels(src.Width(), src.Height())),
	}
	chain.levels[0] = src
	chain.Regenerate()
	return chain
}

// Regenerate recomputes every level from its immediate parent, top-down.
// Call after mutating level 0. Generation is synchronous: when Regenerate
// returns, every level is consistent with the base image.
func (m *MipmapChain) Regenerate() {
	for i := 1; i < len(m.levels); i++ {
		parent := m.levels[i-1]
		dstW := max(1, parent.Width()/2)
		dstH := max(1, parent.Height()/2)
		if m.levels[i] == nil {
			m.levels[i] = Get(dstW, dstH, parent.Format())
		}
		downsample(m.levels[i], parent)
	}
}

// downsample box-filters src into dst at half resolution. Each destination
// pixel is the truncating average of a 2x2 source block, edge-clamped when
// the source has odd dimensions.
func downsample(dst, src *ImageBuf) {
	srcW, srcH := src.Bounds()
	dstW, dstH := dst.Bounds()

	if src.Format().IsFloat() {
		for dy := 0; dy < dstH; dy++ {
			for dx := 0; dx < dstW; dx++ {
				sx, sy := dx*2, dy*2
				sx1 := min(sx+1, srcW-1)
				sy1 := min(sy+1, srcH-1)
				sum := src.GetFloat(sx, sy) + src.GetFloat(sx1, sy) +
					src.GetFloat(sx, sy1) + src.GetFloat(sx1, sy1)
				dst.SetFloat(dx, dy, sum/4)
			}
		}
		return
	}

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx, sy := dx*2, dy*2
			sx1 := min(sx+1, srcW-1)
			sy1 := min(sy+1, srcH-1)

			r0, g0, b0, a0 := src.GetRGBA(sx, sy)
			r1, g1, b1, a1 := src.GetRGBA(sx1, sy)
			r2, g2, b2, a2 := src.GetRGBA(sx, sy1)
			r3, g3, b3, a3 := src.GetRGBA(sx1, sy1)

			r := (uint16(r0) + uint16(r1) + uint16(r2) + uint16(r3)) / 4
			g := (uint16(g0) + uint16(g1) + uint16(g2) + uint16(g3)) / 4
			b := (uint16(b0) + uint16(b1) + uint16(b2) + uint16(b3)) / 4
			a := (uint16(a0) + uint16(a1) + uint16(a2) + uint16(a3)) / 4

			dst.SetRGBA(dx, dy, byte(r), byte(g), byte(b), byte(a))
		}
	}
}

// Level returns the mipmap at the specified level, or nil if out of range.
func (m *MipmapChain) Level(n int) *ImageBuf {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the total number of levels in the chain.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// Release returns every level except the caller-owned level 0 to the pool.
// The chain must not be used afterwards.
func (m *MipmapChain) Release() {
	if m == nil {
		return
	}
	for i := 1; i < len(m.levels); i++ {
		Put(m.levels[i])
		m.levels[i] = nil
	}
}
