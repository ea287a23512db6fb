package softpipe

import "golang.org/x/image/math/f32"

// Viewport maps normalized device coordinates to a screen rectangle and
// remaps depth. It is set once per pass region and read-only during
// rasterization.
type Viewport struct {
	X, Y          int
	Width, Height int

	// MinDepth and MaxDepth remap NDC z from [-1, 1] into [MinDepth,
	// MaxDepth].
	MinDepth float32
	MaxDepth float32
}

// FullViewport returns a viewport covering a whole target of the given
// size with the default [0, 1] depth range.
func FullViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, MaxDepth: 1}
}

// transform maps an NDC position to screen pixel coordinates. x and y land
// in pixels with y growing downward; z is remapped by the depth range. The
// w slot (holding 1/w after the perspective divide) passes through
// untouched for later attribute interpolation.
func (vp Viewport) transform(ndc f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		float32(vp.X) + (ndc[0]+1)*0.5*float32(vp.Width),
		float32(vp.Y) + (1-(ndc[1]+1)*0.5)*float32(vp.Height),
		vp.MinDepth + (ndc[2]+1)*0.5*(vp.MaxDepth-vp.MinDepth),
		ndc[3],
	}
}
