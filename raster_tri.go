package softpipe

import (
	"github.com/gogpu/softpipe/internal/blend"
	"github.com/gogpu/softpipe/internal/raster"

	"golang.org/x/image/math/f32"
)

// interpEpsilon gates the perspective-correct denominator. When the
// interpolated 1/w sum degenerates, interpolation falls back to
// screen-space linear weights instead of dividing.
const interpEpsilon = 1e-9

// rasterTriangle rasterizes one projected triangle with the strategy the
// current target and state call for: per-sample coverage on multisampled
// targets, 2x2 quad blocks with Early-Z on depth-tested single-sample
// targets, and plain per-pixel centers otherwise.
func (r *Renderer) rasterTriangle(v0, v1, v2 *ShadedVertex, front bool) {
	a := f32.Vec2{v0.Position[0], v0.Position[1]}
	b := f32.Vec2{v1.Position[0], v1.Position[1]}
	c := f32.Vec2{v2.Position[0], v2.Position[1]}

	tri := raster.SetupTri(a, b, c)
	if !tri.Valid() {
		return
	}
	box := r.triBox(a, b, c)
	if box.Empty() {
		return
	}

	switch {
	case r.fb.Multisampled():
		r.rasterTriMSAA(&tri, v0, v1, v2, box, front)
	case r.state.EarlyZ && r.state.DepthTest:
		r.rasterTriQuad(&tri, v0, v1, v2, box, front)
	default:
		r.rasterTriCenter(&tri, v0, v1, v2, box, front)
	}
}

// triBox bounds a screen triangle, clipped to the viewport rectangle and
// the target.
func (r *Renderer) triBox(a, b, c f32.Vec2) raster.BBox {
	clipW := min(r.fb.width, r.viewport.X+r.viewport.Width)
	clipH := min(r.fb.height, r.viewport.Y+r.viewport.Height)
	box := raster.TriBounds(a, b, c, clipW, clipH)
	box.X0 = max(box.X0, r.viewport.X)
	box.Y0 = max(box.Y0, r.viewport.Y)
	return box
}

// interpSample fills one coverage sample at (px, py): barycentrics,
// coverage, screen-linear depth, and perspective-corrected varyings. The
// returned value is the interpolated 1/w, which doubles as the fragment
// coordinate's w.
func interpSample(tri *raster.Tri, v0, v1, v2 *ShadedVertex, px, py float32, nvar int, s *raster.Sample) float32 {
	b0, b1, b2 := tri.Bary(px, py)
	s.B0, s.B1, s.B2 = b0, b1, b2
	s.Covered = raster.Inside(b0, b1, b2)
	s.Depth = b0*v0.Position[2] + b1*v1.Position[2] + b2*v2.Position[2]

	w0 := b0 * v0.Position[3]
	w1 := b1 * v1.Position[3]
	w2 := b2 * v2.Position[3]
	invW := w0 + w1 + w2
	if invW > interpEpsilon || invW < -interpEpsilon {
		inv := 1 / invW
		for i := 0; i < nvar; i++ {
			s.Varyings[i] = (w0*v0.Varyings[i] + w1*v1.Varyings[i] + w2*v2.Varyings[i]) * inv
		}
	} else {
		for i := 0; i < nvar; i++ {
			s.Varyings[i] = b0*v0.Varyings[i] + b1*v1.Varyings[i] + b2*v2.Varyings[i]
		}
	}
	return invW
}

// rasterTriMSAA evaluates coverage independently at each of the four
// sub-pixel sample positions and shades every covered sample.
func (r *Renderer) rasterTriMSAA(tri *raster.Tri, v0, v1, v2 *ShadedVertex, box raster.BBox, front bool) {
	nvar := r.vs.NumVaryings()
	var s raster.Sample
	for y := box.Y0; y < box.Y1; y++ {
		for x := box.X0; x < box.X1; x++ {
			for slot, off := range raster.SampleOffsets4 {
				px := float32(x) + off[0]
				py := float32(y) + off[1]
				invW := interpSample(tri, v0, v1, v2, px, py, nvar, &s)
				if !s.Covered {
					continue
				}
				r.processFragment(x, y, slot, px, py, invW, &s, front, nil)
			}
		}
	}
}

// rasterTriQuad walks the bounding box in 2x2 blocks. Every block pixel is
// interpolated, covered or not, so the quad can expose finite-difference
// derivatives; a block whose four pixels all fail the depth test is
// rejected before any fragment is shaded.
func (r *Renderer) rasterTriQuad(tri *raster.Tri, v0, v1, v2 *ShadedVertex, box raster.BBox, front bool) {
	nvar := r.vs.NumVaryings()
	x0 := box.X0 &^ 1
	y0 := box.Y0 &^ 1

	for by := y0; by < box.Y1; by += 2 {
		for bx := x0; bx < box.X1; bx += 2 {
			q := r.quads.Get(bx, by)

			var invW [4]float32
			var inBounds [4]bool
			for i := range q.Pix {
				x := bx + i&1
				y := by + i>>1
				px := float32(x) + raster.CenterOffset[0]
				py := float32(y) + raster.CenterOffset[1]
				invW[i] = interpSample(tri, v0, v1, v2, px, py, nvar, &q.Pix[i])
				inBounds[i] = x >= box.X0 && x < box.X1 && y >= box.Y0 && y < box.Y1
				if q.Pix[i].Covered && inBounds[i] {
					q.Coverage++
				}
			}
			if q.Coverage == 0 {
				r.quads.Put(q)
				continue
			}

			// Early-Z: skip shading when the whole block fails the test.
			pass := false
			for i := range q.Pix {
				if !inBounds[i] {
					continue
				}
				x := bx + i&1
				y := by + i>>1
				if blend.Compare(r.state.DepthFunc, q.Pix[i].Depth, r.fb.depthAt(x, y, 0)) {
					pass = true
					break
				}
			}
			if !pass {
				r.quads.Put(q)
				continue
			}

			for i := range q.Pix {
				if !q.Pix[i].Covered || !inBounds[i] {
					continue
				}
				x := bx + i&1
				y := by + i>>1
				px := float32(x) + raster.CenterOffset[0]
				py := float32(y) + raster.CenterOffset[1]
				r.processFragment(x, y, 0, px, py, invW[i], &q.Pix[i], front, q)
			}
			r.quads.Put(q)
		}
	}
}

// rasterTriCenter shades each covered pixel center, with no quad context
// and no early rejection.
func (r *Renderer) rasterTriCenter(tri *raster.Tri, v0, v1, v2 *ShadedVertex, box raster.BBox, front bool) {
	nvar := r.vs.NumVaryings()
	var s raster.Sample
	for y := box.Y0; y < box.Y1; y++ {
		for x := box.X0; x < box.X1; x++ {
			px := float32(x) + raster.CenterOffset[0]
			py := float32(y) + raster.CenterOffset[1]
			invW := interpSample(tri, v0, v1, v2, px, py, nvar, &s)
			if !s.Covered {
				continue
			}
			r.processFragment(x, y, 0, px, py, invW, &s, front, nil)
		}
	}
}

// processFragment retires one fragment at a sample slot: depth test,
// fragment shading, discard, depth write, then blend or overwrite.
func (r *Renderer) processFragment(x, y, slot int, px, py, invW float32, s *raster.Sample, front bool, quad QuadDerivatives) {
	if r.state.DepthTest && !blend.Compare(r.state.DepthFunc, s.Depth, r.fb.depthAt(x, y, slot)) {
		return
	}

	r.fragIn.FragCoord = f32.Vec4{px, py, s.Depth, invW}
	r.fragIn.FrontFacing = front
	r.fragIn.Varyings = s.Varyings[:r.vs.NumVaryings()]
	r.fragIn.Quad = quad

	color, discard := r.fs.ShadeFragment(&r.fragIn)
	if discard {
		return
	}

	if r.state.DepthWrite {
		r.fb.setDepth(x, y, slot, s.Depth)
	}
	if r.state.Blend {
		color = blend.Blend(r.state.BlendState, color, r.fb.colorAt(x, y, slot))
	}
	r.fb.setColor(x, y, slot, color)
}
