package softpipe

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe/internal/raster"

	"golang.org/x/image/math/f32"
)

// wEpsilon gates the perspective divide: |w| at or below this collapses
// the vertex to the origin instead of dividing.
const wEpsilon = 1e-7

// Draw runs the full pipeline over the bound vertex buffer: vertex shading
// per index occurrence, primitive assembly by topology, frustum clipping,
// perspective divide, viewport transform, face culling, rasterization, and
// fragment processing. It returns when every fragment has been retired.
//
// Draw is a silent no-op (with a debug log) when any binding is missing.
func (r *Renderer) Draw() {
	if !r.bindingsComplete() {
		return
	}

	r.shadeVertices()
	shaded := r.shaded

	switch r.state.Topology {
	case gputypes.PrimitiveTopologyPointList:
		for i := range shaded {
			r.drawPoint(&shaded[i])
		}
	case gputypes.PrimitiveTopologyLineList:
		for i := 0; i+1 < len(shaded); i += 2 {
			r.drawLine(&shaded[i], &shaded[i+1])
		}
	default: // triangle list
		nvar := r.vs.NumVaryings()
		for i := 0; i+2 < len(shaded); i += 3 {
			clipTriangle(&shaded[i], &shaded[i+1], &shaded[i+2], nvar,
				r.drawClippedTriangle)
		}
	}
}

// shadeVertices runs the vertex shader once per index occurrence. A vertex
// referenced by several indices is shaded once per occurrence; there is no
// post-transform cache.
func (r *Renderer) shadeVertices() {
	n := r.vb.vertexCount()
	if cap(r.shaded) < n {
		r.shaded = make([]ShadedVertex, n)
	}
	r.shaded = r.shaded[:n]

	var in VertexInput
	for i := 0; i < n; i++ {
		r.vb.fetch(r.vb.indexAt(i), &in)
		sv := &r.shaded[i]
		*sv = ShadedVertex{}
		r.vs.ShadeVertex(&in, sv)
		sv.ClipMask = clipMask(sv.Position)
	}
}

// project applies the perspective divide and viewport transform to one
// clip-space vertex, in place. After it returns, Position holds pixel x/y,
// remapped depth, and 1/w in the fourth component. A vertex with |w| at or
// below the divide gate collapses to the origin.
func (r *Renderer) project(v *ShadedVertex) {
	w := v.Position[3]
	var ndc f32.Vec4
	if w > wEpsilon || w < -wEpsilon {
		inv := 1 / w
		ndc = f32.Vec4{
			v.Position[0] * inv,
			v.Position[1] * inv,
			v.Position[2] * inv,
			inv,
		}
	}
	v.Position = r.viewport.transform(ndc)
}

// drawClippedTriangle takes one post-clip triangle through the divide,
// viewport transform, facing test, and rasterization.
func (r *Renderer) drawClippedTriangle(a, b, c *ShadedVertex) {
	// Clipping may hand us pointers into shared scratch; copy before the
	// in-place projection.
	v0, v1, v2 := *a, *b, *c
	r.project(&v0)
	r.project(&v1)
	r.project(&v2)

	area := raster.SignedArea2(
		f32.Vec2{v0.Position[0], v0.Position[1]},
		f32.Vec2{v1.Position[0], v1.Position[1]},
		f32.Vec2{v2.Position[0], v2.Position[1]},
	)

	// Screen space is y-down, so a counter-clockwise triangle in NDC has
	// negative signed area here.
	ccw := area < 0
	front := ccw == (r.state.FrontFace == gputypes.FrontFaceCCW)
	switch r.state.CullMode {
	case gputypes.CullModeBack:
		if !front {
			return
		}
	case gputypes.CullModeFront:
		if front {
			return
		}
	}

	if r.state.Fill == FillModeWireframe {
		r.drawLineClipped(&v0, &v1, front)
		r.drawLineClipped(&v1, &v2, front)
		r.drawLineClipped(&v2, &v0, front)
		return
	}
	r.rasterTriangle(&v0, &v1, &v2, front)
}

// drawPoint rasterizes one point primitive at its rounded screen position.
func (r *Renderer) drawPoint(v *ShadedVertex) {
	if v.ClipMask != 0 {
		return
	}
	p := *v
	r.project(&p)

	x := int(p.Position[0] + 0.5)
	y := int(p.Position[1] + 0.5)
	if !r.inViewport(x, y) {
		return
	}

	nvar := r.vs.NumVaryings()
	var s raster.Sample
	s.Depth = p.Position[2]
	copy(s.Varyings[:nvar], p.Varyings[:nvar])
	r.processSimpleFragment(x, y, float32(x)+0.5, float32(y)+0.5, p.Position[3], &s, true)
}

// drawLine clips a line primitive trivially (drop when either endpoint is
// outside the frustum), projects it, and walks it.
func (r *Renderer) drawLine(a, b *ShadedVertex) {
	if a.ClipMask != 0 || b.ClipMask != 0 {
		return
	}
	va, vb := *a, *b
	r.project(&va)
	r.project(&vb)
	r.drawLineClipped(&va, &vb, true)
}

// drawLineClipped walks a projected line with Bresenham steps, linearly
// interpolating depth and varyings along the major axis.
func (r *Renderer) drawLineClipped(a, b *ShadedVertex, front bool) {
	nvar := r.vs.NumVaryings()
	x0 := int(a.Position[0] + 0.5)
	y0 := int(a.Position[1] + 0.5)
	x1 := int(b.Position[0] + 0.5)
	y1 := int(b.Position[1] + 0.5)

	raster.WalkLine(x0, y0, x1, y1, func(x, y int, t float32) {
		if !r.inViewport(x, y) {
			return
		}
		var s raster.Sample
		s.Depth = a.Position[2] + (b.Position[2]-a.Position[2])*t
		invW := a.Position[3] + (b.Position[3]-a.Position[3])*t
		for i := 0; i < nvar; i++ {
			s.Varyings[i] = a.Varyings[i] + (b.Varyings[i]-a.Varyings[i])*t
		}
		r.processSimpleFragment(x, y, float32(x)+0.5, float32(y)+0.5, invW, &s, front)
	})
}

// inViewport reports whether a pixel lies inside both the viewport
// rectangle and the target.
func (r *Renderer) inViewport(x, y int) bool {
	if x < r.viewport.X || y < r.viewport.Y {
		return false
	}
	if x >= r.viewport.X+r.viewport.Width || y >= r.viewport.Y+r.viewport.Height {
		return false
	}
	return x >= 0 && y >= 0 && x < r.fb.width && y < r.fb.height
}

// processSimpleFragment retires a point or line fragment. On multisampled
// targets it is evaluated at the pixel center and retired at every sample
// slot, so thin primitives stay solid through the resolve.
func (r *Renderer) processSimpleFragment(x, y int, px, py, invW float32, s *raster.Sample, front bool) {
	slots := r.fb.SampleCount()
	for slot := 0; slot < slots; slot++ {
		r.processFragment(x, y, slot, px, py, invW, s, front, nil)
	}
}
