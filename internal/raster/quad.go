package raster

import "golang.org/x/image/math/f32"

// MaxVaryings is the fixed capacity of the per-vertex varying vector.
const MaxVaryings = 16

// SampleOffsets4 are the sub-pixel positions of the four multisample
// slots, in pixel-relative coordinates. This is the standard 4x
// rotated-grid pattern ((6,2), (14,6), (2,10), (10,14) in 1/16ths).
var SampleOffsets4 = [4]f32.Vec2{
	{6.0 / 16, 2.0 / 16},
	{14.0 / 16, 6.0 / 16},
	{2.0 / 16, 10.0 / 16},
	{10.0 / 16, 14.0 / 16},
}

// CenterOffset is the sub-pixel position of the single-sample shading
// point.
var CenterOffset = f32.Vec2{0.5, 0.5}

// Sample is the per-sample bookkeeping for one coverage point: its
// barycentric weights, interpolated depth, coverage flag, and
// perspective-corrected varyings.
type Sample struct {
	B0, B1, B2 float32
	Depth      float32
	Covered    bool
	Varyings   [MaxVaryings]float32
}

// Quad is the 2x2 pixel-block context used by the Early-Z strategy.
//
// Pixels are ordered (x,y), (x+1,y), (x,y+1), (x+1,y+1). All four pixels
// carry interpolated varyings even when they fall outside the triangle
// (extrapolated barycentrics), so screen-space derivatives can always be
// formed by finite differencing across the block.
type Quad struct {
	X, Y     int // top-left pixel
	Pix      [4]Sample
	Coverage int // number of covered pixels
}

// Reset clears the quad for reuse at a new block position.
func (q *Quad) Reset(x, y int) {
	q.X, q.Y = x, y
	q.Coverage = 0
	for i := range q.Pix {
		q.Pix[i] = Sample{}
	}
}

// DDX returns the screen-space x derivative of varying slot across the
// block, by finite differencing the left and right columns.
func (q *Quad) DDX(slot int) float32 {
	return q.Pix[1].Varyings[slot] - q.Pix[0].Varyings[slot]
}

// DDY returns the screen-space y derivative of varying slot across the
// block, by finite differencing the top and bottom rows.
func (q *Quad) DDY(slot int) float32 {
	return q.Pix[2].Varyings[slot] - q.Pix[0].Varyings[slot]
}

// QuadPool reuses Quad contexts across block iterations within one draw.
// Index-based reuse, no per-pixel allocation; the pool is private to the
// orchestrator and must not be shared across concurrent draws.
type QuadPool struct {
	free []*Quad
}

// Get returns a reset quad positioned at (x, y).
func (p *QuadPool) Get(x, y int) *Quad {
	var q *Quad
	if n := len(p.free); n > 0 {
		q = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		q = &Quad{}
	}
	q.Reset(x, y)
	return q
}

// Put returns a quad to the pool.
func (p *QuadPool) Put(q *Quad) {
	if q == nil {
		return
	}
	p.free = append(p.free, q)
}
