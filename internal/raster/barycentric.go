// Package raster provides the per-pixel machinery of the triangle
// rasterizer: barycentric coverage, pooled 2x2 quad contexts with
// derivative support, multisample sub-positions, and the integer line walk.
package raster

import "golang.org/x/image/math/f32"

// InsideEpsilon is the coverage admission tolerance. A pixel whose
// barycentric components are all >= -InsideEpsilon counts as inside, so a
// pixel exactly on a shared edge is claimed by both adjacent triangles.
// A top-left fill rule would make edge ownership unambiguous; with opaque
// geometry the double write is invisible, and the inclusive rule never
// leaves seam holes between adjacent triangles.
const InsideEpsilon = 1e-5

// degenerateArea is the signed-area magnitude below which a triangle is
// treated as having no rasterizable interior.
const degenerateArea = 1e-9

// SignedArea2 returns twice the signed area of the screen-space triangle
// (a, b, c). Positive for counter-clockwise winding in a y-down
// coordinate system with the cross product taken as (b-a) x (c-a).
func SignedArea2(a, b, c f32.Vec2) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// Tri holds the edge setup for barycentric evaluation over one
// screen-space triangle.
type Tri struct {
	a, b, c f32.Vec2
	invArea float32
	ok      bool
}

// SetupTri prepares barycentric evaluation for the triangle (a, b, c).
// Degenerate (near-zero-area) triangles yield a setup whose Bary reports
// zero coverage everywhere, so callers simply rasterize nothing.
func SetupTri(a, b, c f32.Vec2) Tri {
	area := SignedArea2(a, b, c)
	t := Tri{a: a, b: b, c: c}
	if area > degenerateArea || area < -degenerateArea {
		t.invArea = 1 / area
		t.ok = true
	}
	return t
}

// Valid reports whether the triangle has a rasterizable interior.
func (t *Tri) Valid() bool { return t.ok }

// Bary returns the barycentric coordinates of the point (px, py) with
// respect to the triangle. The weights sum to 1 inside the triangle and
// extrapolate linearly outside it. A degenerate setup yields weights that
// fail Inside at every point.
func (t *Tri) Bary(px, py float32) (b0, b1, b2 float32) {
	if !t.ok {
		return -1, -1, -1
	}
	p := f32.Vec2{px, py}
	b0 = SignedArea2(t.b, t.c, p) * t.invArea
	b1 = SignedArea2(t.c, t.a, p) * t.invArea
	b2 = 1 - b0 - b1
	return b0, b1, b2
}

// Inside reports whether barycentric weights describe a covered sample
// under the inclusive epsilon rule.
func Inside(b0, b1, b2 float32) bool {
	return b0 >= -InsideEpsilon && b1 >= -InsideEpsilon && b2 >= -InsideEpsilon
}

// BBox is an integer, inclusive-exclusive screen rectangle.
type BBox struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether the box covers no pixels.
func (b BBox) Empty() bool { return b.X0 >= b.X1 || b.Y0 >= b.Y1 }

// TriBounds computes the integer bounding box of a screen-space triangle,
// clipped to the rectangle [0, clipW) x [0, clipH).
func TriBounds(a, b, c f32.Vec2, clipW, clipH int) BBox {
	minX := min(a[0], min(b[0], c[0]))
	minY := min(a[1], min(b[1], c[1]))
	maxX := max(a[0], max(b[0], c[0]))
	maxY := max(a[1], max(b[1], c[1]))

	box := BBox{
		X0: max(int(minX), 0),
		Y0: max(int(minY), 0),
		X1: min(int(maxX)+1, clipW),
		Y1: min(int(maxY)+1, clipH),
	}
	return box
}
