package softpipe

import (
	"bytes"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe/internal/smath"

	"golang.org/x/image/math/f32"
)

// ndcForScreen maps a target pixel position to the NDC coordinate that the
// viewport transform of a w x h target sends back to exactly that position.
func ndcForScreen(x, y float32, w, h int) (float32, float32) {
	return x/float32(w)*2 - 1, 1 - y/float32(h)*2
}

// triangleVB builds a one-triangle vertex buffer whose screen-space
// vertices land at the given pixel positions on a w x h target, all at the
// given NDC depth.
func triangleVB(w, h int, depth float32, px [3][2]float32) *VertexBuffer {
	data := make([]float32, 0, 9)
	for _, p := range px {
		nx, ny := ndcForScreen(p[0], p[1], w, h)
		data = append(data, nx, ny, depth)
	}
	return &VertexBuffer{
		Data:    data,
		Indices: []uint32{0, 1, 2},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 12,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			},
		},
	}
}

func newTarget(t *testing.T, w, h int, opts ...FramebufferOption) *Framebuffer {
	t.Helper()
	fb, err := NewFramebuffer(w, h, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func redFlat() *FlatShader {
	return &FlatShader{MVP: smath.Identity(), Color: f32.Vec4{1, 0, 0, 1}}
}

func runDraw(t *testing.T, fb *Framebuffer, vb *VertexBuffer, vs VertexShader, fs FragmentShader, state RenderState) {
	t.Helper()
	r := NewRenderer(WithRenderState(state))
	r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))
	r.BindVertexBuffer(vb)
	r.BindShaders(vs, fs)
	r.Draw()
	r.EndPass()
}

func TestDrawTriangleSolid(t *testing.T) {
	fb := newTarget(t, 64, 64)
	vb := triangleVB(64, 64, 0, [3][2]float32{{10, 10}, {50, 10}, {10, 50}})
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, DefaultRenderState())

	r, g, b, a := fb.color.GetRGBA(20, 20)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("interior pixel = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}

	// NDC depth 0 remaps to 0.5 in the default [0, 1] viewport range.
	if d := fb.DepthAt(20, 20); d < 0.5-1e-5 || d > 0.5+1e-5 {
		t.Errorf("interior depth = %v, want 0.5", d)
	}

	r, _, _, _ = fb.color.GetRGBA(55, 55)
	if r != 0 {
		t.Errorf("exterior pixel red = %d, want 0", r)
	}
	if d := fb.DepthAt(55, 55); d != 1 {
		t.Errorf("exterior depth = %v, want cleared 1", d)
	}
}

// For a w=1 triangle the pipeline must agree pixel for pixel with a plain
// scanline fill that tests every pixel center against the same inclusive
// edge rule.
func TestTriangleMatchesScanlineFill(t *testing.T) {
	const w, h = 64, 64
	tri := [3][2]float32{{10, 10}, {50, 10}, {10, 50}}

	fb := newTarget(t, w, h)
	fs := redFlat()
	runDraw(t, fb, triangleVB(w, h, 0, tri), fs, fs, DefaultRenderState())

	area := func(ax, ay, bx, by, cx, cy float32) float32 {
		return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	}
	invArea := 1 / area(tri[0][0], tri[0][1], tri[1][0], tri[1][1], tri[2][0], tri[2][1])

	want := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5
			b0 := area(tri[1][0], tri[1][1], tri[2][0], tri[2][1], px, py) * invArea
			b1 := area(tri[2][0], tri[2][1], tri[0][0], tri[0][1], px, py) * invArea
			b2 := 1 - b0 - b1

			i := (y*w + x) * 4
			if b0 >= -1e-5 && b1 >= -1e-5 && b2 >= -1e-5 {
				want[i] = 255
			}
			want[i+3] = 255
		}
	}

	if !bytes.Equal(fb.Raw(), want) {
		got := fb.Raw()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("first mismatch at pixel (%d, %d) channel %d: got %d, want %d",
					(i/4)%w, i/4/w, i%4, got[i], want[i])
			}
		}
	}
}

func TestDepthTestOccludes(t *testing.T) {
	fb := newTarget(t, 64, 64)
	tri := [3][2]float32{{5, 5}, {60, 5}, {5, 60}}
	near := triangleVB(64, 64, 0, tri)
	far := triangleVB(64, 64, 0.5, tri)

	red := redFlat()
	green := &FlatShader{MVP: smath.Identity(), Color: f32.Vec4{0, 1, 0, 1}}

	r := NewRenderer()
	r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))
	r.BindShaders(red, red)
	r.BindVertexBuffer(near)
	r.Draw()
	r.BindShaders(green, green)
	r.BindVertexBuffer(far)
	r.Draw()
	r.EndPass()

	cr, cg, _, _ := fb.color.GetRGBA(20, 20)
	if cr != 255 || cg != 0 {
		t.Errorf("pixel = (%d, %d, ...), want near red to occlude far green", cr, cg)
	}
	if d := fb.DepthAt(20, 20); d < 0.5-1e-5 || d > 0.5+1e-5 {
		t.Errorf("depth = %v, want near triangle's 0.5", d)
	}
}

// Re-testing the depth a fragment just wrote must be stable: a second draw
// of the same geometry with LessEqual changes nothing.
func TestDepthRedrawIdempotent(t *testing.T) {
	state := DefaultRenderState()
	state.DepthFunc = gputypes.CompareFunctionLessEqual

	vb := triangleVB(64, 64, 0, [3][2]float32{{10, 10}, {50, 10}, {10, 50}})
	fs := redFlat()

	fb := newTarget(t, 64, 64)
	r := NewRenderer(WithRenderState(state))
	r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))
	r.BindVertexBuffer(vb)
	r.BindShaders(fs, fs)
	r.Draw()
	first := append([]byte(nil), fb.Raw()...)
	r.Draw()
	r.EndPass()

	if !bytes.Equal(first, fb.Raw()) {
		t.Error("second identical draw changed the image")
	}
}

// A varying that is constant across the triangle interpolates to exactly
// that constant at every fragment, regardless of the 1/w weights.
func TestConstantVaryingExact(t *testing.T) {
	fb := newTarget(t, 64, 64)
	vb := triangleVB(64, 64, 0, [3][2]float32{{5, 5}, {60, 5}, {5, 60}})
	sh := &varyingShader{value: 0.7}
	runDraw(t, fb, vb, sh, sh, DefaultRenderState())

	want, _, _, _ := fb.color.GetRGBA(20, 20)
	if want == 0 {
		t.Fatal("probe pixel not covered")
	}
	for y := 6; y < 40; y++ {
		for x := 6; x < 40; x++ {
			if x+y >= 60 {
				continue
			}
			r, _, _, _ := fb.color.GetRGBA(x, y)
			if r != want {
				t.Fatalf("pixel (%d, %d) red = %d, want constant %d", x, y, r, want)
			}
		}
	}
}

// varyingShader copies a constant into varying slot 0 and echoes it as the
// red channel.
type varyingShader struct {
	value float32
}

func (s *varyingShader) ShadeVertex(in *VertexInput, out *ShadedVertex) {
	out.Position = in.Attr(0)
	out.Varyings[0] = s.value
}

func (s *varyingShader) NumVaryings() int { return 1 }

func (s *varyingShader) ShadeFragment(in *FragmentInput) (f32.Vec4, bool) {
	return f32.Vec4{in.Varyings[0], 0, 0, 1}, false
}

// The Early-Z quad strategy must produce the identical image to the plain
// per-pixel strategy; it only skips shading work, never changes results.
func TestEarlyZMatchesPerPixel(t *testing.T) {
	render := func(earlyZ bool) []byte {
		state := DefaultRenderState()
		state.EarlyZ = earlyZ

		fb := newTarget(t, 64, 64)
		r := NewRenderer(WithRenderState(state))
		r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))

		red := redFlat()
		green := &FlatShader{MVP: smath.Identity(), Color: f32.Vec4{0, 1, 0, 1}}

		r.BindShaders(red, red)
		r.BindVertexBuffer(triangleVB(64, 64, 0, [3][2]float32{{5, 5}, {60, 5}, {5, 60}}))
		r.Draw()
		r.BindShaders(green, green)
		r.BindVertexBuffer(triangleVB(64, 64, 0.5, [3][2]float32{{20, 2}, {62, 50}, {2, 50}}))
		r.Draw()
		r.EndPass()
		return append([]byte(nil), fb.Raw()...)
	}

	if !bytes.Equal(render(true), render(false)) {
		t.Error("Early-Z image differs from per-pixel image")
	}
}

func TestCullMode(t *testing.T) {
	// Screen winding (10,10) -> (50,10) -> (10,50) is clockwise, so with
	// FrontFaceCCW the triangle is back-facing.
	cw := [3][2]float32{{10, 10}, {50, 10}, {10, 50}}
	ccw := [3][2]float32{{10, 10}, {10, 50}, {50, 10}}

	tests := []struct {
		name  string
		tri   [3][2]float32
		mode  gputypes.CullMode
		drawn bool
	}{
		{"back-facing survives no culling", cw, gputypes.CullModeNone, true},
		{"back-facing culled", cw, gputypes.CullModeBack, false},
		{"back-facing survives front culling", cw, gputypes.CullModeFront, true},
		{"front-facing survives back culling", ccw, gputypes.CullModeBack, true},
		{"front-facing culled", ccw, gputypes.CullModeFront, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := DefaultRenderState()
			state.CullMode = tt.mode

			fb := newTarget(t, 64, 64)
			fs := redFlat()
			runDraw(t, fb, triangleVB(64, 64, 0, tt.tri), fs, fs, state)

			r, _, _, _ := fb.color.GetRGBA(20, 20)
			if drawn := r == 255; drawn != tt.drawn {
				t.Errorf("drawn = %v, want %v", drawn, tt.drawn)
			}
		})
	}
}

func TestFrustumRejectedTriangle(t *testing.T) {
	fb := newTarget(t, 64, 64)
	// Entirely beyond the right clip plane.
	vb := &VertexBuffer{
		Data: []float32{
			2, 0, 0,
			3, 0, 0,
			2, 1, 0,
		},
		Indices: []uint32{0, 1, 2},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 12,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			},
		},
	}
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, DefaultRenderState())

	for _, p := range [][2]int{{0, 0}, {32, 32}, {63, 63}} {
		if r, _, _, _ := fb.color.GetRGBA(p[0], p[1]); r != 0 {
			t.Fatalf("pixel %v touched by rejected triangle", p)
		}
	}
}

func TestClippedTriangleRendersOnScreenPart(t *testing.T) {
	fb := newTarget(t, 64, 64)
	// Spans far beyond the left plane; the on-screen wedge must still be
	// rasterized.
	vb := &VertexBuffer{
		Data: []float32{
			-3, 0, 0,
			0.5, 0.8, 0,
			0.5, -0.8, 0,
		},
		Indices: []uint32{0, 1, 2},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 12,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			},
		},
	}
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, DefaultRenderState())

	if r, _, _, _ := fb.color.GetRGBA(32, 32); r != 255 {
		t.Error("center pixel not covered by clipped triangle")
	}
	if r, _, _, _ := fb.color.GetRGBA(2, 32); r != 255 {
		t.Error("left-edge pixel not covered by clipped triangle")
	}
}

func TestMSAAEdgeCoverage(t *testing.T) {
	fb := newTarget(t, 64, 64, WithMultisample())
	// Right edge at x = 32.5 cuts pixel column 32 in half: the two left
	// samples of the rotated grid are covered, the two right ones are not.
	vb := triangleVB(64, 64, 0, [3][2]float32{{0, 0}, {32.5, 0}, {32.5, 64}})
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, DefaultRenderState())

	r, _, _, a := fb.color.GetRGBA(20, 20)
	if r != 255 || a != 255 {
		t.Errorf("interior pixel = (%d, a=%d), want fully red", r, a)
	}

	r, g, b, a := fb.color.GetRGBA(32, 32)
	if r != 127 || g != 0 || b != 0 || a != 255 {
		t.Errorf("edge pixel = (%d, %d, %d, %d), want (127, 0, 0, 255)", r, g, b, a)
	}
}

func TestPointTopology(t *testing.T) {
	state := DefaultRenderState()
	state.Topology = gputypes.PrimitiveTopologyPointList

	fb := newTarget(t, 64, 64)
	nx, ny := ndcForScreen(32, 32, 64, 64)
	vb := &VertexBuffer{
		Data:    []float32{nx, ny, 0},
		Indices: []uint32{0},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 12,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			},
		},
	}
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, state)

	if r, _, _, _ := fb.color.GetRGBA(32, 32); r != 255 {
		t.Error("point pixel not written")
	}
	if r, _, _, _ := fb.color.GetRGBA(34, 32); r != 0 {
		t.Error("neighbor pixel written by point")
	}
}

func TestLineTopology(t *testing.T) {
	state := DefaultRenderState()
	state.Topology = gputypes.PrimitiveTopologyLineList

	fb := newTarget(t, 64, 64)
	x0, y0 := ndcForScreen(10, 20, 64, 64)
	x1, y1 := ndcForScreen(50, 20, 64, 64)
	vb := &VertexBuffer{
		Data:    []float32{x0, y0, 0, x1, y1, 0},
		Indices: []uint32{0, 1},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 12,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			},
		},
	}
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, state)

	for x := 10; x <= 50; x += 10 {
		if r, _, _, _ := fb.color.GetRGBA(x, 20); r != 255 {
			t.Fatalf("line pixel (%d, 20) not written", x)
		}
	}
	if r, _, _, _ := fb.color.GetRGBA(30, 25); r != 0 {
		t.Error("off-line pixel written")
	}
}

func TestWireframeFill(t *testing.T) {
	state := DefaultRenderState()
	state.Fill = FillModeWireframe

	fb := newTarget(t, 64, 64)
	vb := triangleVB(64, 64, 0, [3][2]float32{{10, 10}, {50, 10}, {10, 50}})
	fs := redFlat()
	runDraw(t, fb, vb, fs, fs, state)

	if r, _, _, _ := fb.color.GetRGBA(30, 10); r != 255 {
		t.Error("edge pixel not written in wireframe mode")
	}
	if r, _, _, _ := fb.color.GetRGBA(20, 20); r != 0 {
		t.Error("interior pixel written in wireframe mode")
	}
}

func TestDrawWithoutBindingsIsNoOp(t *testing.T) {
	fb := newTarget(t, 8, 8)
	r := NewRenderer()
	r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))
	r.Draw() // no vertex buffer, no shaders
	r.EndPass()

	r2 := NewRenderer()
	r2.Draw() // no pass at all
}

func TestViewportRestrictsRendering(t *testing.T) {
	fb := newTarget(t, 64, 64)
	vb := triangleVB(64, 64, 0, [3][2]float32{{0, 0}, {64, 0}, {0, 64}})
	fs := redFlat()

	r := NewRenderer()
	r.BeginPass(fb, ClearAll(gputypes.Color{A: 1}, 1))
	r.SetViewport(Viewport{X: 16, Y: 16, Width: 32, Height: 32, MaxDepth: 1})
	r.BindVertexBuffer(vb)
	r.BindShaders(fs, fs)
	r.Draw()
	r.EndPass()

	if cr, _, _, _ := fb.color.GetRGBA(20, 20); cr != 255 {
		t.Error("pixel inside viewport not written")
	}
	if cr, _, _, _ := fb.color.GetRGBA(5, 5); cr != 0 {
		t.Error("pixel outside viewport written")
	}
}

func TestBlendAlphaOverPipeline(t *testing.T) {
	state := DefaultRenderState()
	state.DepthTest = false
	state.Blend = true
	state.BlendState = gputypes.BlendState{
		Color: gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		},
		Alpha: gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		},
	}

	fb := newTarget(t, 64, 64)
	vb := triangleVB(64, 64, 0, [3][2]float32{{5, 5}, {60, 5}, {5, 60}})
	fs := &FlatShader{MVP: smath.Identity(), Color: f32.Vec4{1, 0, 0, 0.5}}
	runDraw(t, fb, vb, fs, fs, state)

	r, _, _, _ := fb.color.GetRGBA(20, 20)
	// Half-alpha red over black: 0.5*255 truncated.
	if r != 127 {
		t.Errorf("blended red = %d, want 127", r)
	}
}
