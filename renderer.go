package softpipe

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe/internal/raster"
)

// ClearDesc describes which target aspects a pass clears on begin, and
// with what values.
type ClearDesc struct {
	// ColorLoad selects clearing or loading the existing color contents.
	ColorLoad gputypes.LoadOp

	// Color is the clear color, used when ColorLoad is LoadOpClear.
	Color gputypes.Color

	// DepthLoad selects clearing or loading the existing depth contents.
	DepthLoad gputypes.LoadOp

	// Depth is the clear depth, used when DepthLoad is LoadOpClear.
	Depth float32
}

// ClearAll returns a ClearDesc clearing both color and depth.
func ClearAll(c gputypes.Color, depth float32) ClearDesc {
	return ClearDesc{
		ColorLoad: gputypes.LoadOpClear,
		Color:     c,
		DepthLoad: gputypes.LoadOpClear,
		Depth:     depth,
	}
}

// LoadAll returns a ClearDesc that preserves existing target contents.
func LoadAll() ClearDesc {
	return ClearDesc{
		ColorLoad: gputypes.LoadOpLoad,
		DepthLoad: gputypes.LoadOpLoad,
	}
}

// Renderer drives the rasterization pipeline.
//
// A single caller thread owns the renderer: BeginPass binds a target
// exclusively until EndPass, and each Draw runs every stage to completion
// before returning. Scratch storage (shaded vertices, quad contexts) is
// pooled across draws and never shared externally.
type Renderer struct {
	fb     *Framebuffer
	inPass bool

	vb       *VertexBuffer
	vs       VertexShader
	fs       FragmentShader
	state    RenderState
	viewport Viewport

	// Reused scratch, private to the renderer.
	shaded []ShadedVertex
	quads  raster.QuadPool
	fragIn FragmentInput
}

// Option configures a Renderer during creation.
type Option func(*rendererOptions)

type rendererOptions struct {
	state RenderState
}

// WithRenderState sets the initial render state.
func WithRenderState(s RenderState) Option {
	return func(o *rendererOptions) { o.state = s }
}

// NewRenderer creates a renderer with the default render state.
func NewRenderer(opts ...Option) *Renderer {
	o := rendererOptions{state: DefaultRenderState()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{state: o.state}
}

// BeginPass binds target as the exclusive render target and applies the
// clear description. The viewport resets to cover the whole target.
func (r *Renderer) BeginPass(target *Framebuffer, clear ClearDesc) {
	if target == nil {
		Logger().Debug("softpipe: BeginPass with nil target, pass skipped")
		return
	}
	r.fb = target
	r.inPass = true
	r.viewport = FullViewport(target.Width(), target.Height())

	cr := uint8(clamp255(float32(clear.Color.R) * 255))
	cg := uint8(clamp255(float32(clear.Color.G) * 255))
	cb := uint8(clamp255(float32(clear.Color.B) * 255))
	ca := uint8(clamp255(float32(clear.Color.A) * 255))
	target.clear(
		clear.ColorLoad == gputypes.LoadOpClear, cr, cg, cb, ca,
		clear.DepthLoad == gputypes.LoadOpClear, clear.Depth,
	)
}

// EndPass finishes the pass and resolves multisampled color into the
// single-sample buffer. The target becomes available to other passes.
func (r *Renderer) EndPass() {
	if !r.inPass {
		return
	}
	r.fb.resolve()
	r.fb = nil
	r.inPass = false
}

// BindVertexBuffer binds the vertex source for subsequent draws.
func (r *Renderer) BindVertexBuffer(vb *VertexBuffer) { r.vb = vb }

// BindShaders binds the shading pair for subsequent draws.
func (r *Renderer) BindShaders(vs VertexShader, fs FragmentShader) {
	r.vs = vs
	r.fs = fs
}

// SetRenderState replaces the render state for subsequent draws.
func (r *Renderer) SetRenderState(s RenderState) { r.state = s }

// SetViewport replaces the viewport for subsequent draws.
func (r *Renderer) SetViewport(vp Viewport) { r.viewport = vp }

// bindingsComplete reports whether a draw can run. A missing binding is a
// caller-contract violation; the draw is skipped, not an error.
func (r *Renderer) bindingsComplete() bool {
	if !r.inPass || r.fb == nil || r.vb == nil || r.vs == nil || r.fs == nil {
		Logger().Debug("softpipe: draw skipped, incomplete bindings",
			slog.Bool("inPass", r.inPass),
			slog.Bool("vertexBuffer", r.vb != nil),
			slog.Bool("shaders", r.vs != nil && r.fs != nil),
		)
		return false
	}
	return true
}
