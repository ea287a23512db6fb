package softpipe

import "github.com/gogpu/gputypes"

// FillMode selects how triangle interiors are rasterized.
type FillMode uint8

const (
	// FillModeSolid rasterizes triangle interiors.
	FillModeSolid FillMode = iota

	// FillModeWireframe rasterizes only triangle edges, as lines.
	FillModeWireframe
)

// String returns a string representation of the fill mode.
func (m FillMode) String() string {
	switch m {
	case FillModeSolid:
		return "Solid"
	case FillModeWireframe:
		return "Wireframe"
	default:
		return "Unknown"
	}
}

// RenderState is the immutable-for-the-draw state bundle supplied by the
// caller before each draw. The pipeline never mutates it.
type RenderState struct {
	// DepthTest enables the depth test with DepthFunc.
	DepthTest bool

	// DepthFunc is the comparison applied to incoming vs stored depth.
	DepthFunc gputypes.CompareFunction

	// DepthWrite enables depth buffer writes for passing fragments.
	DepthWrite bool

	// EarlyZ enables whole-quad depth rejection before fragment shading on
	// single-sampled targets. It never changes which individual fragments
	// pass; it only skips shading work for 2x2 blocks that entirely fail.
	EarlyZ bool

	// Blend enables color blending with BlendState; when false, passing
	// fragments overwrite the destination.
	Blend bool

	// BlendState holds the RGB and alpha blend equations.
	BlendState gputypes.BlendState

	// CullMode discards front- or back-facing triangles.
	CullMode gputypes.CullMode

	// FrontFace defines which screen-space winding is front-facing.
	FrontFace gputypes.FrontFace

	// Topology groups shaded vertices into points, lines, or triangles.
	Topology gputypes.PrimitiveTopology

	// Fill selects solid or wireframe triangle rasterization.
	Fill FillMode

	// LineWidth is accepted for API compatibility; the line walk is one
	// pixel wide.
	LineWidth float32
}

// DefaultRenderState returns the state used when the caller sets none:
// opaque triangles, Less depth testing with writes, no culling, Early-Z on.
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:  true,
		DepthFunc:  gputypes.CompareFunctionLess,
		DepthWrite: true,
		EarlyZ:     true,
		CullMode:   gputypes.CullModeNone,
		FrontFace:  gputypes.FrontFaceCCW,
		Topology:   gputypes.PrimitiveTopologyTriangleList,
		Fill:       FillModeSolid,
		LineWidth:  1,
	}
}
