package softpipe

import (
	"github.com/gogpu/softpipe/internal/raster"
	"github.com/gogpu/softpipe/internal/smath"

	"golang.org/x/image/math/f32"
)

// MaxVaryings is the fixed capacity of the per-vertex varying vector.
const MaxVaryings = raster.MaxVaryings

// ShadedVertex is the output of the vertex stage for one index: a
// clip-space position, the varying vector, and the 6-bit frustum clip
// mask. After the perspective divide, Position holds NDC x/y/z and 1/w in
// the fourth component; the viewport transform then moves x/y into pixels.
type ShadedVertex struct {
	Position f32.Vec4
	Varyings [MaxVaryings]float32
	ClipMask uint8
}

// VertexShader transforms one vertex's attributes into a clip-space
// position and varyings.
//
// Implementations fill out.Position and out.Varyings[:NumVaryings()];
// attribute and uniform state is passed explicitly (attributes through in,
// uniforms as fields on the shader value) rather than looked up by name.
type VertexShader interface {
	// ShadeVertex runs once per index occurrence in the index stream.
	ShadeVertex(in *VertexInput, out *ShadedVertex)

	// NumVaryings reports how many varying slots the shader writes; the
	// rasterizer interpolates exactly that many.
	NumVaryings() int
}

// FragmentInput carries the interpolated inputs for one fragment.
type FragmentInput struct {
	// FragCoord is the fragment's window position: pixel x/y of the sample
	// position, interpolated depth in z, and 1/w in w.
	FragCoord f32.Vec4

	// FrontFacing reports the facing of the covering triangle.
	FrontFacing bool

	// Varyings are the perspective-corrected varying values.
	Varyings []float32

	// Quad exposes screen-space derivatives of varyings when the fragment
	// was rasterized through the 2x2 quad strategy; nil otherwise.
	Quad QuadDerivatives
}

// QuadDerivatives provides screen-space partial derivatives of varying
// slots, formed by finite differencing across a 2x2 pixel block.
type QuadDerivatives interface {
	DDX(slot int) float32
	DDY(slot int) float32
}

// FragmentShader computes an output color for one fragment.
type FragmentShader interface {
	// ShadeFragment returns the fragment color and a discard flag. A
	// discarded fragment suppresses both depth and color writes for that
	// sample only.
	ShadeFragment(in *FragmentInput) (color f32.Vec4, discard bool)
}

// FlatShader is a built-in shading pair: position attribute at location 0
// transformed by MVP, constant output color, no varyings.
type FlatShader struct {
	MVP   f32.Mat4
	Color f32.Vec4
}

// ShadeVertex implements VertexShader.
func (s *FlatShader) ShadeVertex(in *VertexInput, out *ShadedVertex) {
	out.Position = smath.MulMat4Vec4(s.MVP, in.Attr(0))
}

// NumVaryings implements VertexShader.
func (s *FlatShader) NumVaryings() int { return 0 }

// ShadeFragment implements FragmentShader.
func (s *FlatShader) ShadeFragment(*FragmentInput) (f32.Vec4, bool) {
	return s.Color, false
}

// TextureShader is a built-in shading pair: position at location 0, UV at
// location 1, transformed by MVP, sampling Texture through Sampler with
// derivative-based level selection when quad derivatives are available.
type TextureShader struct {
	MVP     f32.Mat4
	Texture *Texture
	Sampler Sampler2D
}

// Varying slot assignment for TextureShader.
const (
	texShaderSlotU = 0
	texShaderSlotV = 1
)

// ShadeVertex implements VertexShader.
func (s *TextureShader) ShadeVertex(in *VertexInput, out *ShadedVertex) {
	out.Position = smath.MulMat4Vec4(s.MVP, in.Attr(0))
	uv := in.Attr(1)
	out.Varyings[texShaderSlotU] = uv[0]
	out.Varyings[texShaderSlotV] = uv[1]
}

// NumVaryings implements VertexShader.
func (s *TextureShader) NumVaryings() int { return 2 }

// ShadeFragment implements FragmentShader.
func (s *TextureShader) ShadeFragment(in *FragmentInput) (f32.Vec4, bool) {
	u := in.Varyings[texShaderSlotU]
	v := in.Varyings[texShaderSlotV]

	if in.Quad != nil {
		ddx := f32.Vec2{in.Quad.DDX(texShaderSlotU), in.Quad.DDX(texShaderSlotV)}
		ddy := f32.Vec2{in.Quad.DDY(texShaderSlotU), in.Quad.DDY(texShaderSlotV)}
		return s.Sampler.SampleGrad(s.Texture, u, v, ddx, ddy), false
	}
	return s.Sampler.Sample(s.Texture, u, v), false
}
