package softpipe

import (
	"testing"

	"github.com/gogpu/gputypes"

	"golang.org/x/image/math/f32"
)

func TestFetchInterleavedAttributes(t *testing.T) {
	vb := &VertexBuffer{
		// Two vertices: position (x, y, z) then uv.
		Data: []float32{
			1, 2, 3, 0.5, 0.25,
			4, 5, 6, 0.75, 1,
		},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 20,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
				{ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 12},
			},
		},
	}

	var in VertexInput
	vb.fetch(1, &in)

	if got := in.Attr(0); got != (f32.Vec4{4, 5, 6, 1}) {
		t.Errorf("position = %v, want (4, 5, 6, 1)", got)
	}
	if got := in.Attr(1); got != (f32.Vec4{0.75, 1, 0, 1}) {
		t.Errorf("uv = %v, want (0.75, 1, 0, 1)", got)
	}
}

// Attributes the layout does not provide default to (0, 0, 0, 1), so a
// shader reading an unbound location sees a well-formed point.
func TestFetchDefaultsUnsetAttributes(t *testing.T) {
	vb := &VertexBuffer{
		Data: []float32{7, 8},
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 8,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
			},
		},
	}

	var in VertexInput
	vb.fetch(0, &in)

	if got := in.Attr(3); got != (f32.Vec4{0, 0, 0, 1}) {
		t.Errorf("unbound attribute = %v, want (0, 0, 0, 1)", got)
	}
	if got := in.Attr(99); got != (f32.Vec4{0, 0, 0, 1}) {
		t.Errorf("out-of-range location = %v, want (0, 0, 0, 1)", got)
	}
}

func TestFetchShortBufferLeavesDefault(t *testing.T) {
	vb := &VertexBuffer{
		Data: []float32{1, 2}, // not enough for a Float32x4
		Layout: gputypes.VertexBufferLayout{
			ArrayStride: 16,
			Attributes: []gputypes.VertexAttribute{
				{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x4, Offset: 0},
			},
		},
	}
	var in VertexInput
	vb.fetch(0, &in)
	if got := in.Attr(0); got != (f32.Vec4{0, 0, 0, 1}) {
		t.Errorf("truncated fetch = %v, want the default", got)
	}
}

func TestVertexCount(t *testing.T) {
	indexed := &VertexBuffer{
		Data:    make([]float32, 30),
		Indices: []uint32{0, 1, 2, 2, 1, 0},
		Layout:  gputypes.VertexBufferLayout{ArrayStride: 12},
	}
	if got := indexed.vertexCount(); got != 6 {
		t.Errorf("indexed vertexCount = %d, want 6", got)
	}
	if got := indexed.indexAt(3); got != 2 {
		t.Errorf("indexAt(3) = %d, want 2", got)
	}

	direct := &VertexBuffer{
		Data:   make([]float32, 30),
		Layout: gputypes.VertexBufferLayout{ArrayStride: 12},
	}
	if got := direct.vertexCount(); got != 10 {
		t.Errorf("non-indexed vertexCount = %d, want 10", got)
	}
	if got := direct.indexAt(7); got != 7 {
		t.Errorf("non-indexed indexAt(7) = %d, want 7", got)
	}
}
