package softpipe

import (
	"github.com/gogpu/gputypes"

	"golang.org/x/image/math/f32"
)

// MaxAttributes is the number of vertex attribute locations a shader can
// consume.
const MaxAttributes = 8

// VertexBuffer is a caller-owned interleaved vertex source.
//
// Data is a flat array of per-vertex float attributes described by Layout;
// Indices selects vertices in draw order. The pipeline references the
// slices for the duration of a draw and never copies or mutates them.
type VertexBuffer struct {
	Data    []float32
	Indices []uint32
	Layout  gputypes.VertexBufferLayout
}

// VertexInput carries the fetched attribute values for one vertex,
// indexed by shader location. Unset components default to (0, 0, 0, 1).
type VertexInput struct {
	Attrs [MaxAttributes]f32.Vec4
}

// Attr returns the attribute at the given shader location.
func (in *VertexInput) Attr(location int) f32.Vec4 {
	if location < 0 || location >= MaxAttributes {
		return f32.Vec4{0, 0, 0, 1}
	}
	return in.Attrs[location]
}

// vertexFormatComponents maps a vertex format to its float component count.
// Only float32 formats are supported by the fetch stage.
func vertexFormatComponents(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 0
	}
}

// fetch decodes the attributes of vertex index into in.
//
// Layout offsets and stride are in bytes, per the WebGPU convention, while
// Data is a float32 slice; both are divided by 4 during addressing.
func (vb *VertexBuffer) fetch(index uint32, in *VertexInput) {
	base := int(index) * int(vb.Layout.ArrayStride) / 4
	for i := range in.Attrs {
		in.Attrs[i] = f32.Vec4{0, 0, 0, 1}
	}
	for _, attr := range vb.Layout.Attributes {
		loc := int(attr.ShaderLocation)
		if loc >= MaxAttributes {
			continue
		}
		n := vertexFormatComponents(attr.Format)
		off := base + int(attr.Offset)/4
		if off+n > len(vb.Data) {
			continue
		}
		v := f32.Vec4{0, 0, 0, 1}
		for c := 0; c < n; c++ {
			v[c] = vb.Data[off+c]
		}
		in.Attrs[loc] = v
	}
}

// vertexCount returns the number of vertices the draw emits: the index
// stream length, or the layout-derived vertex count for non-indexed data.
func (vb *VertexBuffer) vertexCount() int {
	if vb.Indices != nil {
		return len(vb.Indices)
	}
	if vb.Layout.ArrayStride == 0 {
		return 0
	}
	return len(vb.Data) * 4 / int(vb.Layout.ArrayStride)
}

// indexAt resolves the i-th draw position to a vertex index.
func (vb *VertexBuffer) indexAt(i int) uint32 {
	if vb.Indices != nil {
		return vb.Indices[i]
	}
	return uint32(i)
}
