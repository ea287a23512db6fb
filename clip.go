package softpipe

import "golang.org/x/image/math/f32"

// Frustum plane bits of a vertex clip mask. A set bit means the vertex is
// outside that plane of its clip-space volume.
const (
	clipLeft   uint8 = 1 << 0 // x < -w
	clipRight  uint8 = 1 << 1 // x > w
	clipBottom uint8 = 1 << 2 // y < -w
	clipTop    uint8 = 1 << 3 // y > w
	clipNear   uint8 = 1 << 4 // z < -w
	clipFar    uint8 = 1 << 5 // z > w
)

// maxClipVerts bounds the polygon that clipping a triangle against six
// planes can produce (3 + 6 vertices).
const maxClipVerts = 9

// clipMask computes the 6-bit frustum outcode of a clip-space position.
func clipMask(p f32.Vec4) uint8 {
	var m uint8
	if p[0] < -p[3] {
		m |= clipLeft
	}
	if p[0] > p[3] {
		m |= clipRight
	}
	if p[1] < -p[3] {
		m |= clipBottom
	}
	if p[1] > p[3] {
		m |= clipTop
	}
	if p[2] < -p[3] {
		m |= clipNear
	}
	if p[2] > p[3] {
		m |= clipFar
	}
	return m
}

// planeDist returns the signed distance of a clip-space position from one
// frustum plane. Non-negative means inside.
func planeDist(p f32.Vec4, plane uint8) float32 {
	switch plane {
	case clipLeft:
		return p[0] + p[3]
	case clipRight:
		return p[3] - p[0]
	case clipBottom:
		return p[1] + p[3]
	case clipTop:
		return p[3] - p[1]
	case clipNear:
		return p[2] + p[3]
	default: // clipFar
		return p[3] - p[2]
	}
}

// lerpVertex interpolates position and the first nvar varyings between two
// shaded vertices at parameter t, in clip space (before the divide, so
// linear interpolation is exact).
func lerpVertex(a, b *ShadedVertex, t float32, nvar int, out *ShadedVertex) {
	for i := 0; i < 4; i++ {
		out.Position[i] = a.Position[i] + (b.Position[i]-a.Position[i])*t
	}
	for i := 0; i < nvar; i++ {
		out.Varyings[i] = a.Varyings[i] + (b.Varyings[i]-a.Varyings[i])*t
	}
}

// clipPolygon clips the polygon in against one frustum plane into out using
// the Sutherland-Hodgman step, and returns the output vertex count.
func clipPolygon(in []ShadedVertex, n int, plane uint8, nvar int, out []ShadedVertex) int {
	m := 0
	for i := 0; i < n; i++ {
		cur := &in[i]
		next := &in[(i+1)%n]
		dc := planeDist(cur.Position, plane)
		dn := planeDist(next.Position, plane)

		if dc >= 0 {
			out[m] = *cur
			m++
		}
		// Edge crosses the plane: emit the intersection point.
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			lerpVertex(cur, next, t, nvar, &out[m])
			m++
		}
	}
	return m
}

// clipTriangle clips one clip-space triangle against all six frustum
// planes and emits zero or more output triangles via emit. The common cases
// are resolved by the precomputed vertex masks: all-inside triangles pass
// through untouched, all-outside-one-plane triangles are dropped without
// any plane walk. Partial triangles are polygon-clipped and fanned.
func clipTriangle(v0, v1, v2 *ShadedVertex, nvar int, emit func(a, b, c *ShadedVertex)) {
	orMask := v0.ClipMask | v1.ClipMask | v2.ClipMask
	if orMask == 0 {
		emit(v0, v1, v2)
		return
	}
	if v0.ClipMask&v1.ClipMask&v2.ClipMask != 0 {
		return
	}

	var bufA, bufB [maxClipVerts]ShadedVertex
	bufA[0], bufA[1], bufA[2] = *v0, *v1, *v2
	src, dst := bufA[:], bufB[:]
	n := 3

	for plane := clipLeft; plane <= clipFar; plane <<= 1 {
		if orMask&plane == 0 {
			continue
		}
		n = clipPolygon(src, n, plane, nvar, dst)
		if n < 3 {
			return
		}
		src, dst = dst, src
	}

	for i := 1; i+1 < n; i++ {
		emit(&src[0], &src[i], &src[i+1])
	}
}
