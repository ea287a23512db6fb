package softpipe

import (
	"github.com/gogpu/softpipe/internal/image"
	"github.com/gogpu/softpipe/internal/smath"

	"golang.org/x/image/math/f32"
)

// SamplerCube samples a six-face cube texture by direction vector.
// Face selection follows the dominant absolute axis component; sampling is
// nearest-only at level 0.
type SamplerCube struct{}

// Sample selects the face for dir, projects the remaining components to a
// per-face UV in [0, 1], and fetches that face. A zero direction or a
// non-cube texture degrades to transparent zero.
func (SamplerCube) Sample(t *Texture, dir f32.Vec3) f32.Vec4 {
	if t == nil || t.NumLayers() != 6 {
		return f32.Vec4{}
	}
	face, u, v := cubeFaceUV(dir)
	if face < 0 {
		return f32.Vec4{}
	}
	img := t.Level(face, 0)
	if img == nil {
		return f32.Vec4{}
	}
	r, g, b, a := image.SampleNearest(img, float64(smath.Saturate(u)), float64(smath.Saturate(v)))
	return rgbaToVec(r, g, b, a)
}

// cubeFaceUV maps a direction to (face, u, v) with u, v in [0, 1].
// The per-face projections follow the OpenGL cube-map convention, so the
// axis direction itself always lands at the face center (0.5, 0.5).
func cubeFaceUV(dir f32.Vec3) (face int, u, v float32) {
	ax := smath.Abs(dir[0])
	ay := smath.Abs(dir[1])
	az := smath.Abs(dir[2])

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if ma == 0 {
			return -1, 0, 0
		}
		if dir[0] > 0 {
			face, sc, tc = CubeFacePosX, -dir[2], -dir[1]
		} else {
			face, sc, tc = CubeFaceNegX, dir[2], -dir[1]
		}
	case ay >= az:
		ma = ay
		if dir[1] > 0 {
			face, sc, tc = CubeFacePosY, dir[0], dir[2]
		} else {
			face, sc, tc = CubeFaceNegY, dir[0], -dir[2]
		}
	default:
		ma = az
		if dir[2] > 0 {
			face, sc, tc = CubeFacePosZ, dir[0], -dir[1]
		} else {
			face, sc, tc = CubeFaceNegZ, -dir[0], -dir[1]
		}
	}

	u = (sc/ma + 1) / 2
	v = (tc/ma + 1) / 2
	return face, u, v
}
