package softpipe

import (
	"testing"

	"github.com/gogpu/gputypes"

	"golang.org/x/image/math/f32"
)

// faceColors assigns a distinct color to each cube face, index-matched to
// the CubeFace constants.
var faceColors = [6][4]byte{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{255, 0, 255, 255},
	{0, 255, 255, 255},
}

func solidCube(t *testing.T) *Texture {
	t.Helper()
	tex, err := NewTextureCube(4, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	for face := 0; face < 6; face++ {
		c := faceColors[face]
		pixels := make([]byte, 4*4*4)
		for i := 0; i < len(pixels); i += 4 {
			copy(pixels[i:], c[:])
		}
		if err := tex.Upload(face, pixels); err != nil {
			t.Fatal(err)
		}
	}
	return tex
}

func TestCubeFaceSelection(t *testing.T) {
	tex := solidCube(t)
	var s SamplerCube

	tests := []struct {
		name string
		dir  f32.Vec3
		face int
	}{
		{"+x", f32.Vec3{1, 0, 0}, CubeFacePosX},
		{"-x", f32.Vec3{-1, 0, 0}, CubeFaceNegX},
		{"+y", f32.Vec3{0, 1, 0}, CubeFacePosY},
		{"-y", f32.Vec3{0, -1, 0}, CubeFaceNegY},
		{"+z", f32.Vec3{0, 0, 1}, CubeFacePosZ},
		{"-z", f32.Vec3{0, 0, -1}, CubeFaceNegZ},
		{"dominant x", f32.Vec3{5, 1, -2}, CubeFacePosX},
		{"dominant -z", f32.Vec3{0.1, 0.2, -0.9}, CubeFaceNegZ},
		{"unnormalized", f32.Vec3{100, 3, 3}, CubeFacePosX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sample(tex, tt.dir)
			c := faceColors[tt.face]
			want := f32.Vec4{
				float32(c[0]) / 255, float32(c[1]) / 255,
				float32(c[2]) / 255, float32(c[3]) / 255,
			}
			if got != want {
				t.Errorf("Sample(%v) = %v, want face %d color %v", tt.dir, got, tt.face, want)
			}
		})
	}
}

// An axis direction lands exactly on the face center.
func TestCubeAxisHitsFaceCenter(t *testing.T) {
	for _, dir := range []f32.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	} {
		face, u, v := cubeFaceUV(dir)
		if face < 0 {
			t.Fatalf("cubeFaceUV(%v) rejected an axis direction", dir)
		}
		if u != 0.5 || v != 0.5 {
			t.Errorf("cubeFaceUV(%v) = (%v, %v), want face center (0.5, 0.5)", dir, u, v)
		}
	}
}

func TestCubeZeroDirection(t *testing.T) {
	tex := solidCube(t)
	var s SamplerCube
	if got := s.Sample(tex, f32.Vec3{}); got != (f32.Vec4{}) {
		t.Errorf("zero-direction sample = %v, want transparent zero", got)
	}
}

func TestCubeRejectsNonCubeTexture(t *testing.T) {
	tex, err := NewTexture2D(4, 4, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	var s SamplerCube
	if got := s.Sample(tex, f32.Vec3{1, 0, 0}); got != (f32.Vec4{}) {
		t.Errorf("2D texture cube sample = %v, want transparent zero", got)
	}
}

// Corner directions sit on the UV boundary of their face rather than
// outside it.
func TestCubeCornerStaysInRange(t *testing.T) {
	for _, dir := range []f32.Vec3{{1, 1, 1}, {-1, -1, -1}, {1, -1, 1}} {
		_, u, v := cubeFaceUV(dir)
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Errorf("cubeFaceUV(%v) uv = (%v, %v), want within [0, 1]", dir, u, v)
		}
	}
}
