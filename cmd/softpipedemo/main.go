// Command softpipedemo renders a demo scene with the softpipe rasterizer:
// a textured, rotating cube over a flat-shaded ground triangle, saved as
// a PNG.
package main

import (
	"flag"
	"log"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/internal/smath"

	"golang.org/x/image/math/f32"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		angle  = flag.Float64("angle", 0.7, "cube rotation in radians")
		msaa   = flag.Bool("msaa", true, "render with 4x multisampling")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	var opts []softpipe.FramebufferOption
	if *msaa {
		opts = append(opts, softpipe.WithMultisample())
	}
	fb, err := softpipe.NewFramebuffer(*width, *height, opts...)
	if err != nil {
		log.Fatalf("Failed to create framebuffer: %v", err)
	}

	tex, err := checkerboard(256, 32)
	if err != nil {
		log.Fatalf("Failed to build texture: %v", err)
	}

	proj := smath.Perspective(1.0, float32(*width)/float32(*height), 0.1, 100)
	view := smath.LookAt(
		f32.Vec3{2.2, 1.8, 2.2},
		f32.Vec3{0, 0, 0},
		f32.Vec3{0, 1, 0},
	)
	model := smath.RotateY(float32(*angle))
	mvp := smath.MulMat4(proj, smath.MulMat4(view, model))

	r := softpipe.NewRenderer()
	r.BeginPass(fb, softpipe.ClearAll(gputypes.Color{R: 0.08, G: 0.09, B: 0.12, A: 1}, 1))

	ground := &softpipe.FlatShader{
		MVP:   smath.MulMat4(proj, view),
		Color: f32.Vec4{0.25, 0.3, 0.2, 1},
	}
	r.BindShaders(ground, ground)
	r.BindVertexBuffer(groundVB())
	r.Draw()

	cube := &softpipe.TextureShader{
		MVP:     mvp,
		Texture: tex,
		Sampler: softpipe.LinearSampler(),
	}
	r.BindShaders(cube, cube)
	r.BindVertexBuffer(cubeVB())
	r.Draw()

	r.EndPass()

	if err := fb.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// checkerboard builds a mip-mapped checker texture.
func checkerboard(size, cell int) (*softpipe.Texture, error) {
	tex, err := softpipe.NewTexture2D(size, size, gputypes.TextureFormatRGBA8Unorm, softpipe.WithMips())
	if err != nil {
		return nil, err
	}
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			if (x/cell+y/cell)%2 == 0 {
				pixels[i], pixels[i+1], pixels[i+2] = 235, 235, 235
			} else {
				pixels[i], pixels[i+1], pixels[i+2] = 180, 60, 40
			}
			pixels[i+3] = 255
		}
	}
	return tex, tex.Upload(0, pixels)
}

var cubeLayout = gputypes.VertexBufferLayout{
	ArrayStride: 20,
	Attributes: []gputypes.VertexAttribute{
		{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
		{ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 12},
	},
}

// cubeVB builds a unit cube centered at the origin, one quad per face with
// full-texture UVs.
func cubeVB() *softpipe.VertexBuffer {
	faces := [6][4][3]float32{
		{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},     // +z
		{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, // -z
		{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}},     // +x
		{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}, // -x
		{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}},     // +y
		{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}, // -y
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	var data []float32
	var indices []uint32
	for _, face := range faces {
		base := uint32(len(data) / 5)
		for i, p := range face {
			data = append(data, p[0], p[1], p[2], uvs[i][0], uvs[i][1])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &softpipe.VertexBuffer{Data: data, Indices: indices, Layout: cubeLayout}
}

// groundVB builds a large triangle under the cube.
func groundVB() *softpipe.VertexBuffer {
	return &softpipe.VertexBuffer{
		Data: []float32{
			-6, -0.55, -6, 0, 0,
			6, -0.55, -6, 0, 0,
			0, -0.55, 8, 0, 0,
		},
		Indices: []uint32{0, 1, 2},
		Layout:  cubeLayout,
	}
}
