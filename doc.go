// Package softpipe is a CPU-executed graphics rasterization pipeline.
//
// # Overview
//
// softpipe takes vertex buffers, a programmable shading pair, and per-draw
// render state, and produces a color/depth image without any GPU. It
// implements the full stage sequence a hardware rasterizer provides: vertex
// shading, primitive assembly, frustum clipping, perspective divide,
// viewport transform, face culling, sample-accurate rasterization (with a
// 2x2 quad Early-Z path and screen-space derivative support), per-sample
// depth/blend resolution, and 4x multisample resolve. A texture subsystem
// with mip chains, bilinear/trilinear filtering, and cube-map face
// selection backs the fragment stage.
//
// # Quick start
//
//	import "github.com/gogpu/softpipe"
//
//	fb, _ := softpipe.NewFramebuffer(512, 512)
//	r := softpipe.NewRenderer()
//
//	r.BeginPass(fb, softpipe.ClearAll(gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}, 1.0))
//	r.BindVertexBuffer(vb)
//	r.BindShaders(shader, shader)
//	r.Draw()
//	r.EndPass()
//
//	fb.SavePNG("output.png")
//
// # Execution model
//
// Everything is single-threaded and synchronous: Draw completes every stage
// for every pixel before returning. The target framebuffer is exclusively
// owned by the pass bound between BeginPass and EndPass. Per-primitive
// bounding boxes and self-contained quad contexts are the designed hook
// points for a future tile-parallel implementation; no parallelism is
// performed today.
package softpipe
