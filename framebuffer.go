package softpipe

import (
	stdimage "image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/softpipe/internal/image"

	"golang.org/x/image/math/f32"
)

// Framebuffer is a color+depth render target.
//
// With multisampling enabled, color and depth are stored as 4 samples per
// pixel; the single-sample color buffer is only valid after the resolve
// that EndPass performs. Depth is never resolved.
type Framebuffer struct {
	color  *image.ImageBuf
	depth  *image.ImageBuf
	ms     *image.Multisample
	width  int
	height int
}

// FramebufferOption configures a framebuffer during creation.
type FramebufferOption func(*framebufferOptions)

type framebufferOptions struct {
	multisample bool
}

// WithMultisample enables 4-sample-per-pixel color and depth storage.
func WithMultisample() FramebufferOption {
	return func(o *framebufferOptions) { o.multisample = true }
}

// NewFramebuffer creates an RGBA8 color target with a Depth32F plane.
func NewFramebuffer(width, height int, opts ...FramebufferOption) (*Framebuffer, error) {
	var o framebufferOptions
	for _, opt := range opts {
		opt(&o)
	}

	colorBuf, err := image.New(width, height, image.FormatRGBA8)
	if err != nil {
		return nil, err
	}
	depthBuf, err := image.New(width, height, image.FormatDepth32F)
	if err != nil {
		return nil, err
	}

	fb := &Framebuffer{
		color:  colorBuf,
		depth:  depthBuf,
		width:  width,
		height: height,
	}
	if o.multisample {
		fb.ms = image.NewMultisample(width, height, image.FormatRGBA8)
	}
	return fb, nil
}

// Width returns the target width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the target height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Multisampled reports whether the target holds 4 samples per pixel.
func (fb *Framebuffer) Multisampled() bool { return fb.ms != nil }

// SampleCount returns the number of coverage samples per pixel.
func (fb *Framebuffer) SampleCount() int {
	if fb.ms != nil {
		return image.SampleCount
	}
	return 1
}

// clear applies a clear color and/or depth to all storage planes.
func (fb *Framebuffer) clear(clearColor bool, r, g, b, a uint8, clearDepth bool, depth float32) {
	if clearColor {
		fb.color.Fill(r, g, b, a)
		if fb.ms != nil {
			fb.ms.FillColor(r, g, b, a)
		}
	}
	if clearDepth {
		fb.depth.FillFloat(depth)
		if fb.ms != nil {
			fb.ms.FillDepth(depth)
		}
	}
}

// depthAt reads the stored depth for (x, y) at the given sample slot.
func (fb *Framebuffer) depthAt(x, y, slot int) float32 {
	if fb.ms != nil {
		return fb.ms.Depth(slot).GetFloat(x, y)
	}
	return fb.depth.GetFloat(x, y)
}

// setDepth writes the depth for (x, y) at the given sample slot.
func (fb *Framebuffer) setDepth(x, y, slot int, v float32) {
	if fb.ms != nil {
		fb.ms.Depth(slot).SetFloat(x, y, v)
		return
	}
	fb.depth.SetFloat(x, y, v)
}

// colorAt reads the stored color for (x, y) at the given sample slot.
func (fb *Framebuffer) colorAt(x, y, slot int) f32.Vec4 {
	var r, g, b, a uint8
	if fb.ms != nil {
		r, g, b, a = fb.ms.Color(slot).GetRGBA(x, y)
	} else {
		r, g, b, a = fb.color.GetRGBA(x, y)
	}
	return rgbaToVec(r, g, b, a)
}

// setColor writes a color for (x, y) at the given sample slot, clamped to
// the representable range.
func (fb *Framebuffer) setColor(x, y, slot int, c f32.Vec4) {
	r := uint8(clamp255(c[0] * 255))
	g := uint8(clamp255(c[1] * 255))
	b := uint8(clamp255(c[2] * 255))
	a := uint8(clamp255(c[3] * 255))
	if fb.ms != nil {
		fb.ms.Color(slot).SetRGBA(x, y, r, g, b, a)
		return
	}
	fb.color.SetRGBA(x, y, r, g, b, a)
}

// resolve averages multisample color into the single-sample buffer.
func (fb *Framebuffer) resolve() {
	if fb.ms != nil {
		fb.ms.Resolve(fb.color)
	}
}

// DepthAt returns the resolved-plane depth at (x, y). For multisampled
// targets this reads sample 0, since depth is never resolved.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.depthAt(x, y, 0)
}

// ReadColor copies the single-sample color buffer into dst
// (length width*height*4, RGBA order). Multisampled targets must have
// been resolved by EndPass first.
func (fb *Framebuffer) ReadColor(dst []byte) error {
	return fb.color.ReadPixels(dst)
}

// Raw returns a zero-copy reference to the single-sample color storage,
// valid until the next draw or clear that touches the target.
func (fb *Framebuffer) Raw() []byte {
	return fb.color.Data()
}

// ToImage converts the resolved color buffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.color.Data())
	return img
}

// SavePNG saves the resolved color buffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, fb.ToImage())
}

// At implements the image.Image interface over the resolved color buffer.
func (fb *Framebuffer) At(x, y int) color.Color {
	r, g, b, a := fb.color.GetRGBA(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (fb *Framebuffer) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
