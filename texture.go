package softpipe

import (
	"errors"
	stdimage "image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/softpipe/internal/image"

	xdraw "golang.org/x/image/draw"
)

// Errors reported by texture operations.
var (
	// ErrUnsupportedFormat is returned for texture formats the pipeline
	// does not store.
	ErrUnsupportedFormat = errors.New("softpipe: unsupported texture format")

	// ErrLayerOutOfRange is returned when a layer index does not exist.
	ErrLayerOutOfRange = errors.New("softpipe: texture layer out of range")
)

// Cube face layer indices, selected by the dominant axis of a direction
// vector.
const (
	CubeFacePosX = 0
	CubeFaceNegX = 1
	CubeFacePosY = 2
	CubeFaceNegY = 3
	CubeFacePosZ = 4
	CubeFaceNegZ = 5
)

// Texture owns pixel data for one texture: a single layer for 2D textures,
// six face layers for cube maps, each with an optional mip chain.
//
// Reading any mip level always returns data consistent with the most
// recent ingestion; chains are regenerated synchronously when level 0
// changes.
type Texture struct {
	layers []*image.ImageBuf
	mips   []*image.MipmapChain
	width  int
	height int
	format image.Format
}

// TextureOption configures a texture during creation.
type TextureOption func(*textureOptions)

type textureOptions struct {
	mips bool
}

// WithMips enables a mip chain, regenerated on every level-0 ingestion.
func WithMips() TextureOption {
	return func(o *textureOptions) { o.mips = true }
}

// imageFormat maps a gputypes texture format onto internal storage.
func imageFormat(f gputypes.TextureFormat) (image.Format, error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return image.FormatRGBA8, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return image.FormatBGRA8, nil
	case gputypes.TextureFormatDepth32Float:
		return image.FormatDepth32F, nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

func newTexture(width, height, layerCount int, format gputypes.TextureFormat, opts ...TextureOption) (*Texture, error) {
	var o textureOptions
	for _, opt := range opts {
		opt(&o)
	}
	fmt, err := imageFormat(format)
	if err != nil {
		return nil, err
	}

	t := &Texture{
		layers: make([]*image.ImageBuf, layerCount),
		width:  width,
		height: height,
		format: fmt,
	}
	if o.mips {
		t.mips = make([]*image.MipmapChain, layerCount)
	}
	for i := range t.layers {
		buf, err := image.New(width, height, fmt)
		if err != nil {
			return nil, err
		}
		t.layers[i] = buf
		if o.mips {
			t.mips[i] = image.NewMipmapChain(buf)
		}
	}
	return t, nil
}

// NewTexture2D creates a single-layer 2D texture.
func NewTexture2D(width, height int, format gputypes.TextureFormat, opts ...TextureOption) (*Texture, error) {
	return newTexture(width, height, 1, format, opts...)
}

// NewTextureCube creates a six-face cube texture with square faces.
func NewTextureCube(size int, format gputypes.TextureFormat, opts ...TextureOption) (*Texture, error) {
	return newTexture(size, size, 6, format, opts...)
}

// Width returns the level-0 width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the level-0 height in pixels.
func (t *Texture) Height() int { return t.height }

// NumLayers returns 1 for 2D textures and 6 for cube maps.
func (t *Texture) NumLayers() int { return len(t.layers) }

// NumLevels returns the mip level count (1 when mips are disabled).
func (t *Texture) NumLevels() int {
	if t.mips == nil {
		return 1
	}
	return t.mips[0].NumLevels()
}

// Level returns the image for (layer, level), or nil when either index is
// out of range. Sampling a nil level degrades to transparent zero rather
// than failing.
func (t *Texture) Level(layer, level int) *image.ImageBuf {
	if layer < 0 || layer >= len(t.layers) {
		return nil
	}
	if t.mips != nil {
		return t.mips[layer].Level(level)
	}
	if level != 0 {
		return nil
	}
	return t.layers[layer]
}

// Upload ingests a byte-per-channel payload into level 0 of the given
// layer. The payload length must be width*height*4 for RGBA/BGRA formats.
// Mip-enabled textures regenerate their chain before Upload returns.
func (t *Texture) Upload(layer int, pixels []byte) error {
	if layer < 0 || layer >= len(t.layers) {
		return ErrLayerOutOfRange
	}
	if err := t.layers[layer].Upload(pixels); err != nil {
		return err
	}
	if t.mips != nil {
		t.mips[layer].Regenerate()
	}
	return nil
}

// UploadFloat32 ingests a float payload (length width*height) into level 0
// of a float-format texture.
func (t *Texture) UploadFloat32(layer int, values []float32) error {
	if layer < 0 || layer >= len(t.layers) {
		return ErrLayerOutOfRange
	}
	if err := t.layers[layer].UploadFloat32(values); err != nil {
		return err
	}
	if t.mips != nil {
		t.mips[layer].Regenerate()
	}
	return nil
}

// UploadImage ingests an arbitrary image into level 0 of the given layer,
// scaling it to the texture dimensions with a bilinear blit.
func (t *Texture) UploadImage(layer int, img stdimage.Image) error {
	if layer < 0 || layer >= len(t.layers) {
		return ErrLayerOutOfRange
	}
	if t.format != image.FormatRGBA8 {
		return ErrUnsupportedFormat
	}

	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, t.width, t.height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return t.Upload(layer, dst.Pix)
}

// ReadPixels copies the given layer's level-0 pixels into dst, whose
// length must match exactly; mismatches are reported, never truncated.
func (t *Texture) ReadPixels(layer int, dst []byte) error {
	if layer < 0 || layer >= len(t.layers) {
		return ErrLayerOutOfRange
	}
	return t.layers[layer].ReadPixels(dst)
}

// Raw returns a zero-copy reference to the layer's level-0 storage. The
// slice is valid only until the next mutation of the texture; callers that
// write through it must call MarkDirty on the texture.
func (t *Texture) Raw(layer int) []byte {
	if layer < 0 || layer >= len(t.layers) {
		return nil
	}
	return t.layers[layer].Data()
}

// MarkDirty records an external mutation through Raw and regenerates mips.
func (t *Texture) MarkDirty() {
	for i, l := range t.layers {
		l.MarkDirty()
		if t.mips != nil {
			t.mips[i].Regenerate()
		}
	}
}

// GenerateMips recomputes every mip chain from its level 0. A no-op for
// textures created without WithMips.
func (t *Texture) GenerateMips() {
	if t.mips == nil {
		return
	}
	for _, c := range t.mips {
		c.Regenerate()
	}
}
