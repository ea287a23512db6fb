package image

import (
	"errors"

	"honnef.co/go/safeish"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrSizeMismatch is returned when a caller-supplied payload does not
	// match the pixel count implied by the buffer's dimensions and format.
	ErrSizeMismatch = errors.New("image: payload size mismatch")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a typed 2D pixel buffer.
//
// Pixel data lives in one contiguous byte slice. For float formats
// (Depth32F) the same storage is exposed as a []float32 view; byte and
// float accessors must not be mixed on one buffer.
//
// ImageBuf carries a generation counter that is bumped on every mutation.
// Zero-copy views handed out by Raw() are valid only as long as the
// generation they were taken at.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
	gen    uint64
}

// New creates an image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or the format is unknown.
func New(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &ImageBuf{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int { return b.height }

// Format returns the pixel format.
func (b *ImageBuf) Format() Format { return b.format }

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) { return b.width, b.height }

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool { return b == nil || b.width == 0 || b.height == 0 }

// Generation returns the mutation counter. It increases on every write.
func (b *ImageBuf) Generation() uint64 { return b.gen }

// Data returns the raw pixel storage. The slice aliases the buffer;
// it is invalidated by the next mutation through any other method.
func (b *ImageBuf) Data() []byte { return b.data }

// MarkDirty records an external mutation made through Data or Float32View.
func (b *ImageBuf) MarkDirty() { b.gen++ }

// Float32View returns the pixel storage reinterpreted as float32 values.
// Only valid for float formats; returns nil otherwise.
func (b *ImageBuf) Float32View() []float32 {
	if !b.format.IsFloat() {
		return nil
	}
	return safeish.SliceCast[[]float32](b.data)
}

// offset returns the byte offset of pixel (x, y), or -1 when out of bounds.
func (b *ImageBuf) offset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.BytesPerPixel()
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// Grayscale returns r=g=b=gray, a=255. Out-of-bounds returns transparent
// zero, matching the pipeline's degrade-don't-fail lookup policy.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	i := b.offset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	switch b.format {
	case FormatRGBA8:
		return b.data[i], b.data[i+1], b.data[i+2], b.data[i+3]
	case FormatBGRA8:
		return b.data[i+2], b.data[i+1], b.data[i], b.data[i+3]
	case FormatGray8:
		v := b.data[i]
		return v, v, v, 255
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Grayscale stores the standard luminance. Out-of-bounds writes are
// silently dropped.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.offset(x, y)
	if i < 0 {
		return
	}
	switch b.format {
	case FormatRGBA8:
		b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = r, g, bl, a
	case FormatBGRA8:
		b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = bl, g, r, a
	case FormatGray8:
		// Standard luminance: 0.299*R + 0.587*G + 0.114*B
		b.data[i] = byte((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
	}
	b.gen++
}

// GetFloat returns the float value at (x, y) for float formats.
// Returns 0 for non-float formats or out-of-bounds coordinates.
func (b *ImageBuf) GetFloat(x, y int) float32 {
	if !b.format.IsFloat() {
		return 0
	}
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.Float32View()[y*b.width+x]
}

// SetFloat sets the float value at (x, y) for float formats.
func (b *ImageBuf) SetFloat(x, y int, v float32) {
	if !b.format.IsFloat() {
		return
	}
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.Float32View()[y*b.width+x] = v
	b.gen++
}

// Fill sets every pixel to the given RGBA color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	switch b.format {
	case FormatRGBA8, FormatBGRA8:
		c0, c1, c2 := r, g, bl
		if b.format == FormatBGRA8 {
			c0, c2 = bl, r
		}
		for i := 0; i < len(b.data); i += 4 {
			b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = c0, c1, c2, a
		}
	case FormatGray8:
		v := byte((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
		for i := range b.data {
			b.data[i] = v
		}
	}
	b.gen++
}

// FillFloat sets every value of a float-format buffer to v.
func (b *ImageBuf) FillFloat(v float32) {
	fs := b.Float32View()
	for i := range fs {
		fs[i] = v
	}
	b.gen++
}

// Clear zeroes the pixel storage.
func (b *ImageBuf) Clear() {
	clear(b.data)
	b.gen++
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{
		data:   data,
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}

// CopyFrom copies pixel data from src, which must have identical
// dimensions and format.
func (b *ImageBuf) CopyFrom(src *ImageBuf) error {
	if src.width != b.width || src.height != b.height || src.format != b.format {
		return ErrSizeMismatch
	}
	copy(b.data, src.data)
	b.gen++
	return nil
}
