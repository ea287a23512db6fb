// Package image provides pixel storage for the softpipe rasterizer: typed
// 2D buffers, mip chains, and 4-sample multisample planes.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGBA8 is 32-bit RGBA (4 bytes per pixel).
	// This is the standard color target and texture format.
	FormatRGBA8 Format = iota

	// FormatBGRA8 is 32-bit BGRA (4 bytes per pixel).
	// Common for window-system surfaces.
	FormatBGRA8

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	// FormatDepth32F is a 32-bit float depth plane (4 bytes per pixel).
	// Accessed through the float view rather than the RGBA accessors.
	FormatDepth32F

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsFloat indicates 32-bit float storage per channel.
	IsFloat bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8:    {BytesPerPixel: 4, Channels: 4, HasAlpha: true},
	FormatBGRA8:    {BytesPerPixel: 4, Channels: 4, HasAlpha: true},
	FormatGray8:    {BytesPerPixel: 1, Channels: 1},
	FormatDepth32F: {BytesPerPixel: 4, Channels: 1, IsFloat: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsFloat returns true if this format stores 32-bit floats per channel.
func (f Format) IsFloat() bool {
	return f.Info().IsFloat
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatGray8:
		return "Gray8"
	case FormatDepth32F:
		return "Depth32F"
	default:
		return "Unknown"
	}
}
