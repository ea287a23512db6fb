package image

// Upload copies a byte-per-channel payload into the buffer. The payload
// length must equal width*height*BytesPerPixel for the buffer's format.
// Float formats reject byte payloads; use UploadFloat32.
func (b *ImageBuf) Upload(pixels []byte) error {
	if b.format.IsFloat() {
		return ErrInvalidFormat
	}
	if len(pixels) != len(b.data) {
		return ErrSizeMismatch
	}
	copy(b.data, pixels)
	b.gen++
	return nil
}

// UploadFloat32 copies a float payload into a float-format buffer. The
// payload length must equal width*height.
func (b *ImageBuf) UploadFloat32(values []float32) error {
	if !b.format.IsFloat() {
		return ErrInvalidFormat
	}
	if len(values) != b.width*b.height {
		return ErrSizeMismatch
	}
	copy(b.Float32View(), values)
	b.gen++
	return nil
}

// ReadPixels copies the buffer's pixels into dst. The destination length
// must match the buffer's byte size exactly; a mismatch is reported rather
// than silently truncated.
func (b *ImageBuf) ReadPixels(dst []byte) error {
	if b.format.IsFloat() {
		return ErrInvalidFormat
	}
	if len(dst) != len(b.data) {
		return ErrSizeMismatch
	}
	copy(dst, b.data)
	return nil
}

// ReadFloat32 copies a float-format buffer's values into dst, which must
// hold exactly width*height values.
func (b *ImageBuf) ReadFloat32(dst []float32) error {
	if !b.format.IsFloat() {
		return ErrInvalidFormat
	}
	if len(dst) != b.width*b.height {
		return ErrSizeMismatch
	}
	copy(dst, b.Float32View())
	return nil
}
