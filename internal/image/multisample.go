package image

// SampleCount is the number of sub-pixel samples in multisample storage.
// The pipeline supports exactly 4x multisampling.
const SampleCount = 4

// Multisample holds per-sample color and depth planes for one target.
//
// Each plane has the same dimensions as the resolved buffer; sample i of
// pixel (x, y) lives at (x, y) of plane i. The resolved single-sample
// buffer is only meaningful after Resolve has run.
type Multisample struct {
	color [SampleCount]*ImageBuf
	depth [SampleCount]*ImageBuf
}

// NewMultisample allocates 4-sample color and depth planes for a target of
// the given size. Color planes use the given format, depth planes Depth32F.
func NewMultisample(width, height int, colorFormat Format) *Multisample {
	ms := &Multisample{}
	for i := range SampleCount {
		ms.color[i] = Get(width, height, colorFormat)
		ms.depth[i] = Get(width, height, FormatDepth32F)
	}
	return ms
}

// Color returns the color plane for sample i.
func (ms *Multisample) Color(i int) *ImageBuf {
	if ms == nil || i < 0 || i >= SampleCount {
		return nil
	}
	return ms.color[i]
}

// Depth returns the depth plane for sample i.
func (ms *Multisample) Depth(i int) *ImageBuf {
	if ms == nil || i < 0 || i >= SampleCount {
		return nil
	}
	return ms.depth[i]
}

// FillColor writes the given color to every sample of every pixel.
func (ms *Multisample) FillColor(r, g, b, a uint8) {
	for i := range SampleCount {
		ms.color[i].Fill(r, g, b, a)
	}
}

// FillDepth writes the given depth to every sample of every pixel.
func (ms *Multisample) FillDepth(v float32) {
	for i := range SampleCount {
		ms.depth[i].FillFloat(v)
	}
}

// Resolve averages the 4 color samples of every pixel into dst.
//
// The rounding rule is a truncating integer average: channel sums are
// divided by 4 and the remainder discarded. Two (255,0,0,255) samples plus
// two (0,0,0,255) samples resolve to (127,0,0,255). Depth is never
// resolved.
func (ms *Multisample) Resolve(dst *ImageBuf) {
	w, h := dst.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a uint16
			for i := range SampleCount {
				sr, sg, sb, sa := ms.color[i].GetRGBA(x, y)
				r += uint16(sr)
				g += uint16(sg)
				b += uint16(sb)
				a += uint16(sa)
			}
			dst.SetRGBA(x, y, byte(r/SampleCount), byte(g/SampleCount),
				byte(b/SampleCount), byte(a/SampleCount))
		}
	}
}

// Release returns all planes to the pool. The Multisample must not be used
// afterwards.
func (ms *Multisample) Release() {
	if ms == nil {
		return
	}
	for i := range SampleCount {
		Put(ms.color[i])
		Put(ms.depth[i])
		ms.color[i] = nil
		ms.depth[i] = nil
	}
}
