package image

import "sync"

// pool reuses ImageBufs bucketed by (width, height, format). Mip
// regeneration and multisample planes allocate identically-sized buffers
// over and over; the pool keeps that off the garbage collector.
type pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
}

type poolKey struct {
	width  int
	height int
	format Format
}

// maxPerBucket limits how many buffers of one shape are retained.
const maxPerBucket = 8

var defaultPool = &pool{buckets: make(map[poolKey][]*ImageBuf)}

// Get returns a zeroed buffer of the requested shape, reusing a pooled one
// when available. Returns nil for invalid parameters.
func Get(width, height int, format Format) *ImageBuf {
	key := poolKey{width, height, format}

	defaultPool.mu.Lock()
	bucket := defaultPool.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		defaultPool.buckets[key] = bucket[:n-1]
		defaultPool.mu.Unlock()
		buf.Clear()
		return buf
	}
	defaultPool.mu.Unlock()

	buf, err := New(width, height, format)
	if err != nil {
		return nil
	}
	return buf
}

// Put returns a buffer to the pool. Nil buffers and overflow beyond the
// bucket capacity are discarded.
func Put(buf *ImageBuf) {
	if buf == nil {
		return
	}
	key := poolKey{buf.width, buf.height, buf.format}

	defaultPool.mu.Lock()
	defer defaultPool.mu.Unlock()
	bucket := defaultPool.buckets[key]
	if len(bucket) >= maxPerBucket {
		return
	}
	defaultPool.buckets[key] = append(bucket, buf)
}
