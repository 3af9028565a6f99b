package analysis

import "sync"

// lineBufferPool recycles the initial buffers handed to bufio.Scanner so
// that a pool of workers scanning many small files does not allocate one
// buffer per file.
var lineBufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, initialLineBuffer)
		return &b
	},
}

// acquireLineBuffer returns an empty buffer with capacity of at least
// min(initialLineBuffer, maxLineSize). Buffers smaller than the pooled size
// are allocated directly.
func acquireLineBuffer(maxLineSize int) *[]byte {
	if maxLineSize < initialLineBuffer {
		b := make([]byte, 0, maxLineSize)
		return &b
	}
	return lineBufferPool.Get().(*[]byte)
}

// releaseLineBuffer returns buf to the pool. Buffers not obtained from the
// pool are dropped.
func releaseLineBuffer(buf *[]byte) {
	if buf == nil || cap(*buf) != initialLineBuffer {
		return
	}
	*buf = (*buf)[:0]
	lineBufferPool.Put(buf)
}
