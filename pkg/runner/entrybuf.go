package runner

import "github.com/valyala/bytebufferpool"

// entryBufPool backs the encode buffer internal/resultstore uses to avoid
// a fresh allocation on every PutBalance call, which runs once per entry
// on every processed batch.
var entryBufPool bytebufferpool.Pool

// AcquireEntryBuf borrows a pooled buffer. Callers must call ReleaseEntryBuf
// when done with it.
func AcquireEntryBuf() *bytebufferpool.ByteBuffer {
	return entryBufPool.Get()
}

// ReleaseEntryBuf returns a buffer to the pool after resetting it.
func ReleaseEntryBuf(b *bytebufferpool.ByteBuffer) {
	b.Reset()
	entryBufPool.Put(b)
}
