// Package bufutil holds buffers used to capture program output.
package bufutil

import "bytes"

// BoundedBuffer keeps the first limit bytes written to it and drops the rest.
// Writes never fail, so a chatty program is not stopped by a full buffer.
type BoundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

// NewBoundedBuffer returns a buffer holding at most limit bytes
func NewBoundedBuffer(limit int) *BoundedBuffer {
	return &BoundedBuffer{limit: limit}
}

// Write stores as much of p as fits and reports len(p) as written
func (b *BoundedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	room := b.limit - b.buf.Len()
	if room < 0 {
		room = 0
	}
	if n > room {
		b.truncated = true
		p = p[:room]
	}
	b.buf.Write(p)
	return n, nil
}

// String returns the kept bytes
func (b *BoundedBuffer) String() string {
	return b.buf.String()
}

// Truncated reports whether any write was cut short
func (b *BoundedBuffer) Truncated() bool {
	return b.truncated
}
