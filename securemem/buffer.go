// Package securemem provides the Secure Buffer abstraction (component
// C2): an ownership wrapper for sensitive byte runs that attempts to
// lock its backing memory into RAM and guarantees zeroization on
// every release path.
package securemem

import (
	"sync"
)

// Buffer owns a run of sensitive bytes. It must be released with
// Release (further Release calls are no-ops); every other method
// panics after release to
// surface use-after-free immediately rather than silently reading
// zeroed memory.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	locked   bool
	released bool
}

// New allocates a Buffer of the given length, filled with zeros, and
// attempts to mlock it. Failure to lock is non-fatal: the caller
// should surface it as the owning User's MemLocked=false, not as an
// error from New.
func New(length int) *Buffer {
	b := &Buffer{data: make([]byte, length)}
	b.locked = mlock(b.data) == nil
	return b
}

// FromBytes copies src into a new Buffer, locked if the OS allows it
// (see New). src is not modified.
func FromBytes(src []byte) *Buffer {
	b := New(len(src))
	b.mu.Lock()
	copy(b.data, src)
	b.mu.Unlock()
	return b
}

// Locked reports whether the OS actually honored the mlock request.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertLive()
	return b.locked
}

// Len returns the buffer's length.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertLive()
	return len(b.data)
}

// Bytes exposes the underlying slice for in-place reads/writes. The
// caller must not retain it past the Buffer's lifetime.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertLive()
	return b.data
}

// CopyFrom overwrites the buffer's contents with src, which must be
// exactly Len() bytes.
func (b *Buffer) CopyFrom(src []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assertLive()
	if len(src) != len(b.data) {
		panic("securemem: CopyFrom length mismatch")
	}
	copy(b.data, src)
}

// Release zeroizes the buffer's storage, unlocks it if it was locked,
// and marks it dead. Safe to call multiple times.
func (b *Buffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
	if b.locked {
		_ = munlock(b.data)
	}
	b.released = true
	b.data = nil
}

func (b *Buffer) assertLive() {
	if b.released {
		panic("securemem: use of released Buffer")
	}
}
