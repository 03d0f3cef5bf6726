// Package block implements the S4 typed-block container (component
// C6): length-prefixed, type-tagged records with per-block AEAD
// encryption for the password, rescue-code, and previous-IUK blocks,
// plus binary and textual import/export.
package block

import (
	"encoding/binary"
	"fmt"

	"github.com/sqrlid/idcore/sqrlerr"
)

// Cursor is a bounded read/write head over a fixed-size byte buffer —
// ordinarily a Block's raw bytes, header included, per spec.md
// section 4.6. It never grows the buffer: a write that would run past
// the end fails with OutOfBounds rather than reallocating.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf. The cursor starts at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Seek moves the cursor to an absolute offset within [0, len(buf)].
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return fmt.Errorf("block: seek to %d out of bounds: %w", offset, sqrlerr.ErrOutOfBounds)
	}
	c.pos = offset
	return nil
}

// SeekBack moves the cursor backward n bytes from its current
// position.
func (c *Cursor) SeekBack(n int) error {
	return c.Seek(c.pos - n)
}

// Read copies n bytes starting at the cursor and advances it.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("block: read %d bytes at %d out of bounds: %w", n, c.pos, sqrlerr.ErrOutOfBounds)
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// Write copies p into the buffer at the cursor and advances it. It
// never extends the buffer: writing past the end is OutOfBounds.
func (c *Cursor) Write(p []byte) error {
	if c.pos+len(p) > len(c.buf) {
		return fmt.Errorf("block: write %d bytes at %d out of bounds: %w", len(p), c.pos, sqrlerr.ErrOutOfBounds)
	}
	copy(c.buf[c.pos:], p)
	c.pos += len(p)
	return nil
}

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteUint8 writes a single byte.
func (c *Cursor) WriteUint8(v uint8) error {
	return c.Write([]byte{v})
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// WriteUint16 writes v as a little-endian uint16.
func (c *Cursor) WriteUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return c.Write(b[:])
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// WriteUint32 writes v as a little-endian uint32.
func (c *Cursor) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return c.Write(b[:])
}
