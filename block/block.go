package block

import (
	"encoding/binary"
	"fmt"

	"github.com/sqrlid/idcore/sqrlerr"
)

// headerSize is the width of every block's length+type header.
const headerSize = 4

// Block is a single typed, length-prefixed S4 record: a little-endian
// uint16 length (total size including the header), a little-endian
// uint16 type, and a payload of length-4 bytes.
type Block struct {
	raw []byte
}

// NewBlock allocates a zero-filled block of the given total length
// (header included) and writes its header.
func NewBlock(blockType uint16, length int) (*Block, error) {
	if length < headerSize || length > 0xFFFF {
		return nil, fmt.Errorf("block: invalid block length %d: %w", length, sqrlerr.ErrInvalidArgument)
	}
	raw := make([]byte, length)
	binary.LittleEndian.PutUint16(raw[0:2], uint16(length))
	binary.LittleEndian.PutUint16(raw[2:4], blockType)
	return &Block{raw: raw}, nil
}

// Type returns the block's type tag.
func (b *Block) Type() uint16 {
	return binary.LittleEndian.Uint16(b.raw[2:4])
}

// Length returns the block's total length, header included.
func (b *Block) Length() int {
	return len(b.raw)
}

// Bytes exposes the full raw block — header and payload — for direct
// cursor access. The caller must not change its length.
func (b *Block) Bytes() []byte {
	return b.raw
}

// Payload returns the bytes following the 4-byte header.
func (b *Block) Payload() []byte {
	return b.raw[headerSize:]
}

// Cursor returns a fresh Cursor positioned at the start of the block's
// raw bytes.
func (b *Block) Cursor() *Cursor {
	return NewCursor(b.raw)
}

// EncodeBlock returns a copy of the block's raw, on-disk bytes.
func EncodeBlock(b *Block) []byte {
	out := make([]byte, len(b.raw))
	copy(out, b.raw)
	return out
}

// DecodeBlock parses a single block from the front of buf, returning
// the block and the number of bytes it consumed. The length field must
// be internally consistent with buf's remaining bytes; any mismatch is
// CorruptBlock.
func DecodeBlock(buf []byte) (*Block, int, error) {
	if len(buf) < headerSize {
		return nil, 0, fmt.Errorf("block: header truncated: %w", sqrlerr.ErrCorruptBlock)
	}
	length := int(binary.LittleEndian.Uint16(buf[0:2]))
	if length < headerSize || length > len(buf) {
		return nil, 0, fmt.Errorf("block: length field %d inconsistent with %d available bytes: %w", length, len(buf), sqrlerr.ErrCorruptBlock)
	}
	raw := make([]byte, length)
	copy(raw, buf[:length])
	return &Block{raw: raw}, length, nil
}
