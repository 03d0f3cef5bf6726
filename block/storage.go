package block

import (
	"fmt"

	"github.com/sqrlid/idcore/sqrlerr"
)

// Storage is an ordered mapping from block type to Block: at most one
// block of a given type, blocks emitted in the order they were added.
type Storage struct {
	order  []uint16
	blocks map[uint16]*Block
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{blocks: make(map[uint16]*Block)}
}

// Add inserts b. It fails if a block of the same type is already
// present — Storage holds at most one block per type.
func (s *Storage) Add(b *Block) error {
	if _, exists := s.blocks[b.Type()]; exists {
		return fmt.Errorf("block: storage already holds a type-%d block: %w", b.Type(), sqrlerr.ErrInvalidArgument)
	}
	s.blocks[b.Type()] = b
	s.order = append(s.order, b.Type())
	return nil
}

// Replace inserts b, discarding any existing block of the same type
// without reordering other entries.
func (s *Storage) Replace(b *Block) {
	if _, exists := s.blocks[b.Type()]; !exists {
		s.order = append(s.order, b.Type())
	}
	s.blocks[b.Type()] = b
}

// Get returns the block of the given type, if present.
func (s *Storage) Get(blockType uint16) (*Block, bool) {
	b, ok := s.blocks[blockType]
	return b, ok
}

// Remove deletes the block of the given type, if present.
func (s *Storage) Remove(blockType uint16) {
	if _, ok := s.blocks[blockType]; !ok {
		return
	}
	delete(s.blocks, blockType)
	for i, t := range s.order {
		if t == blockType {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Blocks returns the stored blocks in insertion order.
func (s *Storage) Blocks() []*Block {
	out := make([]*Block, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.blocks[t])
	}
	return out
}

func encodeBlocks(blocks []*Block) []byte {
	var out []byte
	for _, b := range blocks {
		out = append(out, EncodeBlock(b)...)
	}
	return out
}

func decodeBlocks(body []byte) ([]*Block, error) {
	var out []*Block
	for len(body) > 0 {
		b, consumed, err := DecodeBlock(body)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
		body = body[consumed:]
	}
	return out, nil
}

// storageFromBlocks rebuilds a Storage from a decoded block sequence,
// rejecting a second block of the same type as CorruptBlock (the
// at-most-one-per-type invariant applies to stored data too).
func storageFromBlocks(blocks []*Block) (*Storage, error) {
	s := NewStorage()
	for _, b := range blocks {
		if _, exists := s.blocks[b.Type()]; exists {
			return nil, fmt.Errorf("block: duplicate type-%d block in input: %w", b.Type(), sqrlerr.ErrCorruptBlock)
		}
		s.blocks[b.Type()] = b
		s.order = append(s.order, b.Type())
	}
	return s, nil
}
