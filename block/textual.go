package block

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sqrlid/idcore/codec"
	"github.com/sqrlid/idcore/sqrlerr"
)

const (
	binaryMagic  = "sqrldata"
	textualMagic = "SQRLDATA"
	textualWidth = 72
)

// ToBinary serializes s as "sqrldata" followed by its blocks in
// insertion order.
func (s *Storage) ToBinary() []byte {
	out := make([]byte, 0, len(binaryMagic))
	out = append(out, binaryMagic...)
	return append(out, encodeBlocks(s.Blocks())...)
}

// FromBinary parses the binary on-disk form produced by ToBinary.
func FromBinary(buf []byte) (*Storage, error) {
	if !bytes.HasPrefix(buf, []byte(binaryMagic)) {
		return nil, fmt.Errorf("block: missing %q magic: %w", binaryMagic, sqrlerr.ErrCorruptBlock)
	}
	blocks, err := decodeBlocks(buf[len(binaryMagic):])
	if err != nil {
		return nil, err
	}
	return storageFromBlocks(blocks)
}

// ToTextual serializes s as the uppercase "SQRLDATA" magic followed by
// unpadded base64url of the block body, line-wrapped at a fixed width.
func (s *Storage) ToTextual() string {
	body := codec.EncodeUnpadded(encodeBlocks(s.Blocks()))

	var sb strings.Builder
	sb.WriteString(textualMagic)
	sb.WriteByte('\n')
	for i := 0; i < len(body); i += textualWidth {
		end := i + textualWidth
		if end > len(body) {
			end = len(body)
		}
		sb.WriteString(body[i:end])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromTextual parses the textual form, tolerating whitespace anywhere
// in the text, the magic included.
func FromTextual(text string) (*Storage, error) {
	var compact strings.Builder
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			continue
		}
		compact.WriteRune(r)
	}
	stripped := compact.String()
	if !strings.HasPrefix(stripped, textualMagic) {
		return nil, fmt.Errorf("block: missing %q magic: %w", textualMagic, sqrlerr.ErrCorruptBlock)
	}
	decoded := codec.Decode(stripped[len(textualMagic):])
	blocks, err := decodeBlocks(decoded)
	if err != nil {
		return nil, err
	}
	return storageFromBlocks(blocks)
}
