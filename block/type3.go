package block

import (
	"fmt"

	"github.com/sqrlid/idcore/sqrlerr"
)

// Type3 is the block type tag for the Previous IUKs block.
const Type3 = 3

// type3HeaderSize covers length, type, IV.
const type3HeaderSize = 2 + 2 + 12

const type3PlaintextSize = 4 * 32 // PIUK0..PIUK3

// Type3Params carries the non-secret header fields of a Type3 block.
type Type3Params struct {
	IV [12]byte
}

// EncryptType3 builds a Type3 block holding the previous-IUK ring
// encrypted directly under MK (no password stretch: this block is only
// ever opened by someone who already holds MK).
func EncryptType3(piuk [4][32]byte, mk [32]byte, p Type3Params) (*Block, error) {
	plaintext := make([]byte, 0, type3PlaintextSize)
	for _, k := range piuk {
		plaintext = append(plaintext, k[:]...)
	}

	total := type3HeaderSize + type3PlaintextSize + gcmTagSize
	b, err := NewBlock(Type3, total)
	if err != nil {
		return nil, err
	}
	cur := b.Cursor()
	if err := cur.WriteUint16(uint16(total)); err != nil {
		return nil, err
	}
	if err := cur.WriteUint16(Type3); err != nil {
		return nil, err
	}
	if err := cur.Write(p.IV[:]); err != nil {
		return nil, err
	}
	header := b.Bytes()[:type3HeaderSize]

	aead, err := newGCM(mk)
	if err != nil {
		return nil, err
	}
	ciphertext := aead.Seal(nil, p.IV[:], plaintext, header)
	if err := cur.Write(ciphertext); err != nil {
		return nil, err
	}
	return b, nil
}

// DecryptType3 recovers the previous-IUK ring given MK.
func DecryptType3(b *Block, mk [32]byte) (piuk [4][32]byte, err error) {
	if b.Type() != Type3 || b.Length() != type3HeaderSize+type3PlaintextSize+gcmTagSize {
		return piuk, fmt.Errorf("block: not a well-formed type-3 block: %w", sqrlerr.ErrCorruptBlock)
	}
	cur := b.Cursor()
	if _, err := cur.ReadUint16(); err != nil {
		return piuk, err
	}
	if _, err := cur.ReadUint16(); err != nil {
		return piuk, err
	}
	ivBytes, err := cur.Read(12)
	if err != nil {
		return piuk, err
	}
	var iv [12]byte
	copy(iv[:], ivBytes)

	header := b.Bytes()[:type3HeaderSize]
	ciphertext := b.Bytes()[type3HeaderSize:]

	aead, err := newGCM(mk)
	if err != nil {
		return piuk, err
	}
	plaintext, err := aead.Open(nil, iv[:], ciphertext, header)
	if err != nil {
		return piuk, fmt.Errorf("block: type-3 decrypt: %w", sqrlerr.ErrAuthenticationFailed)
	}
	for i := range piuk {
		copy(piuk[i][:], plaintext[i*32:(i+1)*32])
	}
	return piuk, nil
}
