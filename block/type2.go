package block

import (
	"fmt"

	"github.com/sqrlid/idcore/kdf"
	"github.com/sqrlid/idcore/sqrlerr"
)

// Type2 is the block type tag for the Rescue Code block.
const Type2 = 2

// type2HeaderSize covers length, type, IV, salt, nFactor, iteration
// count — the AEAD additional data for a Type2 block.
const type2HeaderSize = 2 + 2 + 12 + 16 + 1 + 4

const type2PlaintextSize = 32 // IUK

// Type2Params carries the non-secret header fields of a Type2 block.
type Type2Params struct {
	IV         [12]byte
	Salt       [16]byte
	NFactor    uint8
	Iterations uint32
}

// EncryptType2 builds a Type2 block holding IUK encrypted under a key
// derived from the rescue code.
func EncryptType2(iuk [32]byte, rescueCode []byte, p Type2Params) (*Block, error) {
	key, err := kdf.EnScrypt(rescueCode, p.Salt[:], int(p.Iterations), p.NFactor)
	if err != nil {
		return nil, err
	}

	total := type2HeaderSize + type2PlaintextSize + gcmTagSize
	b, err := NewBlock(Type2, total)
	if err != nil {
		return nil, err
	}
	cur := b.Cursor()
	if err := writeType2Header(cur, total, p); err != nil {
		return nil, err
	}
	header := b.Bytes()[:type2HeaderSize]

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	ciphertext := aead.Seal(nil, p.IV[:], iuk[:], header)
	if err := cur.Write(ciphertext); err != nil {
		return nil, err
	}
	return b, nil
}

// DecryptType2 recovers IUK from a Type2 block given the candidate
// rescue code.
func DecryptType2(b *Block, rescueCode []byte) (iuk [32]byte, err error) {
	if b.Type() != Type2 || b.Length() != type2HeaderSize+type2PlaintextSize+gcmTagSize {
		return iuk, fmt.Errorf("block: not a well-formed type-2 block: %w", sqrlerr.ErrCorruptBlock)
	}
	cur := b.Cursor()
	p, err := readType2Header(cur)
	if err != nil {
		return iuk, err
	}
	header := b.Bytes()[:type2HeaderSize]
	ciphertext := b.Bytes()[type2HeaderSize:]

	key, err := kdf.EnScrypt(rescueCode, p.Salt[:], int(p.Iterations), p.NFactor)
	if err != nil {
		return iuk, err
	}
	aead, err := newGCM(key)
	if err != nil {
		return iuk, err
	}
	plaintext, err := aead.Open(nil, p.IV[:], ciphertext, header)
	if err != nil {
		return iuk, fmt.Errorf("block: type-2 decrypt: %w", sqrlerr.ErrAuthenticationFailed)
	}
	copy(iuk[:], plaintext)
	return iuk, nil
}

func writeType2Header(cur *Cursor, total int, p Type2Params) error {
	if err := cur.WriteUint16(uint16(total)); err != nil {
		return err
	}
	if err := cur.WriteUint16(Type2); err != nil {
		return err
	}
	if err := cur.Write(p.IV[:]); err != nil {
		return err
	}
	if err := cur.Write(p.Salt[:]); err != nil {
		return err
	}
	if err := cur.WriteUint8(p.NFactor); err != nil {
		return err
	}
	return cur.WriteUint32(p.Iterations)
}

func readType2Header(cur *Cursor) (Type2Params, error) {
	var p Type2Params
	if _, err := cur.ReadUint16(); err != nil {
		return p, err
	}
	if _, err := cur.ReadUint16(); err != nil {
		return p, err
	}
	iv, err := cur.Read(12)
	if err != nil {
		return p, err
	}
	copy(p.IV[:], iv)
	salt, err := cur.Read(16)
	if err != nil {
		return p, err
	}
	copy(p.Salt[:], salt)
	if p.NFactor, err = cur.ReadUint8(); err != nil {
		return p, err
	}
	if p.Iterations, err = cur.ReadUint32(); err != nil {
		return p, err
	}
	return p, nil
}
