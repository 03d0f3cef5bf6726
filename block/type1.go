package block

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/sqrlid/idcore/kdf"
	"github.com/sqrlid/idcore/sqrlerr"
)

// Type1 is the block type tag for the User-Access Password block.
const Type1 = 1

// type1HeaderSize covers every header field AES-GCM authenticates as
// additional data: length, type, IV, salt, nFactor, iteration count,
// options, hintLength, enscryptSeconds, timeoutMinutes.
const type1HeaderSize = 2 + 2 + 12 + 16 + 1 + 4 + 2 + 1 + 1 + 2

const type1PlaintextSize = 64 // IMK || ILK
const gcmTagSize = 16

// Type1Params carries the non-secret header fields a Type1 block
// stores alongside its ciphertext.
type Type1Params struct {
	IV              [12]byte
	Salt            [16]byte
	NFactor         uint8
	Iterations      uint32
	Options         uint16
	HintLength      uint8
	EnscryptSeconds uint8
	TimeoutMinutes  uint16
}

// EncryptType1 builds a Type1 block holding MK (masked as IMK = MK XOR
// EnScrypt-key) and ILK, encrypted under a password-derived AES-GCM
// key. The header (everything up through timeoutMinutes) is the AEAD
// additional data.
func EncryptType1(mk, ilk [32]byte, password []byte, p Type1Params) (*Block, error) {
	key, err := kdf.EnScrypt(password, p.Salt[:], int(p.Iterations), p.NFactor)
	if err != nil {
		return nil, err
	}

	var imk [32]byte
	for i := range imk {
		imk[i] = mk[i] ^ key[i]
	}
	plaintext := make([]byte, 0, type1PlaintextSize)
	plaintext = append(plaintext, imk[:]...)
	plaintext = append(plaintext, ilk[:]...)

	total := type1HeaderSize + type1PlaintextSize + gcmTagSize
	b, err := NewBlock(Type1, total)
	if err != nil {
		return nil, err
	}

	cur := b.Cursor()
	if err := writeType1Header(cur, total, p); err != nil {
		return nil, err
	}
	header := b.Bytes()[:type1HeaderSize]

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	ciphertext := aead.Seal(nil, p.IV[:], plaintext, header)
	if err := cur.Write(ciphertext); err != nil {
		return nil, err
	}
	return b, nil
}

// DecryptType1 recovers MK and ILK from a Type1 block given the
// candidate password. A tag mismatch (wrong password or corrupted
// block) surfaces as AuthenticationFailed without revealing which.
func DecryptType1(b *Block, password []byte) (mk, ilk [32]byte, err error) {
	if b.Type() != Type1 || b.Length() != type1HeaderSize+type1PlaintextSize+gcmTagSize {
		return mk, ilk, fmt.Errorf("block: not a well-formed type-1 block: %w", sqrlerr.ErrCorruptBlock)
	}
	cur := b.Cursor()
	p, err := readType1Header(cur)
	if err != nil {
		return mk, ilk, err
	}
	header := b.Bytes()[:type1HeaderSize]
	ciphertext := b.Bytes()[type1HeaderSize:]

	key, err := kdf.EnScrypt(password, p.Salt[:], int(p.Iterations), p.NFactor)
	if err != nil {
		return mk, ilk, err
	}
	aead, err := newGCM(key)
	if err != nil {
		return mk, ilk, err
	}
	plaintext, err := aead.Open(nil, p.IV[:], ciphertext, header)
	if err != nil {
		return mk, ilk, fmt.Errorf("block: type-1 decrypt: %w", sqrlerr.ErrAuthenticationFailed)
	}

	var imk [32]byte
	copy(imk[:], plaintext[:32])
	copy(ilk[:], plaintext[32:64])
	for i := range mk {
		mk[i] = imk[i] ^ key[i]
	}
	return mk, ilk, nil
}

func writeType1Header(cur *Cursor, total int, p Type1Params) error {
	writes := []func() error{
		func() error { return cur.WriteUint16(uint16(total)) },
		func() error { return cur.WriteUint16(Type1) },
		func() error { return cur.Write(p.IV[:]) },
		func() error { return cur.Write(p.Salt[:]) },
		func() error { return cur.WriteUint8(p.NFactor) },
		func() error { return cur.WriteUint32(p.Iterations) },
		func() error { return cur.WriteUint16(p.Options) },
		func() error { return cur.WriteUint8(p.HintLength) },
		func() error { return cur.WriteUint8(p.EnscryptSeconds) },
		func() error { return cur.WriteUint16(p.TimeoutMinutes) },
	}
	for _, w := range writes {
		if err := w(); err != nil {
			return err
		}
	}
	return nil
}

func readType1Header(cur *Cursor) (Type1Params, error) {
	var p Type1Params
	if _, err := cur.ReadUint16(); err != nil { // length
		return p, err
	}
	if _, err := cur.ReadUint16(); err != nil { // type
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
	if p.Options, err = cur.ReadUint16(); err != nil {
		return p, err
	}
	if p.HintLength, err = cur.ReadUint8(); err != nil {
		return p, err
	}
	if p.EnscryptSeconds, err = cur.ReadUint8(); err != nil {
		return p, err
	}
	if p.TimeoutMinutes, err = cur.ReadUint16(); err != nil {
		return p, err
	}
	return p, nil
}

// newGCM builds the AES-GCM AEAD the S4 blocks are sealed with. AES-GCM
// is the one AEAD in this package drawn from the standard library
// rather than a pack dependency: it is the construction spec.md names
// explicitly, Go's assembly-accelerated crypto/aes+crypto/cipher is the
// idiomatic implementation of it, and none of the example repos offer
// an alternative AES-GCM binding.
func newGCM(key [32]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("block: aes cipher: %w: %v", sqrlerr.ErrCrypto, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("block: gcm: %w: %v", sqrlerr.ErrCrypto, err)
	}
	return aead, nil
}
