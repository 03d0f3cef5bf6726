package kdf

import (
	"fmt"
	"time"

	"golang.org/x/crypto/scrypt"

	"github.com/sqrlid/idcore/sqrlerr"
)

// scryptR and scryptP are fixed per spec.md section 4.4; only N (via
// nFactor) and the iteration count vary.
const (
	scryptR = 256
	scryptP = 1
)

// EnScrypt runs exactly iterations rounds of Scrypt, salt-chaining each
// round's raw output into the next round (round i+1 uses round i's raw
// Scrypt output as its salt), and returns the cumulative XOR of every
// round's raw output: x0 ^ x1 ^ ... ^ x_{iterations-1}. password and
// salt may both be empty.
func EnScrypt(password, salt []byte, iterations int, nFactor uint8) ([KeySize]byte, error) {
	if iterations < 1 {
		return [KeySize]byte{}, fmt.Errorf("enscrypt: iterations must be >= 1: %w", sqrlerr.ErrInvalidArgument)
	}
	n := 1 << nFactor

	x, err := scrypt.Key(password, salt, n, scryptR, scryptP, KeySize)
	if err != nil {
		return [KeySize]byte{}, fmt.Errorf("enscrypt: scrypt: %w: %v", sqrlerr.ErrCrypto, err)
	}
	var cur [KeySize]byte
	copy(cur[:], x)
	acc := cur

	for i := 1; i < iterations; i++ {
		next, err := scrypt.Key(password, cur[:], n, scryptR, scryptP, KeySize)
		if err != nil {
			return [KeySize]byte{}, fmt.Errorf("enscrypt: scrypt: %w: %v", sqrlerr.ErrCrypto, err)
		}
		copy(cur[:], next)
		for j := range acc {
			acc[j] ^= cur[j]
		}
	}
	return acc, nil
}

// EnScryptMillis runs EnScrypt iterations until the elapsed wall time
// reaches at least ms, returning the achieved iteration count. The
// count — not the duration — is what gets persisted in a Type 1/2
// block header, so a later EnScrypt call with the same count
// reproduces the same key deterministically regardless of how fast
// the machine that decrypts it happens to be.
func EnScryptMillis(password, salt []byte, ms int, nFactor uint8) (key [KeySize]byte, iterations int, err error) {
	if ms < 1 {
		return key, 0, fmt.Errorf("enscrypt: ms must be >= 1: %w", sqrlerr.ErrInvalidArgument)
	}
	n := 1 << nFactor
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)

	x, err := scrypt.Key(password, salt, n, scryptR, scryptP, KeySize)
	if err != nil {
		return key, 0, fmt.Errorf("enscrypt: scrypt: %w: %v", sqrlerr.ErrCrypto, err)
	}
	var cur [KeySize]byte
	copy(cur[:], x)
	acc := cur
	iterations = 1

	for time.Now().Before(deadline) {
		next, err := scrypt.Key(password, cur[:], n, scryptR, scryptP, KeySize)
		if err != nil {
			return key, 0, fmt.Errorf("enscrypt: scrypt: %w: %v", sqrlerr.ErrCrypto, err)
		}
		copy(cur[:], next)
		for j := range acc {
			acc[j] ^= cur[j]
		}
		iterations++
	}
	return acc, iterations, nil
}
