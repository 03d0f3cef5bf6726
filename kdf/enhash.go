// Package kdf implements the two password-stretching primitives used
// throughout the identity core: EnHash (a 16-round folded SHA-256) and
// EnScrypt (an iterated, time- or count-bounded Scrypt). Component C4.
package kdf

import "crypto/sha256"

// KeySize is the fixed width, in bytes, of every key this package
// produces or consumes.
const KeySize = 32

// EnHash computes the 16-round folded SHA-256 digest used to derive
// the Master Key from the Identity Unlock Key: h0 = SHA256(input),
// h_i = SHA256(h_{i-1}) for i in 1..15, output = h0 xor h1 xor ... xor h15.
func EnHash(input [KeySize]byte) [KeySize]byte {
	var acc [KeySize]byte
	cur := input
	for round := 0; round < 16; round++ {
		sum := sha256.Sum256(cur[:])
		for i := range acc {
			acc[i] ^= sum[i]
		}
		cur = sum
	}
	return acc
}
