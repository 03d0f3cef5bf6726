package identity

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"github.com/sqrlid/idcore/kdf"
	"github.com/sqrlid/idcore/sqrlerr"
)

// KeySize is the width of every key in the schedule; SigSize is the
// width of an Ed25519 signature.
const (
	KeySize = 32
	SigSize = ed25519.SignatureSize
)

// clampScalar applies the standard Curve25519 clamp in place. It must
// run before k is used as a scalar in any ScalarMult/ScalarBaseMult
// call — spec.md section 4.5's "Fail conditions" requirement.
func clampScalar(k *[KeySize]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

// IdentityLockKey derives ILK = Curve25519_ScalarMult_Base(clamp(IUK)).
func IdentityLockKey(iuk [KeySize]byte) ([KeySize]byte, error) {
	clampScalar(&iuk)
	var ilk [KeySize]byte
	out, err := curve25519.X25519(iuk[:], curve25519.Basepoint)
	if err != nil {
		return ilk, fmt.Errorf("identity: derive ilk: %w: %v", sqrlerr.ErrCrypto, err)
	}
	copy(ilk[:], out)
	return ilk, nil
}

// MasterKey derives MK = EnHash(IUK).
func MasterKey(iuk [KeySize]byte) [KeySize]byte {
	return kdf.EnHash(iuk)
}

// GenerateRandomLockKey draws a fresh 32-byte RLK from the supplied
// entropy source and clamps it. The spec's open question about
// whether generateCurvePrivateKey reseeds or merely clamps is resolved
// here in favor of "clamp only": draw is the only source of
// randomness; clamping never touches entropy again.
func GenerateRandomLockKey(draw func(n int) []byte) [KeySize]byte {
	var rlk [KeySize]byte
	copy(rlk[:], draw(KeySize))
	clampScalar(&rlk)
	return rlk
}

// ServerUnlockKey derives SUK = Curve25519_ScalarMult_Base(RLK). RLK
// must already be clamped.
func ServerUnlockKey(rlk [KeySize]byte) ([KeySize]byte, error) {
	var suk [KeySize]byte
	out, err := curve25519.X25519(rlk[:], curve25519.Basepoint)
	if err != nil {
		return suk, fmt.Errorf("identity: derive suk: %w: %v", sqrlerr.ErrCrypto, err)
	}
	copy(suk[:], out)
	return suk, nil
}

// sharedPoint computes Curve25519_ScalarMult(scalar, point). scalar
// must already be clamped.
func sharedPoint(scalar, point [KeySize]byte) ([KeySize]byte, error) {
	var out [KeySize]byte
	raw, err := curve25519.X25519(scalar[:], point[:])
	if err != nil {
		return out, fmt.Errorf("identity: shared point: %w: %v", sqrlerr.ErrCrypto, err)
	}
	copy(out[:], raw)
	return out, nil
}

// VerifyUnlockKey derives VUK: the Ed25519 public key corresponding to
// the Ed25519 seed DHKA = Curve25519_ScalarMult(RLK, ILK).
func VerifyUnlockKey(ilk, rlk [KeySize]byte) ([KeySize]byte, error) {
	var vuk [KeySize]byte
	dhka, err := sharedPoint(rlk, ilk)
	if err != nil {
		return vuk, err
	}
	pub := ed25519.NewKeyFromSeed(dhka[:]).Public().(ed25519.PublicKey)
	copy(vuk[:], pub)
	return vuk, nil
}

// UnlockRequestSigningKey derives URSK: the Ed25519 private-key seed
// derived by Curve25519_ScalarMult(IUK, SUK). This is mathematically
// equal to DHKA above (Diffie-Hellman symmetry), so VUK verifies
// signatures made with URSK.
func UnlockRequestSigningKey(iuk, suk [KeySize]byte) ([KeySize]byte, error) {
	clampScalar(&iuk)
	return sharedPoint(iuk, suk)
}

// GeneratePublicKey returns the Ed25519 public key for the given
// 32-byte seed.
func GeneratePublicKey(seed [KeySize]byte) [KeySize]byte {
	var pub [KeySize]byte
	copy(pub[:], ed25519.NewKeyFromSeed(seed[:]).Public().(ed25519.PublicKey))
	return pub
}

// Sign signs msg with the Ed25519 private key derived from seed.
func Sign(seed [KeySize]byte, msg []byte) [SigSize]byte {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var sig [SigSize]byte
	copy(sig[:], ed25519.Sign(priv, msg))
	return sig
}

// VerifySignature reports whether sig is a valid Ed25519 signature of
// msg under public key pub.
func VerifySignature(pub [KeySize]byte, msg []byte, sig [SigSize]byte) bool {
	return ed25519.Verify(pub[:], msg, sig[:])
}

// SiteKeypair derives the per-authentication-domain Ed25519 keypair:
// seed = HMAC-SHA256(key=MK, msg=adStr), keypair = Ed25519-from-seed(seed).
func SiteKeypair(mk [KeySize]byte, adStr string) (pub [KeySize]byte, seed [KeySize]byte) {
	mac := hmac.New(sha256.New, mk[:])
	mac.Write([]byte(adStr))
	copy(seed[:], mac.Sum(nil))
	copy(pub[:], ed25519.NewKeyFromSeed(seed[:]).Public().(ed25519.PublicKey))
	return pub, seed
}
