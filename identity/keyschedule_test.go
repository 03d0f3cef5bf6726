package identity

import (
	"bytes"
	"testing"
)

func fixedDraw(seed byte) func(n int) []byte {
	return func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = seed + byte(i)
		}
		return b
	}
}

func TestIUKDerivesDeterministicILKAndMK(t *testing.T) {
	var iuk [KeySize]byte
	copy(iuk[:], fixedDraw(1)(KeySize))

	ilkA, err := IdentityLockKey(iuk)
	if err != nil {
		t.Fatal(err)
	}
	ilkB, err := IdentityLockKey(iuk)
	if err != nil {
		t.Fatal(err)
	}
	if ilkA != ilkB {
		t.Fatal("IdentityLockKey must be deterministic")
	}

	mkA := MasterKey(iuk)
	mkB := MasterKey(iuk)
	if mkA != mkB {
		t.Fatal("MasterKey must be deterministic")
	}
	if mkA == ilkA {
		t.Fatal("MK and ILK must not collide for a nonzero IUK")
	}
}

func TestUnlockKeysShareDHSecret(t *testing.T) {
	var iuk [KeySize]byte
	copy(iuk[:], fixedDraw(7)(KeySize))
	ilk, err := IdentityLockKey(iuk)
	if err != nil {
		t.Fatal(err)
	}

	rlk := GenerateRandomLockKey(fixedDraw(42))
	suk, err := ServerUnlockKey(rlk)
	if err != nil {
		t.Fatal(err)
	}

	vuk, err := VerifyUnlockKey(ilk, rlk)
	if err != nil {
		t.Fatal(err)
	}
	ursk, err := UnlockRequestSigningKey(iuk, suk)
	if err != nil {
		t.Fatal(err)
	}

	// ScalarMult(RLK, ILK) must equal ScalarMult(IUK, SUK): the
	// Diffie-Hellman symmetry the Identity Lock protocol relies on.
	got, err := sharedPoint(rlk, ilk)
	if err != nil {
		t.Fatal(err)
	}
	want, err := sharedPoint(func() [KeySize]byte { clampScalar(&iuk); return iuk }(), suk)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatal("RLK/ILK and IUK/SUK shared points must match")
	}

	wantPub := GeneratePublicKey(ursk)
	if !bytes.Equal(vuk[:], wantPub[:]) {
		t.Fatal("VUK must equal the Ed25519 public key derived from URSK's seed")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	var seed [KeySize]byte
	copy(seed[:], fixedDraw(3)(KeySize))
	pub := GeneratePublicKey(seed)

	msg := []byte("This is a test message!")
	sig := Sign(seed, msg)
	if !VerifySignature(pub, msg, sig) {
		t.Fatal("signature must verify under the matching public key")
	}
	if VerifySignature(pub, []byte("This is a test message?"), sig) {
		t.Fatal("signature must not verify under a modified message")
	}
}

func TestSiteKeypairDeterministicPerDomain(t *testing.T) {
	var mk [KeySize]byte
	copy(mk[:], fixedDraw(9)(KeySize))

	pubA, seedA := SiteKeypair(mk, "example.com")
	pubB, seedB := SiteKeypair(mk, "example.com")
	if pubA != pubB || seedA != seedB {
		t.Fatal("SiteKeypair must be deterministic for a fixed MK and domain")
	}

	pubOther, _ := SiteKeypair(mk, "other.example")
	if pubA == pubOther {
		t.Fatal("different domains must yield different site keypairs")
	}
}
