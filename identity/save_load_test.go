package identity

import (
	"testing"

	"github.com/sqrlid/idcore/block"
)

// TestSaveLoadRoundTrip covers spec scenario 6: generate an identity
// with a password, save it to a binary S4 buffer, release the User,
// decrypt the type-1 block reloaded from that buffer with the password,
// and confirm the recovered MK matches byte-for-byte.
func TestSaveLoadRoundTrip(t *testing.T) {
	u, err := Generate(DefaultOptions(), fixedDraw(4))
	if err != nil {
		t.Fatal(err)
	}
	mkBefore, err := u.Key(SlotMK)
	if err != nil {
		t.Fatal(err)
	}
	ilkBefore, err := u.Key(SlotILK)
	if err != nil {
		t.Fatal(err)
	}
	var mk, ilk [KeySize]byte
	copy(mk[:], mkBefore)
	copy(ilk[:], ilkBefore)

	password := []byte("pw")
	params := block.Type1Params{
		NFactor:         9,
		Iterations:      2,
		HintLength:      u.Options().HintLength,
		EnscryptSeconds: u.Options().EnscryptSeconds,
		TimeoutMinutes:  u.Options().TimeoutMinutes,
	}
	copy(params.Salt[:], fixedDraw(20)(16))
	copy(params.IV[:], fixedDraw(30)(12))

	blk, err := block.EncryptType1(mk, ilk, append([]byte(nil), password...), params)
	if err != nil {
		t.Fatal(err)
	}

	storage := block.NewStorage()
	if err := storage.Add(blk); err != nil {
		t.Fatal(err)
	}
	buf := storage.ToBinary()

	u.Release()

	loaded, err := block.FromBinary(buf)
	if err != nil {
		t.Fatal(err)
	}
	type1Block, ok := loaded.Get(block.Type1)
	if !ok {
		t.Fatal("expected a type-1 block in the reloaded storage")
	}

	mkAfter, _, err := block.DecryptType1(type1Block, []byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	if mkAfter != mk {
		t.Fatal("MK recovered after save/load must equal MK before save, byte-for-byte")
	}
}
