package identity

import "testing"

func TestGenerateMaterializesCoreSlots(t *testing.T) {
	u, err := Generate(DefaultOptions(), fixedDraw(11))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []Slot{SlotIUK, SlotILK, SlotMK} {
		if !u.HasSlot(s) {
			t.Fatalf("expected slot %s to be materialized after Generate", s)
		}
	}
	if !u.Type1Changed() || !u.Type2Changed() {
		t.Fatal("a freshly generated identity must be marked dirty for both password and rescue blocks")
	}
}

func TestRekeyOrdering(t *testing.T) {
	u, err := Generate(DefaultOptions(), fixedDraw(1))
	if err != nil {
		t.Fatal(err)
	}
	prevIUK, err := u.Key(SlotIUK)
	if err != nil {
		t.Fatal(err)
	}

	if err := u.Rekey(fixedDraw(99)); err != nil {
		t.Fatal(err)
	}

	newIUK, err := u.Key(SlotIUK)
	if err != nil {
		t.Fatal(err)
	}
	piuk0, err := u.Key(SlotPIUK0)
	if err != nil {
		t.Fatal(err)
	}

	if string(newIUK) == string(prevIUK) {
		t.Fatal("rekey must produce a new IUK distinct from the previous one")
	}
	if string(piuk0) != string(prevIUK) {
		t.Fatal("PIUK0 after rekey must equal the IUK immediately before rekey")
	}

	// A second rekey must shift PIUK0 into PIUK1 without aliasing.
	secondIUK, err := u.Key(SlotIUK)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Rekey(fixedDraw(7)); err != nil {
		t.Fatal(err)
	}
	piuk1, err := u.Key(SlotPIUK1)
	if err != nil {
		t.Fatal(err)
	}
	if string(piuk1) != string(piuk0) {
		t.Fatal("PIUK1 after a second rekey must equal PIUK0 from just before it")
	}
	newPiuk0, err := u.Key(SlotPIUK0)
	if err != nil {
		t.Fatal(err)
	}
	if string(newPiuk0) != string(secondIUK) {
		t.Fatal("PIUK0 after a second rekey must equal the IUK from just before it")
	}
	if string(newPiuk0) == string(piuk1) {
		t.Fatal("PIUK0 and PIUK1 must not alias the same backing bytes after a shift")
	}
}

func TestHintLockRoundTrip(t *testing.T) {
	u, err := Generate(DefaultOptions(), fixedDraw(5))
	if err != nil {
		t.Fatal(err)
	}
	mkBefore, err := u.Key(SlotMK)
	if err != nil {
		t.Fatal(err)
	}

	password := []byte("correct horse battery staple")
	if err := u.HintLock(password); err != nil {
		t.Fatal(err)
	}
	if u.HasSlot(SlotMK) {
		t.Fatal("MK must be absent from the slot table while hint-locked")
	}
	if !u.IsHintLocked() {
		t.Fatal("expected IsHintLocked to report true")
	}

	if err := u.HintUnlock(password); err != nil {
		t.Fatal(err)
	}
	mkAfter, err := u.Key(SlotMK)
	if err != nil {
		t.Fatal(err)
	}
	if string(mkBefore) != string(mkAfter) {
		t.Fatal("hint-unlock must restore the exact same MK bytes")
	}
}

func TestHintUnlockRejectsWrongPassword(t *testing.T) {
	u, err := Generate(DefaultOptions(), fixedDraw(2))
	if err != nil {
		t.Fatal(err)
	}
	if err := u.HintLock([]byte("rightpassword")); err != nil {
		t.Fatal(err)
	}
	if err := u.HintUnlock([]byte("wrongpassword")); err == nil {
		t.Fatal("expected hint-unlock with the wrong password to fail")
	}
}

func TestSetPasswordZeroizesCallerBuffer(t *testing.T) {
	u := New(DefaultOptions())
	pw := []byte("hunter2")
	u.SetPassword(pw)
	for i, b := range pw {
		if b != 0 {
			t.Fatalf("caller password buffer byte %d not zeroized", i)
		}
	}
}

func TestSetRescueCodeValidatesLength(t *testing.T) {
	u := New(DefaultOptions())
	if err := u.SetRescueCode("short"); err == nil {
		t.Fatal("expected error for a rescue code that is not 24 digits")
	}
	if err := u.SetRescueCode("012345678901234567890123"); err != nil {
		t.Fatal(err)
	}
}
