package block

import "testing"

func sampleStorage(t *testing.T) *Storage {
	t.Helper()
	s := NewStorage()
	b1, err := NewBlock(1, 8)
	if err != nil {
		t.Fatal(err)
	}
	copy(b1.Payload(), []byte("ab12"))
	if err := s.Add(b1); err != nil {
		t.Fatal(err)
	}
	b2, err := NewBlock(2, 6)
	if err != nil {
		t.Fatal(err)
	}
	copy(b2.Payload(), []byte("xy"))
	if err := s.Add(b2); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStorageRejectsDuplicateType(t *testing.T) {
	s := sampleStorage(t)
	dup, err := NewBlock(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(dup); err == nil {
		t.Fatal("expected error adding a second block of the same type")
	}
}

func TestStorageBinaryRoundTrip(t *testing.T) {
	s := sampleStorage(t)
	buf := s.ToBinary()

	got, err := FromBinary(buf)
	if err != nil {
		t.Fatal(err)
	}
	assertStoragesEqual(t, s, got)
}

func TestStorageTextualRoundTripWithEmbeddedWhitespace(t *testing.T) {
	s := sampleStorage(t)
	text := s.ToTextual()

	// Insert whitespace at arbitrary points; import must tolerate it.
	noisy := text[:5] + "  \r\n " + text[5:]

	got, err := FromTextual(noisy)
	if err != nil {
		t.Fatal(err)
	}
	assertStoragesEqual(t, s, got)
}

func TestFromBinaryRejectsMissingMagic(t *testing.T) {
	if _, err := FromBinary([]byte("notsqrldata")); err == nil {
		t.Fatal("expected CorruptBlock for missing magic")
	}
}

func assertStoragesEqual(t *testing.T, want, got *Storage) {
	t.Helper()
	wb, gb := want.Blocks(), got.Blocks()
	if len(wb) != len(gb) {
		t.Fatalf("block count mismatch: want %d got %d", len(wb), len(gb))
	}
	for i := range wb {
		if wb[i].Type() != gb[i].Type() || string(wb[i].Bytes()) != string(gb[i].Bytes()) {
			t.Fatalf("block %d mismatch", i)
		}
	}
}
