package block

import "testing"

func TestCursorSeekWriteScenario(t *testing.T) {
	b, err := NewBlock(1, 18)
	if err != nil {
		t.Fatal(err)
	}
	cur := NewCursor(b.Bytes())
	if err := cur.Seek(0); err != nil {
		t.Fatal(err)
	}
	if err := cur.Write([]byte("Bender is Great!")[:16]); err != nil {
		t.Fatal(err)
	}
	if err := cur.WriteUint16(0); err != nil {
		t.Fatal(err)
	}
	if err := cur.SeekBack(3); err != nil {
		t.Fatal(err)
	}
	if err := cur.Write([]byte("?")); err != nil {
		t.Fatal(err)
	}
	got := string(b.Bytes()[0:16])
	want := "Bender is Great?"[:16]
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCursorWriteAtEndIsOutOfBounds(t *testing.T) {
	b, err := NewBlock(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	cur := NewCursor(b.Bytes())
	if err := cur.Seek(4); err != nil {
		t.Fatal(err)
	}
	if err := cur.Write([]byte{1}); err == nil {
		t.Fatal("expected OutOfBounds writing past the end")
	}
}

func TestSeekZeroOnEmptyBlockIsNoOp(t *testing.T) {
	cur := NewCursor(nil)
	if err := cur.Seek(0); err != nil {
		t.Fatal(err)
	}
	if cur.Pos() != 0 {
		t.Fatalf("expected pos 0, got %d", cur.Pos())
	}
}

func TestBlockEncodeDecodeRoundTrip(t *testing.T) {
	b, err := NewBlock(7, 10)
	if err != nil {
		t.Fatal(err)
	}
	copy(b.Payload(), []byte("abcdef"))

	raw := EncodeBlock(b)
	decoded, consumed, err := DecodeBlock(raw)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(raw) {
		t.Fatalf("expected to consume %d bytes, got %d", len(raw), consumed)
	}
	if decoded.Type() != 7 || decoded.Length() != 10 {
		t.Fatalf("unexpected decoded header: type=%d length=%d", decoded.Type(), decoded.Length())
	}
	if string(decoded.Payload()) != string(b.Payload()) {
		t.Fatalf("payload mismatch: got %q want %q", decoded.Payload(), b.Payload())
	}
}

func TestDecodeBlockRejectsTruncatedLength(t *testing.T) {
	if _, _, err := DecodeBlock([]byte{10, 0, 1, 0}); err == nil {
		t.Fatal("expected CorruptBlock for a length field exceeding the buffer")
	}
}

func TestDecodeBlockRejectsHeaderTooShort(t *testing.T) {
	if _, _, err := DecodeBlock([]byte{1, 0}); err == nil {
		t.Fatal("expected CorruptBlock for fewer than 4 bytes")
	}
}

func TestNewBlockRejectsLengthUnderHeader(t *testing.T) {
	if _, err := NewBlock(1, 3); err == nil {
		t.Fatal("expected error for a length shorter than the 4-byte header")
	}
}

func TestEmptyBlockIsHeaderOnly(t *testing.T) {
	b, err := NewBlock(9, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Payload()) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(b.Payload()))
	}
	if b.Length() != 4 {
		t.Fatalf("expected length 4, got %d", b.Length())
	}
}
