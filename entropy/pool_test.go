package entropy

import (
	"testing"
)

func TestGetBlockedUntilThresholdMet(t *testing.T) {
	p, err := New(WithThreshold(1_000_000)) // unreachable without blocking
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	p.mu.Lock()
	p.estimate = 0
	p.mu.Unlock()

	if _, err := p.Get(32); err == nil {
		t.Fatal("expected insufficient entropy error")
	}
}

func TestGetSucceedsAboveThreshold(t *testing.T) {
	p, err := New(WithThreshold(NeededDebug))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	buf, err := p.Get(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 32 {
		t.Fatalf("got %d bytes, want 32", len(buf))
	}
}

func TestBytesNeverFails(t *testing.T) {
	p, err := New(WithThreshold(NeededDebug))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	a := p.Bytes(32)
	b := p.Bytes(32)
	if len(a) != 32 || len(b) != 32 {
		t.Fatal("unexpected length")
	}
	if string(a) == string(b) {
		t.Fatal("two draws should not collide")
	}
}

func TestAddMixesWithoutCrediting(t *testing.T) {
	p, err := New(WithThreshold(NeededDebug))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	before := p.Estimate()
	p.Add([]byte("some external jitter"))
	if p.Estimate() != before {
		t.Fatal("Add must not change the estimate")
	}
}
