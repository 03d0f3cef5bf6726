package catalog

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	var machineKey [32]byte
	for i := range machineKey {
		machineKey[i] = byte(i)
	}
	c, err := Open(filepath.Join(t.TempDir(), "identities.db"), machineKey)
	if err != nil {
		t.Fatal(err)
	}

	var nonce [24]byte
	copy(nonce[:], []byte("unique-nonce-for-this-test!!"))
	blob := []byte("pretend this is an S4 identity blob")

	if err := c.Save("home", blob, nonce); err != nil {
		t.Fatal(err)
	}
	got, err := c.Load("home")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(blob) {
		t.Fatalf("got %q want %q", got, blob)
	}
}

func TestLoadMissingNicknameFails(t *testing.T) {
	var machineKey [32]byte
	c, err := Open(filepath.Join(t.TempDir(), "identities.db"), machineKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load("nobody"); err == nil {
		t.Fatal("expected an error loading an unknown nickname")
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	var machineKey [32]byte
	c, err := Open(filepath.Join(t.TempDir(), "identities.db"), machineKey)
	if err != nil {
		t.Fatal(err)
	}
	var nonce [24]byte
	if err := c.Save("work", []byte("blob"), nonce); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete("work"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load("work"); err == nil {
		t.Fatal("expected load to fail after delete")
	}
}

func TestListReturnsStoredHashes(t *testing.T) {
	var machineKey [32]byte
	c, err := Open(filepath.Join(t.TempDir(), "identities.db"), machineKey)
	if err != nil {
		t.Fatal(err)
	}
	var nonce [24]byte
	if err := c.Save("a", []byte("1"), nonce); err != nil {
		t.Fatal(err)
	}
	if err := c.Save("b", []byte("2"), nonce); err != nil {
		t.Fatal(err)
	}
	hashes, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(hashes))
	}
}
