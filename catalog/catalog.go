// Package catalog implements a local nickname-to-identity store backed
// by SQLite: the CLI's answer to "which saved identities do I have".
// Nicknames are hashed before they touch disk the same way the teacher
// SRP implementation hashes its identity string before storing it, and
// each stored S4 blob is sealed one layer above its own per-block
// AES-GCM with a machine-local secretbox key.
package catalog

import (
	"crypto"
	_ "golang.org/x/crypto/blake2b"

	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sqrlid/idcore/sqrlerr"
)

// entry is the GORM model backing the catalog table. NicknameHash is
// the lookup key so nicknames never appear in the database file
// itself — mirroring how Tomsons-go-srp never persists its SRP
// identity string in the clear, only s.hashbyte(I).
type entry struct {
	NicknameHash []byte `gorm:"primaryKey"`
	Nonce        []byte
	Sealed       []byte // secretbox(S4 blob)
}

// Catalog is a SQLite-backed store of sealed S4 identity blobs, keyed
// by a BLAKE2b-256 hash of their nickname.
type Catalog struct {
	db  *gorm.DB
	key [32]byte
}

// Open opens (creating if necessary) a SQLite catalog at path, sealing
// every stored blob under machineKey.
func Open(path string, machineKey [32]byte) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w: %v", path, sqrlerr.ErrIO, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("catalog: migrate: %w: %v", sqrlerr.ErrIO, err)
	}
	return &Catalog{db: db, key: machineKey}, nil
}

func hashNickname(nickname string) []byte {
	h := crypto.BLAKE2b_256.New()
	h.Write([]byte(nickname))
	return h.Sum(nil)
}

// Save seals blob under the catalog's machine key and upserts it by
// nickname.
func (c *Catalog) Save(nickname string, blob []byte, nonce [24]byte) error {
	sealed := secretbox.Seal(nil, blob, &nonce, &c.key)
	e := entry{NicknameHash: hashNickname(nickname), Nonce: nonce[:], Sealed: sealed}
	return c.db.Save(&e).Error
}

// Load retrieves and unseals the blob stored under nickname.
func (c *Catalog) Load(nickname string) ([]byte, error) {
	var e entry
	if err := c.db.First(&e, "nickname_hash = ?", hashNickname(nickname)).Error; err != nil {
		return nil, fmt.Errorf("catalog: load %q: %w: %v", nickname, sqrlerr.ErrIO, err)
	}
	var nonce [24]byte
	copy(nonce[:], e.Nonce)
	blob, ok := secretbox.Open(nil, e.Sealed, &nonce, &c.key)
	if !ok {
		return nil, fmt.Errorf("catalog: unseal %q: %w", nickname, sqrlerr.ErrAuthenticationFailed)
	}
	return blob, nil
}

// Delete removes the entry for nickname, if any.
func (c *Catalog) Delete(nickname string) error {
	return c.db.Delete(&entry{}, "nickname_hash = ?", hashNickname(nickname)).Error
}

// List returns every nickname hash currently stored. Nicknames
// themselves are not recoverable from the catalog, and nothing in this
// module keeps a nickname-to-hash mapping elsewhere.
func (c *Catalog) List() ([][]byte, error) {
	var entries []entry
	if err := c.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("catalog: list: %w: %v", sqrlerr.ErrIO, err)
	}
	hashes := make([][]byte, len(entries))
	for i, e := range entries {
		hashes[i] = e.NicknameHash
	}
	return hashes, nil
}
