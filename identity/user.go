package identity

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/sqrlid/idcore/securemem"
	"github.com/sqrlid/idcore/sqrlerr"
)

// User is the in-memory identity handle: a slot table of Secure
// Buffers, its options, and dirty/lock status bits, per spec.md
// section 3.
type User struct {
	mu sync.Mutex

	slots map[Slot]*securemem.Buffer
	opts  Options

	memLocked    bool
	type1Changed bool
	type2Changed bool

	// hintCipher holds MK sealed under a key derived from the first
	// HintLength bytes of the password, while the User is hint-locked
	// (MK itself is absent from slots during that time).
	hintCipher []byte
	hintNonce  [24]byte
	hintLocked bool
}

// New returns an empty User with the given options and no slots set.
func New(opts Options) *User {
	return &User{slots: make(map[Slot]*securemem.Buffer), opts: opts}
}

// Generate builds a brand-new identity: a random IUK drawn from draw
// (ordinarily entropy.Pool.GetBlocking), with ILK and MK derived from
// it and materialized immediately.
func Generate(opts Options, draw func(n int) []byte) (*User, error) {
	u := New(opts)
	var iuk [KeySize]byte
	copy(iuk[:], draw(KeySize))
	if err := u.setIUKDerivingChildren(iuk); err != nil {
		return nil, err
	}
	return u, nil
}

// HasSlot reports whether slot is currently materialized.
func (u *User) HasSlot(slot Slot) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.slots[slot]
	return ok
}

// MemLocked reports whether every materialized slot successfully
// locked its backing memory.
func (u *User) MemLocked() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.memLocked
}

// Type1Changed and Type2Changed report whether the corresponding S4
// block is stale relative to in-memory slots and should be re-saved.
func (u *User) Type1Changed() bool { u.mu.Lock(); defer u.mu.Unlock(); return u.type1Changed }
func (u *User) Type2Changed() bool { u.mu.Lock(); defer u.mu.Unlock(); return u.type2Changed }

// Options returns a copy of the User's current options.
func (u *User) Options() Options {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.opts
}

// Key copies a materialized slot's bytes out. Callers must not assume
// slot lengths beyond Slot.Len(); Password and Local are variable.
func (u *User) Key(slot Slot) ([]byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	buf, ok := u.slots[slot]
	if !ok {
		return nil, fmt.Errorf("identity: slot %s absent: %w", slot, sqrlerr.ErrInvalidArgument)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// setSlotLocked stores buf under slot, releasing any prior occupant.
// Caller must hold mu. It updates memLocked to reflect whether every
// slot (including the new one) is locked, so dirty-bit writers never
// observe a partial key (spec.md section 5's atomicity guarantee).
func (u *User) setSlotLocked(slot Slot, buf *securemem.Buffer) {
	if old, ok := u.slots[slot]; ok {
		old.Release()
	}
	u.slots[slot] = buf
	locked := true
	for _, b := range u.slots {
		if !b.Locked() {
			locked = false
			break
		}
	}
	u.memLocked = locked
}

// SetPassword stores pw in the PASSWORD slot and zeroizes the caller's
// copy — mirroring sqrl_client_authenticate's sodium_memzero of the
// credential string, since spec.md section 3 requires the slot be
// write-only from outside.
func (u *User) SetPassword(pw []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setSlotLocked(SlotPassword, securemem.FromBytes(pw))
	for i := range pw {
		pw[i] = 0
	}
}

// SetRescueCode stores a validated 24-digit rescue code.
func (u *User) SetRescueCode(digits string) error {
	if len(digits) != 24 {
		return fmt.Errorf("identity: rescue code must be 24 digits: %w", sqrlerr.ErrInvalidArgument)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return fmt.Errorf("identity: rescue code must be 24 digits: %w", sqrlerr.ErrInvalidArgument)
		}
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setSlotLocked(SlotRescueCode, securemem.FromBytes([]byte(digits)))
	return nil
}

// setIUKDerivingChildren stores iuk and (re)derives ILK and MK from
// it, all under one lock acquisition so a concurrent reader never
// observes IUK set but ILK/MK stale.
func (u *User) setIUKDerivingChildren(iuk [KeySize]byte) error {
	ilk, err := IdentityLockKey(iuk)
	if err != nil {
		return err
	}
	mk := MasterKey(iuk)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.setSlotLocked(SlotIUK, securemem.FromBytes(iuk[:]))
	u.setSlotLocked(SlotILK, securemem.FromBytes(ilk[:]))
	u.setSlotLocked(SlotMK, securemem.FromBytes(mk[:]))
	u.type1Changed = true
	u.type2Changed = true
	return nil
}

// Rekey demotes the current IUK to PIUK0 (shifting the existing ring
// PIUK0->1, 1->2, 2->3, discarding PIUK3), draws a fresh IUK from draw,
// and rederives ILK and MK. No slot aliases any other afterward: each
// PIUK buffer is an independent copy.
func (u *User) Rekey(draw func(n int) []byte) error {
	u.mu.Lock()
	oldIUK, hasOld := u.slots[SlotIUK]
	var oldCopy []byte
	if hasOld {
		oldCopy = append([]byte(nil), oldIUK.Bytes()...)
	}
	// Shift PIUK3<-PIUK2<-PIUK1<-PIUK0 (from the back so nothing is
	// overwritten before it's read).
	for i := len(piukRing) - 1; i >= 1; i-- {
		if prevBuf, ok := u.slots[piukRing[i-1]]; ok {
			u.setSlotLocked(piukRing[i], securemem.FromBytes(prevBuf.Bytes()))
		} else if _, ok := u.slots[piukRing[i]]; ok {
			u.slots[piukRing[i]].Release()
			delete(u.slots, piukRing[i])
		}
	}
	if hasOld {
		u.setSlotLocked(piukRing[0], securemem.FromBytes(oldCopy))
		for i := range oldCopy {
			oldCopy[i] = 0
		}
	}
	u.mu.Unlock()

	var fresh [KeySize]byte
	copy(fresh[:], draw(KeySize))
	return u.setIUKDerivingChildren(fresh)
}

// HintLock seals the current MK under a key derived from the first
// HintLength bytes of a password and removes MK from the slot table,
// leaving the User "hint-locked" per spec.md section 3. Subsequent
// reads of MK must go through HintUnlock.
func (u *User) HintLock(password []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	mkBuf, ok := u.slots[SlotMK]
	if !ok {
		return fmt.Errorf("identity: no MK to hint-lock: %w", sqrlerr.ErrInvalidArgument)
	}
	n := int(u.opts.HintLength)
	if n > len(password) {
		n = len(password)
	}
	key := sha256.Sum256(password[:n])

	var nonce [24]byte
	copy(nonce[:], password) // deterministic per-password nonce is fine: key is password-derived too, scope is this single seal
	sealed := secretbox.Seal(nil, mkBuf.Bytes(), &nonce, &key)

	u.hintCipher = sealed
	u.hintNonce = nonce
	u.hintLocked = true
	mkBuf.Release()
	delete(u.slots, SlotMK)
	return nil
}

// HintUnlock reverses HintLock, restoring MK to the slot table.
func (u *User) HintUnlock(password []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.hintLocked {
		return fmt.Errorf("identity: user is not hint-locked: %w", sqrlerr.ErrInvalidArgument)
	}
	n := int(u.opts.HintLength)
	if n > len(password) {
		n = len(password)
	}
	key := sha256.Sum256(password[:n])

	plain, ok := secretbox.Open(nil, u.hintCipher, &u.hintNonce, &key)
	if !ok {
		return fmt.Errorf("identity: hint unlock: %w", sqrlerr.ErrAuthenticationFailed)
	}
	u.setSlotLocked(SlotMK, securemem.FromBytes(plain))
	for i := range plain {
		plain[i] = 0
	}
	u.hintCipher = nil
	u.hintLocked = false
	return nil
}

// IsHintLocked reports whether MK is currently sealed behind a hint.
func (u *User) IsHintLocked() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hintLocked
}

// Release zeroizes every Secure Buffer the User owns. The User must
// not be used afterward.
func (u *User) Release() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, b := range u.slots {
		b.Release()
	}
	u.slots = nil
	for i := range u.hintCipher {
		u.hintCipher[i] = 0
	}
}
