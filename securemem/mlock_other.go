//go:build !unix

package securemem

import "errors"

// mlock/munlock have no portable implementation outside unix in this
// module; the caller observes Locked()==false and the owning User's
// MemLocked flag drops to 0, per spec.md section 4.2 — failure here is
// non-fatal.
func mlock(b []byte) error   { return errors.New("securemem: mlock unsupported on this platform") }
func munlock(b []byte) error { return nil }
