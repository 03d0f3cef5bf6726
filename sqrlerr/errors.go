// Package sqrlerr defines the abstract error taxonomy shared by every
// layer of the identity cryptographic core. Callers should test for
// these with errors.Is rather than comparing strings.
package sqrlerr

import "errors"

// Sentinel kinds. Call sites wrap these with fmt.Errorf("...: %w", Kind)
// to attach context without losing the taxonomy.
var (
	// ErrInvalidArgument is a null or out-of-range input from the caller.
	ErrInvalidArgument = errors.New("sqrl: invalid argument")

	// ErrInsufficientEntropy means the entropy pool's bit estimate is
	// below the threshold required for a non-blocking draw.
	ErrInsufficientEntropy = errors.New("sqrl: insufficient entropy")

	// ErrCrypto wraps failure of an underlying primitive (Scrypt,
	// Curve25519, Ed25519, AEAD).
	ErrCrypto = errors.New("sqrl: crypto primitive failure")

	// ErrAuthenticationFailed is an AEAD tag mismatch or wrong
	// password/rescue code. It must never reveal which.
	ErrAuthenticationFailed = errors.New("sqrl: authentication failed")

	// ErrCorruptBlock is an inconsistent length field, unknown block
	// type, or truncated input.
	ErrCorruptBlock = errors.New("sqrl: corrupt block")

	// ErrOutOfBounds is a cursor write that would extend a block's length.
	ErrOutOfBounds = errors.New("sqrl: out of bounds")

	// ErrCancelled is returned when a progress or auth callback
	// requested abort. It must never be reported as ErrCrypto or any
	// other failure kind.
	ErrCancelled = errors.New("sqrl: cancelled")

	// ErrIO is a file read/write failure during load/save.
	ErrIO = errors.New("sqrl: io failure")
)
