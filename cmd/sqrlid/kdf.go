package main

import "github.com/sqrlid/idcore/kdf"

// kdfEnScryptMillis is a thin pass-through to kdf.EnScryptMillis kept
// local to the CLI so command files don't each need the kdf import
// just for this one call.
func kdfEnScryptMillis(password, salt []byte, ms int, nFactor uint8) ([32]byte, int, error) {
	return kdf.EnScryptMillis(password, salt, ms, nFactor)
}
