// Package digest computes the content checksums recorded in the catalog for
// each collection segment.
package digest

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Sum returns the hex BLAKE2b-256 digest of b.
func Sum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether b hashes to want.
func Verify(b []byte, want string) bool {
	got := Sum(b)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
