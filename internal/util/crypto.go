package util

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex BLAKE2b-256 sum of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyDigest reports whether digest matches data.
func VerifyDigest(data []byte, digest string) bool {
	want := Digest(data)
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1
}
