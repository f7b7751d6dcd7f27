package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// NewID32 mints a public identifier: 32 lowercase hex characters, no
// separators or prefix. Loan and payment ids use it, and the shape matches
// what the API's hex32 validator accepts for party ids.
func NewID32() string {
	var b [16]byte
	_, _ = io.ReadFull(rand.Reader, b[:])
	return hex.EncodeToString(b[:])
}
