// utils/codes.go
package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// Link and access codes are opaque, human-shareable tokens. They address
// records without authentication, so they come from crypto/rand rather
// than anything guessable.

func randomCode(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random bytes for code generation")
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	return strings.ToLower(code)
}

// GenerateLinkCode returns a short staff-addressing code for intake and
// clock links.
func GenerateLinkCode() string {
	return randomCode(5)
}

// GenerateAccessCode returns the lookup token handed back to a client
// after submitting a consultation.
func GenerateAccessCode() string {
	return randomCode(10)
}
