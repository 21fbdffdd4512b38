package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a 64-character opaque session token.
func GenerateToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
