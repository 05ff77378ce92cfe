package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCode returns a random hex string of length 2*byteLength,
// used for verification and password reset tokens.
func GenerateCode(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
