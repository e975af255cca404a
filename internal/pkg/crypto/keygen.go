package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSigningSecret generates a random hex-encoded secret suitable for
// HMAC token signing. n is the number of random bytes; the returned string
// is twice that length.
func GenerateSigningSecret(n int) (string, error) {
	if n < 32 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
