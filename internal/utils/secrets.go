package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// minSecretBytes is the smallest HMAC key accepted for signing tokens
const minSecretBytes = 16

// GenerateSecret returns n random bytes as unpadded URL-safe base64, which
// can be pasted into a .env file without quoting.
func GenerateSecret(n int) (string, error) {
	if n < minSecretBytes {
		return "", fmt.Errorf("secret must be at least %d bytes, got %d", minSecretBytes, n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateJWTSecret returns a 256-bit signing key for JWT_SECRET
func GenerateJWTSecret() (string, error) {
	return GenerateSecret(32)
}
