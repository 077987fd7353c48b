package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// newPaymentToken returns a 32-byte random value encoded URL-safe. The token
// is the bearer capability for confirming a hold, so it must be unguessable
// and collisions must be negligible.
func newPaymentToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate payment token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
