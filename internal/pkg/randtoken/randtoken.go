// Package randtoken produces identifiers drawn from crypto/rand.
package randtoken

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Hex returns n random bytes hex-encoded (2n characters).
func Hex(n int) (string, error) {
	b, err := read(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// URLSafe returns n random bytes as unpadded base64url, suitable for cookies.
func URLSafe(n int) (string, error) {
	b, err := read(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("randtoken: %w", err)
	}
	return b, nil
}
