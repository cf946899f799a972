package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

const ivSize = 12

var (
	// ErrNoKey marks the fatal configuration case of an unset encryption
	// secret.
	ErrNoKey = errors.New("encryption key not configured")

	// ErrDecrypt is deliberately generic: wrong key, corrupted buffer and
	// truncated input all surface the same way.
	ErrDecrypt = errors.New("failed to decrypt or invalid file")
)

// deriveKey hashes the configured secret so any passphrase yields a valid
// AES-256 key.
func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// Encrypt seals the plaintext with AES-256-GCM and prefixes the random
// 12-byte IV, matching the encrypted plan file layout.
func Encrypt(plaintext []byte, secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrNoKey
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	return gcm.Seal(iv, iv, plaintext, nil), nil
}

// Decrypt reverses Encrypt. Every failure mode maps to ErrDecrypt so the
// error message leaks no cryptographic detail.
func Decrypt(data []byte, secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrNoKey
	}

	if len(data) <= ivSize {
		return nil, ErrDecrypt
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, ErrDecrypt
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecrypt
	}

	plaintext, err := gcm.Open(nil, data[:ivSize], data[ivSize:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}
