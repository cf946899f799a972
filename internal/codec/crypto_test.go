package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfma/fma/internal/codec"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := []byte(`<?xml version="1.0"?><FinancialManagementApp></FinancialManagementApp>`)

	encrypted, err := codec.Encrypt(plaintext, "hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := codec.Decrypt(encrypted, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecrypt_WrongKey(t *testing.T) {
	encrypted, err := codec.Encrypt([]byte("secret plan"), "right-key")
	require.NoError(t, err)

	_, err = codec.Decrypt(encrypted, "wrong-key")
	assert.ErrorIs(t, err, codec.ErrDecrypt)
}

func TestDecrypt_Truncated(t *testing.T) {
	_, err := codec.Decrypt([]byte("short"), "key")
	assert.ErrorIs(t, err, codec.ErrDecrypt)
}

func TestEncrypt_NoKey(t *testing.T) {
	_, err := codec.Encrypt([]byte("data"), "")
	assert.ErrorIs(t, err, codec.ErrNoKey)

	_, err = codec.Decrypt([]byte("data"), "")
	assert.ErrorIs(t, err, codec.ErrNoKey)
}
