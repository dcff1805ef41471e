package testutil

import (
	"rem-go/internal/encryption"
	"rem-go/internal/rem"
)

// NewTestEncryptor creates a plaintext-header encryptor for testing.
func NewTestEncryptor() rem.Encryptor {
	return encryption.NewTestEncryptor()
}
