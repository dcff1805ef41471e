// Package encryption protects backup archives with passphrase encryption.
package encryption

import (
	"fmt"
	"io"

	"filippo.io/age"

	"rem-go/internal/rem"
)

// AgeEncryptor implements rem.Encryptor using filippo.io/age with its
// scrypt-based passphrase scheme. No key files are involved: the passphrase
// alone unlocks an archive, which suits portable backup copies.
type AgeEncryptor struct{}

// NewAgeEncryptor creates a passphrase encryptor.
func NewAgeEncryptor() *AgeEncryptor {
	return &AgeEncryptor{}
}

// Encrypt reads plaintext from r and writes age ciphertext to w.
func (*AgeEncryptor) Encrypt(passphrase string, r io.Reader, w io.Writer) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	encWriter, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Decrypt reads age ciphertext from r and writes plaintext to w.
// A wrong passphrase fails before any plaintext is written.
func (*AgeEncryptor) Decrypt(passphrase string, r io.Reader, w io.Writer) error {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt identity: %w", err)
	}

	decReader, err := age.Decrypt(r, identity)
	if err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("reading decrypted data: %w", err)
	}
	return nil
}

// Compile-time check that AgeEncryptor implements rem.Encryptor.
var _ rem.Encryptor = (*AgeEncryptor)(nil)
