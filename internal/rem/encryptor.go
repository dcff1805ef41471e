package rem

import "io"

// Encryptor protects backup archives with a passphrase.
// Both directions stream through io.Reader/io.Writer so archives never
// need to fit in memory.
type Encryptor interface {
	// Encrypt encrypts data read from r with the passphrase and writes
	// ciphertext to w.
	Encrypt(passphrase string, r io.Reader, w io.Writer) error

	// Decrypt decrypts data read from r with the passphrase and writes
	// plaintext to w. Returns an error if the passphrase is incorrect.
	Decrypt(passphrase string, r io.Reader, w io.Writer) error
}
