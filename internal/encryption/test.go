package encryption

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"rem-go/internal/rem"
)

// testHeader marks data produced by TestEncryptor. The passphrase follows
// on the same line so Decrypt can reject a mismatch the way the real
// encryptor would.
const testHeader = "REMENC\x00"

// TestEncryptor is a deterministic stand-in for the age encryptor. It makes
// encrypted output clearly different from plaintext and enforces passphrase
// matching without any real crypto, keeping backup tests fast.
type TestEncryptor struct{}

// NewTestEncryptor creates a TestEncryptor.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (*TestEncryptor) Encrypt(passphrase string, r io.Reader, w io.Writer) error {
	if _, err := io.WriteString(w, testHeader+passphrase+"\n"); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (*TestEncryptor) Decrypt(passphrase string, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !strings.HasPrefix(line, testHeader) {
		return fmt.Errorf("invalid test encryption header")
	}
	if strings.TrimSuffix(strings.TrimPrefix(line, testHeader), "\n") != passphrase {
		return fmt.Errorf("incorrect passphrase")
	}
	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

// Compile-time check that TestEncryptor implements rem.Encryptor.
var _ rem.Encryptor = (*TestEncryptor)(nil)
