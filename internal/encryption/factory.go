package encryption

import (
	"fmt"

	"rem-go/internal/config"
	"rem-go/internal/rem"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (rem.Encryptor, error) {
	switch cfg.Type {
	case "age", "":
		return NewAgeEncryptor(), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
