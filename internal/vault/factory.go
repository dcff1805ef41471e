package vault

import (
	"fmt"

	"rem-go/internal/config"
	"rem-go/internal/rem"
)

// NewVaultFromConfig creates a Vault implementation based on the vault
// config type. An empty type means no vault is configured and returns
// (nil, nil); callers treat a nil vault as "uploads unavailable".
func NewVaultFromConfig(cfg config.VaultConfig) (rem.Vault, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "memory":
		return NewMemoryVault(), nil
	case "filesystem":
		if cfg.FSVaultRoot == "" {
			return nil, fmt.Errorf("filesystem vault requires fs_vault_root to be set")
		}
		return NewFileSystemVault(cfg.FSVaultRoot)
	case "s3":
		return NewS3Vault(cfg)
	default:
		return nil, fmt.Errorf("unknown vault type: %s", cfg.Type)
	}
}
