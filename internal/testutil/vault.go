package testutil

import (
	"rem-go/internal/rem"
	"rem-go/internal/vault"
)

// NewTestVault creates a new in-memory vault for testing.
func NewTestVault() rem.Vault {
	return vault.NewMemoryVault()
}
