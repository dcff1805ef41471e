package rem

import (
	"fmt"
	"strings"
	"time"
)

// Owner is a person or company that owns zero or more properties.
// The code is the primary key: 4 uppercase alphanumeric characters.
type Owner struct {
	Code      string
	Name      string
	Phone     string
	Note      string
	CreatedAt time.Time
}

// Validate checks the fields that must hold before an owner is written.
// Name uniqueness is checked separately against the store.
func (o *Owner) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("owner name is required")
	}
	return nil
}

// OwnerStatistics summarizes the owner population.
type OwnerStatistics struct {
	Total             int
	WithProperties    int
	WithoutProperties int
}
