package rem

// Store provides an interface for record storage operations against the
// relational database. Find-style methods return (nil, nil) when no record
// matches; mutation methods return ErrNotFound when the target is missing.
// Referential integrity between owners and properties is enforced by the
// models, not by store-level foreign keys.
type Store interface {
	// Owner operations

	// CreateOwner inserts a new owner. The code must be unique.
	CreateOwner(o *Owner) error

	// GetOwner returns the owner with the given code, or (nil, nil).
	GetOwner(code string) (*Owner, error)

	// ListOwners returns all owners ordered by name.
	ListOwners() ([]*Owner, error)

	// ListOwnerCodes returns every owner code currently in use.
	ListOwnerCodes() ([]string, error)

	// UpdateOwner rewrites the owner identified by o.Code.
	UpdateOwner(o *Owner) error

	// DeleteOwner removes the owner with the given code.
	DeleteOwner(code string) error

	// SearchOwners returns owners whose name or phone contains term,
	// case-insensitively, ordered by name.
	SearchOwners(term string) ([]*Owner, error)

	// OwnerNameExists reports whether another owner already uses name
	// (case-insensitive). excludeCode skips one owner, for update checks.
	OwnerNameExists(name, excludeCode string) (bool, error)

	// CountOwnerProperties returns how many properties reference the owner.
	CountOwnerProperties(ownerCode string) (int, error)

	// CountOwnersWithProperties returns how many owners have at least one property.
	CountOwnersWithProperties() (int, error)

	// Property operations

	// CreateProperty inserts a new property. The code and its 4-character
	// prefix must be unique.
	CreateProperty(p *Property) error

	// GetProperty returns the property with the given code (owner name
	// joined), or (nil, nil).
	GetProperty(code string) (*Property, error)

	// ListProperties returns all properties, newest first, with owner names joined.
	ListProperties() ([]*Property, error)

	// ListPropertiesByOwner returns the properties referencing an owner, newest first.
	ListPropertiesByOwner(ownerCode string) ([]*Property, error)

	// ListPropertyCodes returns every property code currently in use.
	ListPropertyCodes() ([]string, error)

	// UpdateProperty rewrites the property identified by p.Code.
	UpdateProperty(p *Property) error

	// DeleteProperty removes the property with the given code.
	DeleteProperty(code string) error

	// SearchProperties returns the properties matching all set criteria,
	// newest first. A zero PropertySearch matches everything.
	SearchProperties(q PropertySearch) ([]*Property, error)

	// Reference operations

	// ListReference returns a category's entries ordered by code.
	ListReference(category string) ([]*ReferenceEntry, error)

	// GetReferenceName resolves (category, code) to its display name.
	// Returns "" when the entry does not exist.
	GetReferenceName(category, code string) (string, error)

	// CreateReferenceEntry inserts a new reference entry.
	CreateReferenceEntry(e *ReferenceEntry) error

	// Statistics

	// GetStatistics returns record counts and area aggregates.
	GetStatistics() (*Statistics, error)

	// Data portability. Table and column names are validated against the
	// known schema before being interpolated into SQL.

	// Tables returns the user-data table names, excluding bookkeeping tables.
	Tables() ([]string, error)

	// DumpTable returns a table's column names and raw row values.
	DumpTable(name string) ([]string, [][]any, error)

	// InsertOrReplaceRow upserts one row keyed by the table's primary key.
	InsertOrReplaceRow(table string, columns []string, values []any) error

	// ExecScript executes a multi-statement SQL script in a single
	// transaction: it either fully applies or not at all.
	ExecScript(script string) error

	// Lifecycle

	// Ping verifies the store is reachable.
	Ping() error

	// Path returns the store's file path (":memory:" for in-memory stores).
	Path() string

	// Close closes the underlying connection. The store can be brought
	// back with Reopen, which restore uses after overwriting the file.
	Close() error

	// Reopen re-establishes the connection to the file at Path.
	Reopen() error
}

// Statistics aggregates record counts for dashboards and reports.
type Statistics struct {
	TotalOwners     int
	TotalProperties int
	TotalArea       float64
	AverageArea     float64
	ByType          map[string]int
	ByProvince      map[string]int
	ByOffer         map[string]int
}
