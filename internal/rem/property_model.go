package rem

import (
	"fmt"
	"slices"
	"strings"
)

// PropertyModel manages property records and their reference lookups.
// Mutations validate before touching the store and publish a change event
// only after the store write committed. Owner links are checked here since
// the store declares no foreign keys.
type PropertyModel struct {
	notifier
	store   Store
	codegen *CodeGenerator
	clock   Clock
	logger  Logger
}

// NewPropertyModel creates a PropertyModel with the provided dependencies.
func NewPropertyModel(store Store, codegen *CodeGenerator, clock Clock, logger Logger) *PropertyModel {
	return &PropertyModel{
		store:   store,
		codegen: codegen,
		clock:   clock,
		logger:  logger,
	}
}

// Create validates and inserts a new property. The owner must exist. A
// blank code is filled in from the code generator; a supplied code must
// have the structured shape and must collide with neither an existing code
// nor an existing company prefix.
func (m *PropertyModel) Create(p *Property) error {
	p.Address = strings.TrimSpace(p.Address)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = DefaultPropertyStatus
	}
	if !slices.Contains(PropertyStatuses, p.Status) {
		return fmt.Errorf("invalid property status: %s", p.Status)
	}

	owner, err := m.store.GetOwner(p.OwnerCode)
	if err != nil {
		return fmt.Errorf("getting owner: %w", err)
	}
	if owner == nil {
		return fmt.Errorf("owner %s: %w", p.OwnerCode, ErrNotFound)
	}

	if p.Code == "" {
		code, err := m.codegen.PropertyCode()
		if err != nil {
			return fmt.Errorf("generating property code: %w", err)
		}
		p.Code = code
	} else if err := m.checkSuppliedCode(p.Code); err != nil {
		return err
	}

	now := m.clock.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := m.store.CreateProperty(p); err != nil {
		return fmt.Errorf("creating property: %w", err)
	}

	m.logger.Info("property created", "code", p.Code, "owner", p.OwnerCode)
	m.notify(Event{Kind: EventPropertyCreated, Key: p.Code})
	return nil
}

// checkSuppliedCode enforces shape, code uniqueness, and company prefix
// uniqueness for a caller-provided property code.
func (m *PropertyModel) checkSuppliedCode(code string) error {
	if !ValidPropertyCode(code) {
		return fmt.Errorf("invalid property code: %s", code)
	}
	existing, err := m.store.ListPropertyCodes()
	if err != nil {
		return fmt.Errorf("listing property codes: %w", err)
	}
	for _, c := range existing {
		if c == code {
			return fmt.Errorf("property code %s already in use", code)
		}
		if len(c) >= 4 && c[:4] == code[:4] {
			return fmt.Errorf("company prefix %s already in use", code[:4])
		}
	}
	return nil
}

// Get returns the property with the given code, or (nil, nil) if absent.
func (m *PropertyModel) Get(code string) (*Property, error) {
	p, err := m.store.GetProperty(code)
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}
	return p, nil
}

// All returns every property, newest first.
func (m *PropertyModel) All() ([]*Property, error) {
	props, err := m.store.ListProperties()
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	return props, nil
}

// ByOwner returns the properties linked to an owner, newest first.
func (m *PropertyModel) ByOwner(ownerCode string) ([]*Property, error) {
	props, err := m.store.ListPropertiesByOwner(ownerCode)
	if err != nil {
		return nil, fmt.Errorf("listing properties by owner: %w", err)
	}
	return props, nil
}

// Update validates and rewrites an existing property identified by p.Code.
// Reassigning to another owner re-checks that the new owner exists.
func (m *PropertyModel) Update(p *Property) error {
	p.Address = strings.TrimSpace(p.Address)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status != "" && !slices.Contains(PropertyStatuses, p.Status) {
		return fmt.Errorf("invalid property status: %s", p.Status)
	}

	existing, err := m.store.GetProperty(p.Code)
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("property %s: %w", p.Code, ErrNotFound)
	}

	if p.OwnerCode != existing.OwnerCode {
		owner, err := m.store.GetOwner(p.OwnerCode)
		if err != nil {
			return fmt.Errorf("getting owner: %w", err)
		}
		if owner == nil {
			return fmt.Errorf("owner %s: %w", p.OwnerCode, ErrNotFound)
		}
	}

	if p.Status == "" {
		p.Status = existing.Status
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	p.UpdatedAt = m.clock.Now()

	if err := m.store.UpdateProperty(p); err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	m.logger.Info("property updated", "code", p.Code)
	m.notify(Event{Kind: EventPropertyUpdated, Key: p.Code})
	return nil
}

// SetStatus changes just the status of a property.
func (m *PropertyModel) SetStatus(code, status string) error {
	if !slices.Contains(PropertyStatuses, status) {
		return fmt.Errorf("invalid property status: %s", status)
	}
	existing, err := m.store.GetProperty(code)
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("property %s: %w", code, ErrNotFound)
	}

	existing.Status = status
	existing.UpdatedAt = m.clock.Now()
	if err := m.store.UpdateProperty(existing); err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	m.logger.Info("property status changed", "code", code, "status", status)
	m.notify(Event{Kind: EventPropertyUpdated, Key: code})
	return nil
}

// Delete removes a property.
func (m *PropertyModel) Delete(code string) error {
	existing, err := m.store.GetProperty(code)
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("property %s: %w", code, ErrNotFound)
	}

	if err := m.store.DeleteProperty(code); err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	m.logger.Info("property deleted", "code", code)
	m.notify(Event{Kind: EventPropertyDeleted, Key: code})
	return nil
}

// Search returns the properties matching all set criteria, newest first.
func (m *PropertyModel) Search(q PropertySearch) ([]*Property, error) {
	props, err := m.store.SearchProperties(q)
	if err != nil {
		return nil, fmt.Errorf("searching properties: %w", err)
	}
	return props, nil
}

// AddPhotos appends stored photo filenames to a property's photo list.
func (m *PropertyModel) AddPhotos(code string, filenames ...string) error {
	if len(filenames) == 0 {
		return nil
	}
	existing, err := m.store.GetProperty(code)
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("property %s: %w", code, ErrNotFound)
	}

	for _, f := range filenames {
		if !slices.Contains(existing.Photos, f) {
			existing.Photos = append(existing.Photos, f)
		}
	}
	existing.UpdatedAt = m.clock.Now()
	if err := m.store.UpdateProperty(existing); err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	m.logger.Info("photos added", "code", code, "count", len(filenames))
	m.notify(Event{Kind: EventPropertyUpdated, Key: code})
	return nil
}

// RemovePhoto removes one stored photo filename from a property's photo list.
func (m *PropertyModel) RemovePhoto(code, filename string) error {
	existing, err := m.store.GetProperty(code)
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("property %s: %w", code, ErrNotFound)
	}

	i := slices.Index(existing.Photos, filename)
	if i < 0 {
		return fmt.Errorf("photo %s on property %s: %w", filename, code, ErrNotFound)
	}
	existing.Photos = append(existing.Photos[:i], existing.Photos[i+1:]...)
	existing.UpdatedAt = m.clock.Now()
	if err := m.store.UpdateProperty(existing); err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	m.logger.Info("photo removed", "code", code, "photo", filename)
	m.notify(Event{Kind: EventPropertyUpdated, Key: code})
	return nil
}

// GenerateCode returns a fresh unused property code, for pre-filling forms.
func (m *PropertyModel) GenerateCode() (string, error) {
	return m.codegen.PropertyCode()
}

// Statistics returns record counts and area aggregates for dashboards.
func (m *PropertyModel) Statistics() (*Statistics, error) {
	stats, err := m.store.GetStatistics()
	if err != nil {
		return nil, fmt.Errorf("getting statistics: %w", err)
	}
	return stats, nil
}

// References returns a reference category's entries, for populating
// selection lists.
func (m *PropertyModel) References(category string) ([]*ReferenceEntry, error) {
	entries, err := m.store.ListReference(category)
	if err != nil {
		return nil, fmt.Errorf("listing reference entries: %w", err)
	}
	return entries, nil
}

// ReferenceName resolves a reference code to its display name. Unknown
// codes resolve to the code itself so callers can always render something.
func (m *PropertyModel) ReferenceName(category, code string) string {
	if code == "" {
		return ""
	}
	name, err := m.store.GetReferenceName(category, code)
	if err != nil || name == "" {
		return code
	}
	return name
}

// AddReference validates and inserts a new reference entry.
func (m *PropertyModel) AddReference(e *ReferenceEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	name, err := m.store.GetReferenceName(e.Category, e.Code)
	if err != nil {
		return fmt.Errorf("checking reference entry: %w", err)
	}
	if name != "" {
		return fmt.Errorf("reference entry %s/%s already exists", e.Category, e.Code)
	}
	if err := m.store.CreateReferenceEntry(e); err != nil {
		return fmt.Errorf("creating reference entry: %w", err)
	}
	m.logger.Info("reference entry added", "category", e.Category, "code", e.Code)
	return nil
}
