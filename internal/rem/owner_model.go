package rem

import (
	"fmt"
	"strings"
)

// OwnerModel manages owner records. Mutations validate before touching the
// store and publish a change event only after the store write committed.
type OwnerModel struct {
	notifier
	store   Store
	codegen *CodeGenerator
	clock   Clock
	logger  Logger
}

// NewOwnerModel creates an OwnerModel with the provided dependencies.
func NewOwnerModel(store Store, codegen *CodeGenerator, clock Clock, logger Logger) *OwnerModel {
	return &OwnerModel{
		store:   store,
		codegen: codegen,
		clock:   clock,
		logger:  logger,
	}
}

// Create validates and inserts a new owner. A blank code is filled in from
// the code generator. Owner names must be unique across all owners.
func (m *OwnerModel) Create(o *Owner) error {
	o.Name = strings.TrimSpace(o.Name)
	if err := o.Validate(); err != nil {
		return err
	}

	taken, err := m.store.OwnerNameExists(o.Name, "")
	if err != nil {
		return fmt.Errorf("checking owner name: %w", err)
	}
	if taken {
		return fmt.Errorf("owner %q: %w", o.Name, ErrDuplicateName)
	}

	if o.Code == "" {
		code, err := m.codegen.OwnerCode()
		if err != nil {
			return fmt.Errorf("generating owner code: %w", err)
		}
		o.Code = code
	} else if !ValidOwnerCode(o.Code) {
		return fmt.Errorf("invalid owner code: %s", o.Code)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = m.clock.Now()
	}

	if err := m.store.CreateOwner(o); err != nil {
		return fmt.Errorf("creating owner: %w", err)
	}

	m.logger.Info("owner created", "code", o.Code, "name", o.Name)
	m.notify(Event{Kind: EventOwnerCreated, Key: o.Code})
	return nil
}

// Get returns the owner with the given code, or (nil, nil) if absent.
func (m *OwnerModel) Get(code string) (*Owner, error) {
	o, err := m.store.GetOwner(code)
	if err != nil {
		return nil, fmt.Errorf("getting owner: %w", err)
	}
	return o, nil
}

// All returns every owner ordered by name.
func (m *OwnerModel) All() ([]*Owner, error) {
	owners, err := m.store.ListOwners()
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	return owners, nil
}

// Update validates and rewrites an existing owner identified by o.Code.
func (m *OwnerModel) Update(o *Owner) error {
	o.Name = strings.TrimSpace(o.Name)
	if err := o.Validate(); err != nil {
		return err
	}

	existing, err := m.store.GetOwner(o.Code)
	if err != nil {
		return fmt.Errorf("getting owner: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("owner %s: %w", o.Code, ErrNotFound)
	}

	taken, err := m.store.OwnerNameExists(o.Name, o.Code)
	if err != nil {
		return fmt.Errorf("checking owner name: %w", err)
	}
	if taken {
		return fmt.Errorf("owner %q: %w", o.Name, ErrDuplicateName)
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = existing.CreatedAt
	}
	if err := m.store.UpdateOwner(o); err != nil {
		return fmt.Errorf("updating owner: %w", err)
	}

	m.logger.Info("owner updated", "code", o.Code)
	m.notify(Event{Kind: EventOwnerUpdated, Key: o.Code})
	return nil
}

// Delete removes an owner. Owners with associated properties are refused:
// properties must be deleted or reassigned first.
func (m *OwnerModel) Delete(code string) error {
	existing, err := m.store.GetOwner(code)
	if err != nil {
		return fmt.Errorf("getting owner: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("owner %s: %w", code, ErrNotFound)
	}

	count, err := m.store.CountOwnerProperties(code)
	if err != nil {
		return fmt.Errorf("counting owner properties: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("owner %s has %d properties: %w", code, count, ErrOwnerHasProperties)
	}

	if err := m.store.DeleteOwner(code); err != nil {
		return fmt.Errorf("deleting owner: %w", err)
	}

	m.logger.Info("owner deleted", "code", code)
	m.notify(Event{Kind: EventOwnerDeleted, Key: code})
	return nil
}

// Search returns owners whose name or phone contains term. A blank term
// returns all owners.
func (m *OwnerModel) Search(term string) ([]*Owner, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return m.All()
	}
	owners, err := m.store.SearchOwners(term)
	if err != nil {
		return nil, fmt.Errorf("searching owners: %w", err)
	}
	return owners, nil
}

// GenerateCode returns a fresh unused owner code, for pre-filling forms.
func (m *OwnerModel) GenerateCode() (string, error) {
	return m.codegen.OwnerCode()
}

// Statistics summarizes how many owners exist and how many of them have
// at least one property.
func (m *OwnerModel) Statistics() (*OwnerStatistics, error) {
	owners, err := m.store.ListOwners()
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	withProps, err := m.store.CountOwnersWithProperties()
	if err != nil {
		return nil, fmt.Errorf("counting owners with properties: %w", err)
	}
	return &OwnerStatistics{
		Total:             len(owners),
		WithProperties:    withProps,
		WithoutProperties: len(owners) - withProps,
	}, nil
}
