package rem

import (
	"errors"
	"fmt"
)

// OwnerController mediates between the owner model and an OwnerView. It
// validates input, records activity, and surfaces outcome messages on the
// view; errors are also returned so headless callers can branch on them.
type OwnerController struct {
	owners     *OwnerModel
	properties *PropertyModel
	activity   *ActivityModel
	view       OwnerView
	logger     Logger
}

// NewOwnerController creates an OwnerController and subscribes it to the
// owner model. Call Close to detach it again.
func NewOwnerController(owners *OwnerModel, properties *PropertyModel, activity *ActivityModel, view OwnerView, logger Logger) *OwnerController {
	c := &OwnerController{
		owners:     owners,
		properties: properties,
		activity:   activity,
		view:       view,
		logger:     logger,
	}
	owners.Subscribe(c)
	return c
}

// Close detaches the controller from the owner model.
func (c *OwnerController) Close() {
	c.owners.Unsubscribe(c)
}

// OnModelChanged implements Subscriber. Committed owner mutations tell the
// view to reload its data.
func (c *OwnerController) OnModelChanged(e Event) {
	switch e.Kind {
	case EventOwnerCreated, EventOwnerUpdated, EventOwnerDeleted:
		c.view.RefreshData()
	}
}

// Create adds a new owner.
func (c *OwnerController) Create(o *Owner) error {
	if err := c.owners.Create(o); err != nil {
		c.view.ShowError(ownerErrorMessage("create", err))
		return err
	}

	c.logActivity(ActionOwnerCreated, fmt.Sprintf("Owner created: %s (%s)", o.Name, o.Code), map[string]any{
		"code": o.Code,
		"name": o.Name,
	})
	c.view.ShowSuccess(fmt.Sprintf("Owner created: %s", o.Code))
	return nil
}

// Update rewrites an existing owner.
func (c *OwnerController) Update(o *Owner) error {
	if err := c.owners.Update(o); err != nil {
		c.view.ShowError(ownerErrorMessage("update", err))
		return err
	}

	c.logActivity(ActionOwnerUpdated, fmt.Sprintf("Owner updated: %s (%s)", o.Name, o.Code), map[string]any{
		"code": o.Code,
		"name": o.Name,
	})
	c.view.ShowSuccess(fmt.Sprintf("Owner updated: %s", o.Code))
	return nil
}

// Delete removes an owner. Owners with properties are refused with a
// message stating how many properties block the deletion.
func (c *OwnerController) Delete(code string) error {
	// Pre-check so the refusal message can carry the property count. The
	// model re-checks authoritatively before deleting.
	props, err := c.properties.ByOwner(code)
	if err != nil {
		c.view.ShowError(ownerErrorMessage("delete", err))
		return err
	}
	if len(props) > 0 {
		err := fmt.Errorf("owner %s has %d properties: %w", code, len(props), ErrOwnerHasProperties)
		c.view.ShowError(fmt.Sprintf("Cannot delete owner: %d properties are associated with this owner", len(props)))
		return err
	}

	if err := c.owners.Delete(code); err != nil {
		c.view.ShowError(ownerErrorMessage("delete", err))
		return err
	}

	c.logActivity(ActionOwnerDeleted, fmt.Sprintf("Owner deleted: %s", code), map[string]any{
		"code": code,
	})
	c.view.ShowSuccess(fmt.Sprintf("Owner deleted: %s", code))
	return nil
}

// Get returns one owner, or (nil, nil) if absent.
func (c *OwnerController) Get(code string) (*Owner, error) {
	o, err := c.owners.Get(code)
	if err != nil {
		c.view.ShowError(ownerErrorMessage("load", err))
		return nil, err
	}
	return o, nil
}

// All returns every owner ordered by name.
func (c *OwnerController) All() ([]*Owner, error) {
	owners, err := c.owners.All()
	if err != nil {
		c.view.ShowError(ownerErrorMessage("load", err))
		return nil, err
	}
	return owners, nil
}

// Search returns owners matching term by name or phone.
func (c *OwnerController) Search(term string) ([]*Owner, error) {
	owners, err := c.owners.Search(term)
	if err != nil {
		c.view.ShowError(ownerErrorMessage("search", err))
		return nil, err
	}
	return owners, nil
}

// Properties returns the properties linked to an owner.
func (c *OwnerController) Properties(code string) ([]*Property, error) {
	props, err := c.properties.ByOwner(code)
	if err != nil {
		c.view.ShowError(ownerErrorMessage("load", err))
		return nil, err
	}
	return props, nil
}

// GenerateCode returns a fresh unused owner code for form pre-fill.
func (c *OwnerController) GenerateCode() (string, error) {
	code, err := c.owners.GenerateCode()
	if err != nil {
		c.view.ShowError(ownerErrorMessage("generate a code for", err))
		return "", err
	}
	return code, nil
}

// Statistics summarizes the owner records.
func (c *OwnerController) Statistics() (*OwnerStatistics, error) {
	stats, err := c.owners.Statistics()
	if err != nil {
		c.view.ShowError(ownerErrorMessage("load", err))
		return nil, err
	}
	return stats, nil
}

// Refresh pushes the current owner list to the view.
func (c *OwnerController) Refresh() error {
	owners, err := c.owners.All()
	if err != nil {
		c.view.ShowError(ownerErrorMessage("load", err))
		return err
	}
	c.view.ShowOwners(owners)
	return nil
}

// logActivity records an activity entry, tolerating log failures: a broken
// activity file must not fail the primary operation.
func (c *OwnerController) logActivity(action, description string, details map[string]any) {
	if err := c.activity.Record(action, description, details); err != nil {
		c.logger.Warn("recording activity failed", "action", action, "error", err)
	}
}

// ownerErrorMessage translates an owner operation error into the message
// shown on the view.
func ownerErrorMessage(verb string, err error) string {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return "Owner name is already in use"
	case errors.Is(err, ErrOwnerHasProperties):
		return "Cannot delete owner: properties are associated with this owner"
	case errors.Is(err, ErrNotFound):
		return "Owner not found"
	}
	return fmt.Sprintf("Failed to %s owner: %v", verb, err)
}
