package rem

import (
	"errors"
	"fmt"
)

// PropertyController mediates between the property model and a
// PropertyView. It owns the photo-file side of property records: imports
// on attach, best-effort cleanup on detach and delete.
type PropertyController struct {
	properties *PropertyModel
	activity   *ActivityModel
	photos     PhotoManager
	settings   *SettingsModel
	view       PropertyView
	logger     Logger
}

// NewPropertyController creates a PropertyController and subscribes it to
// the property model. Call Close to detach it again.
func NewPropertyController(properties *PropertyModel, activity *ActivityModel, photos PhotoManager, settings *SettingsModel, view PropertyView, logger Logger) *PropertyController {
	c := &PropertyController{
		properties: properties,
		activity:   activity,
		photos:     photos,
		settings:   settings,
		view:       view,
		logger:     logger,
	}
	properties.Subscribe(c)
	return c
}

// Close detaches the controller from the property model.
func (c *PropertyController) Close() {
	c.properties.Unsubscribe(c)
}

// OnModelChanged implements Subscriber. Committed property mutations tell
// the view to reload its data.
func (c *PropertyController) OnModelChanged(e Event) {
	switch e.Kind {
	case EventPropertyCreated, EventPropertyUpdated, EventPropertyDeleted:
		c.view.RefreshData()
	}
}

// Create adds a new property.
func (c *PropertyController) Create(p *Property) error {
	if err := c.properties.Create(p); err != nil {
		c.view.ShowError(propertyErrorMessage("create", err))
		return err
	}

	c.logActivity(ActionPropertyCreated, fmt.Sprintf("Property created: %s", p.Code), map[string]any{
		"code":  p.Code,
		"owner": p.OwnerCode,
	})
	c.view.ShowSuccess(fmt.Sprintf("Property created: %s", p.Code))
	return nil
}

// Update rewrites an existing property.
func (c *PropertyController) Update(p *Property) error {
	if err := c.properties.Update(p); err != nil {
		c.view.ShowError(propertyErrorMessage("update", err))
		return err
	}

	c.logActivity(ActionPropertyUpdated, fmt.Sprintf("Property updated: %s", p.Code), map[string]any{
		"code": p.Code,
	})
	c.view.ShowSuccess(fmt.Sprintf("Property updated: %s", p.Code))
	return nil
}

// SetStatus changes just the status of a property.
func (c *PropertyController) SetStatus(code, status string) error {
	if err := c.properties.SetStatus(code, status); err != nil {
		c.view.ShowError(propertyErrorMessage("update", err))
		return err
	}

	c.logActivity(ActionPropertyUpdated, fmt.Sprintf("Property %s marked %s", code, status), map[string]any{
		"code":   code,
		"status": status,
	})
	c.view.ShowSuccess(fmt.Sprintf("Property %s marked %s", code, status))
	return nil
}

// Delete removes a property and cleans up its photo files. File cleanup is
// best-effort: a photo that cannot be removed is logged and skipped.
func (c *PropertyController) Delete(code string) error {
	p, err := c.properties.Get(code)
	if err != nil {
		c.view.ShowError(propertyErrorMessage("delete", err))
		return err
	}
	if p == nil {
		err := fmt.Errorf("property %s: %w", code, ErrNotFound)
		c.view.ShowError(propertyErrorMessage("delete", err))
		return err
	}

	if err := c.properties.Delete(code); err != nil {
		c.view.ShowError(propertyErrorMessage("delete", err))
		return err
	}

	for _, photo := range p.Photos {
		if err := c.photos.Remove(photo); err != nil {
			c.logger.Warn("removing photo file failed", "photo", photo, "error", err)
		}
	}

	c.logActivity(ActionPropertyDeleted, fmt.Sprintf("Property deleted: %s", code), map[string]any{
		"code":   code,
		"photos": len(p.Photos),
	})
	c.view.ShowSuccess(fmt.Sprintf("Property deleted: %s", code))
	return nil
}

// Get returns one property, or (nil, nil) if absent.
func (c *PropertyController) Get(code string) (*Property, error) {
	p, err := c.properties.Get(code)
	if err != nil {
		c.view.ShowError(propertyErrorMessage("load", err))
		return nil, err
	}
	return p, nil
}

// All returns every property, newest first.
func (c *PropertyController) All() ([]*Property, error) {
	props, err := c.properties.All()
	if err != nil {
		c.view.ShowError(propertyErrorMessage("load", err))
		return nil, err
	}
	return props, nil
}

// Search returns the properties matching all set criteria.
func (c *PropertyController) Search(q PropertySearch) ([]*Property, error) {
	props, err := c.properties.Search(q)
	if err != nil {
		c.view.ShowError(propertyErrorMessage("search", err))
		return nil, err
	}
	return props, nil
}

// AddPhoto imports the image at sourcePath, attaches it to the property,
// and records the stored filename on the record.
func (c *PropertyController) AddPhoto(code, sourcePath string) (string, error) {
	p, err := c.properties.Get(code)
	if err != nil {
		c.view.ShowError(propertyErrorMessage("load", err))
		return "", err
	}
	if p == nil {
		err := fmt.Errorf("property %s: %w", code, ErrNotFound)
		c.view.ShowError(propertyErrorMessage("load", err))
		return "", err
	}

	merged, err := c.settings.Load()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load settings: %v", err))
		return "", err
	}

	filename, err := c.photos.Save(sourcePath, merged.String(SettingCompanyCode))
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to import photo: %v", err))
		return "", err
	}
	if err := c.properties.AddPhotos(code, filename); err != nil {
		// The record update failed; drop the orphaned file.
		if rmErr := c.photos.Remove(filename); rmErr != nil {
			c.logger.Warn("removing orphaned photo failed", "photo", filename, "error", rmErr)
		}
		c.view.ShowError(propertyErrorMessage("update", err))
		return "", err
	}

	c.logActivity(ActionPhotosAdded, fmt.Sprintf("Photo added to property %s", code), map[string]any{
		"code":  code,
		"photo": filename,
	})
	c.view.ShowSuccess(fmt.Sprintf("Photo added to property %s", code))
	return filename, nil
}

// RemovePhoto detaches a photo from the property and deletes its files
// best-effort.
func (c *PropertyController) RemovePhoto(code, filename string) error {
	if err := c.properties.RemovePhoto(code, filename); err != nil {
		c.view.ShowError(propertyErrorMessage("update", err))
		return err
	}

	if err := c.photos.Remove(filename); err != nil {
		c.logger.Warn("removing photo file failed", "photo", filename, "error", err)
	}

	c.logActivity(ActionPhotoRemoved, fmt.Sprintf("Photo removed from property %s", code), map[string]any{
		"code":  code,
		"photo": filename,
	})
	c.view.ShowSuccess(fmt.Sprintf("Photo removed from property %s", code))
	return nil
}

// References returns a reference category's entries for selection lists.
func (c *PropertyController) References(category string) ([]*ReferenceEntry, error) {
	entries, err := c.properties.References(category)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load reference data: %v", err))
		return nil, err
	}
	return entries, nil
}

// AddReference inserts a new reference entry.
func (c *PropertyController) AddReference(e *ReferenceEntry) error {
	if err := c.properties.AddReference(e); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to add reference entry: %v", err))
		return err
	}
	c.view.ShowSuccess(fmt.Sprintf("Reference entry added: %s/%s", e.Category, e.Code))
	return nil
}

// GenerateCode returns a fresh unused property code for form pre-fill.
func (c *PropertyController) GenerateCode() (string, error) {
	code, err := c.properties.GenerateCode()
	if err != nil {
		c.view.ShowError(propertyErrorMessage("generate a code for", err))
		return "", err
	}
	return code, nil
}

// Statistics returns record counts and area aggregates.
func (c *PropertyController) Statistics() (*Statistics, error) {
	stats, err := c.properties.Statistics()
	if err != nil {
		c.view.ShowError(propertyErrorMessage("load", err))
		return nil, err
	}
	return stats, nil
}

// Refresh pushes the current property list to the view.
func (c *PropertyController) Refresh() error {
	props, err := c.properties.All()
	if err != nil {
		c.view.ShowError(propertyErrorMessage("load", err))
		return err
	}
	c.view.ShowProperties(props)
	return nil
}

func (c *PropertyController) logActivity(action, description string, details map[string]any) {
	if err := c.activity.Record(action, description, details); err != nil {
		c.logger.Warn("recording activity failed", "action", action, "error", err)
	}
}

// propertyErrorMessage translates a property operation error into the
// message shown on the view.
func propertyErrorMessage(verb string, err error) string {
	if errors.Is(err, ErrNotFound) {
		return "Record not found"
	}
	return fmt.Sprintf("Failed to %s property: %v", verb, err)
}
