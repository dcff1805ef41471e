package rem

import "fmt"

// SettingsController mediates between the settings model and a
// SettingsView.
type SettingsController struct {
	settings *SettingsModel
	activity *ActivityModel
	view     SettingsView
	logger   Logger
}

// NewSettingsController creates a SettingsController and subscribes it to
// the settings model. Call Close to detach it again.
func NewSettingsController(settings *SettingsModel, activity *ActivityModel, view SettingsView, logger Logger) *SettingsController {
	c := &SettingsController{
		settings: settings,
		activity: activity,
		view:     view,
		logger:   logger,
	}
	settings.Subscribe(c)
	return c
}

// Close detaches the controller from the settings model.
func (c *SettingsController) Close() {
	c.settings.Unsubscribe(c)
}

// OnModelChanged implements Subscriber. Committed settings changes tell
// the view to reload.
func (c *SettingsController) OnModelChanged(e Event) {
	switch e.Kind {
	case EventSettingsUpdated, EventSettingsReset:
		c.view.RefreshData()
	}
}

// Load returns the merged settings.
func (c *SettingsController) Load() (Settings, error) {
	merged, err := c.settings.Load()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load settings: %v", err))
		return nil, err
	}
	return merged, nil
}

// Get returns the current value of one setting key.
func (c *SettingsController) Get(key string) (any, error) {
	value, err := c.settings.Get(key)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to read setting: %v", err))
		return nil, err
	}
	return value, nil
}

// Update applies one setting.
func (c *SettingsController) Update(key string, value any) error {
	if err := c.settings.Update(key, value); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to update setting: %v", err))
		return err
	}

	c.logActivity(ActionSettingsUpdated, fmt.Sprintf("Setting updated: %s", key), map[string]any{
		"key": key,
	})
	c.view.ShowSuccess(fmt.Sprintf("Setting updated: %s", key))
	return nil
}

// UpdateMany applies several settings together.
func (c *SettingsController) UpdateMany(values map[string]any) error {
	if err := c.settings.UpdateMany(values); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to update settings: %v", err))
		return err
	}

	c.logActivity(ActionSettingsUpdated, fmt.Sprintf("%d settings updated", len(values)), map[string]any{
		"count": len(values),
	})
	c.view.ShowSuccess("Settings updated")
	return nil
}

// Reset restores the default settings.
func (c *SettingsController) Reset() error {
	if err := c.settings.Reset(); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to reset settings: %v", err))
		return err
	}

	c.logActivity(ActionSettingsReset, "Settings reset to defaults", nil)
	c.view.ShowSuccess("Settings reset to defaults")
	return nil
}

// Export writes the merged settings to a JSON document.
func (c *SettingsController) Export(path string) error {
	if err := c.settings.Export(path); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export settings: %v", err))
		return err
	}

	c.logActivity(ActionDataExport, fmt.Sprintf("Settings exported to %s", path), map[string]any{
		"path": path,
		"what": "settings",
	})
	c.view.ShowSuccess(fmt.Sprintf("Settings exported to %s", path))
	return nil
}

// Import applies settings from a JSON document, dropping unknown keys.
func (c *SettingsController) Import(path string) error {
	if err := c.settings.Import(path); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to import settings: %v", err))
		return err
	}

	c.logActivity(ActionDataImport, fmt.Sprintf("Settings imported from %s", path), map[string]any{
		"path": path,
		"what": "settings",
	})
	c.view.ShowSuccess(fmt.Sprintf("Settings imported from %s", path))
	return nil
}

// Refresh pushes the merged settings to the view.
func (c *SettingsController) Refresh() error {
	merged, err := c.settings.Load()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load settings: %v", err))
		return err
	}
	c.view.ShowSettings(merged)
	return nil
}

func (c *SettingsController) logActivity(action, description string, details map[string]any) {
	if err := c.activity.Record(action, description, details); err != nil {
		c.logger.Warn("recording activity failed", "action", action, "error", err)
	}
}
