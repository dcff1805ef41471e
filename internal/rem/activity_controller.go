package rem

import (
	"fmt"
	"time"
)

// ActivityController exposes the activity log to views and the CLI.
type ActivityController struct {
	activity *ActivityModel
	view     View
	logger   Logger
}

// NewActivityController creates an ActivityController.
func NewActivityController(activity *ActivityModel, view View, logger Logger) *ActivityController {
	return &ActivityController{
		activity: activity,
		view:     view,
		logger:   logger,
	}
}

// Recent returns up to limit entries, newest first.
func (c *ActivityController) Recent(limit int) ([]*Activity, error) {
	entries, err := c.activity.Recent(limit)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load activity log: %v", err))
		return nil, err
	}
	return entries, nil
}

// ByType returns the retained entries with the given action type.
func (c *ActivityController) ByType(actionType string) ([]*Activity, error) {
	entries, err := c.activity.ByType(actionType)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load activity log: %v", err))
		return nil, err
	}
	return entries, nil
}

// ByDateRange returns the retained entries within [from, to].
func (c *ActivityController) ByDateRange(from, to time.Time) ([]*Activity, error) {
	entries, err := c.activity.ByDateRange(from, to)
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load activity log: %v", err))
		return nil, err
	}
	return entries, nil
}

// Delete removes one entry by its exact timestamp.
func (c *ActivityController) Delete(timestamp string) error {
	if err := c.activity.Delete(timestamp); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to delete activity: %v", err))
		return err
	}
	c.view.ShowSuccess("Activity deleted")
	return nil
}

// Clear removes every retained entry.
func (c *ActivityController) Clear() (int, error) {
	removed, err := c.activity.Clear()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to clear activity log: %v", err))
		return 0, err
	}
	c.view.ShowSuccess(fmt.Sprintf("Activity log cleared: %d entries removed", removed))
	return removed, nil
}

// Export writes the retained entries to a JSON document.
func (c *ActivityController) Export(path string) error {
	if err := c.activity.Export(path); err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to export activity log: %v", err))
		return err
	}
	c.view.ShowSuccess(fmt.Sprintf("Activity log exported to %s", path))
	return nil
}

// Statistics summarizes the retained entries.
func (c *ActivityController) Statistics() (*ActivityStats, error) {
	stats, err := c.activity.Statistics()
	if err != nil {
		c.view.ShowError(fmt.Sprintf("Failed to load activity statistics: %v", err))
		return nil, err
	}
	return stats, nil
}
