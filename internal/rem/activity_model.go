package rem

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ActivityModel maintains the rolling activity log: a newest-first list of
// recent user-visible actions, capped at MaxActivityEntries. Entries beyond
// the cap are dropped silently on the next write.
type ActivityModel struct {
	store  ActivityStore
	fs     Filesystem
	clock  Clock
	logger Logger
}

// NewActivityModel creates an ActivityModel with the provided dependencies.
func NewActivityModel(store ActivityStore, fs Filesystem, clock Clock, logger Logger) *ActivityModel {
	return &ActivityModel{
		store:  store,
		fs:     fs,
		clock:  clock,
		logger: logger,
	}
}

// Record prepends a new entry and trims the list to the cap.
func (m *ActivityModel) Record(actionType, description string, details map[string]any) error {
	entries, err := m.store.Read()
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}

	entry := &Activity{
		Timestamp:   m.clock.Now().Format(time.RFC3339Nano),
		ActionType:  actionType,
		Description: description,
		Details:     details,
		User:        ActivityUser,
	}
	entries = append([]*Activity{entry}, entries...)
	if len(entries) > MaxActivityEntries {
		entries = entries[:MaxActivityEntries]
	}

	if err := m.store.Write(entries); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}

	m.logger.Debug("activity recorded", "type", actionType)
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything retained.
func (m *ActivityModel) Recent(limit int) ([]*Activity, error) {
	entries, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ByType returns the retained entries with the given action type, newest first.
func (m *ActivityModel) ByType(actionType string) ([]*Activity, error) {
	entries, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	var out []*Activity
	for _, e := range entries {
		if e.ActionType == actionType {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByDateRange returns the retained entries whose timestamp falls within
// [from, to], newest first. Entries with unparseable timestamps are skipped.
func (m *ActivityModel) ByDateRange(from, to time.Time) ([]*Activity, error) {
	entries, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	var out []*Activity
	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}
		if !t.Before(from) && !t.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByTimestamp returns the entry with the exact timestamp, or (nil, nil).
func (m *ActivityModel) ByTimestamp(timestamp string) (*Activity, error) {
	entries, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	for _, e := range entries {
		if e.Timestamp == timestamp {
			return e, nil
		}
	}
	return nil, nil
}

// Delete removes the entry with the exact timestamp.
func (m *ActivityModel) Delete(timestamp string) error {
	entries, err := m.store.Read()
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.Timestamp == timestamp {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("activity %s: %w", timestamp, ErrNotFound)
	}

	if err := m.store.Write(kept); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	return nil
}

// Clear removes every retained entry and returns how many were removed.
func (m *ActivityModel) Clear() (int, error) {
	entries, err := m.store.Read()
	if err != nil {
		return 0, fmt.Errorf("reading activity log: %w", err)
	}
	if err := m.store.Write(nil); err != nil {
		return 0, fmt.Errorf("writing activity log: %w", err)
	}

	m.logger.Info("activity log cleared", "removed", len(entries))
	return len(entries), nil
}

// Export writes the retained entries to path as an indented JSON document.
func (m *ActivityModel) Export(path string) error {
	entries, err := m.store.Read()
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}
	if entries == nil {
		entries = []*Activity{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding activity log: %w", err)
	}
	if err := m.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing activity export: %w", err)
	}

	m.logger.Info("activity log exported", "path", path)
	return nil
}

// Statistics summarizes the retained entries: totals, per-type counts, and
// how many fall on the current day and within the last 7 calendar days.
func (m *ActivityModel) Statistics() (*ActivityStats, error) {
	entries, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	now := m.clock.Now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)

	stats := &ActivityStats{
		Total:  len(entries),
		ByType: make(map[string]int),
	}
	for _, e := range entries {
		stats.ByType[e.ActionType]++
		if strings.HasPrefix(e.Timestamp, today) {
			stats.Today++
		}
		t, err := e.Time()
		if err != nil {
			continue
		}
		if !t.Before(weekAgo) {
			stats.ThisWeek++
		}
	}
	return stats, nil
}
