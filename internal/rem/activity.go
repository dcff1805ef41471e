package rem

import "time"

// Activity action types. The strings double as the on-disk representation,
// so they must stay stable.
const (
	ActionOwnerCreated    = "owner_created"
	ActionOwnerUpdated    = "owner_updated"
	ActionOwnerDeleted    = "owner_deleted"
	ActionPropertyCreated = "property_created"
	ActionPropertyUpdated = "property_updated"
	ActionPropertyDeleted = "property_deleted"
	ActionPhotosAdded     = "photos_added"
	ActionPhotoRemoved    = "photo_removed"
	ActionDataExport      = "data_export"
	ActionDataImport      = "data_import"
	ActionBackupCreated   = "backup_created"
	ActionBackupRestored  = "backup_restored"
	ActionBackupCleanup   = "backup_cleanup"
	ActionSettingsUpdated = "settings_updated"
	ActionSettingsReset   = "settings_reset"
	ActionReportCreated   = "report_created"
)

// MaxActivityEntries caps the retained activity log. Older entries are
// silently dropped when the cap is exceeded; there is no archival.
const MaxActivityEntries = 100

// ActivityUser is recorded as the actor on every entry. The system is
// single-user, so this is currently a constant.
const ActivityUser = "System"

// Activity is one entry of the activity log. The ISO-8601 timestamp doubles
// as the entry's de-facto unique key.
type Activity struct {
	Timestamp   string         `json:"timestamp"`
	ActionType  string         `json:"action_type"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
	User        string         `json:"user"`
}

// Time parses the entry's timestamp.
func (a *Activity) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, a.Timestamp)
}

// ActivityStats summarizes the retained activity log.
type ActivityStats struct {
	Total    int
	ByType   map[string]int
	Today    int
	ThisWeek int
}

// ActivityStore persists the ordered activity list as a document file.
type ActivityStore interface {
	// Read returns all persisted entries, newest first. A missing or
	// unreadable document yields an empty list, not an error.
	Read() ([]*Activity, error)

	// Write persists the full list, replacing the previous document.
	Write(entries []*Activity) error
}
