package rem

import (
	"fmt"
	"strings"
)

// Settings is the flat application configuration mapping. Reads through the
// settings model always return a complete mapping: persisted values are
// overlaid on DefaultSettings, so missing keys never surface as absent.
type Settings map[string]any

// Setting keys whose writes create the named directory as a side effect.
const (
	SettingPhotoSavePath   = "photo_save_path"
	SettingBackupDirectory = "backup_directory"
	SettingLastBackupDate  = "last_backup_date"
	SettingCompanyCode     = "company_code"
)

// settingKind classifies a key for validation.
type settingKind int

const (
	kindString settingKind = iota // non-empty string
	kindFreeString                // string, may be empty
	kindInt                       // integral number
	kindBool                      // actual boolean
)

// settingKinds enumerates every recognized setting key. Keys absent from this
// map are unknown: updates reject them and imports silently drop them.
var settingKinds = map[string]settingKind{
	SettingCompanyCode:     kindString,
	SettingPhotoSavePath:   kindString,
	SettingBackupDirectory: kindString,
	"auto_backup_enabled":  kindBool,
	"backup_frequency":     kindString,
	"theme":                kindString,
	"language":             kindString,
	"currency":             kindString,
	"decimal_places":       kindInt,
	"date_format":          kindString,
	"recent_files_limit":   kindInt,
	"auto_save":            kindBool,
	"auto_save_interval":   kindInt,
	"enable_notifications": kindBool,
	"enable_sound":         kindBool,
	"window_maximized":     kindBool,
	"window_width":         kindInt,
	"window_height":        kindInt,
	SettingLastBackupDate:  kindFreeString,
}

// DefaultSettings returns a fresh copy of the hard-coded default mapping.
func DefaultSettings() Settings {
	return Settings{
		SettingCompanyCode:     "DEFAULT",
		SettingPhotoSavePath:   "property_photos",
		SettingBackupDirectory: "backups",
		"auto_backup_enabled":  true,
		"backup_frequency":     "daily",
		"theme":                "light",
		"language":             "en",
		"currency":             "USD",
		"decimal_places":       2,
		"date_format":          "dd/mm/yyyy",
		"recent_files_limit":   10,
		"auto_save":            true,
		"auto_save_interval":   300,
		"enable_notifications": true,
		"enable_sound":         true,
		"window_maximized":     false,
		"window_width":         1200,
		"window_height":        800,
		SettingLastBackupDate:  "",
	}
}

// IsKnownSettingKey reports whether key is part of the default mapping.
func IsKnownSettingKey(key string) bool {
	_, ok := settingKinds[key]
	return ok
}

// ValidateSetting checks that value has the right shape for key.
// Numeric keys must be integral numbers, boolean keys must be actual
// booleans, and string keys must be non-empty (except free-form ones).
func ValidateSetting(key string, value any) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting: %q", key)
	}
	switch kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("setting %q must be a string", key)
		}
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("setting %q cannot be empty", key)
		}
	case kindFreeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("setting %q must be a string", key)
		}
	case kindInt:
		if _, ok := settingInt(value); !ok {
			return fmt.Errorf("setting %q must be an integer", key)
		}
	case kindBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("setting %q must be a boolean", key)
		}
	}
	return nil
}

// settingInt coerces the numeric representations a JSON round-trip can
// produce into an int.
func settingInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// Clone returns a copy of s. Detail values are copied shallowly; settings
// values are scalars so this is a full copy in practice.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String returns the value of key as a string, or the default when the key
// is missing or not a string.
func (s Settings) String(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	if v, ok := DefaultSettings()[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the value of key as an int, or the default when the key is
// missing or not numeric.
func (s Settings) Int(key string) int {
	if v, ok := settingInt(s[key]); ok {
		return v
	}
	if v, ok := settingInt(DefaultSettings()[key]); ok {
		return v
	}
	return 0
}

// Bool returns the value of key as a bool, or the default when the key is
// missing or not a boolean.
func (s Settings) Bool(key string) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	if v, ok := DefaultSettings()[key].(bool); ok {
		return v
	}
	return false
}

// SettingsStore persists the raw settings mapping as a document file.
type SettingsStore interface {
	// Read returns the persisted mapping. A missing or unreadable document
	// yields an empty mapping, not an error: completeness is a read-time
	// contract provided by the model's merge with defaults.
	Read() (map[string]any, error)

	// Write persists the full mapping, replacing the previous document.
	Write(settings map[string]any) error
}
