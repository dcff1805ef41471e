package rem

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SettingsModel presents a total configuration view: every recognized key
// always has a value, merged from defaults and the persisted overrides.
// Writes persist the full merged mapping so the file is self-describing.
type SettingsModel struct {
	notifier
	store  SettingsStore
	fs     Filesystem
	logger Logger
}

// NewSettingsModel creates a SettingsModel with the provided dependencies.
func NewSettingsModel(store SettingsStore, fs Filesystem, logger Logger) *SettingsModel {
	return &SettingsModel{
		store:  store,
		fs:     fs,
		logger: logger,
	}
}

// Load returns the merged settings: defaults overlaid with whatever is
// persisted. A missing or corrupt settings file degrades to the defaults.
func (m *SettingsModel) Load() (Settings, error) {
	persisted, err := m.store.Read()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	merged := DefaultSettings()
	for k, v := range persisted {
		if IsKnownSettingKey(k) {
			merged[k] = v
		}
	}
	return merged, nil
}

// Get returns the current value of one recognized setting key.
func (m *SettingsModel) Get(key string) (any, error) {
	if !IsKnownSettingKey(key) {
		return nil, fmt.Errorf("unknown setting key: %s", key)
	}
	merged, err := m.Load()
	if err != nil {
		return nil, err
	}
	return merged[key], nil
}

// Update validates and applies one setting, then persists the full merged
// mapping. Writing a directory-valued key provisions the directory as part
// of the update, so callers never need a separate setup step.
func (m *SettingsModel) Update(key string, value any) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}

	merged, err := m.Load()
	if err != nil {
		return err
	}
	merged[key] = value

	if err := m.ensureSettingDirs(key, merged); err != nil {
		return err
	}
	if err := m.store.Write(merged); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	m.logger.Info("setting updated", "key", key)
	m.notify(Event{Kind: EventSettingsUpdated, Key: key})
	return nil
}

// UpdateMany validates every pair before applying any, then persists the
// full merged mapping in a single write. Either all pairs apply or none.
func (m *SettingsModel) UpdateMany(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	for key, value := range values {
		if err := ValidateSetting(key, value); err != nil {
			return err
		}
	}

	merged, err := m.Load()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for key, value := range values {
		merged[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := m.ensureSettingDirs(key, merged); err != nil {
			return err
		}
	}
	if err := m.store.Write(merged); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	m.logger.Info("settings updated", "keys", keys)
	m.notify(Event{Kind: EventSettingsUpdated})
	return nil
}

// Reset restores the default mapping exactly, discarding all overrides.
func (m *SettingsModel) Reset() error {
	if err := m.store.Write(DefaultSettings()); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	m.logger.Info("settings reset to defaults")
	m.notify(Event{Kind: EventSettingsReset})
	return nil
}

// Export writes the merged settings to path as an indented JSON document.
func (m *SettingsModel) Export(path string) error {
	merged, err := m.Load()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := m.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing settings export: %w", err)
	}

	m.logger.Info("settings exported", "path", path)
	return nil
}

// Import applies settings from a JSON document at path. Keys absent from
// the default mapping are silently dropped; the remaining pairs are
// validated and applied together.
func (m *SettingsModel) Import(path string) error {
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings import: %w", err)
	}
	var incoming map[string]any
	if err := json.Unmarshal(data, &incoming); err != nil {
		return fmt.Errorf("decoding settings import: %w", err)
	}

	accepted := make(map[string]any, len(incoming))
	for k, v := range incoming {
		if IsKnownSettingKey(k) {
			accepted[k] = v
		}
	}
	if err := m.UpdateMany(accepted); err != nil {
		return err
	}

	m.logger.Info("settings imported", "path", path, "accepted", len(accepted), "dropped", len(incoming)-len(accepted))
	return nil
}

// ensureSettingDirs provisions the directory named by a path-valued key.
func (m *SettingsModel) ensureSettingDirs(key string, merged Settings) error {
	if key != SettingPhotoSavePath && key != SettingBackupDirectory {
		return nil
	}
	dir := merged.String(key)
	if dir == "" {
		return nil
	}
	if err := m.fs.EnsureDir(dir); err != nil {
		return fmt.Errorf("creating %s directory: %w", key, err)
	}
	return nil
}
