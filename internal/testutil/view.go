package testutil

import (
	"sync"

	"rem-go/internal/rem"
)

// SpyView records every view callback so tests can assert on what the
// controllers pushed out. Satisfies all role-specific view interfaces.
type SpyView struct {
	mu         sync.Mutex
	Successes  []string
	Errors     []string
	Refreshes  int
	Owners     [][]*rem.Owner
	Properties [][]*rem.Property
	Settings   []rem.Settings
	Backups    [][]*rem.BackupInfo
}

func NewSpyView() *SpyView {
	return &SpyView{}
}

func (v *SpyView) ShowSuccess(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Successes = append(v.Successes, message)
}

func (v *SpyView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Errors = append(v.Errors, message)
}

func (v *SpyView) RefreshData() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Refreshes++
}

func (v *SpyView) ShowOwners(owners []*rem.Owner) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Owners = append(v.Owners, owners)
}

func (v *SpyView) ShowProperties(properties []*rem.Property) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Properties = append(v.Properties, properties)
}

func (v *SpyView) ShowSettings(values rem.Settings) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Settings = append(v.Settings, values)
}

func (v *SpyView) ShowBackups(backups []*rem.BackupInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Backups = append(v.Backups, backups)
}

// LastOwners returns the most recent owner list pushed to the view.
func (v *SpyView) LastOwners() []*rem.Owner {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.Owners) == 0 {
		return nil
	}
	return v.Owners[len(v.Owners)-1]
}

// LastProperties returns the most recent property list pushed to the view.
func (v *SpyView) LastProperties() []*rem.Property {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.Properties) == 0 {
		return nil
	}
	return v.Properties[len(v.Properties)-1]
}

var (
	_ rem.OwnerView    = (*SpyView)(nil)
	_ rem.PropertyView = (*SpyView)(nil)
	_ rem.SettingsView = (*SpyView)(nil)
	_ rem.BackupView   = (*SpyView)(nil)
)
