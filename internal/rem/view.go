package rem

// View is the contract every controller-facing view satisfies. Controllers
// invoke these callbacks after operations; views decide how to surface them.
type View interface {
	// ShowSuccess surfaces a confirmation message after a successful write.
	ShowSuccess(message string)

	// ShowError surfaces a failure message.
	ShowError(message string)

	// RefreshData tells the view to reload whatever it is displaying.
	RefreshData()
}

// OwnerView is implemented by views that render owner records.
type OwnerView interface {
	View

	// ShowOwners replaces the displayed owner list.
	ShowOwners(owners []*Owner)
}

// PropertyView is implemented by views that render property records.
type PropertyView interface {
	View

	// ShowProperties replaces the displayed property list.
	ShowProperties(properties []*Property)
}

// SettingsView is implemented by views that render application settings.
type SettingsView interface {
	View

	// ShowSettings replaces the displayed settings.
	ShowSettings(values Settings)
}

// BackupView is implemented by views that render the backup archive list.
type BackupView interface {
	View

	// ShowBackups replaces the displayed backup list.
	ShowBackups(backups []*BackupInfo)
}

// NopView satisfies every view interface and discards all callbacks.
// Used for headless operation and as an embeddable default in tests.
type NopView struct{}

func NewNopView() *NopView { return &NopView{} }

func (*NopView) ShowSuccess(string)         {}
func (*NopView) ShowError(string)           {}
func (*NopView) RefreshData()               {}
func (*NopView) ShowOwners([]*Owner)        {}
func (*NopView) ShowProperties([]*Property) {}
func (*NopView) ShowSettings(Settings)      {}
func (*NopView) ShowBackups([]*BackupInfo)  {}
