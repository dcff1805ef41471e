// Package app wires the application together: it constructs every
// collaborator from config and hands the CLI a ready set of controllers.
package app

import (
	"fmt"
	"os"
	"time"

	"rem-go/internal/activity"
	"rem-go/internal/config"
	"rem-go/internal/database"
	"rem-go/internal/database/migrations"
	"rem-go/internal/encryption"
	"rem-go/internal/fs"
	"rem-go/internal/photo"
	"rem-go/internal/report"
	"rem-go/internal/rem"
	"rem-go/internal/settings"
	"rem-go/internal/vault"
)

// View aggregates every view role the controllers bind to. The CLI passes
// one console view; tests pass a spy or rem.NopView.
type View interface {
	rem.OwnerView
	rem.PropertyView
	rem.SettingsView
	rem.BackupView
}

// App is the application layer between the CLI and the controllers.
// Everything is constructed once here and passed by reference; there are
// no package-level singletons.
type App struct {
	cfg   *config.Config
	store *database.SQLiteStore

	Owners     *rem.OwnerController
	Properties *rem.PropertyController
	Settings   *rem.SettingsController
	Activity   *rem.ActivityController
	Backup     *rem.BackupController
	Reports    *rem.ReportController

	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run, for log correlation. The caller
// must call Close when done.
func NewApp(cfg *config.Config, operation string, view View) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	fail := func(err error) (*App, error) {
		logFile.Close()
		return nil, err
	}

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return fail(fmt.Errorf("creating store: %w", err))
	}
	if err := migrations.Up(store.DB()); err != nil {
		store.Close()
		return fail(fmt.Errorf("migrating database: %w", err))
	}

	osfs := fs.NewOSFilesystem()
	clock := rem.RealClock{}
	ids := rem.UUIDGenerator{}

	settingsModel := rem.NewSettingsModel(settings.NewFileStore(cfg.SettingsPath), osfs, logger)
	activityModel := rem.NewActivityModel(activity.NewFileStore(cfg.ActivityPath), osfs, clock, logger)

	merged, err := settingsModel.Load()
	if err != nil {
		store.Close()
		return fail(fmt.Errorf("loading settings: %w", err))
	}
	photos := photo.NewManager(merged.String(rem.SettingPhotoSavePath), clock, ids)

	encryptor, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		store.Close()
		return fail(fmt.Errorf("creating encryptor: %w", err))
	}
	archiveVault, err := vault.NewVaultFromConfig(cfg.Vault)
	if err != nil {
		store.Close()
		return fail(fmt.Errorf("creating vault: %w", err))
	}

	codegen := rem.NewCodeGenerator(store)
	ownerModel := rem.NewOwnerModel(store, codegen, clock, logger)
	propertyModel := rem.NewPropertyModel(store, codegen, clock, logger)

	return &App{
		cfg:        cfg,
		store:      store,
		Owners:     rem.NewOwnerController(ownerModel, propertyModel, activityModel, view, logger),
		Properties: rem.NewPropertyController(propertyModel, activityModel, photos, settingsModel, view, logger),
		Settings:   rem.NewSettingsController(settingsModel, activityModel, view, logger),
		Activity:   rem.NewActivityController(activityModel, view, logger),
		Backup:     rem.NewBackupController(store, settingsModel, activityModel, osfs, encryptor, archiveVault, clock, logger, view),
		Reports:    rem.NewReportController(propertyModel, ownerModel, activityModel, report.NewExcelWriter(), osfs, clock, logger, view, cfg.ReportsDir),
		logFile:    logFile,
	}, nil
}

// SearchAll matches term against owners (name, phone) and properties
// (code, address, note) in one pass.
func (a *App) SearchAll(term string) ([]*rem.Owner, []*rem.Property, error) {
	owners, err := a.Owners.Search(term)
	if err != nil {
		return nil, nil, err
	}
	props, err := a.Properties.Search(rem.PropertySearch{Term: term})
	if err != nil {
		return nil, nil, err
	}
	return owners, props, nil
}

// Status describes the health of the application's persistent state.
type Status struct {
	DatabasePath    string
	StoreReachable  bool
	StoreError      string
	SchemaUpToDate  bool
	SchemaError     string
	TotalOwners     int
	TotalProperties int
	LastBackupDate  string
	ActivityEntries int
}

// GetStatus collects store reachability, schema state and record counts.
func (a *App) GetStatus() (*Status, error) {
	st := &Status{DatabasePath: a.store.Path()}

	if err := a.store.Ping(); err != nil {
		st.StoreError = err.Error()
		return st, nil
	}
	st.StoreReachable = true

	if err := migrations.Status(a.store.DB()); err != nil {
		st.SchemaError = err.Error()
	} else {
		st.SchemaUpToDate = true
	}

	stats, err := a.Properties.Statistics()
	if err != nil {
		return nil, err
	}
	st.TotalOwners = stats.TotalOwners
	st.TotalProperties = stats.TotalProperties

	merged, err := a.Settings.Load()
	if err != nil {
		return nil, err
	}
	st.LastBackupDate = merged.String(rem.SettingLastBackupDate)

	entries, err := a.Activity.Recent(0)
	if err != nil {
		return nil, err
	}
	st.ActivityEntries = len(entries)

	return st, nil
}

// Close unsubscribes the controllers and releases the store and log file.
func (a *App) Close() error {
	a.Owners.Close()
	a.Properties.Close()
	a.Settings.Close()

	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
