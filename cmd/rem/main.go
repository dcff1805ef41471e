package main

import (
	"fmt"
	"os"

	"rem-go/internal/app"
	"rem-go/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a wired App. The caller must defer
// a.Close(). operation identifies the CLI command for log correlation.
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation, &consoleView{})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "rem",
	Short: "Real-estate records manager",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Settings Path: %s\n", cfg.SettingsPath)
		fmt.Printf("Activity Path: %s\n", cfg.ActivityPath)
		fmt.Printf("Reports Dir:   %s\n", cfg.ReportsDir)
		fmt.Printf("Database:      %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		if cfg.Vault.Type != "" {
			fmt.Printf("Vault:         %s\n", cfg.Vault.Type)
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.GetStatus()
		if err != nil {
			return err
		}

		fmt.Printf("Database:   %s\n", st.DatabasePath)
		if !st.StoreReachable {
			fmt.Printf("Store:      unreachable (%s)\n", st.StoreError)
			return nil
		}
		fmt.Println("Store:      reachable")
		if st.SchemaUpToDate {
			fmt.Println("Schema:     up to date")
		} else {
			fmt.Printf("Schema:     %s\n", st.SchemaError)
		}
		fmt.Printf("Owners:     %d\n", st.TotalOwners)
		fmt.Printf("Properties: %d\n", st.TotalProperties)
		if st.LastBackupDate != "" {
			fmt.Printf("Last backup: %s\n", st.LastBackupDate)
		} else {
			fmt.Println("Last backup: never")
		}
		fmt.Printf("Activity entries: %d\n", st.ActivityEntries)
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search owners and properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SearchAll")
		if err != nil {
			return err
		}
		defer a.Close()

		owners, props, err := a.SearchAll(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Owners (%d):\n", len(owners))
		printOwners(owners)
		fmt.Printf("\nProperties (%d):\n", len(props))
		printProperties(props)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(ownerCmd)
	rootCmd.AddCommand(propertyCmd)
	rootCmd.AddCommand(refCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
}
