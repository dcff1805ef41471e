package main

import (
	"fmt"
	"sort"
	"strconv"

	"rem-go/internal/rem"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings, defaults filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsList")
		if err != nil {
			return err
		}
		defer a.Close()

		merged, err := a.Settings.Load()
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-22s = %v\n", k, merged[k])
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsGet")
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Settings.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := coerceSetting(args[0], args[1])
		if err != nil {
			return err
		}

		a, err := newApp("SettingsSet")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Settings.Update(args[0], value)
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore all settings to their defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsReset")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Settings.Reset()
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export PATH",
	Short: "Write the merged settings to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsExport")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Settings.Export(args[0])
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Load settings from a JSON file, dropping unknown keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsImport")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Settings.Import(args[0])
	},
}

// coerceSetting converts a command-line string into the type the key
// expects, going by the default value's type. Unknown keys pass through
// as strings and are rejected by validation with a proper message.
func coerceSetting(key, raw string) (any, error) {
	switch rem.DefaultSettings()[key].(type) {
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("setting %q expects a boolean, got %q", key, raw)
		}
		return v, nil
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("setting %q expects an integer, got %q", key, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsExportCmd)
	settingsCmd.AddCommand(settingsImportCmd)
}
