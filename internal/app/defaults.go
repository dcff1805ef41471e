package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns default application paths, checking environment
// variables first.
// Environment variables:
//   - REM_CONFIG_PATH: config file location (default: ~/.config/rem.toml)
//   - REM_HOME: base directory for rem data (default: ~/.local/share/rem)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("REM_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "rem.toml"), nil
}

func getBaseDir() (string, error) {
	if path := os.Getenv("REM_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "rem"), nil
}
