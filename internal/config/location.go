package config

import (
	"os"
	"path/filepath"
)

// Path returns the configuration file path. It first checks the
// LUMEN_CONFIG environment variable, then falls back to the default
// location (~/.lumen/config).
func Path() (string, error) {
	if configPath := os.Getenv("LUMEN_CONFIG"); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".lumen", "config"), nil
}
