package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetNetpulseDir returns the base data directory for netpulse.
func GetNetpulseDir() string {
	return filepath.Join(xdg.DataHome, "netpulse")
}

// GetLogsDir returns the directory for log files.
func GetLogsDir() string {
	return filepath.Join(GetNetpulseDir(), "logs")
}

// GetStoreDir returns the directory holding the sample database and its lock
// file.
func GetStoreDir() string {
	return filepath.Join(GetNetpulseDir(), "store")
}

// GetConfigPath returns the path of the YAML config file.
func GetConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "netpulse", "config.yml")
}

// EnsureDirs creates all netpulse directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		GetNetpulseDir(),
		GetLogsDir(),
		GetStoreDir(),
		filepath.Dir(GetConfigPath()),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
