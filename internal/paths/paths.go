// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user configuration and data directories
const AppName = "charter-scan"

// ConfigDirEnv overrides the configuration directory on every platform
const ConfigDirEnv = "CHARTER_SCAN_CONFIG_DIR"

// GetConfigDir returns the charter-scan configuration directory.
// On Linux: ~/.config/charter-scan
// On macOS: ~/Library/Application Support/charter-scan
// On Windows: %APPDATA%\charter-scan
func GetConfigDir() string {
	// Check for explicit override first (works on all platforms)
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetTaxonomyFile returns the default location of a user taxonomy override
func GetTaxonomyFile() string {
	return filepath.Join(GetConfigDir(), "taxonomy.yaml")
}

// GetDataDir returns the directory for persistent run data such as the
// SQLite history database.
// On Linux: ~/.local/share/charter-scan
func GetDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ResolvePath resolves a path to its absolute form
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(filepath.Clean(path))
}

// ResolveAgainst joins a relative path onto base; absolute paths and empty
// paths are returned unchanged
func ResolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	for _, char := range path {
		if char == 0 {
			return &PathValidationError{
				Path:   path,
				Reason: "contains null byte",
			}
		}
	}

	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
