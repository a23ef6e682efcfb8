package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// AppDirName is the per-user configuration directory name
const AppDirName = "cyberninja-adb"

// DeviceListFile is the registry file name
const DeviceListFile = "devices.json"

// LocateTool resolves the path of an external tool. A configured path wins
// when it points at an existing file; otherwise the tool name is looked up
// on PATH.
func LocateTool(name, configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return path, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// ConfigDir returns the per-user configuration directory for the app
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// DeviceListPath resolves where the device list lives. A devices.json in
// the working directory is honored for compatibility with older setups;
// otherwise the per-user config directory is used.
func DeviceListPath() string {
	if _, err := os.Stat(DeviceListFile); err == nil {
		return DeviceListFile
	}

	dir, err := ConfigDir()
	if err != nil {
		return DeviceListFile
	}
	return filepath.Join(dir, DeviceListFile)
}
