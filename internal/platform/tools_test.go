package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocateTool_ConfiguredPathWins(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, "scrcpy")
	if err := os.WriteFile(configured, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake tool: %v", err)
	}

	path, err := LocateTool("definitely-not-on-path-xyz", configured)
	if err != nil {
		t.Fatalf("LocateTool failed: %v", err)
	}
	if path != configured {
		t.Errorf("Expected configured path %s, got %s", configured, path)
	}
}

func TestLocateTool_FallsBackToPATH(t *testing.T) {
	// "sh" exists on every supported platform's PATH except Windows
	path, err := LocateTool("sh", filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Skipf("sh not on PATH: %v", err)
	}
	if path == "" {
		t.Error("Expected a resolved path")
	}
}

func TestLocateTool_NotFound(t *testing.T) {
	_, err := LocateTool("definitely-not-on-path-xyz", "")
	if err == nil {
		t.Error("Expected error for missing tool")
	}
	if !strings.Contains(err.Error(), "not found on PATH") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Directory not created: %v", err)
	}

	// Second call is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}

func TestDeviceListPath(t *testing.T) {
	path := DeviceListPath()
	if path == "" {
		t.Fatal("Expected a non-empty device list path")
	}
	if filepath.Base(path) != DeviceListFile {
		t.Errorf("Expected path ending in %s, got %s", DeviceListFile, path)
	}
}
