package adb

import (
	"testing"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

func TestParseDevices(t *testing.T) {
	output := "List of devices attached\n" +
		"R58M123ABC\tdevice\n" +
		"192.168.1.50:5555\tdevice\n" +
		"emulator-5554\toffline\n" +
		"R58M456DEF\tunauthorized\n"

	entries := ParseDevices(output)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 usable devices, got %d", len(entries))
	}

	if entries[0].Serial != "R58M123ABC" {
		t.Errorf("Expected serial R58M123ABC, got %s", entries[0].Serial)
	}
	if entries[0].Mode != model.ModeUSB {
		t.Errorf("Expected usb mode, got %s", entries[0].Mode)
	}

	if entries[1].Serial != "192.168.1.50:5555" {
		t.Errorf("Expected serial 192.168.1.50:5555, got %s", entries[1].Serial)
	}
	if entries[1].Mode != model.ModeWireless {
		t.Errorf("Expected wireless mode, got %s", entries[1].Mode)
	}
}

func TestParseDevices_Empty(t *testing.T) {
	for _, output := range []string{"", "List of devices attached\n"} {
		entries := ParseDevices(output)
		if len(entries) != 0 {
			t.Errorf("ParseDevices(%q): expected no entries, got %d", output, len(entries))
		}
	}
}

func TestParseDevices_WindowsLineEndings(t *testing.T) {
	output := "List of devices attached\r\nR58M123ABC\tdevice\r\n"

	entries := ParseDevices(output)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 device, got %d", len(entries))
	}
	if entries[0].Serial != "R58M123ABC" {
		t.Errorf("Expected serial R58M123ABC, got %s", entries[0].Serial)
	}
}
