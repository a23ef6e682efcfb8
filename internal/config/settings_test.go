package config

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestMirrorPath(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// No default: the user must locate the tool
	if path := settings.GetMirrorPath(); path != "" {
		t.Errorf("Expected empty mirror path by default, got '%s'", path)
	}

	settings.SetMirrorPath("/usr/local/bin/scrcpy")
	if path := settings.GetMirrorPath(); path != "/usr/local/bin/scrcpy" {
		t.Errorf("Expected mirror path '/usr/local/bin/scrcpy', got '%s'", path)
	}
}

func TestRecordPath(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if path := settings.GetRecordPath(); path != DefaultRecordPath {
		t.Errorf("Expected default record path %s, got %s", DefaultRecordPath, path)
	}

	// Test setting custom value
	settings.SetRecordPath("capture.mp4")
	if path := settings.GetRecordPath(); path != "capture.mp4" {
		t.Errorf("Expected record path 'capture.mp4', got '%s'", path)
	}

	// Test empty path defaults back
	settings.SetRecordPath("")
	if path := settings.GetRecordPath(); path != DefaultRecordPath {
		t.Errorf("Empty record path should default to %s, got %s", DefaultRecordPath, path)
	}
}

func TestBitRateAndMaxSize(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if rate := settings.GetBitRate(); rate != DefaultBitRate {
		t.Errorf("Expected default bitrate %s, got %s", DefaultBitRate, rate)
	}
	if size := settings.GetMaxSize(); size != DefaultMaxSize {
		t.Errorf("Expected default max size %s, got %s", DefaultMaxSize, size)
	}

	settings.SetBitRate("2M")
	settings.SetMaxSize("1024")

	if rate := settings.GetBitRate(); rate != "2M" {
		t.Errorf("Expected bitrate '2M', got '%s'", rate)
	}
	if size := settings.GetMaxSize(); size != "1024" {
		t.Errorf("Expected max size '1024', got '%s'", size)
	}
}

func TestToggles(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFullscreen() || settings.GetWireless() || settings.GetRecord() {
		t.Error("Expected all toggles off by default")
	}

	settings.SetFullscreen(true)
	settings.SetWireless(true)
	settings.SetRecord(true)

	if !settings.GetFullscreen() {
		t.Error("Expected fullscreen to be enabled")
	}
	if !settings.GetWireless() {
		t.Error("Expected wireless mode to be enabled")
	}
	if !settings.GetRecord() {
		t.Error("Expected recording to be enabled")
	}
}

func TestLastIPAndExtraOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetLastIP("192.168.1.50")
	if ip := settings.GetLastIP(); ip != "192.168.1.50" {
		t.Errorf("Expected last IP '192.168.1.50', got '%s'", ip)
	}

	settings.SetExtraOptions("--max-fps=30")
	if opts := settings.GetExtraOptions(); opts != "--max-fps=30" {
		t.Errorf("Expected extra options '--max-fps=30', got '%s'", opts)
	}
}

func TestScanTimeout(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if timeout := settings.GetScanTimeout(); timeout != DefaultScanTimeoutMS*time.Millisecond {
		t.Errorf("Expected default scan timeout, got %v", timeout)
	}

	settings.SetScanTimeout(time.Second)
	if timeout := settings.GetScanTimeout(); timeout != time.Second {
		t.Errorf("Expected scan timeout 1s, got %v", timeout)
	}

	// Test boundary values
	settings.SetScanTimeout(time.Millisecond) // Should be clamped up
	if timeout := settings.GetScanTimeout(); timeout != MinScanTimeoutMS*time.Millisecond {
		t.Errorf("Scan timeout should be clamped to minimum, got %v", timeout)
	}

	settings.SetScanTimeout(time.Minute) // Should be clamped down
	if timeout := settings.GetScanTimeout(); timeout != MaxScanTimeoutMS*time.Millisecond {
		t.Errorf("Scan timeout should be clamped to maximum, got %v", timeout)
	}
}
