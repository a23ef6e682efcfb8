package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyMirrorPath     = "mirror_tool_path"
	KeyRecordPath     = "record_path"
	KeyBitRate        = "video_bitrate"
	KeyMaxSize        = "max_size"
	KeyFullscreen     = "fullscreen"
	KeyWireless       = "wireless_mode"
	KeyRecord         = "record_session"
	KeyLastIP         = "last_ip"
	KeyExtraOptions   = "custom_mirror_options"
	KeyScanTimeoutMS  = "scan_timeout_ms"
	KeyDeviceListPath = "device_list_path"
)

// Default values
const (
	DefaultRecordPath    = "microscope_record.mp4"
	DefaultBitRate       = "8M"
	DefaultMaxSize       = "1440"
	DefaultScanTimeoutMS = 500
	MinScanTimeoutMS     = 100
	MaxScanTimeoutMS     = 5000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetMirrorPath returns the configured mirroring tool path, empty when the
// user has not located the executable yet
func (s *Settings) GetMirrorPath() string {
	return s.app.Preferences().String(KeyMirrorPath)
}

// SetMirrorPath sets the mirroring tool path
func (s *Settings) SetMirrorPath(path string) {
	s.app.Preferences().SetString(KeyMirrorPath, path)
}

// GetRecordPath returns the configured recording output path
func (s *Settings) GetRecordPath() string {
	path := s.app.Preferences().String(KeyRecordPath)
	if path == "" {
		s.SetRecordPath(DefaultRecordPath)
		return DefaultRecordPath
	}
	return path
}

// SetRecordPath sets the recording output path
func (s *Settings) SetRecordPath(path string) {
	if path == "" {
		path = DefaultRecordPath
	}
	s.app.Preferences().SetString(KeyRecordPath, path)
}

// GetBitRate returns the configured video bitrate
func (s *Settings) GetBitRate() string {
	rate := s.app.Preferences().String(KeyBitRate)
	if rate == "" {
		s.SetBitRate(DefaultBitRate)
		return DefaultBitRate
	}
	return rate
}

// SetBitRate sets the video bitrate
func (s *Settings) SetBitRate(rate string) {
	s.app.Preferences().SetString(KeyBitRate, rate)
}

// GetMaxSize returns the configured maximum mirror resolution
func (s *Settings) GetMaxSize() string {
	size := s.app.Preferences().String(KeyMaxSize)
	if size == "" {
		s.SetMaxSize(DefaultMaxSize)
		return DefaultMaxSize
	}
	return size
}

// SetMaxSize sets the maximum mirror resolution
func (s *Settings) SetMaxSize(size string) {
	s.app.Preferences().SetString(KeyMaxSize, size)
}

// GetFullscreen returns whether mirror sessions start fullscreen
func (s *Settings) GetFullscreen() bool {
	return s.app.Preferences().Bool(KeyFullscreen)
}

// SetFullscreen sets the fullscreen toggle
func (s *Settings) SetFullscreen(fullscreen bool) {
	s.app.Preferences().SetBool(KeyFullscreen, fullscreen)
}

// GetWireless returns whether wireless mode is enabled
func (s *Settings) GetWireless() bool {
	return s.app.Preferences().Bool(KeyWireless)
}

// SetWireless sets the wireless mode toggle
func (s *Settings) SetWireless(wireless bool) {
	s.app.Preferences().SetBool(KeyWireless, wireless)
}

// GetRecord returns whether sessions are recorded
func (s *Settings) GetRecord() bool {
	return s.app.Preferences().Bool(KeyRecord)
}

// SetRecord sets the recording toggle
func (s *Settings) SetRecord(record bool) {
	s.app.Preferences().SetBool(KeyRecord, record)
}

// GetLastIP returns the last device address the user entered
func (s *Settings) GetLastIP() string {
	return s.app.Preferences().String(KeyLastIP)
}

// SetLastIP sets the last device address
func (s *Settings) SetLastIP(ip string) {
	s.app.Preferences().SetString(KeyLastIP, ip)
}

// GetExtraOptions returns the free-form mirror tool options
func (s *Settings) GetExtraOptions() string {
	return s.app.Preferences().String(KeyExtraOptions)
}

// SetExtraOptions sets the free-form mirror tool options
func (s *Settings) SetExtraOptions(options string) {
	s.app.Preferences().SetString(KeyExtraOptions, options)
}

// GetScanTimeout returns the per-candidate probe timeout
func (s *Settings) GetScanTimeout() time.Duration {
	ms := s.app.Preferences().Int(KeyScanTimeoutMS)
	if ms <= 0 {
		s.SetScanTimeout(DefaultScanTimeoutMS * time.Millisecond)
		return DefaultScanTimeoutMS * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

// SetScanTimeout sets the per-candidate probe timeout, clamped to a sane
// range
func (s *Settings) SetScanTimeout(timeout time.Duration) {
	ms := int(timeout / time.Millisecond)
	if ms < MinScanTimeoutMS {
		ms = MinScanTimeoutMS
	}
	if ms > MaxScanTimeoutMS {
		ms = MaxScanTimeoutMS
	}
	s.app.Preferences().SetInt(KeyScanTimeoutMS, ms)
}

// GetDeviceListPath returns the device list override path, empty for the
// default location
func (s *Settings) GetDeviceListPath() string {
	return s.app.Preferences().String(KeyDeviceListPath)
}

// SetDeviceListPath sets the device list override path
func (s *Settings) SetDeviceListPath(path string) {
	s.app.Preferences().SetString(KeyDeviceListPath, path)
}
