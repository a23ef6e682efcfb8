package model

import (
	"strconv"
	"strings"
	"time"
)

// DefaultADBPort is the TCP port adbd listens on in network mode.
const DefaultADBPort = 5555

// ConnectionMode describes how a device is attached to the host
type ConnectionMode string

const (
	ModeUSB      ConnectionMode = "usb"
	ModeWireless ConnectionMode = "wireless"
)

// Device represents a single known device
type Device struct {
	Name     string    `json:"name"`
	Address  string    `json:"address"`             // host or host:port
	LastSeen time.Time `json:"last_seen,omitempty"` // zero when never probed
}

// Host returns the address without a port suffix
func (d Device) Host() string {
	if idx := strings.LastIndex(d.Address, ":"); idx != -1 {
		return d.Address[:idx]
	}
	return d.Address
}

// DialAddress returns the address with the default adb port appended when
// no port is present
func (d Device) DialAddress() string {
	if strings.Contains(d.Address, ":") {
		return d.Address
	}
	return d.Address + ":" + strconv.Itoa(DefaultADBPort)
}

// DisplayName returns the user-facing label, falling back to the address
func (d Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Address
}

// SerialEntry represents one line of `adb devices` output
type SerialEntry struct {
	Serial string
	Mode   ConnectionMode
}

// ScanResult represents the outcome of a single reachability probe.
// Results are transient: produced by one scan pass and discarded after
// the caller has consumed them.
type ScanResult struct {
	Address   string
	Responded bool
	RTT       time.Duration
}
