package adb

import (
	"strings"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// DeviceStateReady is the state column value for a usable device. Entries
// in "offline" or "unauthorized" state are skipped.
const DeviceStateReady = "device"

// ParseDevices parses the output of the bridge tool's device listing.
// Each usable device occupies one line of the form "<serial>\tdevice";
// a serial containing ':' is a network connection.
func ParseDevices(output string) []model.SerialEntry {
	var entries []model.SerialEntry

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[1] != DeviceStateReady {
			continue
		}

		mode := model.ModeUSB
		if strings.Contains(fields[0], ":") {
			mode = model.ModeWireless
		}
		entries = append(entries, model.SerialEntry{Serial: fields[0], Mode: mode})
	}

	return entries
}
