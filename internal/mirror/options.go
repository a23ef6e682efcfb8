package mirror

import (
	"strings"
)

// scrcpy flag constants
const (
	FlagSerial     = "-s"
	FlagFullscreen = "--fullscreen"
	FlagRecord     = "--record"
	FlagBitRate    = "--video-bit-rate"
	FlagMaxSize    = "--max-size"
	FlagMaxFPS     = "--max-fps"
)

// Options configures one mirror session. Zero values fall back to the
// mirroring tool's own defaults.
type Options struct {
	Serial     string // device to mirror, empty lets the tool pick
	Fullscreen bool
	Record     bool
	RecordPath string
	BitRate    string // e.g. "8M"
	MaxSize    string // e.g. "1440"
	MaxFPS     string // e.g. "30"
	ExtraArgs  string // free-form extra options, filtered
}

// BuildArgs maps the options onto the mirroring tool's command line
func (o Options) BuildArgs() []string {
	var args []string

	if o.Serial != "" {
		args = append(args, FlagSerial, o.Serial)
	}
	if o.Fullscreen {
		args = append(args, FlagFullscreen)
	}
	if o.Record && o.RecordPath != "" {
		args = append(args, FlagRecord, o.RecordPath)
	}
	if o.BitRate != "" {
		args = append(args, FlagBitRate, o.BitRate)
	}
	if o.MaxSize != "" {
		args = append(args, FlagMaxSize, o.MaxSize)
	}
	if o.MaxFPS != "" {
		args = append(args, FlagMaxFPS, o.MaxFPS)
	}

	args = append(args, FilterExtraArgs(o.ExtraArgs)...)
	return args
}

// FilterExtraArgs keeps only tokens that look like tool options: flags,
// bare alphanumerics, or key=value pairs. Anything else is dropped rather
// than passed through.
func FilterExtraArgs(extra string) []string {
	fields := strings.Fields(strings.TrimSpace(extra))
	if len(fields) == 0 {
		return nil
	}

	valid := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.HasPrefix(field, "--") || strings.Contains(field, "=") || isAlphanumeric(field) {
			valid = append(valid, field)
		}
	}
	return valid
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
