package adb

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// Command and timing constants
const (
	DefaultBinary  = "adb"
	DefaultTimeout = 5 * time.Second

	// ConnectAttempts is how often a wireless connect is retried after
	// switching a device to tcpip mode
	ConnectAttempts = 3
	ConnectBackoff  = time.Second

	// ConnectedMarker appears in adb's output on success, including the
	// "already connected" case
	ConnectedMarker = "connected"
	FailureMarker   = "failed to connect"
)

// Result carries the outcome of one bridge tool invocation
type Result struct {
	Args   []string // full argument vector, binary excluded
	Output string   // combined stdout and stderr
	Ok     bool
}

// Service invokes the external bridge tool
type Service struct {
	binary  string
	timeout time.Duration
	filter  *CommandFilter
}

// NewService creates a bridge service around the given binary path. An
// empty path falls back to looking up "adb" on PATH at invocation time.
func NewService(binary string) *Service {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Service{
		binary:  binary,
		timeout: DefaultTimeout,
		filter:  NewCommandFilter(),
	}
}

// SetTimeout sets the per-invocation timeout for short operations
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Filter exposes the safety filter applied to custom commands
func (s *Service) Filter() *CommandFilter {
	return s.filter
}

// run executes the bridge tool with the given arguments, bounded by the
// service timeout
func (s *Service) run(ctx context.Context, args ...string) Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.binary, args...)
	out, err := cmd.CombinedOutput()

	result := Result{
		Args:   args,
		Output: strings.TrimSpace(string(out)),
		Ok:     err == nil,
	}
	if err != nil && result.Output == "" {
		// Binary missing or not executable: surface the launch error as
		// the diagnostic text
		result.Output = err.Error()
	}
	return result
}

// Connect invokes the bridge tool's network connect against the given
// address, appending the default port when absent. Success is detected by
// the connected marker in the tool's output, not just exit status: adb
// exits zero even when the connect is refused.
func (s *Service) Connect(ctx context.Context, address string) Result {
	device := model.Device{Address: address}
	result := s.run(ctx, "connect", device.DialAddress())

	lower := strings.ToLower(result.Output)
	result.Ok = strings.Contains(lower, ConnectedMarker) && !strings.Contains(lower, FailureMarker)

	return result
}

// TCPIPMode switches the device with the given serial into network mode
// on the given port
func (s *Service) TCPIPMode(ctx context.Context, serial string, port int) Result {
	return s.run(ctx, "-s", serial, "tcpip", strconv.Itoa(port))
}

// Devices lists currently attached devices
func (s *Service) Devices(ctx context.Context) ([]model.SerialEntry, error) {
	result := s.run(ctx, "devices")
	if !result.Ok {
		return nil, fmt.Errorf("failed to list devices: %s", result.Output)
	}
	return ParseDevices(result.Output), nil
}

// Reconnect re-establishes a wireless connection to address: if a USB
// device is attached it is switched to tcpip mode first, then connect is
// attempted a few times with backoff.
func (s *Service) Reconnect(ctx context.Context, address string) Result {
	entries, err := s.Devices(ctx)
	if err != nil {
		log.Printf("Device listing before reconnect failed: %v", err)
	}

	for _, entry := range entries {
		if entry.Mode != model.ModeUSB {
			continue
		}
		log.Printf("Switching %s to tcpip mode", entry.Serial)
		if result := s.TCPIPMode(ctx, entry.Serial, model.DefaultADBPort); !result.Ok {
			log.Printf("tcpip mode switch failed: %s", result.Output)
		}
		break
	}

	var last Result
	for attempt := 0; attempt < ConnectAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(ConnectBackoff):
			case <-ctx.Done():
				last.Output = ctx.Err().Error()
				return last
			}
		}

		last = s.Connect(ctx, address)
		if last.Ok {
			return last
		}
		log.Printf("Connect attempt %d failed: %s", attempt+1, last.Output)
	}

	return last
}

// RunCommand executes a user-supplied bridge tool command line against the
// given serial (optional) after evaluating the safety filter. A rejected
// command returns the refusal without launching anything.
func (s *Service) RunCommand(ctx context.Context, serial, argsText string) (Result, error) {
	decision, args, err := s.filter.Evaluate(argsText)
	if err != nil {
		return Result{}, err
	}
	if !decision.Allowed {
		return Result{}, fmt.Errorf("%w: %s", ErrCommandBlocked, decision.Reason)
	}

	full := args
	if serial != "" {
		full = append([]string{"-s", serial}, args...)
	}
	return s.run(ctx, full...), nil
}
