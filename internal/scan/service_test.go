package scan

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSubnetCandidates(t *testing.T) {
	candidates := SubnetCandidates("192.168.1.77")

	if len(candidates) != 254 {
		t.Fatalf("Expected 254 candidates, got %d", len(candidates))
	}
	if candidates[0] != "192.168.1.1" {
		t.Errorf("Expected first candidate 192.168.1.1, got %s", candidates[0])
	}
	if candidates[253] != "192.168.1.254" {
		t.Errorf("Expected last candidate 192.168.1.254, got %s", candidates[253])
	}
}

func TestSubnetCandidates_StripsPort(t *testing.T) {
	candidates := SubnetCandidates("10.0.0.5:5555")

	if candidates[0] != "10.0.0.1" {
		t.Errorf("Expected first candidate 10.0.0.1, got %s", candidates[0])
	}
}

func TestSubnetCandidates_FallbackOnGarbage(t *testing.T) {
	for _, base := range []string{"", "not-an-ip", "fe80::1"} {
		candidates := SubnetCandidates(base)
		if !strings.HasPrefix(candidates[0], DefaultSubnetPrefix+".") {
			t.Errorf("SubnetCandidates(%q): expected fallback prefix %s, got %s", base, DefaultSubnetPrefix, candidates[0])
		}
	}
}

func TestProbe_NothingListening(t *testing.T) {
	// Reserve a port and close it so nothing is listening there
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	service := NewService(Config{Timeout: time.Second, Port: port})

	start := time.Now()
	result := service.Probe("127.0.0.1")
	elapsed := time.Since(start)

	if result.Responded {
		t.Error("Expected no response from closed port")
	}
	if elapsed > 3*time.Second {
		t.Errorf("Probe took %v, expected bounded time", elapsed)
	}
}

func TestProbe_Listening(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	service := NewService(Config{Timeout: time.Second, Port: port})

	result := service.Probe("127.0.0.1")
	if !result.Responded {
		t.Error("Expected response from listening port")
	}
	if result.Address != "127.0.0.1" {
		t.Errorf("Expected address 127.0.0.1, got %s", result.Address)
	}
}

func TestScan_OnlyListenerFound(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	service := NewService(Config{Timeout: 500 * time.Millisecond, Port: port, Concurrency: 16})

	// 127.0.0.1 is the only candidate with a listener; the others refuse
	candidates := []string{"127.0.0.2", "127.0.0.1", "127.0.0.3"}
	results := service.Scan(context.Background(), candidates)

	if len(results) != 1 {
		t.Fatalf("Expected exactly 1 result, got %d", len(results))
	}
	if results[0].Address != "127.0.0.1" {
		t.Errorf("Expected 127.0.0.1, got %s", results[0].Address)
	}
	if !results[0].Responded {
		t.Error("Expected result to be marked responded")
	}
}

func TestScan_ResultsInCandidateOrder(t *testing.T) {
	var listeners []net.Listener
	var port int
	// Listeners on three loopback addresses sharing one port
	for _, addr := range []string{"127.0.0.1", "127.0.0.2", "127.0.0.3"} {
		l, err := net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
		if err != nil {
			t.Skipf("Loopback alias %s unavailable: %v", addr, err)
		}
		listeners = append(listeners, l)
		port = l.Addr().(*net.TCPAddr).Port
	}
	defer func() {
		for _, l := range listeners {
			l.Close()
		}
	}()

	service := NewService(Config{Timeout: 500 * time.Millisecond, Port: port, Concurrency: 2})

	candidates := []string{"127.0.0.3", "127.0.0.1", "127.0.0.2"}
	results := service.Scan(context.Background(), candidates)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range candidates {
		if results[i].Address != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, results[i].Address)
		}
	}
}

func TestScan_Cancelled(t *testing.T) {
	service := NewService(Config{Timeout: 100 * time.Millisecond, Port: 1, Concurrency: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled scan returns promptly with whatever completed
	start := time.Now()
	results := service.Scan(ctx, SubnetCandidates("192.0.2.1"))
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("Cancelled scan took %v, expected prompt return", elapsed)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results from cancelled scan against TEST-NET, got %d", len(results))
	}
}

func TestNewService_Defaults(t *testing.T) {
	service := NewService(Config{})

	if service.config.Concurrency != DefaultConcurrency {
		t.Errorf("Expected default concurrency %d, got %d", DefaultConcurrency, service.config.Concurrency)
	}
	if service.config.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, service.config.Timeout)
	}
	if service.config.Port != 5555 {
		t.Errorf("Expected default port 5555, got %d", service.config.Port)
	}
}
