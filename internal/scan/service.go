package scan

import (
	"context"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// Default scan configuration
const (
	DefaultConcurrency = 64
	DefaultTimeout     = 500 * time.Millisecond
)

// Config holds scan configuration
type Config struct {
	Concurrency int           // maximum in-flight probes
	Timeout     time.Duration // per-candidate probe timeout
	Port        int           // port to probe, adb's network port by default
}

// Service performs reachability probes against candidate addresses
type Service struct {
	config Config
}

// NewService creates a new scan service, filling in defaults for zero
// config values
func NewService(config Config) *Service {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Port <= 0 {
		config.Port = model.DefaultADBPort
	}
	return &Service{config: config}
}

// Probe attempts a single bounded-time TCP connect against one candidate.
// A refused, unreachable, or timed-out candidate simply reports
// Responded=false; there is no error to return.
func (s *Service) Probe(address string) model.ScanResult {
	target := net.JoinHostPort(address, strconv.Itoa(s.config.Port))
	start := time.Now()

	conn, err := net.DialTimeout("tcp", target, s.config.Timeout)
	if err != nil {
		return model.ScanResult{Address: address}
	}
	conn.Close()

	return model.ScanResult{
		Address:   address,
		Responded: true,
		RTT:       time.Since(start),
	}
}

// Scan probes every candidate with a bounded worker pool and returns the
// candidates that responded, in candidate order. Cancelling ctx abandons
// the remaining candidates; probes already in flight finish on their own
// timeout and the partial results are returned.
func (s *Service) Scan(ctx context.Context, candidates []string) []model.ScanResult {
	type indexed struct {
		index  int
		result model.ScanResult
	}

	var (
		responded []indexed
		mutex     sync.Mutex
		wg        sync.WaitGroup
	)

	semaphore := make(chan struct{}, s.config.Concurrency)

	for i, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, address string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}

			result := s.Probe(address)
			if result.Responded {
				mutex.Lock()
				responded = append(responded, indexed{index: idx, result: result})
				mutex.Unlock()
			}
		}(i, candidate)
	}

	wg.Wait()

	// Candidate order, not completion order, for deterministic output
	sort.Slice(responded, func(a, b int) bool {
		return responded[a].index < responded[b].index
	})

	results := make([]model.ScanResult, 0, len(responded))
	for _, r := range responded {
		results = append(results, r.result)
	}
	return results
}

// ScanSubnet sweeps the /24 implied by baseAddr
func (s *Service) ScanSubnet(ctx context.Context, baseAddr string) []model.ScanResult {
	return s.Scan(ctx, SubnetCandidates(baseAddr))
}
