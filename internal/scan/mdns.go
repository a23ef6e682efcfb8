package scan

import (
	"context"
	"log"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// mDNS service types announced by adbd in network mode. Older devices
// announce the plain service, Android 11+ the TLS connect variant.
var MDNSServices = []string{
	"_adb._tcp",
	"_adb-tls-connect._tcp",
}

const (
	MDNSDomain  = "local."
	MDNSTimeout = 3 * time.Second
)

// BrowseMDNS looks up devices announcing adb over mDNS and reports them in
// the same shape as sweep results. Lookup failures are logged and yield an
// empty list; mDNS is an optional shortcut next to the TCP sweep.
func BrowseMDNS(ctx context.Context) []model.ScanResult {
	var results []model.ScanResult
	seen := make(map[string]bool)

	for _, service := range MDNSServices {
		for _, addr := range browseService(ctx, service) {
			if seen[addr] {
				continue
			}
			seen[addr] = true
			results = append(results, model.ScanResult{
				Address:   addr,
				Responded: true,
			})
		}
	}

	return results
}

// browseService collects the IPv4 addresses announced for one service type
func browseService(ctx context.Context, service string) []string {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		log.Printf("mDNS resolver unavailable: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, MDNSTimeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan []string, 1)

	go func() {
		var addrs []string
		for entry := range entries {
			for _, ip := range entry.AddrIPv4 {
				addrs = append(addrs, ip.String())
			}
		}
		done <- addrs
	}()

	if err := resolver.Browse(ctx, service, MDNSDomain, entries); err != nil {
		log.Printf("mDNS browse of %s failed: %v", service, err)
		// The resolver's receive loop is already running and owns the
		// entries channel, closing it on context cancellation. Cancel
		// and wait for the collector, bounded in case the loop never
		// came up.
		cancel()
		select {
		case addrs := <-done:
			return addrs
		case <-time.After(MDNSTimeout):
			return nil
		}
	}

	// Browse closes the entries channel once the context expires
	<-ctx.Done()
	return <-done
}
