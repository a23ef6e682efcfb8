package scan

import (
	"fmt"
	"net"
	"strings"
)

// SubnetCandidates returns the 254 usable host addresses of the /24 implied
// by baseAddr, in address order. baseAddr may carry a port, which is
// ignored. An unparsable base falls back to 192.168.1, matching what the
// scan offers when the user has not entered an address yet.
func SubnetCandidates(baseAddr string) []string {
	prefix := subnetPrefix(baseAddr)

	candidates := make([]string, 0, 254)
	for i := 1; i < 255; i++ {
		candidates = append(candidates, fmt.Sprintf("%s.%d", prefix, i))
	}
	return candidates
}

// DefaultSubnetPrefix is used when no base address is available
const DefaultSubnetPrefix = "192.168.1"

// subnetPrefix extracts the first three octets of an IPv4 address
func subnetPrefix(baseAddr string) string {
	host := baseAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return DefaultSubnetPrefix
	}

	octets := strings.Split(ip.To4().String(), ".")
	return strings.Join(octets[:3], ".")
}

// LocalAddress returns the first non-loopback IPv4 address of an active
// interface, or empty when none is found
func LocalAddress() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				return ip.String()
			}
		}
	}

	return ""
}
