package scan

// Package scan implements device discovery on the local network: a bounded
// concurrent TCP sweep of the /24 around the host's own address, and an
// mDNS lookup for devices that announce adb over the network. Individual
// probe failures are exclusions, never scan errors.
