package platform

// Package platform contains OS integration glue: locating the external
// tool binaries and resolving where the device list lives on disk.
