package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// File permissions for the device list
const (
	FilePermissions = 0600
	TempSuffix      = ".tmp"
)

// Registry owns the durable list of known devices. Entries are kept in
// insertion order for stable UI display and deduplicated by address.
type Registry struct {
	path     string
	devices  []model.Device
	mutex    sync.RWMutex
	lastSave time.Time            // used by Watch to ignore our own writes
	onChange func([]model.Device) // callback for UI updates
}

// Load reads the device list from path. A missing, empty, or unparsable
// file never fails the caller: the registry starts empty and a warning is
// logged instead.
func Load(path string) *Registry {
	r := &Registry{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read device list %s: %v, starting empty", path, err)
		}
		return r
	}

	var devices []model.Device
	if err := json.Unmarshal(data, &devices); err != nil {
		log.Printf("Device list %s is malformed: %v, starting empty", path, err)
		return r
	}

	// Drop records without an address and collapse duplicates, keeping the
	// first occurrence position and the last occurrence data
	for _, d := range devices {
		if d.Address == "" {
			continue
		}
		r.upsertLocked(d)
	}

	return r
}

// Path returns the backing file path
func (r *Registry) Path() string {
	return r.path
}

// SetUpdateCallback sets the callback invoked after every mutation
func (r *Registry) SetUpdateCallback(callback func([]model.Device)) {
	r.mutex.Lock()
	r.onChange = callback
	r.mutex.Unlock()
}

// Devices returns a copy of all records in insertion order
func (r *Registry) Devices() []model.Device {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]model.Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Len returns the number of records
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.devices)
}

// Get returns the record with the given address
func (r *Registry) Get(address string) (model.Device, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, d := range r.devices {
		if d.Address == address {
			return d, true
		}
	}
	return model.Device{}, false
}

// Last returns the most recently seen device, used for quick reconnect
func (r *Registry) Last() (model.Device, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var best model.Device
	found := false
	for _, d := range r.devices {
		if !found || d.LastSeen.After(best.LastSeen) {
			best = d
			found = true
		}
	}
	return best, found
}

// Upsert inserts a new record or updates the existing record sharing its
// address, then persists the full list. The updated collection is returned.
func (r *Registry) Upsert(device model.Device) ([]model.Device, error) {
	if device.Address == "" {
		return r.Devices(), fmt.Errorf("device address is empty")
	}
	if device.LastSeen.IsZero() {
		device.LastSeen = time.Now()
	}

	r.mutex.Lock()
	r.upsertLocked(device)
	r.mutex.Unlock()

	if err := r.Save(); err != nil {
		return r.Devices(), err
	}

	r.notifyChange()
	return r.Devices(), nil
}

// upsertLocked applies the insert-or-update without persisting.
// Caller holds the write lock (or owns the registry exclusively during Load).
func (r *Registry) upsertLocked(device model.Device) {
	for i, d := range r.devices {
		if d.Address == device.Address {
			if device.Name == "" {
				device.Name = d.Name
			}
			r.devices[i] = device
			return
		}
	}
	r.devices = append(r.devices, device)
}

// Remove deletes the record with the given address if present, then
// persists. Removing an unknown address is a no-op.
func (r *Registry) Remove(address string) error {
	r.mutex.Lock()
	removed := false
	for i, d := range r.devices {
		if d.Address == address {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			removed = true
			break
		}
	}
	r.mutex.Unlock()

	if !removed {
		return nil
	}

	if err := r.Save(); err != nil {
		return err
	}

	r.notifyChange()
	return nil
}

// Save writes the full collection back to disk. The list is written to a
// temp file and renamed into place so a crash mid-write cannot leave a
// half-written device list behind.
func (r *Registry) Save() error {
	r.mutex.RLock()
	data, err := json.MarshalIndent(r.devices, "", "  ")
	r.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode device list: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Mark the save before touching the file so Watch sees the timestamp
	// no matter how quickly the file events arrive
	r.mutex.Lock()
	r.lastSave = time.Now()
	r.mutex.Unlock()

	tmp := r.path + TempSuffix
	if err := os.WriteFile(tmp, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write device list: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace device list: %w", err)
	}

	return nil
}

// reload replaces the in-memory list with the file contents
func (r *Registry) reload() {
	fresh := Load(r.path)

	r.mutex.Lock()
	r.devices = fresh.devices
	r.mutex.Unlock()

	r.notifyChange()
}

// notifyChange calls the change callback if set
func (r *Registry) notifyChange() {
	r.mutex.RLock()
	callback := r.onChange
	devices := make([]model.Device, len(r.devices))
	copy(devices, r.devices)
	r.mutex.RUnlock()

	if callback != nil {
		callback(devices)
	}
}
