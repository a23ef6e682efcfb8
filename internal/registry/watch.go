package registry

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SelfWriteWindow is how long after our own save file events are ignored,
// so the rename performed by Save does not trigger a reload.
const SelfWriteWindow = 500 * time.Millisecond

// Watch reloads the registry when the backing file is modified outside the
// application, e.g. by a hand-edit of devices.json. It returns a stop
// function. Watching is best-effort: if the watcher cannot be created the
// registry simply never auto-reloads.
func (r *Registry) Watch() (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and our own Save replace
	// the file by rename, which would invalidate a file-level watch.
	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	base := filepath.Base(r.path)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				r.mutex.RLock()
				recent := time.Since(r.lastSave) < SelfWriteWindow
				r.mutex.RUnlock()
				if recent {
					continue
				}

				log.Printf("Device list %s changed on disk, reloading", r.path)
				r.reload()
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Device list watch error: %v", watchErr)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
