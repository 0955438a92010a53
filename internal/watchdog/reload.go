package watchdog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

// Reloader watches the allow-list file for changes and swaps the shared
// list's membership under its guard.
type Reloader struct {
	watcher *fsnotify.Watcher
	list    *allowlist.AllowList
	path    string
	sink    telemetry.Sink
}

// NewReloader creates a file watcher for the allow-list path.
func NewReloader(list *allowlist.AllowList, path string, sink telemetry.Sink) (*Reloader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("allow-list %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}

	return &Reloader{
		watcher: watcher,
		list:    list,
		path:    path,
		sink:    sink,
	}, nil
}

// Run watches for file changes and reloads membership. Blocks until ctx is
// cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait 500ms after last write before reloading
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.sink.Emit(fmt.Sprintf("reloader: watch error: %v", err))
		}
	}
}

// reload re-reads the allow-list file and swaps membership. Failures keep
// the previous membership; a contended guard is retried on the next write.
func (r *Reloader) reload() {
	ids, err := allowlist.LoadIDs(r.path)
	if err != nil {
		r.sink.Emit(fmt.Sprintf("reloader: reload failed: %v", err))
		return
	}
	if !r.list.Replace(ids) {
		r.sink.Emit("reloader: allow-list busy, reload skipped")
		return
	}
	r.sink.Emit(fmt.Sprintf("reloader: allow-list reloaded, %d networks", len(ids)))
}
