package monitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of session-file writes into one refresh.
const watchDebounce = 500 * time.Millisecond

// WatchStore watches the session store root and wakes the loop when record
// files change, so the saved list refreshes ahead of the next poll. Blocks
// until ctx is cancelled. A missing or unwatchable root is not an error:
// polling still covers it.
func (l *Loop) WatchStore(ctx context.Context, root string) error {
	if root == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the root and each project subdirectory; fsnotify is not
	// recursive. Project dirs created later are picked up on their
	// create event at the root.
	if err := watcher.Add(root); err != nil {
		<-ctx.Done()
		return nil
	}
	if entries, err := os.ReadDir(root); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				watcher.Add(filepath.Join(root, e.Name()))
			}
		}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
				}
			}
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_ = err // watcher errors are non-fatal; polling remains the backstop

		case <-pending:
			pending = nil
			l.Wake()
		}
	}
}
