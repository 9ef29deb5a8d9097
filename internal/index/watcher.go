package index

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/canvas/internal/storage"
)

// Event kinds reported to an EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventCallback is called after a watcher-driven catalog change.
type EventCallback func(kind string, name string)

// reconcileDelay debounces rename reconciliation.
const reconcileDelay = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the workspace root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful catalog mutation.
//
// Rename events trigger a reconciliation pass that removes stale catalog
// entries whose files no longer exist on disk.
func Watch(ctx context.Context, db DocumentIndex, store storage.Provider, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	notify := func(kind, name string) {
		if cb != nil {
			cb(kind, name)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := storage.NameFromPath(ev.Name)
			if name == "" {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(name)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("name", name), slog.String("error", readErr.Error()))
					continue
				}
				modTime := time.Now()
				if info, statErr := os.Stat(ev.Name); statErr == nil {
					modTime = info.ModTime()
				}
				if idxErr := IndexDocument(db, name, data, modTime); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("name", name), slog.String("error", idxErr.Error()))
					continue
				}
				kind := EventUpdated
				if ev.Op&fsnotify.Create != 0 {
					kind = EventCreated
				}
				logger.Debug("watcher: indexed", slog.String("name", name), slog.String("op", kind))
				notify(kind, name)

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteDocument(name); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("name", name), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("name", name))
				notify(EventDeleted, name)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the old path only; the new path
				// arrives as a separate Create when it stays in the root.
				if delErr := db.DeleteDocument(name); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("name", name), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("name", name))
					notify(EventDeleted, name)
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile removes catalog entries without a file on disk and indexes
// on-disk documents whose checksum differs from the catalog.
func reconcile(db DocumentIndex, store storage.Provider, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := store.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Name] = m.Checksum
	}

	for name := range checksums {
		if _, ok := disk[name]; !ok {
			if delErr := db.DeleteDocument(name); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("name", name))
				if cb != nil {
					cb(EventDeleted, name)
				}
			}
		}
	}

	for _, m := range metas {
		prev, indexed := checksums[m.Name]
		if prev == m.Checksum {
			continue
		}
		data, readErr := store.Read(m.Name)
		if readErr != nil {
			continue
		}
		if idxErr := IndexDocument(db, m.Name, data, m.UpdatedAt); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("name", m.Name))
			if cb != nil {
				kind := EventCreated
				if indexed {
					kind = EventUpdated
				}
				cb(kind, m.Name)
			}
		}
	}
}
