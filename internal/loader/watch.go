package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-notifies when artifact files under the data directory change.
// The data layout is one level deep ({year}/{season}.json), so the watcher
// covers the root and each year subdirectory, adding new year directories
// as they appear.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler func(path string)
	logger  *slog.Logger
	done    chan struct{}
}

// NewWatcher starts watching dataDir. handler is called with the path of
// every created or rewritten .json file; it runs on the watcher goroutine
// and must not block for long.
func NewWatcher(dataDir string, handler func(path string), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(dataDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dataDir, err)
	}

	// Cover existing year subdirectories.
	entries, err := os.ReadDir(dataDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				if err := fsw.Add(filepath.Join(dataDir, entry.Name())); err != nil {
					logger.Warn("failed to watch subdirectory", "dir", entry.Name(), "error", err)
				}
			}
		}
	}

	w := &Watcher{
		fsw:     fsw,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()

	logger.Info("watching data directory for artifact changes", "path", dataDir)
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	// A new year directory: start watching it.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if err := w.fsw.Add(event.Name); err != nil {
			w.logger.Warn("failed to watch new subdirectory", "dir", event.Name, "error", err)
		}
		return
	}

	if strings.EqualFold(filepath.Ext(event.Name), ".json") {
		w.logger.Debug("artifact file changed", "path", event.Name, "op", event.Op.String())
		w.handler(event.Name)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
