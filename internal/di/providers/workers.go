package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/seasonshelf/seasonshelf-server/internal/config"
	"github.com/seasonshelf/seasonshelf-server/internal/loader"
	"github.com/seasonshelf/seasonshelf-server/internal/logger"
	"github.com/seasonshelf/seasonshelf-server/internal/service"
)

// WatcherHandle wraps the data directory watcher with Shutdownable.
// Watcher is nil when watching is disabled or the data directory is absent.
type WatcherHandle struct {
	*loader.Watcher
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	return h.Close()
}

// ProvideWatcher provides the data directory watcher, wired to re-hydrate
// seasons when artifact files change.
func ProvideWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	seasonService := do.MustInvoke[*service.SeasonService](i)

	if !cfg.Seasons.Watch {
		log.Info("Data directory watching disabled by configuration")
		return &WatcherHandle{}, nil
	}

	if _, err := os.Stat(cfg.Seasons.DataPath); err != nil {
		// Missing data directory is fine: the store and remote root still serve.
		log.Info("Data directory not present, watcher disabled", "path", cfg.Seasons.DataPath)
		return &WatcherHandle{}, nil
	}

	w, err := loader.NewWatcher(cfg.Seasons.DataPath, seasonService.Reload, log.Logger)
	if err != nil {
		return nil, err
	}

	return &WatcherHandle{Watcher: w}, nil
}
