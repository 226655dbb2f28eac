package providers

import (
	"github.com/samber/do/v2"

	"github.com/seasonshelf/seasonshelf-server/internal/config"
	"github.com/seasonshelf/seasonshelf-server/internal/logger"
	"github.com/seasonshelf/seasonshelf-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the artifact store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Store.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Artifact store initialized", "path", cfg.Store.Path)

	return &StoreHandle{Store: db}, nil
}
