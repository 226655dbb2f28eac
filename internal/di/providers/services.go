package providers

import (
	"github.com/samber/do/v2"

	"github.com/seasonshelf/seasonshelf-server/internal/config"
	"github.com/seasonshelf/seasonshelf-server/internal/loader"
	"github.com/seasonshelf/seasonshelf-server/internal/logger"
	"github.com/seasonshelf/seasonshelf-server/internal/service"
)

// ProvideLoader provides the artifact loader.
func ProvideLoader(i do.Injector) (*loader.Loader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return loader.New(cfg.Fetch.Timeout, cfg.Fetch.RPS, cfg.Fetch.Burst, log.Logger), nil
}

// ProvideSeasonService provides the season service.
func ProvideSeasonService(i do.Injector) (*service.SeasonService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	ld := do.MustInvoke[*loader.Loader](i)

	return service.NewSeasonService(storeHandle.Store, ld, cfg.Seasons.DataPath, cfg.Seasons.IndexURL, log.Logger), nil
}
