// Package di provides dependency injection configuration for the season
// shelf server.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/seasonshelf/seasonshelf-server/internal/config"
	"github.com/seasonshelf/seasonshelf-server/internal/di/providers"
	"github.com/seasonshelf/seasonshelf-server/internal/loader"
	"github.com/seasonshelf/seasonshelf-server/internal/logger"
	"github.com/seasonshelf/seasonshelf-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Artifact loading
	do.Provide(injector, providers.ProvideLoader)

	// Business services
	do.Provide(injector, providers.ProvideSeasonService)

	// Workers
	do.Provide(injector, providers.ProvideWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*loader.Loader](injector)

	seasonService := do.MustInvoke[*service.SeasonService](injector)

	_ = do.MustInvoke[*providers.WatcherHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Report what is already stored so operators can see hydration state.
	summaries, err := seasonService.List(context.Background())
	if err != nil {
		log.Warn("Failed to enumerate stored seasons", "error", err)
		return nil
	}
	log.Info("Stored seasons available", "count", len(summaries))

	return nil
}
