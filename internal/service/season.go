// Package service provides the business logic layer orchestrating artifact
// loading, storage, and shelf queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
	domainerrors "github.com/seasonshelf/seasonshelf-server/internal/errors"
	"github.com/seasonshelf/seasonshelf-server/internal/loader"
	"github.com/seasonshelf/seasonshelf-server/internal/shelf"
	"github.com/seasonshelf/seasonshelf-server/internal/store"
)

// SeasonService orchestrates season artifact lifecycle: ingest, load
// (store-first with file and remote fallbacks), cached index hydration,
// and shelf queries.
type SeasonService struct {
	store     *store.Store
	loader    *loader.Loader
	validator *artifact.Validator
	logger    *slog.Logger

	dataPath string
	indexURL string

	mu    sync.RWMutex
	cache map[string]*hydratedSeason
}

// hydratedSeason pairs an artifact with the index built from it. The index
// is rebuilt wholesale whenever the artifact changes and is immutable in
// between, so concurrent queries can share it without locking.
type hydratedSeason struct {
	artifact *artifact.Artifact
	index    *shelf.Index
}

// SeasonInfo is the metadata view of one hydrated season.
type SeasonInfo struct {
	store.SeasonSummary
	AchievementNames []string `json:"achievement_names"`
	DistinctBooks    int      `json:"distinct_books"`
	Duplicates       int      `json:"duplicates"`
}

// NewSeasonService creates a season service.
func NewSeasonService(st *store.Store, ld *loader.Loader, dataPath, indexURL string, logger *slog.Logger) *SeasonService {
	return &SeasonService{
		store:     st,
		loader:    ld,
		validator: artifact.NewValidator(),
		logger:    logger,
		dataPath:  dataPath,
		indexURL:  indexURL,
		cache:     make(map[string]*hydratedSeason),
	}
}

// List returns summaries for every stored season.
func (s *SeasonService) List(ctx context.Context) ([]store.SeasonSummary, error) {
	return s.store.ListSeasons(ctx)
}

// Ingest stores an artifact and hydrates its index. The artifact must carry
// a usable season identity; beyond that, loose shapes are tolerated and
// only logged.
func (s *SeasonService) Ingest(ctx context.Context, a *artifact.Artifact, raw []byte) error {
	if a.Season.Name == "" || a.Season.Year <= 0 {
		return domainerrors.Validation("artifact is missing a season identity (season.name, season.year)")
	}

	if err := s.validator.Validate(a); err != nil {
		// Loose shapes degrade gracefully downstream; surface them in logs
		// so the producer pipeline can be fixed.
		s.logger.Warn("artifact has structural problems", "season", a.Season.Label(), "error", err)
	}

	if err := s.store.PutSeason(ctx, a, raw); err != nil {
		return fmt.Errorf("store artifact: %w", err)
	}

	ref := store.SeasonRef{Year: int(a.Season.Year), Name: a.Season.Name}
	s.hydrate(ref, a)
	return nil
}

// Season returns metadata for one season, loading it if necessary.
func (s *SeasonService) Season(ctx context.Context, ref store.SeasonRef) (*SeasonInfo, error) {
	hs, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &SeasonInfo{
		SeasonSummary: store.SeasonSummary{
			Year:         int(hs.artifact.Season.Year),
			Name:         hs.artifact.Season.Name,
			GeneratedAt:  hs.artifact.GeneratedAt,
			Achievements: len(hs.artifact.Achievements),
			Books:        hs.artifact.TotalListedBooks(),
		},
		AchievementNames: hs.index.AchievementNames,
		DistinctBooks:    len(hs.index.Books),
		Duplicates:       shelf.DuplicateCount(hs.index.Books),
	}, nil
}

// Query evaluates filter/sort/view state against a season's index.
func (s *SeasonService) Query(ctx context.Context, ref store.SeasonRef, f shelf.FilterState, so shelf.SortState, view shelf.ViewMode) (shelf.QueryResult, error) {
	hs, err := s.load(ctx, ref)
	if err != nil {
		return shelf.QueryResult{}, err
	}
	return shelf.Query(hs.index, f, so, view), nil
}

// Delete removes a season from the store and drops its hydrated index.
func (s *SeasonService) Delete(ctx context.Context, ref store.SeasonRef) error {
	err := s.store.DeleteSeason(ctx, ref)
	if domainerrors.Is(err, store.ErrSeasonNotFound) {
		return domainerrors.NotFoundf("season %d/%s not stored", ref.Year, ref.Slug())
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, cacheKey(ref))
	s.mu.Unlock()
	return nil
}

// Reload re-hydrates a season from an artifact file path, called by the
// data directory watcher. A load failure keeps the previously hydrated
// index intact.
func (s *SeasonService) Reload(path string) {
	ref, ok := refFromPath(path)
	if !ok {
		s.logger.Debug("ignoring non-season file", "path", path)
		return
	}

	a, raw, err := s.loader.LoadFile(path)
	if err != nil {
		s.logger.Warn("reload failed, keeping previous index", "path", path, "error", err)
		return
	}

	if err := s.Ingest(context.Background(), a, raw); err != nil {
		s.logger.Warn("reload ingest failed, keeping previous index", "path", path, "error", err)
		return
	}

	s.logger.Info("season reloaded", "year", ref.Year, "season", ref.Slug())
}

// load returns the hydrated season, resolving in order: cache, store,
// data directory, remote artifact root. File and remote hits are persisted
// to the store on the way through.
func (s *SeasonService) load(ctx context.Context, ref store.SeasonRef) (*hydratedSeason, error) {
	key := cacheKey(ref)

	s.mu.RLock()
	hs, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return hs, nil
	}

	// Store.
	raw, err := s.store.GetSeason(ctx, ref)
	if err == nil {
		a, perr := artifact.Parse(raw)
		if perr == nil {
			return s.hydrate(ref, a), nil
		}
		s.logger.Warn("stored artifact is corrupt, falling back", "year", ref.Year, "season", ref.Slug(), "error", perr)
	} else if !domainerrors.Is(err, store.ErrSeasonNotFound) {
		return nil, err
	}

	// Data directory.
	path := loader.SeasonPath(s.dataPath, ref.Year, ref.Name)
	a, raw, err := s.loader.LoadFile(path)
	if err == nil {
		if serr := s.store.PutSeason(ctx, a, raw); serr != nil {
			s.logger.Warn("failed to persist loaded artifact", "path", path, "error", serr)
		}
		return s.hydrate(ref, a), nil
	}
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	// Remote artifact root.
	if s.indexURL != "" {
		url := loader.SeasonURL(s.indexURL, ref.Year, ref.Name)
		a, raw, err = s.loader.LoadURL(ctx, url)
		if err == nil {
			if serr := s.store.PutSeason(ctx, a, raw); serr != nil {
				s.logger.Warn("failed to persist fetched artifact", "url", url, "error", serr)
			}
			return s.hydrate(ref, a), nil
		}
		if !domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	return nil, domainerrors.NotFoundf("season %d/%s not found", ref.Year, ref.Slug())
}

// hydrate builds and caches the index for an artifact.
func (s *SeasonService) hydrate(ref store.SeasonRef, a *artifact.Artifact) *hydratedSeason {
	hs := &hydratedSeason{
		artifact: a,
		index:    shelf.BuildIndex(a),
	}

	s.mu.Lock()
	s.cache[cacheKey(ref)] = hs
	s.mu.Unlock()
	return hs
}

func cacheKey(ref store.SeasonRef) string {
	return fmt.Sprintf("%d:%s", ref.Year, ref.Slug())
}

// refFromPath recovers the season identity from a {data}/{year}/{season}.json
// artifact path.
func refFromPath(path string) (store.SeasonRef, bool) {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".json") {
		return store.SeasonRef{}, false
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))

	year, err := strconv.Atoi(filepath.Base(filepath.Dir(path)))
	if err != nil || year <= 0 || name == "" {
		return store.SeasonRef{}, false
	}
	return store.SeasonRef{Year: year, Name: name}, true
}
