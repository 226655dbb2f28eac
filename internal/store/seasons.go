package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
)

const (
	seasonPrefix     = "season:"
	seasonMetaPrefix = "idx:seasons:"
)

// Sentinel errors for season operations.
var (
	ErrSeasonNotFound = errors.New("season not found")
)

// SeasonRef identifies a stored season. Name comparison is
// case-insensitive; the stored summary preserves the display casing.
type SeasonRef struct {
	Year int    `json:"year"`
	Name string `json:"name"`
}

// Slug returns the lowercased season name used in keys.
func (r SeasonRef) Slug() string {
	return strings.ToLower(strings.TrimSpace(r.Name))
}

func (r SeasonRef) artifactKey() []byte {
	return fmt.Appendf(nil, "%s%d:%s", seasonPrefix, r.Year, r.Slug())
}

func (r SeasonRef) metaKey() []byte {
	return fmt.Appendf(nil, "%s%d:%s", seasonMetaPrefix, r.Year, r.Slug())
}

// SeasonSummary is the small listing record kept alongside each artifact.
type SeasonSummary struct {
	Year         int    `json:"year"`
	Name         string `json:"name"`
	GeneratedAt  string `json:"generated_at,omitempty"`
	Achievements int    `json:"achievements"`
	Books        int    `json:"books"`
}

// PutSeason stores the raw artifact JSON and its listing summary under the
// artifact's season identity, replacing any previous version.
func (s *Store) PutSeason(ctx context.Context, a *artifact.Artifact, raw []byte) error {
	ref := SeasonRef{Year: int(a.Season.Year), Name: a.Season.Name}

	summary := SeasonSummary{
		Year:         int(a.Season.Year),
		Name:         a.Season.Name,
		GeneratedAt:  a.GeneratedAt,
		Achievements: len(a.Achievements),
		Books:        a.TotalListedBooks(),
	}
	meta, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal season summary: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(ref.artifactKey(), raw); err != nil {
			return err
		}
		return txn.Set(ref.metaKey(), meta)
	})
	if err != nil {
		return fmt.Errorf("put season %d/%s: %w", ref.Year, ref.Slug(), err)
	}

	if s.logger != nil {
		s.logger.Info("season stored",
			"year", ref.Year,
			"season", ref.Slug(),
			"achievements", summary.Achievements,
			"books", summary.Books,
		)
	}
	return nil
}

// GetSeason returns the raw artifact JSON for a season.
// Returns ErrSeasonNotFound if the season has not been stored.
func (s *Store) GetSeason(ctx context.Context, ref SeasonRef) ([]byte, error) {
	raw, err := s.getRaw(ref.artifactKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get season %d/%s: %w", ref.Year, ref.Slug(), err)
	}
	return raw, nil
}

// GetSeasonSummary returns the stored listing summary for a season.
// Returns ErrSeasonNotFound if the season has not been stored.
func (s *Store) GetSeasonSummary(ctx context.Context, ref SeasonRef) (SeasonSummary, error) {
	var summary SeasonSummary
	err := s.getJSON(ref.metaKey(), &summary)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return SeasonSummary{}, ErrSeasonNotFound
	}
	if err != nil {
		return SeasonSummary{}, fmt.Errorf("get season summary %d/%s: %w", ref.Year, ref.Slug(), err)
	}
	return summary, nil
}

// HasSeason reports whether a season is stored.
func (s *Store) HasSeason(ctx context.Context, ref SeasonRef) (bool, error) {
	return s.exists(ref.artifactKey())
}

// DeleteSeason removes a stored season and its summary.
// Returns ErrSeasonNotFound if the season has not been stored.
func (s *Store) DeleteSeason(ctx context.Context, ref SeasonRef) error {
	exists, err := s.exists(ref.artifactKey())
	if err != nil {
		return fmt.Errorf("check season exists: %w", err)
	}
	if !exists {
		return ErrSeasonNotFound
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(ref.artifactKey()); err != nil {
			return err
		}
		return txn.Delete(ref.metaKey())
	})
	if err != nil {
		return fmt.Errorf("delete season %d/%s: %w", ref.Year, ref.Slug(), err)
	}
	return nil
}

// ListSeasons returns summaries for every stored season, newest year first
// and name-ordered within a year.
func (s *Store) ListSeasons(ctx context.Context) ([]SeasonSummary, error) {
	summaries := []SeasonSummary{}

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(seasonMetaPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var summary SeasonSummary
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &summary)
			})
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	slices.SortFunc(summaries, func(a, b SeasonSummary) int {
		if a.Year != b.Year {
			return b.Year - a.Year
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return summaries, nil
}
