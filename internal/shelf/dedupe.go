package shelf

import (
	"slices"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
)

// DuplicateIndex maps a normalized (title, author) key to the achievement
// names the producer's dedupe pass grouped under it. It is the sole source
// of the duplicate flag; membership is never recomputed from the
// achievements section.
type DuplicateIndex map[string][]string

// BuildDuplicateIndex derives the lookup from the artifact's precomputed
// duplicate groups. It is total: a nil or empty input yields an empty index.
func BuildDuplicateIndex(groups []artifact.DedupeGroup) DuplicateIndex {
	idx := make(DuplicateIndex, len(groups))
	for _, g := range groups {
		idx[Key(g.Title, g.Author)] = slices.Clone(g.Achievements)
	}
	return idx
}

// IsDuplicate reports whether the key's group carries at least two distinct
// achievement names. The producer already filters groups to length > 1, but
// the count is checked here regardless.
func (di DuplicateIndex) IsDuplicate(key string) bool {
	names := di[key]
	if len(names) < 2 {
		return false
	}
	distinct := make(map[string]struct{}, len(names))
	for _, n := range names {
		distinct[n] = struct{}{}
	}
	return len(distinct) >= 2
}
