package shelf

import (
	"slices"
	"strings"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
)

// ViewMode selects the renderer's presentation. The engine carries it as
// opaque state and never branches on it.
type ViewMode string

// View modes.
const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode maps a raw string to a ViewMode, falling back to ViewGrid.
func ParseViewMode(s string) ViewMode {
	if ViewMode(strings.ToLower(strings.TrimSpace(s))) == ViewList {
		return ViewList
	}
	return ViewGrid
}

// QueryResult is everything the render adapter consumes for one evaluation:
// the filtered and sorted rows, the filter-control inputs, and the status
// summaries computed over the filtered (pre-sort) set.
type QueryResult struct {
	Books             []Book         `json:"books"`
	AchievementNames  []string       `json:"achievement_names"`
	DuplicateCount    int            `json:"duplicate_count"`
	AchievementCounts map[string]int `json:"achievement_counts"`
	View              ViewMode       `json:"view"`
}

// Query evaluates filter and sort state against an index. Pure: identical
// inputs always produce identical output, and neither input is mutated.
func Query(idx *Index, f FilterState, s SortState, view ViewMode) QueryResult {
	if idx == nil {
		idx = &Index{Books: []Book{}, AchievementNames: []string{}}
	}

	visible := Filter(idx.Books, f)

	return QueryResult{
		Books:             Sort(visible, s),
		AchievementNames:  slices.Clone(idx.AchievementNames),
		DuplicateCount:    DuplicateCount(visible),
		AchievementCounts: AchievementCounts(visible),
		View:              view,
	}
}

// Session is the explicit, caller-owned state bundle: the current index
// plus the filter, sort, and view state the user last chose. State is
// replaced wholesale on each change; reads and writes happen within one
// synchronous turn, so there is no locking.
type Session struct {
	index  *Index
	filter FilterState
	sort   SortState
	view   ViewMode
}

// NewSession creates a session with an empty index and default state.
func NewSession() *Session {
	return &Session{
		index: &Index{Books: []Book{}, AchievementNames: []string{}},
		filter: FilterState{
			Mode: ModeAny,
		},
		sort: DefaultSortState(),
		view: ViewGrid,
	}
}

// Hydrate rebuilds the session's index from a newly loaded artifact.
// Filter/sort/view state carries over across hydrations.
func (s *Session) Hydrate(a *artifact.Artifact) {
	s.index = BuildIndex(a)
}

// Index returns the session's current book index.
func (s *Session) Index() *Index {
	return s.index
}

// SetFilter replaces the filter state.
func (s *Session) SetFilter(f FilterState) {
	s.filter = f
}

// SetSort replaces the sort state.
func (s *Session) SetSort(st SortState) {
	s.sort = st
}

// SetView replaces the view mode.
func (s *Session) SetView(v ViewMode) {
	s.view = v
}

// Snapshot evaluates the current state against the current index.
func (s *Session) Snapshot() QueryResult {
	return Query(s.index, s.filter, s.sort, s.view)
}
