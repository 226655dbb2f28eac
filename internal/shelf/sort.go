package shelf

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the primary ordering key.
type SortField string

// Sortable fields. Each has a deterministic tie-break so equal primary keys
// still order reproducibly.
const (
	SortTitle            SortField = "title"
	SortAuthor           SortField = "author"
	SortAchievementCount SortField = "achievementCount"
)

// Direction is the sort direction applied to the entire combined
// comparison, tie-break included.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortField maps a raw string to a SortField, falling back to
// SortTitle for unrecognized values.
func ParseSortField(s string) SortField {
	switch SortField(strings.TrimSpace(s)) {
	case SortAuthor:
		return SortAuthor
	case SortAchievementCount:
		return SortAchievementCount
	default:
		return SortTitle
	}
}

// ParseDirection maps a raw string to a Direction, falling back to
// Ascending for unrecognized values.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(strings.TrimSpace(s))) == Descending {
		return Descending
	}
	return Ascending
}

// SortState is the caller-owned sort configuration.
type SortState struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSortState returns the documented fallback ordering: title, ascending.
func DefaultSortState() SortState {
	return SortState{Field: SortTitle, Direction: Ascending}
}

// Sort returns a fresh slice with the same elements ordered by the state's
// comparator. The sort is stable and the input is not mutated. Unknown
// fields order like SortTitle; Descending flips the whole comparison, so
// ties reverse along with everything else.
func Sort(books []Book, st SortState) []Book {
	out := slices.Clone(books)

	// String keys use locale-aware ordering rather than raw byte compare.
	coll := collate.New(language.Und)
	compare := comparator(coll, st.Field)

	sign := 1
	if st.Direction == Descending {
		sign = -1
	}

	slices.SortStableFunc(out, func(a, b Book) int {
		return sign * compare(a, b)
	})
	return out
}

// comparator builds the combined primary+tie-break comparison for a field.
func comparator(coll *collate.Collator, field SortField) func(a, b Book) int {
	byTitle := func(a, b Book) int {
		if c := coll.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		// Titles are unique per key in practice; the author fallback keeps
		// the ordering deterministic when they are not.
		return coll.CompareString(a.Author, b.Author)
	}

	switch field {
	case SortAuthor:
		return func(a, b Book) int {
			if c := coll.CompareString(a.Author, b.Author); c != 0 {
				return c
			}
			return coll.CompareString(a.Title, b.Title)
		}
	case SortAchievementCount:
		return func(a, b Book) int {
			if c := cmp.Compare(len(a.Achievements), len(b.Achievements)); c != 0 {
				return c
			}
			return coll.CompareString(a.Title, b.Title)
		}
	default:
		return byTitle
	}
}
