package shelf

import "strings"

// Mode selects how a non-empty achievement selection combines.
type Mode string

// Achievement selection modes.
const (
	// ModeAny keeps books sharing at least one selected achievement.
	ModeAny Mode = "any"
	// ModeAll keeps books carrying every selected achievement.
	ModeAll Mode = "all"
)

// ParseMode maps a raw string to a Mode, falling back to ModeAny for
// unrecognized values.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeAll {
		return ModeAll
	}
	return ModeAny
}

// FilterState is the caller-owned filter configuration. Mode is ignored
// when Selected is empty.
type FilterState struct {
	Search         string   `json:"search"`
	DuplicatesOnly bool     `json:"duplicates_only"`
	Selected       []string `json:"selected_achievements"`
	Mode           Mode     `json:"achievement_mode"`
}

// Filter returns the subsequence of books passing every active predicate,
// preserving the input's relative order. It is a pure function of its
// inputs and mutates neither.
func Filter(books []Book, st FilterState) []Book {
	query := strings.ToLower(strings.TrimSpace(st.Search))

	selected := make(map[string]struct{}, len(st.Selected))
	for _, name := range st.Selected {
		selected[name] = struct{}{}
	}

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if query != "" && !matchesSearch(b, query) {
			continue
		}
		if st.DuplicatesOnly && !b.IsDuplicate {
			continue
		}
		if len(selected) > 0 && !matchesSelection(b, selected, st.Mode) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// matchesSearch reports a case-insensitive substring hit on the title,
// the author, or any achievement name.
func matchesSearch(b Book, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Author), query) {
		return true
	}
	for _, name := range b.Achievements {
		if strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	return false
}

func matchesSelection(b Book, selected map[string]struct{}, mode Mode) bool {
	if mode == ModeAll {
		// A book with no achievements can never satisfy "all". Indexed
		// books always have at least one, but Filter accepts arbitrary
		// slices, so the guard keeps the predicate total.
		if len(b.Achievements) == 0 {
			return false
		}
		have := make(map[string]struct{}, len(b.Achievements))
		for _, name := range b.Achievements {
			have[name] = struct{}{}
		}
		for name := range selected {
			if _, ok := have[name]; !ok {
				return false
			}
		}
		return true
	}

	// Unrecognized modes behave as "any".
	for _, name := range b.Achievements {
		if _, ok := selected[name]; ok {
			return true
		}
	}
	return false
}
