package shelf

// DuplicateCount counts the duplicate-flagged books in a (typically
// filtered) slice, for status display.
func DuplicateCount(books []Book) int {
	n := 0
	for _, b := range books {
		if b.IsDuplicate {
			n++
		}
	}
	return n
}

// AchievementCounts tallies achievement-name occurrences across the given
// books. Computed over the filtered, pre-sort set, it annotates each
// achievement with how many of its books are currently visible.
func AchievementCounts(books []Book) map[string]int {
	counts := make(map[string]int)
	for _, b := range books {
		for _, name := range b.Achievements {
			counts[name]++
		}
	}
	return counts
}
