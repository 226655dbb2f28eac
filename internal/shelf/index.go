// Package shelf implements the season shelf engine: it folds a hydrated
// season artifact into a deduplicated book index and answers filter, sort,
// and summary queries against it. Every function here is a pure,
// synchronous computation over its inputs; the index is rebuilt wholesale
// when a new artifact loads and is immutable between rebuilds.
package shelf

import (
	"slices"
	"strings"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
)

// Book is the deduplicated view of one (title, author) identity across all
// achievements. Title, Author, Link, and Cover come from the first indexed
// reference and are never overwritten by later duplicates; Achievements is
// the lexicographically sorted set of achievement names the book appears
// under.
type Book struct {
	Title        string   `json:"title"`
	Author       string   `json:"author,omitempty"`
	Link         string   `json:"link,omitempty"`
	Cover        string   `json:"cover,omitempty"`
	Achievements []string `json:"achievements"`
	IsDuplicate  bool     `json:"is_duplicate"`
}

// Index is the stable in-memory book collection derived from one artifact.
// Books keeps first-seen key order; AchievementNames is the sorted distinct
// list of every achievement name in the artifact, valid books or not, used
// to populate filter controls.
type Index struct {
	Books            []Book   `json:"books"`
	AchievementNames []string `json:"achievement_names"`
}

// BuildIndex folds the artifact's achievements into a deduplicated index.
// It never fails: a nil artifact or missing sections produce an empty index,
// and book refs without a title are dropped silently since they cannot be
// identified or deduplicated.
func BuildIndex(a *artifact.Artifact) *Index {
	if a == nil {
		return &Index{Books: []Book{}, AchievementNames: []string{}}
	}

	dupes := BuildDuplicateIndex(a.Dedupe.DuplicatesByTitleAuthor)

	type entry struct {
		book    Book
		seen    map[string]struct{}
		ordered []string
	}
	byKey := make(map[string]*entry)
	keyOrder := make([]string, 0)
	nameSet := make(map[string]struct{})

	for _, ach := range a.Achievements {
		nameSet[ach.Name] = struct{}{}

		for _, ref := range ach.Books {
			if strings.TrimSpace(ref.Title) == "" {
				continue // no identifiable title
			}
			key := Key(ref.Title, ref.Author)

			e, ok := byKey[key]
			if !ok {
				e = &entry{
					book: Book{
						Title:  ref.Title,
						Author: ref.Author,
						Link:   ref.Link,
						Cover:  ref.Cover,
					},
					seen: make(map[string]struct{}),
				}
				byKey[key] = e
				keyOrder = append(keyOrder, key)
			}
			// Later references contribute membership only; the seeded
			// title/author/link/cover stand.
			if _, dup := e.seen[ach.Name]; !dup {
				e.seen[ach.Name] = struct{}{}
				e.ordered = append(e.ordered, ach.Name)
			}
		}
	}

	books := make([]Book, 0, len(keyOrder))
	for _, key := range keyOrder {
		e := byKey[key]
		names := slices.Clone(e.ordered)
		slices.Sort(names)
		e.book.Achievements = names
		e.book.IsDuplicate = dupes.IsDuplicate(key)
		books = append(books, e.book)
	}

	allNames := make([]string, 0, len(nameSet))
	for name := range nameSet {
		allNames = append(allNames, name)
	}
	slices.Sort(allNames)

	return &Index{Books: books, AchievementNames: allNames}
}
