// Package artifact defines the season artifact document produced by the
// external scrape/compile pipeline and the hydration boundary that turns raw
// JSON into a fully default-populated, validated in-memory shape.
package artifact

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Year is the season year. The compile pipeline has emitted it both as a
// JSON number and as a quoted string across versions, so it unmarshals from
// either. Unparseable values decode to zero rather than failing hydration.
type Year int

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (y Year) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(y))), nil
}

// Season identifies the challenge season the artifact was compiled for.
type Season struct {
	Name string `json:"name" validate:"required"`
	Year Year   `json:"year" validate:"gt=0"`
}

// Label returns the season's display label, e.g. "Summer 2025".
func (s Season) Label() string {
	return fmt.Sprintf("%s %d", s.Name, s.Year)
}

// BookRef is one book listed under an achievement. Only Title is required
// for the entry to be indexable; the rest is display metadata.
type BookRef struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Link   string `json:"link,omitempty"`
	Cover  string `json:"cover,omitempty"`
}

// Achievement is a named challenge category and its qualifying books.
// SourceURL and BookCount are producer metadata passed through untouched.
type Achievement struct {
	Name      string    `json:"name" validate:"required"`
	SourceURL string    `json:"source_url,omitempty"`
	BookCount int       `json:"book_count,omitempty"`
	Books     []BookRef `json:"books"`
}

// DedupeGroup is one precomputed duplicate group: the achievement names
// sharing a normalized (title, author) key.
type DedupeGroup struct {
	Title        string   `json:"title"`
	Author       string   `json:"author,omitempty"`
	Achievements []string `json:"achievements"`
}

// Dedupe holds the artifact's precomputed duplicate section.
type Dedupe struct {
	DuplicatesByTitleAuthor []DedupeGroup `json:"duplicates_by_title_author"`
}

// Artifact is the compiled season document.
type Artifact struct {
	Season       Season        `json:"season"`
	GeneratedAt  string        `json:"generated_at,omitempty"`
	Achievements []Achievement `json:"achievements" validate:"dive"`
	Dedupe       Dedupe        `json:"dedupe"`
}

// Decode reads and hydrates an artifact from r. The returned artifact is
// fully default-populated: missing or null sections become empty slices so
// downstream code never null-checks. Only malformed JSON is an error.
func Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.UnmarshalRead(r, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	a.populateDefaults()
	return &a, nil
}

// Parse hydrates an artifact from raw bytes. See Decode.
func Parse(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	a.populateDefaults()
	return &a, nil
}

// populateDefaults replaces nil collections with empty ones and fills
// derivable fields, so every consumer sees the same normalized shape.
func (a *Artifact) populateDefaults() {
	if a.Achievements == nil {
		a.Achievements = []Achievement{}
	}
	for i := range a.Achievements {
		ach := &a.Achievements[i]
		if ach.Books == nil {
			ach.Books = []BookRef{}
		}
		if ach.BookCount == 0 {
			ach.BookCount = len(ach.Books)
		}
	}
	if a.Dedupe.DuplicatesByTitleAuthor == nil {
		a.Dedupe.DuplicatesByTitleAuthor = []DedupeGroup{}
	}
	for i := range a.Dedupe.DuplicatesByTitleAuthor {
		g := &a.Dedupe.DuplicatesByTitleAuthor[i]
		if g.Achievements == nil {
			g.Achievements = []string{}
		}
	}
}

// TotalListedBooks sums the raw (pre-dedup) book counts across achievements.
func (a *Artifact) TotalListedBooks() int {
	total := 0
	for _, ach := range a.Achievements {
		total += len(ach.Books)
	}
	return total
}
