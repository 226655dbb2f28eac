package shelf

import "strings"

// Key returns the normalized dedup identity for a (title, author) pair:
// case-insensitive and whitespace-trimmed, with an empty author allowed.
// It is total - missing fields are treated as empty strings and two refs
// are the same book iff their keys are equal.
func Key(title, author string) string {
	// \x00 cannot appear in scraped text, so the composite is unambiguous.
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(author))
}
