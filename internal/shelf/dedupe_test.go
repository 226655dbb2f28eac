package shelf

import (
	"testing"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
	"github.com/stretchr/testify/assert"
)

func TestBuildDuplicateIndex(t *testing.T) {
	groups := []artifact.DedupeGroup{
		{Title: "Dune", Author: "Frank Herbert", Achievements: []string{"Space Opera", "Classics"}},
		{Title: "Solo Entry", Author: "One Author", Achievements: []string{"Classics"}},
		{Title: "Repeated Name", Author: "Someone", Achievements: []string{"Classics", "Classics"}},
		{Title: "Triple", Author: "Else", Achievements: []string{"A", "B", "C"}},
	}

	di := BuildDuplicateIndex(groups)

	tests := []struct {
		name   string
		title  string
		author string
		want   bool
	}{
		{"two distinct achievements", "Dune", "Frank Herbert", true},
		{"case-insensitive lookup", "DUNE", "frank herbert", true},
		{"single achievement is not a duplicate", "Solo Entry", "One Author", false},
		{"repeated same name does not count twice", "Repeated Name", "Someone", false},
		{"three achievements", "Triple", "Else", true},
		{"absent from dedupe section", "Hyperion", "Dan Simmons", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, di.IsDuplicate(Key(tt.title, tt.author)))
		})
	}
}

func TestBuildDuplicateIndex_Empty(t *testing.T) {
	di := BuildDuplicateIndex(nil)
	assert.False(t, di.IsDuplicate(Key("Dune", "Frank Herbert")))
}
