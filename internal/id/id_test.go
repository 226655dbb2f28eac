package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("load")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !strings.HasPrefix(got, "load-") {
		t.Errorf("Generate() = %q, want load- prefix", got)
	}
	if len(got) != len("load-")+21 {
		t.Errorf("Generate() = %q, want 21-char nanoid after prefix", got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := MustGenerate("load")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
