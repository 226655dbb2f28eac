package loader

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/seasonshelf/seasonshelf-server/internal/errors"
)

const validArtifactJSON = `{
	"season": {"name": "Summer", "year": 2025},
	"achievements": [
		{"name": "Classics", "books": [{"title": "Dune", "author": "Frank Herbert"}]}
	]
}`

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	return New(5*time.Second, 100, 100, slog.New(slog.DiscardHandler))
}

func TestSeasonPath(t *testing.T) {
	got := SeasonPath("/data", 2025, "Summer")
	assert.Equal(t, filepath.Join("/data", "2025", "summer.json"), got)
}

func TestSeasonURL(t *testing.T) {
	tests := []struct {
		name string
		root string
		want string
	}{
		{"plain root", "https://example.com/artifacts", "https://example.com/artifacts/2025/summer.json"},
		{"trailing slash trimmed", "https://example.com/artifacts/", "https://example.com/artifacts/2025/summer.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonURL(tt.root, 2025, " Summer "))
		})
	}
}

func TestLoadFile(t *testing.T) {
	l := newTestLoader(t)

	path := filepath.Join(t.TempDir(), "summer.json")
	require.NoError(t, os.WriteFile(path, []byte(validArtifactJSON), 0o600))

	a, raw, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Summer 2025", a.Season.Label())
	assert.Equal(t, []byte(validArtifactJSON), raw)
}

func TestLoadFile_Missing(t *testing.T) {
	l := newTestLoader(t)

	_, _, err := l.LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	l := newTestLoader(t)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"season":`), 0o600))

	_, _, err := l.LoadFile(path)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(validArtifactJSON))
	}))
	defer srv.Close()

	l := newTestLoader(t)

	a, raw, err := l.LoadURL(context.Background(), srv.URL+"/2025/summer.json")
	require.NoError(t, err)
	assert.Equal(t, "Summer 2025", a.Season.Label())
	assert.Equal(t, []byte(validArtifactJSON), raw)
}

func TestLoadURL_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"404 is not found", http.StatusNotFound, domainerrors.ErrNotFound},
		{"500 is unavailable", http.StatusInternalServerError, domainerrors.ErrUnavailable},
		{"403 is unavailable", http.StatusForbidden, domainerrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			l := newTestLoader(t)
			_, _, err := l.LoadURL(context.Background(), srv.URL+"/2025/summer.json")
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLoadURL_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	l := newTestLoader(t)
	_, _, err := l.LoadURL(context.Background(), srv.URL+"/2025/summer.json")
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}

func TestLoadURL_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	l := newTestLoader(t)
	_, _, err := l.LoadURL(context.Background(), srv.URL+"/2025/summer.json")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLoadURL_InvalidURL(t *testing.T) {
	l := newTestLoader(t)
	_, _, err := l.LoadURL(context.Background(), "http://\x00invalid")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
