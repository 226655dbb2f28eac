// Package loader retrieves season artifacts from the local data directory
// or a remote artifact root, and watches the data directory so edited
// artifacts are re-hydrated without a restart. The loader owns the only
// asynchronous boundary in the system; hydration itself is synchronous and
// a failed load leaves previously hydrated state untouched.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
	domainerrors "github.com/seasonshelf/seasonshelf-server/internal/errors"
	"github.com/seasonshelf/seasonshelf-server/internal/id"
	"github.com/seasonshelf/seasonshelf-server/internal/ratelimit"
)

// maxArtifactSize caps how much of a response body is read. Season
// artifacts are a few hundred KB at most.
const maxArtifactSize = 16 << 20

// Loader fetches and hydrates season artifacts.
type Loader struct {
	client  *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a loader. Outbound fetches share one HTTP client with the
// given timeout and are rate limited per host.
func New(timeout time.Duration, rps float64, burst int, logger *slog.Logger) *Loader {
	return &Loader{
		client:  &http.Client{Timeout: timeout},
		limiter: ratelimit.New(rps, burst),
		logger:  logger,
	}
}

// SeasonPath returns the conventional artifact location under a data
// directory: {dataDir}/{year}/{season}.json with the season lowercased.
func SeasonPath(dataDir string, year int, season string) string {
	return filepath.Join(dataDir, fmt.Sprintf("%d", year), seasonSlug(season)+".json")
}

// SeasonURL returns the remote artifact location under an artifact root,
// mirroring the SeasonPath layout.
func SeasonURL(root string, year int, season string) string {
	return fmt.Sprintf("%s/%d/%s.json", strings.TrimRight(root, "/"), year, seasonSlug(season))
}

func seasonSlug(season string) string {
	return strings.ToLower(strings.TrimSpace(season))
}

// LoadFile reads and hydrates an artifact from disk. The raw bytes are
// returned alongside the artifact so callers can persist them verbatim.
func (l *Loader) LoadFile(path string) (*artifact.Artifact, []byte, error) {
	loadID := id.MustGenerate("load")

	raw, err := os.ReadFile(path) //#nosec G304 -- Artifact paths come from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, domainerrors.NotFoundf("artifact file %s not found", path).WithCause(err)
		}
		return nil, nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	a, err := artifact.Parse(raw)
	if err != nil {
		return nil, nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "artifact %s is not valid JSON", path)
	}

	l.logger.Info("artifact loaded from file",
		"load_id", loadID,
		"path", path,
		"season", a.Season.Label(),
		"achievements", len(a.Achievements),
	)
	return a, raw, nil
}

// LoadURL fetches and hydrates an artifact from a remote root. Fetches are
// rate limited per host; a non-200 response or transport failure maps to an
// unavailable error so callers can distinguish upstream trouble from bad
// data.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*artifact.Artifact, []byte, error) {
	loadID := id.MustGenerate("load")

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, domainerrors.Validationf("invalid artifact URL %q", rawURL).WithCause(err)
	}

	if err := l.limiter.Wait(ctx, u.Host); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, nil, domainerrors.Unavailablef("fetch artifact %s", rawURL).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, domainerrors.NotFoundf("artifact %s not found upstream", rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, domainerrors.Unavailablef("fetch artifact %s: status %d", rawURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactSize))
	if err != nil {
		return nil, nil, domainerrors.Unavailablef("read artifact %s", rawURL).WithCause(err)
	}

	a, err := artifact.Parse(raw)
	if err != nil {
		return nil, nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "artifact %s is not valid JSON", rawURL)
	}

	l.logger.Info("artifact loaded from URL",
		"load_id", loadID,
		"url", rawURL,
		"season", a.Season.Label(),
		"achievements", len(a.Achievements),
	)
	return a, raw, nil
}
