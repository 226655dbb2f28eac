package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
	"github.com/seasonshelf/seasonshelf-server/internal/http/response"
	"github.com/seasonshelf/seasonshelf-server/internal/shelf"
	"github.com/seasonshelf/seasonshelf-server/internal/store"
)

// maxIngestSize caps POSTed artifact bodies.
const maxIngestSize = 16 << 20

// handleListSeasons returns summaries for every stored season.
// GET /api/v1/seasons
func (s *Server) handleListSeasons(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.seasonService.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list seasons", "error", err)
		response.InternalError(w, "Failed to list seasons", s.logger)
		return
	}
	response.Success(w, summaries, s.logger)
}

// handleIngestSeason stores a POSTed artifact document.
// POST /api/v1/seasons (body = artifact JSON)
func (s *Server) handleIngestSeason(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxIngestSize))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", s.logger)
		return
	}

	a, err := artifact.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Request body is not a valid artifact document", s.logger)
		return
	}

	if err := s.seasonService.Ingest(r.Context(), a, raw); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, map[string]any{
		"year":   int(a.Season.Year),
		"season": a.Season.Name,
	}, s.logger)
}

// handleGetSeason returns metadata for one season.
// GET /api/v1/seasons/{year}/{season}
func (s *Server) handleGetSeason(w http.ResponseWriter, r *http.Request) {
	ref, ok := seasonRef(r)
	if !ok {
		response.BadRequest(w, "Year must be a positive integer", s.logger)
		return
	}

	info, err := s.seasonService.Season(r.Context(), ref)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, info, s.logger)
}

// handleQueryBooks evaluates filter/sort/view state against a season.
// GET /api/v1/seasons/{year}/{season}/books?q=&duplicates=&achievements=&mode=&sort=&dir=&view=
//
// Unrecognized values for mode, sort, dir, and view degrade to their
// documented defaults rather than failing the request.
func (s *Server) handleQueryBooks(w http.ResponseWriter, r *http.Request) {
	ref, ok := seasonRef(r)
	if !ok {
		response.BadRequest(w, "Year must be a positive integer", s.logger)
		return
	}

	q := r.URL.Query()

	filter := shelf.FilterState{
		Search:         q.Get("q"),
		DuplicatesOnly: parseBool(q.Get("duplicates")),
		Selected:       splitNames(q.Get("achievements")),
		Mode:           shelf.ParseMode(q.Get("mode")),
	}
	sort := shelf.SortState{
		Field:     shelf.ParseSortField(q.Get("sort")),
		Direction: shelf.ParseDirection(q.Get("dir")),
	}
	view := shelf.ParseViewMode(q.Get("view"))

	result, err := s.seasonService.Query(r.Context(), ref, filter, sort, view)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, BookQueryResponse{
		QueryResult: result,
		Filter:      filter,
		Sort:        sort,
	}, s.logger)
}

// handleDeleteSeason removes a stored season.
// DELETE /api/v1/seasons/{year}/{season}
func (s *Server) handleDeleteSeason(w http.ResponseWriter, r *http.Request) {
	ref, ok := seasonRef(r)
	if !ok {
		response.BadRequest(w, "Year must be a positive integer", s.logger)
		return
	}

	if err := s.seasonService.Delete(r.Context(), ref); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// BookQueryResponse is the books endpoint payload: the evaluated rows and
// summaries plus the normalized state echoed back so external plumbing
// (URL fragments, local storage) can persist it.
type BookQueryResponse struct {
	shelf.QueryResult
	Filter shelf.FilterState `json:"filter"`
	Sort   shelf.SortState   `json:"sort"`
}

// seasonRef extracts the season identity from the URL.
func seasonRef(r *http.Request) (store.SeasonRef, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		return store.SeasonRef{}, false
	}
	return store.SeasonRef{Year: year, Name: chi.URLParam(r, "season")}, true
}

// parseBool accepts "true", "1", "yes" (case-insensitive) as true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// splitNames splits a comma-separated achievement list, dropping empties.
func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
