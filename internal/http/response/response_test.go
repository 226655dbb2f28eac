package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/seasonshelf/seasonshelf-server/internal/errors"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"hello": "world"}, body["data"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]int{"year": 2025}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusTeapot, "short and stout", nil)

	assert.Equal(t, http.StatusTeapot, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "short and stout", body["error"])
	assert.NotContains(t, body, "data")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not found maps to 404",
			err:        domainerrors.NotFoundf("season %d/%s not found", 2025, "summer"),
			wantStatus: http.StatusNotFound,
			wantError:  "season 2025/summer not found",
		},
		{
			name:       "validation maps to 400",
			err:        domainerrors.Validation("bad artifact"),
			wantStatus: http.StatusBadRequest,
			wantError:  "bad artifact",
		},
		{
			name:       "unavailable maps to 502",
			err:        domainerrors.Unavailable("upstream down"),
			wantStatus: http.StatusBadGateway,
			wantError:  "upstream down",
		},
		{
			name:       "wrapped domain error still maps",
			err:        fmt.Errorf("context: %w", domainerrors.NotFound("gone")),
			wantStatus: http.StatusNotFound,
			wantError:  "gone",
		},
		{
			name:       "unknown error maps to 500",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
		})
	}
}
