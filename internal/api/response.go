package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/logging"
)

// writeJSON encodes v as the response body with status, via goccy/go-json.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response body")
	}
}

// errorResponse is the body written on any non-2xx outcome.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to an HTTP status per the taxonomy in spec.md §7
// and writes an errorResponse body. A plain (non-apierr) err is treated
// as an internal failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apierr.As(err) {
	case apierr.KindValidation:
		status = http.StatusUnprocessableEntity
	case apierr.KindNotFound:
		status = http.StatusNotFound
	case apierr.KindBackendUnavailable, apierr.KindSourceTransient, apierr.KindSourceFatal, apierr.KindCachePoisoned:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	} else {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("request rejected")
	}

	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
