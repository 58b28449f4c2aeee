package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/service"
)

// GenreHandler serves the /api/v1/genres endpoints over a GenreService.
type GenreHandler struct {
	genres *service.GenreService
}

// NewGenreHandler builds a GenreHandler over genres.
func NewGenreHandler(genres *service.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// genreSummary is the genre projection per spec.md §6: {uuid, name}.
type genreSummary struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

func toGenreSummary(g *model.Genre) genreSummary {
	return genreSummary{UUID: g.ID.String(), Name: g.Name}
}

// List handles GET /api/v1/genres/.
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(queryOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	genres, err := h.genres.ListGenres(r.Context(), page.PageSize, page.PageNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]genreSummary, 0, len(genres))
	for _, g := range genres {
		out = append(out, toGenreSummary(g))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Get handles GET /api/v1/genres/{id}.
func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	genre, err := h.genres.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toGenreSummary(genre))
}
