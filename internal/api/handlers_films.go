package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/service"
)

// FilmHandler serves the /api/v1/films endpoints over a FilmService.
type FilmHandler struct {
	films *service.FilmService
}

// NewFilmHandler builds a FilmHandler over films.
func NewFilmHandler(films *service.FilmService) *FilmHandler {
	return &FilmHandler{films: films}
}

// filmSummary is the list/search projection per spec.md §6.
type filmSummary struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

// filmDetail is the single-film projection per spec.md §6: genres are
// projected as {id,name} (description dropped), crew as full Person sets.
type filmDetail struct {
	UUID        string         `json:"uuid"`
	Title       string         `json:"title"`
	IMDBRating  *float64       `json:"imdb_rating"`
	Description string         `json:"description"`
	Genre       []genreRef     `json:"genre"`
	Actors      []model.Person `json:"actors"`
	Writers     []model.Person `json:"writers"`
	Directors   []model.Person `json:"directors"`
}

type genreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toFilmSummary(f *model.Film) filmSummary {
	return filmSummary{UUID: f.ID.String(), Title: f.Title, IMDBRating: f.IMDBRating}
}

func toFilmSummaries(films []*model.Film) []filmSummary {
	out := make([]filmSummary, 0, len(films))
	for _, f := range films {
		out = append(out, toFilmSummary(f))
	}
	return out
}

func toFilmDetail(f *model.Film) filmDetail {
	genres := make([]genreRef, 0, len(f.Genres))
	for _, g := range f.Genres {
		genres = append(genres, genreRef{ID: g.ID.String(), Name: g.Name})
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })

	return filmDetail{
		UUID:        f.ID.String(),
		Title:       f.Title,
		IMDBRating:  f.IMDBRating,
		Description: f.Description,
		Genre:       genres,
		Actors:      personSlice(f.Actors),
		Writers:     personSlice(f.Writers),
		Directors:   personSlice(f.Directors),
	}
}

// personSlice flattens set into a slice sorted by id, matching the
// deterministic ordering model.PersonSet.MarshalJSON itself uses.
func personSlice(set model.PersonSet) []model.Person {
	out := make([]model.Person, 0, len(set))
	for _, p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// List handles GET /api/v1/films/.
func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	q := queryOf(r)

	page, err := parsePageParams(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sort, err := parseSort(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	films, err := h.films.ListFilms(r.Context(), page.PageSize, page.PageNumber, genreFilter(q), sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toFilmSummaries(films))
}

// Search handles GET /api/v1/films/search.
func (h *FilmHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := queryOf(r)

	query, err := parseSearchQuery(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePageParams(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	films, err := h.films.SearchFilms(r.Context(), query, page.PageSize, page.PageNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toFilmSummaries(films))
}

// Get handles GET /api/v1/films/{id}.
func (h *FilmHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	film, err := h.films.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toFilmDetail(film))
}
