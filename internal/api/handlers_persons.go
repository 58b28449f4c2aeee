package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/service"
)

// PersonHandler serves the /api/v1/persons endpoints. It composes
// PersonService with FilmService per spec.md §4.10: the person response
// embeds each film the person appears in along with their roles there,
// a projection PersonService itself has no knowledge of.
type PersonHandler struct {
	persons *service.PersonService
	films   *service.FilmService
}

// NewPersonHandler builds a PersonHandler over persons and films.
func NewPersonHandler(persons *service.PersonService, films *service.FilmService) *PersonHandler {
	return &PersonHandler{persons: persons, films: films}
}

// personFilmRef projects a film down to {uuid, roles} for the person
// detail/search response, per spec.md §6.
type personFilmRef struct {
	UUID  string       `json:"uuid"`
	Roles []model.Role `json:"roles"`
}

// personDetail is the shared shape of /persons/{id} and /persons/search
// entries per spec.md §6.
type personDetail struct {
	UUID  string          `json:"uuid"`
	Name  string          `json:"name"`
	Films []personFilmRef `json:"films"`
}

// filmsForPerson fetches the first page (up to defaultPageSize films) of
// the films on which personID has a crew role and projects each to
// {uuid, roles}; films beyond that page are not included. Roles are non-empty by
// construction: the underlying query (C8's get_films_with_person)
// selects films by role inclusion, so every returned film contains
// personID in at least one of actors/directors/writers.
func (h *PersonHandler) filmsForPerson(r *http.Request, personID string) ([]personFilmRef, error) {
	films, err := h.films.GetFilmsWithPerson(r.Context(), personID, defaultPageSize, defaultPageNumber, "")
	if err != nil {
		return nil, err
	}

	pid, err := parseUUID(personID)
	if err != nil {
		return []personFilmRef{}, nil
	}

	out := make([]personFilmRef, 0, len(films))
	for _, f := range films {
		out = append(out, personFilmRef{UUID: f.ID.String(), Roles: f.RolesFor(pid)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UUID < out[j].UUID })
	return out, nil
}

func (h *PersonHandler) toPersonDetail(r *http.Request, p *model.Person) (personDetail, error) {
	films, err := h.filmsForPerson(r, p.ID.String())
	if err != nil {
		return personDetail{}, err
	}
	return personDetail{UUID: p.ID.String(), Name: p.Name, Films: films}, nil
}

// Get handles GET /api/v1/persons/{id}.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	person, err := h.persons.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.toPersonDetail(r, person)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

// Search handles GET /api/v1/persons/search.
func (h *PersonHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := queryOf(r)

	name, err := parseSearchQuery(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePageParams(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	persons, err := h.persons.SearchByName(r.Context(), name, page.PageSize, page.PageNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]personDetail, 0, len(persons))
	for _, p := range persons {
		detail, err := h.toPersonDetail(r, p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out = append(out, detail)
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Films handles GET /api/v1/persons/{id}/films: the plain film-summary
// projection, independent of the roles-annotated person detail shape.
func (h *PersonHandler) Films(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// A 404 on the person itself is the only not-found trigger for this
	// endpoint (spec.md §4.11 open-question resolution): an existing
	// person with zero indexed films returns 200 and an empty list.
	if _, err := h.persons.GetByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	films, err := h.films.GetFilmsWithPerson(r.Context(), id, defaultPageSize, defaultPageNumber, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toFilmSummaries(films))
}
