package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
	"github.com/kinoflow/kinoflow/internal/service"
)

func newTestRouter(t *testing.T) (http.Handler, *searchport.Fake) {
	t.Helper()
	search := searchport.NewFake()
	cache := cacheport.NewFake()

	films := service.NewFilmService(search, cache)
	genres := service.NewGenreService(search, cache)
	persons := service.NewPersonService(search, cache)

	return NewRouter(films, genres, persons), search
}

func seed(t *testing.T, search *searchport.Fake, resource string, id string, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	_, err = search.BulkIndex(context.Background(), resource, []searchport.Document{{ID: id, Body: body}})
	require.NoError(t, err)
}

func TestFilmsGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilmsGet_ProjectsGenreAndCrew(t *testing.T) {
	router, search := newTestRouter(t)

	personID := uuid.New()
	genreID := uuid.New()
	film := model.NewFilm(uuid.New(), "Dune")
	film.Description = "A desert planet"
	film.AddGenre(model.Genre{ID: genreID, Name: "Sci-Fi"})
	film.AddCrew(model.RoleActor, model.Person{ID: personID, Name: "Timothée Chalamet"})
	seed(t, search, searchport.ResourceMovies, film.ID.String(), film)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/"+film.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body filmDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Dune", body.Title)
	require.Len(t, body.Genre, 1)
	assert.Equal(t, "Sci-Fi", body.Genre[0].Name)
	require.Len(t, body.Actors, 1)
	assert.Equal(t, "Timothée Chalamet", body.Actors[0].Name)
}

func TestFilmsList_ValidatesPageSize(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/?page_size=0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFilmsList_ValidatesSort(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/?sort=rating", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFilmsSearch_RequiresQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenresList_ReturnsSummaries(t *testing.T) {
	router, search := newTestRouter(t)
	genre := model.Genre{ID: uuid.New(), Name: "Drama"}
	seed(t, search, searchport.ResourceGenres, genre.ID.String(), genre)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []genreSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Drama", body[0].Name)
}

func TestGenresGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonsGet_EmbedsFilmsWithRoles(t *testing.T) {
	router, search := newTestRouter(t)

	personID := uuid.New()
	person := model.Person{ID: personID, Name: "Ann"}
	seed(t, search, searchport.ResourcePersons, personID.String(), person)

	film := model.NewFilm(uuid.New(), "Heat")
	film.AddCrew(model.RoleActor, model.Person{ID: personID, Name: "Ann"})
	seed(t, search, searchport.ResourceMovies, film.ID.String(), film)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/persons/"+personID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body personDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ann", body.Name)
	require.Len(t, body.Films, 1)
	assert.Equal(t, film.ID.String(), body.Films[0].UUID)
	assert.Equal(t, []model.Role{model.RoleActor}, body.Films[0].Roles)
}

func TestPersonsGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/persons/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonsFilms_EmptyListWhenNoFilms(t *testing.T) {
	router, search := newTestRouter(t)

	personID := uuid.New()
	person := model.Person{ID: personID, Name: "Ghost"}
	seed(t, search, searchport.ResourcePersons, personID.String(), person)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/persons/"+personID.String()+"/films", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []filmSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body)
}

func TestPersonsFilms_NotFoundWhenPersonMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/persons/"+uuid.New().String()+"/films", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonsSearch_ReturnsMatches(t *testing.T) {
	router, search := newTestRouter(t)
	person := model.Person{ID: uuid.New(), Name: "Tom Hanks"}
	seed(t, search, searchport.ResourcePersons, person.ID.String(), person)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/persons/search?query=Tom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []personDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Tom Hanks", body[0].Name)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
