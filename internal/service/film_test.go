package service

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

func seedFilm(t *testing.T, search *searchport.Fake, film *model.Film) {
	t.Helper()
	body, err := json.Marshal(film)
	require.NoError(t, err)
	_, err = search.BulkIndex(context.Background(), searchport.ResourceMovies, []searchport.Document{{ID: film.ID.String(), Body: body}})
	require.NoError(t, err)
}

func TestFilmService_GetByID_CachesOnMiss(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	film := model.NewFilm(uuid.New(), "Arrival")
	seedFilm(t, search, film)

	svc := NewFilmService(search, cache)
	got, err := svc.GetByID(context.Background(), film.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Arrival", got.Title)

	_, ok := cache.Get(context.Background(), cacheport.FilmKey(film.ID.String()))
	assert.True(t, ok)
}

func TestFilmService_GetByID_ServesFromCache(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	film := model.NewFilm(uuid.New(), "Arrival")
	body, err := json.Marshal(film)
	require.NoError(t, err)
	cache.Seed(cacheport.FilmKey(film.ID.String()), body)

	svc := NewFilmService(search, cache)
	got, err := svc.GetByID(context.Background(), film.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Arrival", got.Title)
}

func TestFilmService_GetByID_NotFound(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	svc := NewFilmService(search, cache)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, apierr.KindNotFound, apierr.As(err))
}

func TestFilmService_GetByID_PoisonedCacheFallsBackToBackend(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	film := model.NewFilm(uuid.New(), "Arrival")
	seedFilm(t, search, film)
	cache.Seed(cacheport.FilmKey(film.ID.String()), []byte("not json"))

	svc := NewFilmService(search, cache)
	got, err := svc.GetByID(context.Background(), film.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Arrival", got.Title)
}

func TestFilmService_ListFilms_WithGenreReturnsFilmInGenre(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	genreID := uuid.New()
	film := model.NewFilm(uuid.New(), "Dune")
	film.AddGenre(model.Genre{ID: genreID, Name: "Sci-Fi"})
	seedFilm(t, search, film)

	svc := NewFilmService(search, cache)
	films, err := svc.ListFilms(context.Background(), 20, 1, genreID.String(), "")
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Dune", films[0].Title)
}

func TestFilmService_SearchFilms_ReturnsMatchingFilm(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	film := model.NewFilm(uuid.New(), "The Matrix")
	seedFilm(t, search, film)

	svc := NewFilmService(search, cache)
	films, err := svc.SearchFilms(context.Background(), "matrix", 20, 1)
	require.NoError(t, err)
	require.Len(t, films, 1)
}

func TestFilmService_GetFilmsWithPerson_CachesUnderPersonFilmsKey(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	personID := uuid.New()
	film := model.NewFilm(uuid.New(), "Heat")
	film.AddCrew(model.RoleActor, model.Person{ID: personID, Name: "Al Pacino"})
	seedFilm(t, search, film)

	svc := NewFilmService(search, cache)
	films, err := svc.GetFilmsWithPerson(context.Background(), personID.String(), 20, 1, "")
	require.NoError(t, err)
	require.Len(t, films, 1)

	_, ok := cache.Get(context.Background(), cacheport.PersonFilmsKey(personID.String()))
	assert.True(t, ok)
}
