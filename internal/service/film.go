package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

// TTLs per spec.md §4.8: item-level 300s, list-level 60s.
const (
	itemTTL = 300 * time.Second
	listTTL = 60 * time.Second
)

// searchFields is the multi-match field set with boosts, per spec.md §4.8.
var searchFields = []string{"title^3", "description", "genres_names", "actors_names", "directors_names", "writers_names"}

const defaultFilmSort = "imdb_rating"

// FilmService implements C8.
type FilmService struct {
	search      searchport.Port
	cache       cacheport.Port
	getBreaker  *gobreaker.CircuitBreaker[docResult]
	listBreaker *gobreaker.CircuitBreaker[[][]byte]
}

// NewFilmService builds a FilmService over search and cache.
func NewFilmService(search searchport.Port, cache cacheport.Port) *FilmService {
	return &FilmService{
		search:      search,
		cache:       cache,
		getBreaker:  newGetBreaker("film_service.get"),
		listBreaker: newListBreaker("film_service.list"),
	}
}

// GetByID returns the film with id, or a KindNotFound error if absent.
func (s *FilmService) GetByID(ctx context.Context, id string) (*model.Film, error) {
	key := cacheport.FilmKey(id)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var film model.Film
		if err := json.Unmarshal(raw, &film); err == nil {
			return &film, nil
		}
		// Poisoned entry: fall through and refetch from the backend.
	}

	body, found, err := breakGet(ctx, s.getBreaker, "film_service.get_by_id", func(ctx context.Context) ([]byte, bool, error) {
		return s.search.Get(ctx, searchport.ResourceMovies, id)
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("film_service.get_by_id", err)
	}
	if !found {
		return nil, apierr.NotFound("film_service.get_by_id", errNotFound(id))
	}

	var film model.Film
	if err := json.Unmarshal(body, &film); err != nil {
		return nil, apierr.BackendUnavailable("film_service.get_by_id", err)
	}

	s.cache.Set(ctx, key, body, itemTTL)
	return &film, nil
}

// ListFilms lists films, optionally filtered to a single genre, sorted
// by sort (default "imdb_rating"). Query composition per spec.md §4.8:
// match_all when unfiltered, a nested genres.id term match otherwise.
func (s *FilmService) ListFilms(ctx context.Context, pageSize, pageNumber int, genreID, sort string) ([]*model.Film, error) {
	if sort == "" {
		sort = defaultFilmSort
	}
	key := cacheport.FilmsListKey(sort, genreID, pageSize, pageNumber)

	if films, ok := s.filmsFromCache(ctx, key); ok {
		return films, nil
	}

	var query searchport.Query = searchport.MatchAll{}
	if genreID != "" {
		query = searchport.Nested{
			Path:  "genres",
			Query: searchport.Term{Field: "genres.id", Value: genreID},
		}
	}

	return s.searchAndCache(ctx, key, query, pageSize, pageNumber, sort, "film_service.list_films")
}

// SearchFilms runs a relevance-scored multi-match search over
// {title^3, description, genres_names, actors_names, directors_names,
// writers_names} with fuzziness=AUTO (spec.md §4.8).
func (s *FilmService) SearchFilms(ctx context.Context, query string, pageSize, pageNumber int) ([]*model.Film, error) {
	key := cacheport.FilmSearchKey(query, pageSize, pageNumber)

	if films, ok := s.filmsFromCache(ctx, key); ok {
		return films, nil
	}

	q := searchport.MultiMatch{Query: query, Fields: searchFields, Fuzziness: "AUTO"}
	return s.searchAndCache(ctx, key, q, pageSize, pageNumber, "", "film_service.search_films")
}

// GetFilmsWithPerson lists films on which personID appears in any crew
// role, via a boolean OR over nested term matches on actors/directors/
// writers (spec.md §4.8).
func (s *FilmService) GetFilmsWithPerson(ctx context.Context, personID string, pageSize, pageNumber int, sort string) ([]*model.Film, error) {
	if sort == "" {
		sort = defaultFilmSort
	}
	key := cacheport.PersonFilmsKey(personID)

	if films, ok := s.filmsFromCache(ctx, key); ok {
		return films, nil
	}

	query := searchport.BoolShould{Should: []searchport.Query{
		searchport.Nested{Path: "actors", Query: searchport.Term{Field: "actors.id", Value: personID}},
		searchport.Nested{Path: "directors", Query: searchport.Term{Field: "directors.id", Value: personID}},
		searchport.Nested{Path: "writers", Query: searchport.Term{Field: "writers.id", Value: personID}},
	}}

	return s.searchAndCache(ctx, key, query, pageSize, pageNumber, sort, "film_service.get_films_with_person")
}

func (s *FilmService) filmsFromCache(ctx context.Context, key string) ([]*model.Film, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var films []*model.Film
	if err := json.Unmarshal(raw, &films); err != nil {
		return nil, false
	}
	return films, true
}

func (s *FilmService) searchAndCache(ctx context.Context, key string, query searchport.Query, pageSize, pageNumber int, sort, op string) ([]*model.Film, error) {
	docs, err := backoff.ExecuteWithBreaker(ctx, s.listBreaker, op, func(ctx context.Context) ([][]byte, error) {
		return s.search.SearchRaw(ctx, searchport.ResourceMovies, query, pageSize, pageNumber, sort)
	})
	if err != nil {
		return nil, apierr.BackendUnavailable(op, err)
	}

	films := make([]*model.Film, 0, len(docs))
	for _, doc := range docs {
		var film model.Film
		if err := json.Unmarshal(doc, &film); err != nil {
			return nil, apierr.BackendUnavailable(op, err)
		}
		films = append(films, &film)
	}

	if raw, err := json.Marshal(films); err == nil {
		s.cache.Set(ctx, key, raw, listTTL)
	}

	return films, nil
}
