package service

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

// GenreService implements C9: the same read-through policy as C8, with
// item TTL 300s and list TTL 60s (spec.md §4.9).
type GenreService struct {
	search      searchport.Port
	cache       cacheport.Port
	getBreaker  *gobreaker.CircuitBreaker[docResult]
	listBreaker *gobreaker.CircuitBreaker[[][]byte]
}

// NewGenreService builds a GenreService over search and cache.
func NewGenreService(search searchport.Port, cache cacheport.Port) *GenreService {
	return &GenreService{
		search:      search,
		cache:       cache,
		getBreaker:  newGetBreaker("genre_service.get"),
		listBreaker: newListBreaker("genre_service.list"),
	}
}

// GetByID returns the genre with id, or a KindNotFound error if absent.
func (s *GenreService) GetByID(ctx context.Context, id string) (*model.Genre, error) {
	key := cacheport.GenreKey(id)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var genre model.Genre
		if err := json.Unmarshal(raw, &genre); err == nil {
			return &genre, nil
		}
	}

	body, found, err := breakGet(ctx, s.getBreaker, "genre_service.get_by_id", func(ctx context.Context) ([]byte, bool, error) {
		return s.search.Get(ctx, searchport.ResourceGenres, id)
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("genre_service.get_by_id", err)
	}
	if !found {
		return nil, apierr.NotFound("genre_service.get_by_id", errNotFound(id))
	}

	var genre model.Genre
	if err := json.Unmarshal(body, &genre); err != nil {
		return nil, apierr.BackendUnavailable("genre_service.get_by_id", err)
	}

	s.cache.Set(ctx, key, body, itemTTL)
	return &genre, nil
}

// ListGenres lists every genre, paginated.
func (s *GenreService) ListGenres(ctx context.Context, pageSize, pageNumber int) ([]*model.Genre, error) {
	key := cacheport.GenresListKey(pageSize, pageNumber)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var genres []*model.Genre
		if err := json.Unmarshal(raw, &genres); err == nil {
			return genres, nil
		}
	}

	docs, err := backoff.ExecuteWithBreaker(ctx, s.listBreaker, "genre_service.list_genres", func(ctx context.Context) ([][]byte, error) {
		return s.search.List(ctx, searchport.ResourceGenres, pageSize, pageNumber, "")
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("genre_service.list_genres", err)
	}

	genres := make([]*model.Genre, 0, len(docs))
	for _, doc := range docs {
		var genre model.Genre
		if err := json.Unmarshal(doc, &genre); err != nil {
			return nil, apierr.BackendUnavailable("genre_service.list_genres", err)
		}
		genres = append(genres, &genre)
	}

	if raw, err := json.Marshal(genres); err == nil {
		s.cache.Set(ctx, key, raw, listTTL)
	}

	return genres, nil
}
