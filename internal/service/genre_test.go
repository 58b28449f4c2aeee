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

func seedGenre(t *testing.T, search *searchport.Fake, genre model.Genre) {
	t.Helper()
	body, err := json.Marshal(genre)
	require.NoError(t, err)
	_, err = search.BulkIndex(context.Background(), searchport.ResourceGenres, []searchport.Document{{ID: genre.ID.String(), Body: body}})
	require.NoError(t, err)
}

func TestGenreService_GetByID(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	genre := model.Genre{ID: uuid.New(), Name: "Drama"}
	seedGenre(t, search, genre)

	svc := NewGenreService(search, cache)
	got, err := svc.GetByID(context.Background(), genre.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)
}

func TestGenreService_GetByID_NotFound(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	svc := NewGenreService(search, cache)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, apierr.KindNotFound, apierr.As(err))
}

func TestGenreService_ListGenres_CachesList(t *testing.T) {
	search := searchport.NewFake()
	cache := cacheport.NewFake()
	seedGenre(t, search, model.Genre{ID: uuid.New(), Name: "Comedy"})

	svc := NewGenreService(search, cache)
	genres, err := svc.ListGenres(context.Background(), 20, 1)
	require.NoError(t, err)
	require.Len(t, genres, 1)

	_, ok := cache.Get(context.Background(), cacheport.GenresListKey(20, 1))
	assert.True(t, ok)
}
