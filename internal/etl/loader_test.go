package etl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

func testPolicy() backoff.Policy {
	return backoff.Policy{Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond, MaxAttempts: 2}
}

func TestLoader_EnsureIndices_CreatesEveryResource(t *testing.T) {
	search := searchport.NewFake()
	loader := NewLoader(search, testPolicy())

	err := loader.EnsureIndices(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, searchport.AllResources, search.Created)
}

func TestLoader_LoadFilms_SubmitsDocsAndReturnsCount(t *testing.T) {
	search := searchport.NewFake()
	loader := NewLoader(search, testPolicy())
	film := model.NewFilm(uuid.New(), "Dune")

	n, err := loader.LoadFilms(context.Background(), []*model.Film{film})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	body, ok, err := search.Get(context.Background(), ResourceMovies, film.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, string(body), "Dune")
}

func TestLoader_LoadFilms_EmptyIsNoOp(t *testing.T) {
	search := searchport.NewFake()
	loader := NewLoader(search, testPolicy())

	n, err := loader.LoadFilms(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLoader_LoadGenres_SubmitsDocs(t *testing.T) {
	search := searchport.NewFake()
	loader := NewLoader(search, testPolicy())
	genre := model.Genre{ID: uuid.New(), Name: "Noir"}

	n, err := loader.LoadGenres(context.Background(), []model.Genre{genre})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
