package etl

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoflow/kinoflow/internal/sourcedb"
	"github.com/kinoflow/kinoflow/internal/state"
)

func openTestStore(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return store
}

func TestProducer_FilmsBySelf_MergesCrewAndGenres(t *testing.T) {
	src := sourcedb.NewFake()
	store := openTestStore(t)
	filmID := uuid.New()
	actorID := uuid.New()
	genreID := uuid.New()
	modified := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	src.FilmWorks = []sourcedb.ModifiedRow{{ID: filmID, Modified: modified}}
	src.FilmCrewRows[filmID] = []sourcedb.FilmCrewRow{
		{
			FilmID: filmID, FilmTitle: "The Matrix", FilmDescription: sql.NullString{String: "desc", Valid: true},
			FilmRating:     sql.NullFloat64{Float64: 8.7, Valid: true},
			PersonRole:     sql.NullString{String: "actor", Valid: true},
			PersonID:       uuid.NullUUID{UUID: actorID, Valid: true},
			PersonFullName: sql.NullString{String: "Keanu Reeves", Valid: true},
			GenreID:        uuid.NullUUID{UUID: genreID, Valid: true},
			GenreName:      sql.NullString{String: "Sci-Fi", Valid: true},
		},
	}

	p := NewProducer(src, store, 100)
	batch, err := p.FilmsBySelf(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)

	film := batch.Items[0]
	assert.Equal(t, "The Matrix", film.Title)
	assert.Contains(t, film.Actors, actorID)
	assert.Contains(t, film.Genres, genreID)
	assert.Equal(t, modified, batch.Watermark)
	assert.False(t, batch.IsEmpty())
}

func TestProducer_FilmsBySelf_EmptyWhenNoModifiedRows(t *testing.T) {
	src := sourcedb.NewFake()
	store := openTestStore(t)
	p := NewProducer(src, store, 100)

	batch, err := p.FilmsBySelf(context.Background())
	require.NoError(t, err)
	assert.True(t, batch.IsEmpty())
}

func TestProducer_FilmsByGenre_ResolvesFilmsThroughJoin(t *testing.T) {
	src := sourcedb.NewFake()
	store := openTestStore(t)
	genreID := uuid.New()
	filmID := uuid.New()
	modified := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)

	src.Genres = []sourcedb.ModifiedRow{{ID: genreID, Modified: modified}}
	src.GenreFilms[genreID] = []uuid.UUID{filmID}
	src.FilmCrewRows[filmID] = []sourcedb.FilmCrewRow{{FilmID: filmID, FilmTitle: "Heat"}}

	p := NewProducer(src, store, 100)
	batch, err := p.FilmsByGenre(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, "Heat", batch.Items[0].Title)
}

func TestProducer_Genres_SharesGenreStreamWatermark(t *testing.T) {
	src := sourcedb.NewFake()
	store := openTestStore(t)
	genreID := uuid.New()
	modified := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)

	src.Genres = []sourcedb.ModifiedRow{{ID: genreID, Modified: modified}}
	src.GenreEntities[genreID] = sourcedb.GenreRow{ID: genreID, Name: "Drama"}

	p := NewProducer(src, store, 100)
	batch, err := p.Genres(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, "Drama", batch.Items[0].Name)
	assert.Equal(t, state.StreamGenre, batch.Stream)
}

func TestMergeFilms_UnknownRoleIgnored(t *testing.T) {
	filmID := uuid.New()
	personID := uuid.New()
	rows := []sourcedb.FilmCrewRow{
		{
			FilmID: filmID, FilmTitle: "Arrival",
			PersonRole:     sql.NullString{String: "producer", Valid: true},
			PersonID:       uuid.NullUUID{UUID: personID, Valid: true},
			PersonFullName: sql.NullString{String: "Someone", Valid: true},
		},
	}
	films := MergeFilms(rows)
	require.Len(t, films, 1)
	assert.Empty(t, films[0].Actors)
	assert.Empty(t, films[0].Directors)
	assert.Empty(t, films[0].Writers)
}
