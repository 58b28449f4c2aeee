package sourcedb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFake_ModifiedFilmWorks_FiltersOrdersAndLimits(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	f := NewFake()
	f.FilmWorks = []ModifiedRow{
		{ID: idC, Modified: base.Add(3 * time.Hour)},
		{ID: idA, Modified: base.Add(1 * time.Hour)},
		{ID: idB, Modified: base.Add(2 * time.Hour)},
	}

	rows, err := f.ModifiedFilmWorks(context.Background(), base, 2)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, idA, rows[0].ID)
	assert.Equal(t, idB, rows[1].ID)
}

func TestFake_FilmIDsByGenres_DedupsAcrossGenres(t *testing.T) {
	f := NewFake()
	shared := uuid.New()
	g1, g2 := uuid.New(), uuid.New()
	f.GenreFilms[g1] = []uuid.UUID{shared}
	f.GenreFilms[g2] = []uuid.UUID{shared}

	ids, err := f.FilmIDsByGenres(context.Background(), []uuid.UUID{g1, g2})
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{shared}, ids)
}

func TestFake_GenresByIDs_SkipsUnknown(t *testing.T) {
	f := NewFake()
	known := uuid.New()
	f.GenreEntities[known] = GenreRow{ID: known, Name: "Drama"}

	rows, err := f.GenresByIDs(context.Background(), []uuid.UUID{known, uuid.New()})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Drama", rows[0].Name)
}
