package sourcedb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Fake is an in-memory Reader for producer tests, grounded on the same
// interface-fake pattern as cacheport.Fake and searchport.Fake.
type Fake struct {
	FilmWorks     []ModifiedRow
	Genres        []ModifiedRow
	Persons       []ModifiedRow
	GenreFilms    map[uuid.UUID][]uuid.UUID // genre id -> film ids
	PersonFilms   map[uuid.UUID][]uuid.UUID // person id -> film ids
	FilmCrewRows  map[uuid.UUID][]FilmCrewRow
	GenreEntities map[uuid.UUID]GenreRow
}

func NewFake() *Fake {
	return &Fake{
		GenreFilms:    make(map[uuid.UUID][]uuid.UUID),
		PersonFilms:   make(map[uuid.UUID][]uuid.UUID),
		FilmCrewRows:  make(map[uuid.UUID][]FilmCrewRow),
		GenreEntities: make(map[uuid.UUID]GenreRow),
	}
}

var _ Reader = (*Fake)(nil)

func modifiedSince(rows []ModifiedRow, since time.Time, limit int) []ModifiedRow {
	var matched []ModifiedRow
	for _, r := range rows {
		if r.Modified.After(since) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Modified.Equal(matched[j].Modified) {
			return matched[i].Modified.Before(matched[j].Modified)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func (f *Fake) ModifiedFilmWorks(_ context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return modifiedSince(f.FilmWorks, since, limit), nil
}

func (f *Fake) ModifiedGenres(_ context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return modifiedSince(f.Genres, since, limit), nil
}

func (f *Fake) ModifiedPersons(_ context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return modifiedSince(f.Persons, since, limit), nil
}

func (f *Fake) FilmIDsByGenres(_ context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, gid := range genreIDs {
		for _, fid := range f.GenreFilms[gid] {
			if _, ok := seen[fid]; !ok {
				seen[fid] = struct{}{}
				out = append(out, fid)
			}
		}
	}
	return out, nil
}

func (f *Fake) FilmIDsByPersons(_ context.Context, personIDs []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, pid := range personIDs {
		for _, fid := range f.PersonFilms[pid] {
			if _, ok := seen[fid]; !ok {
				seen[fid] = struct{}{}
				out = append(out, fid)
			}
		}
	}
	return out, nil
}

func (f *Fake) HydrateFilms(_ context.Context, filmIDs []uuid.UUID) ([]FilmCrewRow, error) {
	var out []FilmCrewRow
	for _, id := range filmIDs {
		out = append(out, f.FilmCrewRows[id]...)
	}
	return out, nil
}

func (f *Fake) GenresByIDs(_ context.Context, ids []uuid.UUID) ([]GenreRow, error) {
	var out []GenreRow
	for _, id := range ids {
		if g, ok := f.GenreEntities[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}
