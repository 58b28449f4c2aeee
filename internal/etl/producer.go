package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/sourcedb"
	"github.com/kinoflow/kinoflow/internal/state"
)

// Producer runs the four CDC streams (spec.md §4.5, §4.5.2), turning
// watermark-driven source rows into denormalized documents.
type Producer struct {
	source sourcedb.Reader
	store  *state.Store
	limit  int
}

// NewProducer builds a Producer reading from source, tracking watermarks
// in store, fetching at most limit rows per stream tick.
func NewProducer(source sourcedb.Reader, store *state.Store, limit int) *Producer {
	return &Producer{source: source, store: store, limit: limit}
}

// Batch is one stream's tick output: the documents to load, and the
// watermark to commit once the Loader confirms they were written.
type Batch[T any] struct {
	Items     []T
	Stream    state.Stream
	Watermark time.Time
}

// IsEmpty reports whether the stream produced nothing this tick, in
// which case the orchestrator must not advance its watermark.
func (b Batch[T]) IsEmpty() bool { return len(b.Items) == 0 }

// FilmsBySelf runs the "films-by-self" stream: film_work rows modified
// since the last watermark, hydrated directly by their own ids.
func (p *Producer) FilmsBySelf(ctx context.Context) (Batch[*model.Film], error) {
	return p.filmBatch(ctx, state.StreamFilmWork, func(since time.Time) ([]sourcedb.ModifiedRow, error) {
		return p.source.ModifiedFilmWorks(ctx, since, p.limit)
	}, func(rows []sourcedb.ModifiedRow) ([]uuid.UUID, error) {
		return idsOf(rows), nil
	})
}

// FilmsByGenre runs the "films-by-genre" stream: genre rows modified
// since the last watermark, joined through genre_film_work to their films.
func (p *Producer) FilmsByGenre(ctx context.Context) (Batch[*model.Film], error) {
	return p.filmBatch(ctx, state.StreamGenre, func(since time.Time) ([]sourcedb.ModifiedRow, error) {
		return p.source.ModifiedGenres(ctx, since, p.limit)
	}, func(rows []sourcedb.ModifiedRow) ([]uuid.UUID, error) {
		return p.source.FilmIDsByGenres(ctx, idsOf(rows))
	})
}

// FilmsByPerson runs the "films-by-person" stream: person rows modified
// since the last watermark, joined through person_film_work to their films.
func (p *Producer) FilmsByPerson(ctx context.Context) (Batch[*model.Film], error) {
	return p.filmBatch(ctx, state.StreamPerson, func(since time.Time) ([]sourcedb.ModifiedRow, error) {
		return p.source.ModifiedPersons(ctx, since, p.limit)
	}, func(rows []sourcedb.ModifiedRow) ([]uuid.UUID, error) {
		return p.source.FilmIDsByPersons(ctx, idsOf(rows))
	})
}

// filmBatch is the shared shape of the three film streams: read modified
// rows, resolve affected film ids, hydrate, merge (spec.md §4.5 steps 1-6).
func (p *Producer) filmBatch(
	ctx context.Context,
	stream state.Stream,
	modified func(since time.Time) ([]sourcedb.ModifiedRow, error),
	resolveFilmIDs func(rows []sourcedb.ModifiedRow) ([]uuid.UUID, error),
) (Batch[*model.Film], error) {
	since, err := p.store.Watermark(stream)
	if err != nil {
		return Batch[*model.Film]{}, fmt.Errorf("etl: producer: watermark %s: %w", stream, err)
	}

	rows, err := modified(since)
	if err != nil {
		return Batch[*model.Film]{}, err
	}
	if len(rows) == 0 {
		return Batch[*model.Film]{Stream: stream}, nil
	}

	filmIDs, err := resolveFilmIDs(rows)
	if err != nil {
		return Batch[*model.Film]{}, err
	}

	crewRows, err := p.source.HydrateFilms(ctx, filmIDs)
	if err != nil {
		return Batch[*model.Film]{}, err
	}

	films := MergeFilms(crewRows)

	return Batch[*model.Film]{
		Items:     films,
		Stream:    stream,
		Watermark: rows[len(rows)-1].Modified,
	}, nil
}

// Genres runs the genres-as-entities stream (spec.md §4.5.2): modified
// genre rows emitted directly as Genre documents, sharing the genre
// stream's watermark with FilmsByGenre.
func (p *Producer) Genres(ctx context.Context) (Batch[model.Genre], error) {
	since, err := p.store.Watermark(state.StreamGenre)
	if err != nil {
		return Batch[model.Genre]{}, fmt.Errorf("etl: producer: watermark %s: %w", state.StreamGenre, err)
	}

	rows, err := p.source.ModifiedGenres(ctx, since, p.limit)
	if err != nil {
		return Batch[model.Genre]{}, err
	}
	if len(rows) == 0 {
		return Batch[model.Genre]{Stream: state.StreamGenre}, nil
	}

	genreRows, err := p.source.GenresByIDs(ctx, idsOf(rows))
	if err != nil {
		return Batch[model.Genre]{}, err
	}

	genres := make([]model.Genre, 0, len(genreRows))
	for _, g := range genreRows {
		genre := model.Genre{ID: g.ID, Name: g.Name}
		if g.Description.Valid {
			genre.Description = g.Description.String
		}
		genres = append(genres, genre)
	}

	return Batch[model.Genre]{
		Items:     genres,
		Stream:    state.StreamGenre,
		Watermark: rows[len(rows)-1].Modified,
	}, nil
}

func idsOf(rows []sourcedb.ModifiedRow) []uuid.UUID {
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

// MergeFilms implements the row-merge algorithm (spec.md §4.5.1):
// one Film per fw_id, built up by folding every joined crew/genre row.
func MergeFilms(rows []sourcedb.FilmCrewRow) []*model.Film {
	films := make(map[uuid.UUID]*model.Film)
	order := make([]uuid.UUID, 0)

	for _, row := range rows {
		film, ok := films[row.FilmID]
		if !ok {
			film = model.NewFilm(row.FilmID, row.FilmTitle)
			if row.FilmDescription.Valid {
				film.Description = row.FilmDescription.String
			}
			if row.FilmRating.Valid {
				rating := row.FilmRating.Float64
				film.IMDBRating = &rating
			}
			films[row.FilmID] = film
			order = append(order, row.FilmID)
		}

		if row.GenreID.Valid && row.GenreName.Valid {
			film.AddGenre(model.Genre{ID: row.GenreID.UUID, Name: row.GenreName.String})
		}
		if !row.PersonID.Valid {
			continue
		}
		role := model.Role(row.PersonRole.String)
		if !role.Valid() {
			continue
		}
		name := ""
		if row.PersonFullName.Valid {
			name = row.PersonFullName.String
		}
		film.AddCrew(role, model.Person{ID: row.PersonID.UUID, Name: name})
	}

	out := make([]*model.Film, 0, len(order))
	for _, id := range order {
		out = append(out, films[id])
	}
	return out
}
