package sourcedb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kinoflow/kinoflow/internal/apierr"
)

// ModifiedRow is a (id, modified) pair returned by a modified-row scan,
// the unit the producer uses to compute the next watermark.
type ModifiedRow struct {
	ID       uuid.UUID
	Modified time.Time
}

// FilmCrewRow is one row of the joined hydration query: a film's own
// columns paired with at most one crew member and at most one genre.
// A film with N crew members and M genres yields N*M rows; the producer
// folds these back into one Film per fw_id (spec.md §4.5.1).
type FilmCrewRow struct {
	FilmID          uuid.UUID
	FilmTitle       string
	FilmDescription sql.NullString
	FilmRating      sql.NullFloat64
	PersonRole      sql.NullString
	PersonID        uuid.NullUUID
	PersonFullName  sql.NullString
	GenreID         uuid.NullUUID
	GenreName       sql.NullString
}

// GenreRow is a full genre entity row.
type GenreRow struct {
	ID          uuid.UUID
	Name        string
	Description sql.NullString
}

// ModifiedFilmWorks returns up to limit film_work rows with
// modified > since, ordered by modified then id (spec.md §4.5 "films-by-self").
func (db *DB) ModifiedFilmWorks(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return db.modifiedRows(ctx, TableFilmWork, since, limit)
}

// ModifiedGenres returns up to limit genre rows with modified > since.
func (db *DB) ModifiedGenres(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return db.modifiedRows(ctx, TableGenre, since, limit)
}

// ModifiedPersons returns up to limit person rows with modified > since.
func (db *DB) ModifiedPersons(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error) {
	return db.modifiedRows(ctx, TablePerson, since, limit)
}

func (db *DB) modifiedRows(ctx context.Context, table string, since time.Time, limit int) ([]ModifiedRow, error) {
	query := fmt.Sprintf(`
		SELECT id, modified
		FROM content.%s
		WHERE modified > $1
		ORDER BY modified ASC, id ASC
		LIMIT $2
	`, table)

	rows, err := db.conn.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, apierr.SourceTransient("sourcedb.modified_rows", fmt.Errorf("%s: %w", table, err))
	}
	defer rows.Close()

	var out []ModifiedRow
	for rows.Next() {
		var r ModifiedRow
		if err := rows.Scan(&r.ID, &r.Modified); err != nil {
			return nil, apierr.SourceFatal("sourcedb.modified_rows", fmt.Errorf("%s: %w", table, err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.SourceTransient("sourcedb.modified_rows", fmt.Errorf("%s: %w", table, err))
	}
	return out, nil
}

// FilmIDsByGenres resolves the film ids affected by a set of modified
// genre ids, via the genre_film_work join (spec.md §4.5 "films-by-genre").
func (db *DB) FilmIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT DISTINCT fw.id
		FROM content.film_work fw
		JOIN content.genre_film_work gfw ON gfw.film_work_id = fw.id
		WHERE gfw.genre_id = ANY($1)
		ORDER BY fw.id
	`
	return db.filmIDs(ctx, query, genreIDs)
}

// FilmIDsByPersons resolves the film ids affected by a set of modified
// person ids, via the person_film_work join (spec.md §4.5 "films-by-person").
func (db *DB) FilmIDsByPersons(ctx context.Context, personIDs []uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT DISTINCT fw.id
		FROM content.film_work fw
		JOIN content.person_film_work pfw ON pfw.film_work_id = fw.id
		WHERE pfw.person_id = ANY($1)
		ORDER BY fw.id
	`
	return db.filmIDs(ctx, query, personIDs)
}

func (db *DB) filmIDs(ctx context.Context, query string, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.conn.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, apierr.SourceTransient("sourcedb.film_ids", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apierr.SourceFatal("sourcedb.film_ids", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.SourceTransient("sourcedb.film_ids", err)
	}
	return out, nil
}

// HydrateFilms runs the single joined query pulling every crew member
// and genre for the given film ids (spec.md §4.5 step 5). Films with no
// crew or genre rows still appear once with all join columns null.
func (db *DB) HydrateFilms(ctx context.Context, filmIDs []uuid.UUID) ([]FilmCrewRow, error) {
	if len(filmIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT
			fw.id, fw.title, fw.description, fw.rating,
			pfw.role, p.id, p.full_name,
			g.id, g.name
		FROM content.film_work fw
		LEFT JOIN content.person_film_work pfw ON pfw.film_work_id = fw.id
		LEFT JOIN content.person p ON p.id = pfw.person_id
		LEFT JOIN content.genre_film_work gfw ON gfw.film_work_id = fw.id
		LEFT JOIN content.genre g ON g.id = gfw.genre_id
		WHERE fw.id = ANY($1)
	`

	rows, err := db.conn.QueryContext(ctx, query, filmIDs)
	if err != nil {
		return nil, apierr.SourceTransient("sourcedb.hydrate_films", err)
	}
	defer rows.Close()

	var out []FilmCrewRow
	for rows.Next() {
		var r FilmCrewRow
		if err := rows.Scan(
			&r.FilmID, &r.FilmTitle, &r.FilmDescription, &r.FilmRating,
			&r.PersonRole, &r.PersonID, &r.PersonFullName,
			&r.GenreID, &r.GenreName,
		); err != nil {
			return nil, apierr.SourceFatal("sourcedb.hydrate_films", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.SourceTransient("sourcedb.hydrate_films", err)
	}
	return out, nil
}

// GenresByIDs hydrates full genre entities for the genres-as-entities
// stream (spec.md §4.5.2).
func (db *DB) GenresByIDs(ctx context.Context, ids []uuid.UUID) ([]GenreRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
		SELECT g.id, g.name, g.description
		FROM content.genre g
		WHERE g.id = ANY($1)
		ORDER BY g.id
	`
	rows, err := db.conn.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, apierr.SourceTransient("sourcedb.genres_by_ids", err)
	}
	defer rows.Close()

	var out []GenreRow
	for rows.Next() {
		var r GenreRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, apierr.SourceFatal("sourcedb.genres_by_ids", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.SourceTransient("sourcedb.genres_by_ids", err)
	}
	return out, nil
}
