package sourcedb

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ Reader = (*DB)(nil)

// Table names in the content schema, shared by every modified-row query.
const (
	TableFilmWork = "film_work"
	TableGenre    = "genre"
	TablePerson   = "person"
)

// Reader is the read surface the ETL producer depends on, satisfied by
// *DB in production and by a fake in tests.
type Reader interface {
	ModifiedFilmWorks(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error)
	ModifiedGenres(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error)
	ModifiedPersons(ctx context.Context, since time.Time, limit int) ([]ModifiedRow, error)
	FilmIDsByGenres(ctx context.Context, genreIDs []uuid.UUID) ([]uuid.UUID, error)
	FilmIDsByPersons(ctx context.Context, personIDs []uuid.UUID) ([]uuid.UUID, error)
	HydrateFilms(ctx context.Context, filmIDs []uuid.UUID) ([]FilmCrewRow, error)
	GenresByIDs(ctx context.Context, ids []uuid.UUID) ([]GenreRow, error)
}

// DB wraps the pooled connection to the source catalog.
type DB struct {
	conn *sql.DB
}

// Open connects to dsn and configures the pool for a single
// long-lived ETL worker: a handful of connections is enough since the
// orchestrator is single-threaded and never issues concurrent queries.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sourcedb: open: %w", err)
	}

	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sourcedb: ping: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases all pooled connections.
func (db *DB) Close() error {
	return db.conn.Close()
}
