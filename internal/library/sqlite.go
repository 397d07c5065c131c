package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/tvtrack/internal/migrations"
)

// SQLiteBackend keeps both collections in one SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

var (
	_ Backend = (*SQLiteBackend)(nil)
	_ Updater = (*SQLiteBackend)(nil)
)

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	b, err := NewSQLiteBackend(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// NewSQLiteBackend applies the schema to an already open database.
func NewSQLiteBackend(db *sql.DB) (*SQLiteBackend, error) {
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// busyTimeoutMS bounds how long a writer waits for another process's
// transaction before giving up.
const busyTimeoutMS = 5000

// querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (b *SQLiteBackend) LoadShows(ctx context.Context) ([]Show, error) {
	return queryShows(ctx, b.db)
}

func (b *SQLiteBackend) SaveShows(ctx context.Context, shows []Show) error {
	return b.Update(ctx, func(tx Backend) error {
		return tx.SaveShows(ctx, shows)
	})
}

func (b *SQLiteBackend) LoadMovies(ctx context.Context) ([]Movie, error) {
	return queryMovies(ctx, b.db)
}

func (b *SQLiteBackend) SaveMovies(ctx context.Context, movies []Movie) error {
	return b.Update(ctx, func(tx Backend) error {
		return tx.SaveMovies(ctx, movies)
	})
}

// Update runs fn inside one IMMEDIATE transaction on a dedicated connection.
// The write lock is taken up front, so reads inside fn already exclude other
// writers.
func (b *SQLiteBackend) Update(ctx context.Context, fn func(tx Backend) error) error {
	conn, err := b.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS)); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	rollback := func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
	}

	if err := fn(sqliteTx{q: conn}); err != nil {
		rollback()
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		rollback()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// sqliteTx runs against a connection that is already inside a transaction.
type sqliteTx struct {
	q querier
}

func (t sqliteTx) LoadShows(ctx context.Context) ([]Show, error) {
	return queryShows(ctx, t.q)
}

func (t sqliteTx) SaveShows(ctx context.Context, shows []Show) error {
	if _, err := t.q.ExecContext(ctx, "DELETE FROM shows"); err != nil {
		return fmt.Errorf("clear shows: %w", err)
	}
	for i, s := range shows {
		if _, err := t.q.ExecContext(ctx,
			"INSERT INTO shows (position, name, last_season, last_episode) VALUES (?, ?, ?, ?)",
			i, s.Name, s.LastSeason, s.LastEpisode,
		); err != nil {
			return fmt.Errorf("insert show %q: %w", s.Name, mapSQLiteError(err))
		}
	}
	return nil
}

func (t sqliteTx) LoadMovies(ctx context.Context) ([]Movie, error) {
	return queryMovies(ctx, t.q)
}

func (t sqliteTx) SaveMovies(ctx context.Context, movies []Movie) error {
	if _, err := t.q.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	for i, m := range movies {
		if _, err := t.q.ExecContext(ctx,
			"INSERT INTO movies (position, tmdb_id, title, added_date) VALUES (?, ?, ?, ?)",
			i, m.TMDBID, m.Title, m.AddedDate,
		); err != nil {
			return fmt.Errorf("insert movie %d: %w", m.TMDBID, mapSQLiteError(err))
		}
	}
	return nil
}

func (t sqliteTx) Close() error {
	return nil
}

func queryShows(ctx context.Context, q querier) ([]Show, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT name, last_season, last_episode FROM shows ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	shows := []Show{}
	for rows.Next() {
		var s Show
		if err := rows.Scan(&s.Name, &s.LastSeason, &s.LastEpisode); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	return shows, nil
}

func queryMovies(ctx context.Context, q querier) ([]Movie, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT title, tmdb_id, added_date FROM movies ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	movies := []Movie{}
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.Title, &m.TMDBID, &m.AddedDate); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}
