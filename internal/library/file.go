package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	ShowsFile  = "shows.json"
	MoviesFile = "movies.json"
	lockFile   = ".tvtrack.lock"

	lockRetryDelay = 50 * time.Millisecond
)

// showsDocument is the on-disk shape of shows.json.
type showsDocument struct {
	Shows []Show `json:"shows"`
}

// moviesDocument is the on-disk shape of movies.json.
type moviesDocument struct {
	Movies []Movie `json:"movies"`
}

// FileBackend keeps each collection as the sole content of a JSON file in one
// directory. Writes go through a temp file and rename, under an advisory lock
// shared with readers.
type FileBackend struct {
	dir  string
	lock *flock.Flock
}

var (
	_ Backend = (*FileBackend)(nil)
	_ Updater = (*FileBackend)(nil)
)

// NewFileBackend creates the data directory if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFile)),
	}, nil
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) LoadShows(ctx context.Context) ([]Show, error) {
	var shows []Show
	err := b.shared(ctx, func() (err error) {
		shows, err = b.unlocked().LoadShows(ctx)
		return err
	})
	return shows, err
}

func (b *FileBackend) SaveShows(ctx context.Context, shows []Show) error {
	return b.Update(ctx, func(tx Backend) error {
		return tx.SaveShows(ctx, shows)
	})
}

func (b *FileBackend) LoadMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := b.shared(ctx, func() (err error) {
		movies, err = b.unlocked().LoadMovies(ctx)
		return err
	})
	return movies, err
}

func (b *FileBackend) SaveMovies(ctx context.Context, movies []Movie) error {
	return b.Update(ctx, func(tx Backend) error {
		return tx.SaveMovies(ctx, movies)
	})
}

// Update holds the exclusive lock while fn runs, so a load and the save based
// on it cannot interleave with another process.
func (b *FileBackend) Update(ctx context.Context, fn func(tx Backend) error) error {
	if _, err := b.lock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("lock %s: %w", b.dir, err)
	}
	defer func() { _ = b.lock.Unlock() }()
	return fn(b.unlocked())
}

func (b *FileBackend) shared(ctx context.Context, fn func() error) error {
	if _, err := b.lock.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("lock %s: %w", b.dir, err)
	}
	defer func() { _ = b.lock.Unlock() }()
	return fn()
}

// Close is a no-op; locks are released after every operation.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) unlocked() fileTx {
	return fileTx{dir: b.dir}
}

// fileTx reads and writes the data files assuming the caller holds the lock.
type fileTx struct {
	dir string
}

func (f fileTx) LoadShows(ctx context.Context) ([]Show, error) {
	var doc showsDocument
	if err := f.read(ShowsFile, &doc); err != nil {
		return nil, err
	}
	if doc.Shows == nil {
		doc.Shows = []Show{}
	}
	return doc.Shows, nil
}

func (f fileTx) SaveShows(ctx context.Context, shows []Show) error {
	if shows == nil {
		shows = []Show{}
	}
	return f.write(ShowsFile, showsDocument{Shows: shows})
}

func (f fileTx) LoadMovies(ctx context.Context) ([]Movie, error) {
	var doc moviesDocument
	if err := f.read(MoviesFile, &doc); err != nil {
		return nil, err
	}
	if doc.Movies == nil {
		doc.Movies = []Movie{}
	}
	return doc.Movies, nil
}

func (f fileTx) SaveMovies(ctx context.Context, movies []Movie) error {
	if movies == nil {
		movies = []Movie{}
	}
	return f.write(MoviesFile, moviesDocument{Movies: movies})
}

func (f fileTx) Close() error {
	return nil
}

// read decodes name into v. A missing file leaves v untouched.
func (f fileTx) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// write replaces name atomically with the indented JSON encoding of v.
func (f fileTx) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(f.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
