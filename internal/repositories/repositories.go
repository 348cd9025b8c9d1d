// package repositories provides persistence layer implementations for all catalog entities.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chinook/internal/shared"
)

// Querier is the subset of [sql.DB], [sql.Conn] and [sql.Tx] the repositories need.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Catalog bundles every repository over a single [Querier].
type Catalog struct {
	Artists    *ArtistRepository
	Albums     *AlbumRepository
	Tracks     *TrackRepository
	Genres     *GenreRepository
	MediaTypes *MediaTypeRepository
	Playlists  *PlaylistRepository
}

// NewCatalog creates all repositories sharing q and logger.
func NewCatalog(q Querier, logger *log.Logger) *Catalog {
	s := store{q: q, logger: logger}
	return &Catalog{
		Artists:    &ArtistRepository{store: s},
		Albums:     &AlbumRepository{store: s},
		Tracks:     &TrackRepository{store: s},
		Genres:     &GenreRepository{store: s},
		MediaTypes: &MediaTypeRepository{store: s},
		Playlists:  &PlaylistRepository{store: s},
	}
}

// store carries the connection and logger shared by every repository.
type store struct {
	q      Querier
	logger *log.Logger
}

// scanner is implemented by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// fail logs a store failure and converts it into an [shared.ErrStore] error.
func (s store) fail(err error, msg string, kv ...any) error {
	s.logger.Helper()
	s.logger.Error(msg, append(kv, "error", err)...)
	return fmt.Errorf("%w: %s: %w", shared.ErrStore, msg, err)
}

// one scans a single row, mapping [sql.ErrNoRows] to [shared.ErrNotFound].
func one[T any](s store, row *sql.Row, scan func(scanner) (T, error), msg string, kv ...any) (T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%w: %s", shared.ErrNotFound, msg)
	}
	if err != nil {
		var zero T
		return zero, s.fail(err, msg, kv...)
	}
	return v, nil
}

// all runs query and scans every row. An empty result is an empty, non-nil slice.
func all[T any](ctx context.Context, s store, scan func(scanner) (T, error), msg, query string, args ...any) ([]T, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(err, msg)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, s.fail(err, msg)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, s.fail(err, msg)
	}

	return items, nil
}

// exists runs a COUNT(*) query. On failure it answers true alongside the error.
func (s store) exists(ctx context.Context, msg, query string, id int64) (bool, error) {
	var count int64
	if err := s.q.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return true, s.fail(err, msg, "id", id)
	}
	return count > 0, nil
}

// insert executes an INSERT and returns the generated identifier.
func (s store) insert(ctx context.Context, msg, query string, args ...any) (int64, error) {
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(err, msg)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, s.fail(err, msg)
	}
	return id, nil
}

// remove executes a DELETE and reports [shared.ErrNotFound] when nothing was deleted.
func (s store) remove(ctx context.Context, msg, query string, args ...any) error {
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return s.fail(err, msg)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return s.fail(err, msg)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, msg)
	}
	return nil
}

// assignments collects the column = ? pairs of a partial update.
type assignments struct {
	columns []string
	args    []any
}

func (a *assignments) set(column string, value any) {
	a.columns = append(a.columns, column+" = ?")
	a.args = append(a.args, value)
}

// searchTerm wraps text for a substring LIKE match.
func searchTerm(text string) string {
	return "%" + text + "%"
}
