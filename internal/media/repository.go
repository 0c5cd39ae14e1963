package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no asset has the requested id.
var ErrNotFound = errors.New("media not found")

// Store looks up asset records. Implementations return ErrNotFound for
// unknown ids and must be safe for concurrent use.
type Store interface {
	FindByID(ctx context.Context, id string) (*Asset, error)
}

// Repository reads assets from Postgres. Media is public content, so lookups
// are not filtered by caller.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FindByID fetches an asset by id.
func (r *Repository) FindByID(ctx context.Context, id string) (*Asset, error) {
	a := &Asset{}
	err := r.db.QueryRow(ctx,
		`SELECT id::text, filename, url, alt, mime_type, filesize, created_at, updated_at
		 FROM media WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Filename, &a.URL, &a.Alt, &a.MimeType, &a.Filesize, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return a, nil
}

// isInvalidText checks for invalid_text_representation (22P02), which is what
// a non-uuid id produces.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
