package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amtop/blog/internal/media"
)

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = errors.New("post not found")

// Repository reads posts from Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// selectPost joins both media references so a post comes back populated.
// A reference whose media row is gone yields a bare id.
const selectPost = `
	SELECT p.id::text, p.title, p.slug, p.excerpt, p.content, p.read_time, p.status,
	       p.published_at, p.created_at, p.updated_at,
	       p.cover_image_id::text, c.id::text, c.filename, c.url, c.alt, c.mime_type, c.filesize, c.created_at, c.updated_at,
	       p.image_id::text, i.id::text, i.filename, i.url, i.alt, i.mime_type, i.filesize, i.created_at, i.updated_at
	FROM posts p
	LEFT JOIN media c ON c.id = p.cover_image_id
	LEFT JOIN media i ON i.id = p.image_id`

// ListPublished returns published posts, newest first.
func (r *Repository) ListPublished(ctx context.Context, limit int) ([]*Post, error) {
	rows, err := r.db.Query(ctx,
		selectPost+`
		WHERE p.status = 'published'
		ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// GetBySlug fetches a post by slug, or by id when no slug matches.
// Drafts are included only when includeDrafts is set.
func (r *Repository) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*Post, error) {
	row := r.db.QueryRow(ctx,
		selectPost+`
		WHERE (p.slug = $1 OR p.id::text = $1)
		  AND ($2 OR p.status = 'published')
		ORDER BY (p.slug = $1) DESC NULLS LAST
		LIMIT 1`,
		slug, includeDrafts,
	)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

// mediaColumns receives one LEFT JOINed media row.
type mediaColumns struct {
	refID     *string
	id        *string
	filename  *string
	url       *string
	alt       *string
	mimeType  *string
	filesize  *int64
	createdAt *time.Time
	updatedAt *time.Time
}

func (m *mediaColumns) dest() []any {
	return []any{&m.refID, &m.id, &m.filename, &m.url, &m.alt, &m.mimeType, &m.filesize, &m.createdAt, &m.updatedAt}
}

func (m *mediaColumns) ref() *media.Ref {
	if m.refID == nil {
		return nil
	}
	if m.id == nil {
		return media.RefID(*m.refID)
	}
	a := &media.Asset{
		ID:       *m.id,
		Filename: m.filename,
		URL:      m.url,
		Alt:      m.alt,
		MimeType: m.mimeType,
		Filesize: m.filesize,
	}
	if m.createdAt != nil {
		a.CreatedAt = *m.createdAt
	}
	if m.updatedAt != nil {
		a.UpdatedAt = *m.updatedAt
	}
	return media.RefDoc(a)
}

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	var cover, image mediaColumns
	dest := []any{&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ReadTime, &p.Status,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt}
	dest = append(dest, cover.dest()...)
	dest = append(dest, image.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.CoverImage = cover.ref()
	p.Image = image.ref()
	return p, nil
}
