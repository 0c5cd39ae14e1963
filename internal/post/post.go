// Package post reads blog posts and resolves their cover images.
package post

import (
	"time"

	"github.com/amtop/blog/internal/media"
)

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is a blog post with its media references populated one level deep.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        *string    `json:"slug,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Content     *string    `json:"content,omitempty"`
	CoverImage  *media.Ref `json:"coverImage,omitempty"`
	Image       *media.Ref `json:"image,omitempty"` // legacy, kept for older posts
	ReadTime    *string    `json:"readTime,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Slots lists the post's image references in precedence order.
func (p *Post) Slots() []*media.Ref {
	return []*media.Ref{p.CoverImage, p.Image}
}

// Cover is what a page needs to render a post's cover image.
type Cover struct {
	media.DisplayURLs
	Alt string `json:"alt"`
}

// CoverImageURLs returns the primary and fallback display URLs for p.
func CoverImageURLs(r *media.Resolver, p *Post) media.DisplayURLs {
	return r.DisplayURLs(p.Slots()...)
}

// CoverImageAlt returns the cover asset's alt text, or the post title.
func CoverImageAlt(p *Post) string {
	return media.Alt(p.Title, p.Slots()...)
}
