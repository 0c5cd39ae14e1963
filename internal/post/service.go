package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/amtop/blog/internal/media"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// store is the subset of Repository the service needs.
type store interface {
	ListPublished(ctx context.Context, limit int) ([]*Post, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*Post, error)
}

// View is a post as served to pages: the post plus its resolved cover.
type View struct {
	*Post
	Cover Cover `json:"cover"`
}

// Service contains the read logic for posts.
type Service struct {
	repo     store
	resolver *media.Resolver
}

// NewService creates a new post Service.
func NewService(repo store, resolver *media.Resolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// ListPublished returns up to limit published posts with resolved covers.
// Out-of-range limits fall back to the default or are capped.
func (s *Service) ListPublished(ctx context.Context, limit int) ([]View, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	posts, err := s.repo.ListPublished(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	views := make([]View, 0, len(posts))
	for _, p := range posts {
		views = append(views, s.view(p))
	}
	return views, nil
}

// GetBySlug returns one post with its resolved cover.
func (s *Service) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*View, error) {
	p, err := s.repo.GetBySlug(ctx, slug, includeDrafts)
	if err != nil {
		return nil, err
	}
	v := s.view(p)
	return &v, nil
}

// IsNotFound returns true when the error indicates a post was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (s *Service) view(p *Post) View {
	return View{
		Post: p,
		Cover: Cover{
			DisplayURLs: CoverImageURLs(s.resolver, p),
			Alt:         CoverImageAlt(p),
		},
	}
}
