package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amtop/blog/internal/oops"
	"github.com/amtop/blog/internal/response"
)

// Handler holds HTTP handlers for the posts API.
type Handler struct {
	svc *Service
}

// NewHandler creates a new post Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List godoc
//
//	@Summary		List published posts
//	@Description	Published posts, newest first, each with resolved cover image URLs.
//	@Tags			posts
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of posts (default 50, max 100)"
//	@Success		200		{object}	response.Envelope{data=[]View}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/api/posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	posts, err := h.svc.ListPublished(r.Context(), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Stack().Err(oops.New(err, "failed to list posts")).Msg("posts list failed")
		response.InternalError(w)
		return
	}

	response.OK(w, posts)
}

// Get godoc
//
//	@Summary		Get a published post
//	@Description	Looks a published post up by slug (or id) and resolves its cover image URLs.
//	@Tags			posts
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug or id"
//	@Success		200		{object}	response.Envelope{data=View}
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/api/posts/{slug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

// Preview godoc
//
//	@Summary		Preview a post
//	@Description	Same as Get but drafts are visible. Requires an editor token.
//	@Tags			posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			slug	path		string	true	"Post slug or id"
//	@Success		200		{object}	response.Envelope{data=View}
//	@Failure		401		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/api/posts/{slug}/preview [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, includeDrafts bool) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		response.NotFound(w, "post not found")
		return
	}

	p, err := h.svc.GetBySlug(r.Context(), slug, includeDrafts)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "post not found")
			return
		}
		zerolog.Ctx(r.Context()).Error().Stack().Err(oops.New(err, "failed to get post %q", slug)).Msg("post get failed")
		response.InternalError(w)
		return
	}

	response.OK(w, p)
}
