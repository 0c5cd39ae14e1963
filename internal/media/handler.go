package media

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amtop/blog/internal/oops"
	"github.com/amtop/blog/internal/response"
)

// Handler serves media bytes by asset id.
type Handler struct {
	store     Store
	staticDir string
	siteURL   string
}

// NewHandler creates a media Handler. staticDir is the media collection's
// directory on disk; siteURL is the base for redirects to relative urls and
// may be empty, in which case the request's own origin is used.
func NewHandler(store Store, staticDir, siteURL string) *Handler {
	return &Handler{
		store:     store,
		staticDir: staticDir,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

// Serve godoc
//
//	@Summary		Serve media by id
//	@Description	Redirects to the asset's absolute URL, or streams the file from local storage. Falls back to the stored relative url when the file is missing on disk.
//	@Tags			media
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Media id"
//	@Success		200	{file}		file
//	@Success		302	{string}	string	"redirect to the asset URL"
//	@Failure		400	{object}	response.MessageBody
//	@Failure		404	{object}	response.MessageBody
//	@Failure		500	{object}	response.MessageBody
//	@Router			/api/media/serve/{id} [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		response.Message(w, http.StatusBadRequest, "Missing id")
		return
	}

	asset, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		log.Debug().Str("media_id", id).Msg("media document not found")
		response.Message(w, http.StatusNotFound, "Media document not found")
		return
	}
	if err != nil {
		h.fail(w, r, oops.New(err, "failed to look up media %q", id))
		return
	}

	filename := asset.filename()
	if filename == "" {
		response.Message(w, http.StatusNotFound, "Media has no filename")
		return
	}

	if u := asset.url(); IsAbsoluteURL(u) {
		http.Redirect(w, r, u, http.StatusFound)
		return
	}

	path := filepath.Join(h.staticDir, filepath.Clean("/"+filename))
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		h.missingFile(w, r, asset)
		return
	}
	if err != nil {
		h.fail(w, r, oops.New(err, "failed to open media file"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(w, r, oops.New(err, "failed to stat media file"))
		return
	}
	if info.IsDir() {
		h.missingFile(w, r, asset)
		return
	}

	w.Header().Set("Content-Type", ContentType(filename))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	// io.Copy writes as fast as the client reads and stops on the first
	// failed write, so an aborted request releases the file promptly.
	if _, err := io.Copy(w, f); err != nil {
		log.Debug().Err(err).Str("media_id", asset.ID).Msg("media stream interrupted")
	}
}

// missingFile handles a record whose local file is gone: redirect to its
// stored url if it has one, otherwise 404 with the path that was tried.
func (h *Handler) missingFile(w http.ResponseWriter, r *http.Request, asset *Asset) {
	log := zerolog.Ctx(r.Context())
	filename := asset.filename()

	if u := asset.url(); u != "" {
		target := JoinURL(h.baseURL(r), u)
		log.Debug().Str("media_id", asset.ID).Str("target", target).Msg("media file missing on disk, redirecting to stored url")
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	log.Debug().Str("media_id", asset.ID).Str("filename", filename).Msg("media file not found on disk")
	response.MessageWith(w, http.StatusNotFound, "File not found on disk", map[string]interface{}{
		"path": h.staticDir + "/" + filename,
	})
}

func (h *Handler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Stack().Err(err).Msg("media serve failed")
	response.Message(w, http.StatusInternalServerError, "internal server error")
}
