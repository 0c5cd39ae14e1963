package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	assets map[string]*Asset
	err    error
	calls  int
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (*Asset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/media/serve/{id}", h.Serve)
	r.Head("/api/media/serve/{id}", h.Serve)
	return r
}

func serve(t *testing.T, h *Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestServeMissingID(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store, t.TempDir(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/media/serve/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Missing id"}`, rec.Body.String())
	assert.Zero(t, store.calls)
}

func TestServeDocumentNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{}, t.TempDir(), "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/abc")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Media document not found"}`, rec.Body.String())
}

func TestServeLookupFailure(t *testing.T) {
	h := NewHandler(&fakeStore{err: errors.New("connection reset")}, t.TempDir(), "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/abc")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestServeFileErrorIsNotTreatedAsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644))
	store := &fakeStore{assets: map[string]*Asset{
		"m11": {ID: "m11", Filename: strPtr("a.png/x"), URL: strPtr("/rel.png")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m11")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestServeNoFilename(t *testing.T) {
	store := &fakeStore{assets: map[string]*Asset{
		"m2": {ID: "m2"},
		"m5": {ID: "m5", Filename: strPtr("")},
	}}
	h := NewHandler(store, t.TempDir(), "")

	for _, id := range []string{"m2", "m5"} {
		rec := serve(t, h, http.MethodGet, "/api/media/serve/"+id)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Media has no filename"}`, rec.Body.String())
	}
}

func TestServeRedirectsAbsoluteURL(t *testing.T) {
	dir := t.TempDir()
	// A file with the same name exists locally; the absolute url still wins.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y.png"), []byte("local"), 0o644))
	store := &fakeStore{assets: map[string]*Asset{
		"m3": {ID: "m3", Filename: strPtr("y.png"), URL: strPtr("https://cdn.x/y.png")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m3")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.x/y.png", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "local")
}

func TestServeFileNotOnDisk(t *testing.T) {
	store := &fakeStore{assets: map[string]*Asset{
		"m4": {ID: "m4", Filename: strPtr("a.png")},
	}}
	h := NewHandler(store, "testdata-missing", "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m4")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"File not found on disk","path":"testdata-missing/a.png"}`, rec.Body.String())
}

func TestServeMissingFileRedirectsToRelativeURL(t *testing.T) {
	store := &fakeStore{assets: map[string]*Asset{
		"m6": {ID: "m6", Filename: strPtr("a.png"), URL: strPtr("/api/media/file/a.png")},
	}}

	h := NewHandler(store, t.TempDir(), "https://blog.example.com/")
	rec := serve(t, h, http.MethodGet, "/api/media/serve/m6")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://blog.example.com/api/media/file/a.png", rec.Header().Get("Location"))

	h = NewHandler(store, t.TempDir(), "")
	rec = serve(t, h, http.MethodGet, "/api/media/serve/m6")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://example.com/api/media/file/a.png", rec.Header().Get("Location"))
}

func TestServeStreamsLocalFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("\x89PNG fake image bytes")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), content, 0o644))
	store := &fakeStore{assets: map[string]*Asset{
		"m7": {ID: "m7", Filename: strPtr("a.png"), URL: strPtr("/api/media/file/a.png")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m7")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "21", rec.Header().Get("Content-Length"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestServeHeadHasNoBody(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.JPG"), []byte("jpeg"), 0o644))
	store := &fakeStore{assets: map[string]*Asset{
		"m8": {ID: "m8", Filename: strPtr("photo.JPG")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodHead, "/api/media/serve/m8")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Zero(t, rec.Body.Len())
}

func TestServeCannotEscapeStaticDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "media")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))
	store := &fakeStore{assets: map[string]*Asset{
		"m9": {ID: "m9", Filename: strPtr("../secret.txt")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m9")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"secret"`)
}

func TestServeDirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	store := &fakeStore{assets: map[string]*Asset{
		"m10": {ID: "m10", Filename: strPtr("sub")},
	}}
	h := NewHandler(store, dir, "")

	rec := serve(t, h, http.MethodGet, "/api/media/serve/m10")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "File not found on disk")
}
