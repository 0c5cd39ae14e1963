package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusBadRequest, "Missing id")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Missing id"}`, rec.Body.String())
}

func TestMessageWithCannotOverrideMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	MessageWith(rec, http.StatusNotFound, "File not found on disk", map[string]interface{}{
		"path":    "media/a.png",
		"message": "ignored",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"File not found on disk","path":"media/a.png"}`, rec.Body.String())
}

func TestEnvelopeHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"n": 1})
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NotFound(rec, "post not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"post not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	InternalError(rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
