// Package health exposes liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/amtop/blog/internal/response"
)

const readinessTimeout = 5 * time.Second

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one named readiness dependency.
type Check struct {
	Name   string
	Pinger Pinger
}

// Handler serves the probes.
type Handler struct {
	storageMode string
	checks      []Check
}

// NewHandler creates a health Handler. Checks run in order on readiness.
func NewHandler(storageMode string, checks ...Check) *Handler {
	return &Handler{storageMode: storageMode, checks: checks}
}

// Liveness godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	response.Envelope
//	@Router		/health [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// Readiness godoc
//
//	@Summary		Readiness probe
//	@Description	Pings every dependency (database, storage backend, cache when enabled).
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	response.Envelope
//	@Failure		503	{object}	response.Envelope
//	@Router			/health/ready [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	for _, c := range h.checks {
		if err := c.Pinger.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("check", c.Name).Msg("readiness check failed")
			response.ServiceUnavailable(w, c.Name+" unavailable")
			return
		}
	}

	response.OK(w, map[string]string{"status": "ready", "storage": h.storageMode})
}
