// Package rest is the HTTP boundary. It decodes briefs, runs the pipeline,
// and renders the success/error envelope; it performs no business logic.
package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/voxline-studio/backend/internal/core/services"
)

// Handler manages the HTTP interface for the blueprint service.
type Handler struct {
	pipeline *services.Pipeline
	log      *zap.Logger
	router   *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(pipeline *services.Pipeline, log *zap.Logger) *Handler {
	h := &Handler{
		pipeline: pipeline,
		log:      log,
		router:   http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies http.Handler by delegating to the internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /api/generate", h.Generate)
}

// HealthCheck is a simple liveness endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
