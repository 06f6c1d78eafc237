package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// Generate handles POST /api/generate: brief in, full blueprint or error
// envelope out. Which section or field failed is logged here, not echoed to
// the caller.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeFailure(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := h.log.With(zap.String("request_id", requestID))

	var input domain.BriefInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blueprint, err := h.pipeline.CreateBlueprint(r.Context(), input)
	if err != nil {
		status, message := classify(err)
		log.Warn("blueprint request failed", zap.Int("status", status), zap.Error(err))
		writeFailure(w, status, message)
		return
	}

	writeSuccess(w, blueprint)
}

// classify maps the pipeline's error taxonomy onto HTTP statuses and
// caller-safe messages.
func classify(err error) (int, string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}
	var generationErr *domain.GenerationError
	if errors.As(err, &generationErr) {
		return http.StatusBadGateway, "the generation service is unavailable, try again shortly"
	}
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return http.StatusBadGateway, "the generation service returned an unusable plan, try again shortly"
	}
	return http.StatusInternalServerError, "unexpected error generating the blueprint"
}
