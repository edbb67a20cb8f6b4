package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ardelio/heart-risk-api/internal/api/middleware"
	"github.com/ardelio/heart-risk-api/internal/api/response"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/ardelio/heart-risk-api/internal/service"
	"github.com/rs/zerolog/log"
)

// AssessmentHandler handles risk assessment endpoints
type AssessmentHandler struct {
	assessments *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// Default serves the anonymous read-only assessment built from the fixed
// default profile. Works for guests and logged-in users; never persists.
func (h *AssessmentHandler) Default(w http.ResponseWriter, r *http.Request) {
	email, authenticated := middleware.GetUserEmail(r.Context())

	view, err := h.assessments.Default(r.Context(), authenticated)
	if err != nil {
		log.Error().Err(err).Msg("default assessment failed")
		response.InternalError(w, "Something went wrong while fetching AI assessment.")
		return
	}

	message := "General AI-generated assessment for guest."
	if authenticated {
		message = "Personalized assessment for " + email + "."
	}

	response.OK(w, message, view)
}

// Guest serves a computed assessment for guest-provided input without
// persisting anything
func (h *AssessmentHandler) Guest(w http.ResponseWriter, r *http.Request) {
	var input domain.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid request body.")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.ValidationFailed(w, fieldViolations(err))
		return
	}

	view, err := h.assessments.Guest(r.Context(), input.Metrics())
	if err != nil {
		log.Error().Err(err).Msg("guest assessment failed")
		response.InternalError(w, "Failed to generate guest AI assessment.")
		return
	}

	response.OK(w, "Guest AI assessment generated successfully.", view)
}

// Save computes and persists an assessment for the authenticated caller
func (h *AssessmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	// RequireAuth already enforces this; defensive check only
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var input domain.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid request body.")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.ValidationFailed(w, fieldViolations(err))
		return
	}

	view, err := h.assessments.Save(r.Context(), userID, input.Metrics())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("saved assessment failed")
		if errors.Is(err, domain.ErrPersistence) {
			response.InternalError(w, "Assessment was generated but could not be saved. Please try again.")
			return
		}
		response.InternalError(w, "Error generating or saving assessment.")
		return
	}

	response.OK(w, "Assessment saved successfully.", view)
}

// Progress returns the caller's assessment history for trend charts
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "Invalid limit parameter.")
			return
		}
		limit = parsed
	}

	assessments, err := h.assessments.History(r.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("history fetch failed")
		response.InternalError(w, "Failed to fetch assessment history.")
		return
	}

	response.OK(w, "Assessment history retrieved successfully.", assessments)
}
