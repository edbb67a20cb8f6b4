package api

import (
	"net/http"

	"github.com/ardelio/heart-risk-api/internal/api/handler"
	customMiddleware "github.com/ardelio/heart-risk-api/internal/api/middleware"
	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/security"
	"github.com/ardelio/heart-risk-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	tokens *security.TokenManager,
	assessments *service.AssessmentService,
	store handler.Pinger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMiddleware := customMiddleware.NewAuthMiddleware(tokens)
	assessmentHandler := handler.NewAssessmentHandler(assessments)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(store))

		// Works for both guests and logged-in users
		r.With(authMiddleware.OptionalAuth).Get("/assessment", assessmentHandler.Default)

		// Guest input, never persisted
		r.Post("/assessment/guest", assessmentHandler.Guest)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Post("/assessment", assessmentHandler.Save)
			r.Get("/progress", assessmentHandler.Progress)
		})
	})

	return r
}
