package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ardelio/heart-risk-api/internal/ai"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// ResultCache caches the generator output for the fixed default profile.
// A nil cache disables caching entirely.
type ResultCache interface {
	GetDefault(ctx context.Context) (*domain.RiskResult, error)
	SetDefault(ctx context.Context, result *domain.RiskResult) error
}

// AssessmentView is the per-request view of a risk result returned to
// callers of all three assessment variants
type AssessmentView struct {
	ID        string           `json:"id"`
	RiskScore domain.RiskScore `json:"riskScore"`
	Summary   string           `json:"summary"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AssessmentService orchestrates validation output, risk generation and
// conditional persistence
type AssessmentService struct {
	generator ai.Generator
	repo      domain.AssessmentRepository
	cache     ResultCache
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(generator ai.Generator, repo domain.AssessmentRepository, cache ResultCache) *AssessmentService {
	return &AssessmentService{
		generator: generator,
		repo:      repo,
		cache:     cache,
	}
}

// Default runs the anonymous read-only variant against the fixed
// default profile. Nothing is persisted; the id prefix records whether
// an identity happened to be attached. The temp- id is not durable and
// corresponds to nothing in the store.
func (s *AssessmentService) Default(ctx context.Context, authenticated bool) (*AssessmentView, error) {
	result, err := s.defaultResult(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	prefix := "guest-"
	if authenticated {
		prefix = "temp-"
	}

	return &AssessmentView{
		ID:        prefix + uuid.NewString(),
		RiskScore: result.RiskScore,
		Summary:   result.Summary,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// defaultResult returns the generator output for the default profile,
// consulting the cache when one is configured
func (s *AssessmentService) defaultResult(ctx context.Context) (*domain.RiskResult, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDefault(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := s.generator.GenerateRiskSummary(ctx, domain.DefaultProfile())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDefault(ctx, result); err != nil {
			log.Warn().Err(err).Msg("failed to cache default assessment")
		}
	}

	return result, nil
}

// Guest runs the guest-computed variant: generation only, no persistence
func (s *AssessmentService) Guest(ctx context.Context, metrics domain.HealthMetrics) (*AssessmentView, error) {
	result, err := s.generator.GenerateRiskSummary(ctx, metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	return &AssessmentView{
		ID:        "guest-" + uuid.NewString(),
		RiskScore: result.RiskScore,
		Summary:   result.Summary,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Save runs the member-persisted variant: generation followed by exactly
// one store insert tagged with the caller's user id. The store assigns
// the record id and timestamp.
func (s *AssessmentService) Save(ctx context.Context, userID uuid.UUID, metrics domain.HealthMetrics) (*AssessmentView, error) {
	result, err := s.generator.GenerateRiskSummary(ctx, metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	assessment := &domain.Assessment{
		UserID:      userID,
		Age:         metrics.Age,
		Gender:      metrics.Gender,
		SystolicBP:  metrics.SystolicBP,
		DiastolicBP: metrics.DiastolicBP,
		Cholesterol: metrics.Cholesterol,
		Diabetes:    metrics.Diabetes,
		RiskScore:   result.RiskScore,
		Summary:     result.Summary,
	}

	if err := s.repo.Create(ctx, assessment); err != nil {
		// The generated result is discarded; the caller must retry
		// the whole request
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return &AssessmentView{
		ID:        assessment.ID.String(),
		RiskScore: assessment.RiskScore,
		Summary:   assessment.Summary,
		CreatedAt: assessment.CreatedAt,
	}, nil
}

// History returns the caller's persisted assessments, newest first
func (s *AssessmentService) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Assessment, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	assessments, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if assessments == nil {
		assessments = []domain.Assessment{}
	}

	return assessments, nil
}
