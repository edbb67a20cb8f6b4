package service

import (
	"context"

	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGenerator mocks ai.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockGenerator) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGenerator) GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error) {
	args := m.Called(ctx, metrics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskResult), args.Error(1)
}

// MockAssessmentRepository mocks domain.AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Assessment, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}

// MockResultCache mocks ResultCache
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) GetDefault(ctx context.Context) (*domain.RiskResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskResult), args.Error(1)
}

func (m *MockResultCache) SetDefault(ctx context.Context, result *domain.RiskResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
