package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RiskScore is the coarse risk level produced by the AI generator
type RiskScore string

const (
	RiskLow    RiskScore = "Low"
	RiskMedium RiskScore = "Medium"
	RiskHigh   RiskScore = "High"
)

// Valid reports whether the score is one of the known levels
func (s RiskScore) Valid() bool {
	switch s {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// HealthMetrics is a validated, fully-typed set of health inputs
type HealthMetrics struct {
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	SystolicBP  int     `json:"systolicBP"`
	DiastolicBP int     `json:"diastolicBP"`
	Cholesterol float64 `json:"cholesterol"`
	Diabetes    bool    `json:"diabetes"`
}

// DefaultProfile is the synthetic profile used for the anonymous
// read-only assessment
func DefaultProfile() HealthMetrics {
	return HealthMetrics{
		Age:         40,
		Gender:      "Male",
		SystolicBP:  130,
		DiastolicBP: 85,
		Cholesterol: 200,
		Diabetes:    false,
	}
}

// RiskResult is the generator's output for a set of health metrics
type RiskResult struct {
	RiskScore RiskScore `json:"riskScore"`
	Summary   string    `json:"summary"`
}

// Assessment is a persisted risk assessment, owned by the store.
// ID and CreatedAt are assigned by the repository on insert.
type Assessment struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	SystolicBP  int       `json:"systolicBP"`
	DiastolicBP int       `json:"diastolicBP"`
	Cholesterol float64   `json:"cholesterol"`
	Diabetes    bool      `json:"diabetes"`
	RiskScore   RiskScore `json:"riskScore"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AssessmentRepository defines the interface for assessment storage
type AssessmentRepository interface {
	// Create inserts a new assessment, assigning ID and CreatedAt
	Create(ctx context.Context, assessment *Assessment) error

	// ListByUser returns a user's assessments, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Assessment, error)
}
