package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssessmentRepository implements domain.AssessmentRepository
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *DB) *AssessmentRepository {
	return &AssessmentRepository{pool: db.Pool}
}

// Create inserts a new assessment, assigning its id and timestamp
func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO risk_assessments
			(id, user_id, age, gender, systolic_bp, diastolic_bp, cholesterol, diabetes, risk_score, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Age,
		a.Gender,
		a.SystolicBP,
		a.DiastolicBP,
		a.Cholesterol,
		a.Diabetes,
		string(a.RiskScore),
		a.Summary,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's assessments, newest first
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Assessment, error) {
	query := `
		SELECT id, user_id, age, gender, systolic_bp, diastolic_bp, cholesterol, diabetes, risk_score, summary, created_at
		FROM risk_assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		var scoreStr string

		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Age,
			&a.Gender,
			&a.SystolicBP,
			&a.DiastolicBP,
			&a.Cholesterol,
			&a.Diabetes,
			&scoreStr,
			&a.Summary,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a.RiskScore = domain.RiskScore(scoreStr)
		assessments = append(assessments, a)
	}

	return assessments, nil
}
