// Package sqldb implements the assessment store on database/sql, covering
// the sqlite driver for local development and mysql for small deployments.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Store wraps a database/sql handle for sqlite or mysql
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens a sqlite or mysql store. For sqlite the DSN is a file path;
// for mysql it is a go-sql-driver DSN.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var driverName string
	switch driver {
	case "sqlite":
		driverName = "sqlite"
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn)
	case "mysql":
		driverName = "mysql"
		dsn += "?parseTime=true"
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db, driver: driver}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS risk_assessments (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			age INTEGER NOT NULL,
			gender VARCHAR(10) NOT NULL,
			systolic_bp INTEGER NOT NULL,
			diastolic_bp INTEGER NOT NULL,
			cholesterol DOUBLE PRECISION NOT NULL,
			diabetes BOOLEAN NOT NULL,
			risk_score VARCHAR(10) NOT NULL,
			summary TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// AssessmentRepository implements domain.AssessmentRepository on database/sql
type AssessmentRepository struct {
	db *sql.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(store *Store) *AssessmentRepository {
	return &AssessmentRepository{db: store.db}
}

// Create inserts a new assessment, assigning its id and timestamp
func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO risk_assessments
			(id, user_id, age, gender, systolic_bp, diastolic_bp, cholesterol, diabetes, risk_score, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID.String(),
		a.UserID.String(),
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
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		var idStr, uidStr, scoreStr string

		if err := rows.Scan(
			&idStr,
			&uidStr,
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

		if a.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid assessment id %q: %w", idStr, err)
		}
		if a.UserID, err = uuid.Parse(uidStr); err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", uidStr, err)
		}
		a.RiskScore = domain.RiskScore(scoreStr)
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return assessments, nil
}
