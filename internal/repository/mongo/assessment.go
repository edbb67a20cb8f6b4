package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assessmentCollection = "risk_assessments"

// Store holds the mongo client and database handle
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection
func NewStore(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Close disconnects the mongo client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

type assessmentDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Age         int       `bson:"age"`
	Gender      string    `bson:"gender"`
	SystolicBP  int       `bson:"systolic_bp"`
	DiastolicBP int       `bson:"diastolic_bp"`
	Cholesterol float64   `bson:"cholesterol"`
	Diabetes    bool      `bson:"diabetes"`
	RiskScore   string    `bson:"risk_score"`
	Summary     string    `bson:"summary"`
	CreatedAt   time.Time `bson:"created_at"`
}

// AssessmentRepository implements domain.AssessmentRepository on MongoDB
type AssessmentRepository struct {
	coll *mongo.Collection
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(store *Store) *AssessmentRepository {
	return &AssessmentRepository{coll: store.db.Collection(assessmentCollection)}
}

// Create inserts a new assessment, assigning its id and timestamp
func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	doc := assessmentDoc{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Age:         a.Age,
		Gender:      a.Gender,
		SystolicBP:  a.SystolicBP,
		DiastolicBP: a.DiastolicBP,
		Cholesterol: a.Cholesterol,
		Diabetes:    a.Diabetes,
		RiskScore:   string(a.RiskScore),
		Summary:     a.Summary,
		CreatedAt:   a.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's assessments, newest first
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Assessment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer cursor.Close(ctx)

	var assessments []domain.Assessment
	for cursor.Next(ctx) {
		var doc assessmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode assessment: %w", err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid assessment id %q: %w", doc.ID, err)
		}
		uid, err := uuid.Parse(doc.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", doc.UserID, err)
		}

		assessments = append(assessments, domain.Assessment{
			ID:          id,
			UserID:      uid,
			Age:         doc.Age,
			Gender:      doc.Gender,
			SystolicBP:  doc.SystolicBP,
			DiastolicBP: doc.DiastolicBP,
			Cholesterol: doc.Cholesterol,
			Diabetes:    doc.Diabetes,
			RiskScore:   domain.RiskScore(doc.RiskScore),
			Summary:     doc.Summary,
			CreatedAt:   doc.CreatedAt,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return assessments, nil
}
