package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ardelio/heart-risk-api/internal/api"
	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/ardelio/heart-risk-api/internal/security"
	"github.com/ardelio/heart-risk-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a deterministic stand-in for the AI generator
type fakeGenerator struct {
	result *domain.RiskResult
	err    error
	calls  int
}

func (g *fakeGenerator) Name() string       { return "fake" }
func (g *fakeGenerator) IsConfigured() bool { return true }

func (g *fakeGenerator) GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// fakeRepo is an in-memory store that assigns ids and timestamps
type fakeRepo struct {
	created []domain.Assessment
	err     error
}

func (r *fakeRepo) Create(ctx context.Context, a *domain.Assessment) error {
	if r.err != nil {
		return r.err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	r.created = append(r.created, *a)
	return nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Assessment, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Assessment
	for i := len(r.created) - 1; i >= 0 && len(out) < limit; i-- {
		if r.created[i].UserID == userID {
			out = append(out, r.created[i])
		}
	}
	return out, nil
}

type stubStore struct{}

func (stubStore) Ping(ctx context.Context) error { return nil }

type testEnv struct {
	router    http.Handler
	tokens    *security.TokenManager
	generator *fakeGenerator
	repo      *fakeRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	generator := &fakeGenerator{
		result: &domain.RiskResult{RiskScore: domain.RiskMedium, Summary: "Watch your blood pressure."},
	}
	repo := &fakeRepo{}
	tokens := security.NewTokenManager("test-secret-key-with-32-chars!!", 30*24*time.Hour)
	assessments := service.NewAssessmentService(generator, repo, nil)

	return &testEnv{
		router:    api.NewRouter(&config.Config{}, tokens, assessments, stubStore{}),
		tokens:    tokens,
		generator: generator,
		repo:      repo,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	return rec, decoded
}

func validBody() map[string]any {
	return map[string]any{
		"age":         45,
		"gender":      "Male",
		"systolicBP":  140,
		"diastolicBP": 90,
		"cholesterol": 210,
		"diabetes":    false,
	}
}

func TestDefaultAssessment_Guest(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/assessment", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "General AI-generated assessment for guest.", body["message"])

	data := body["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["id"].(string), "guest-"))
	assert.Contains(t, []string{"Low", "Medium", "High"}, data["riskScore"])
	assert.NotEmpty(t, data["summary"])
	assert.NotEmpty(t, data["createdAt"])
	assert.Empty(t, env.repo.created, "read endpoint must not persist")
}

func TestDefaultAssessment_Authenticated(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.tokens.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodGet, "/api/v1/assessment", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Personalized assessment for a@x.com.", body["message"])

	data := body["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["id"].(string), "temp-"))
	assert.Empty(t, env.repo.created, "read endpoint must not persist even when authenticated")
}

func TestDefaultAssessment_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.generator.err = errors.New("upstream down")

	rec, body := env.do(t, http.MethodGet, "/api/v1/assessment", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Something went wrong while fetching AI assessment.", body["message"])
}

func TestGuestAssessment(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment/guest", "", validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Guest AI assessment generated successfully.", body["message"])

	data := body["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["id"].(string), "guest-"))
	assert.Contains(t, []string{"Low", "Medium", "High"}, data["riskScore"])
	assert.Empty(t, env.repo.created, "guest endpoint must never persist")
}

func TestGuestAssessment_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.generator.err = errors.New("upstream down")

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment/guest", "", validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate guest AI assessment.", body["message"])
}

func TestSaveAssessment_NoToken(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment", "", validBody())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No token provided. Please log in.", body["message"])
	assert.Equal(t, 0, env.generator.calls, "generator must not run without auth")
}

func TestSaveAssessment_Success(t *testing.T) {
	env := newTestEnv(t)

	userID := uuid.New()
	token, err := env.tokens.Issue(userID, "a@x.com")
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment", token, validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Assessment saved successfully.", body["message"])

	data := body["data"].(map[string]any)

	require.Len(t, env.repo.created, 1)
	record := env.repo.created[0]
	assert.Equal(t, record.ID.String(), data["id"], "response id must match the persisted record")
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, 45, record.Age)
	assert.Equal(t, domain.RiskMedium, record.RiskScore)
}

func TestSaveAssessment_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.repo.err = errors.New("insert failed")

	token, err := env.tokens.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment", token, validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Assessment was generated but could not be saved. Please try again.", body["message"])
	assert.Equal(t, 1, env.generator.calls)
}

func TestSaveAssessment_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.generator.err = errors.New("upstream down")

	token, err := env.tokens.Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodPost, "/api/v1/assessment", token, validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error generating or saving assessment.", body["message"])
	assert.Empty(t, env.repo.created)
}

func TestValidation_RejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"age too low", "age", 0},
		{"age too high", "age", 151},
		{"unknown gender", "gender", "X"},
		{"systolic too low", "systolicBP", 49},
		{"systolic too high", "systolicBP", 251},
		{"diastolic too high", "diastolicBP", 201},
		{"negative cholesterol", "cholesterol", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			body := validBody()
			body[tc.field] = tc.value

			rec, decoded := env.do(t, http.MethodPost, "/api/v1/assessment/guest", "", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, decoded["success"])

			violations := decoded["errors"].([]any)
			require.NotEmpty(t, violations)
			fields := make([]string, 0, len(violations))
			for _, v := range violations {
				fields = append(fields, v.(map[string]any)["field"].(string))
			}
			assert.Contains(t, fields, tc.field)

			assert.Equal(t, 0, env.generator.calls, "invalid input must not reach the generator")
			assert.Empty(t, env.repo.created, "invalid input must not reach the store")
		})
	}
}

func TestValidation_RejectsMissingFields(t *testing.T) {
	for _, field := range []string{"age", "gender", "systolicBP", "diastolicBP", "cholesterol", "diabetes"} {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t)

			body := validBody()
			delete(body, field)

			rec, decoded := env.do(t, http.MethodPost, "/api/v1/assessment/guest", "", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			violations := decoded["errors"].([]any)
			require.Len(t, violations, 1)
			assert.Equal(t, field, violations[0].(map[string]any)["field"])
		})
	}
}

func TestValidation_AcceptsBoundaryValues(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"age lower bound", "age", 1},
		{"age upper bound", "age", 150},
		{"systolic lower bound", "systolicBP", 50},
		{"systolic upper bound", "systolicBP", 250},
		{"diastolic lower bound", "diastolicBP", 30},
		{"diastolic upper bound", "diastolicBP", 200},
		{"zero cholesterol", "cholesterol", 0},
		{"diabetes true", "diabetes", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			body := validBody()
			body[tc.field] = tc.value

			rec, _ := env.do(t, http.MethodPost, "/api/v1/assessment/guest", "", body)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestProgress(t *testing.T) {
	env := newTestEnv(t)

	userID := uuid.New()
	token, err := env.tokens.Issue(userID, "a@x.com")
	require.NoError(t, err)

	// No token
	rec, _ := env.do(t, http.MethodGet, "/api/v1/progress", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Empty history
	rec, body := env.do(t, http.MethodGet, "/api/v1/progress", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["data"])

	// Save one and read it back
	rec, _ = env.do(t, http.MethodPost, "/api/v1/assessment", token, validBody())
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/progress?limit=5", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	record := data[0].(map[string]any)
	assert.Equal(t, userID.String(), record["userId"])
	assert.Equal(t, "Medium", record["riskScore"])

	// Another user sees nothing
	otherToken, err := env.tokens.Issue(uuid.New(), "b@x.com")
	require.NoError(t, err)
	rec, body = env.do(t, http.MethodGet, "/api/v1/progress", otherToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["data"])

	// Bad limit
	rec, _ = env.do(t, http.MethodGet, "/api/v1/progress?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, _ = env.do(t, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessment/guest", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, env.generator.calls)
}
