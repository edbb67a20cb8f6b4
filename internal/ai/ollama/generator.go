package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ardelio/heart-risk-api/internal/ai"
	"github.com/ardelio/heart-risk-api/internal/domain"
)

// Generator implements ai.Generator for Ollama
type Generator struct {
	host         string
	defaultModel string
	client       *http.Client
}

// NewGenerator creates a new Ollama generator
func NewGenerator(host, defaultModel string) ai.Generator {
	if defaultModel == "" {
		defaultModel = "llama3"
	}
	return &Generator{
		host:         host,
		defaultModel: defaultModel,
		client:       &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider identifier
func (g *Generator) Name() string {
	return "ollama"
}

// IsConfigured checks if the provider has a host configured
func (g *Generator) IsConfigured() bool {
	return g.host != ""
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// GenerateRiskSummary produces a risk score and summary via a local model
func (g *Generator) GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error) {
	prompt := ai.BuildPrompt(metrics)

	ollamaReq := ollamaRequest{
		Model:  g.defaultModel,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.2,
		},
	}

	body, err := json.Marshal(ollamaReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result, err := ai.ParseRiskResult(ollamaResp.Response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ollama output: %w", err)
	}

	return result, nil
}
