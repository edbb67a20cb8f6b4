package gemini

import (
	"context"
	"fmt"

	"github.com/ardelio/heart-risk-api/internal/ai"
	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Generator struct {
	apiKey string
	model  string
}

func NewGenerator(cfg config.GeminiConfig) *Generator {
	return &Generator{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (g *Generator) Name() string {
	return "gemini"
}

func (g *Generator) IsConfigured() bool {
	return g.apiKey != ""
}

func (g *Generator) defaultModel() string {
	if g.model != "" {
		return g.model
	}
	return "gemini-1.5-flash"
}

func (g *Generator) GenerateRiskSummary(ctx context.Context, metrics domain.HealthMetrics) (*domain.RiskResult, error) {
	if !g.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(g.defaultModel())
	// Low temperature keeps the risk score stable for identical profiles
	var temperature float32 = 0.2
	generativeModel.Temperature = &temperature

	prompt := ai.BuildPrompt(metrics)

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	result, err := ai.ParseRiskResult(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gemini output: %w", err)
	}

	return result, nil
}
