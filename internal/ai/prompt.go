package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ardelio/heart-risk-api/internal/domain"
)

// BuildPrompt creates a prompt for risk summary generation
func BuildPrompt(m domain.HealthMetrics) string {
	diabetes := "no"
	if m.Diabetes {
		diabetes = "yes"
	}

	return fmt.Sprintf(`You are a cardiovascular health assistant. Assess the heart-disease risk for the following patient profile.

Patient profile:
- Age: %d
- Gender: %s
- Systolic blood pressure: %d mmHg
- Diastolic blood pressure: %d mmHg
- Total cholesterol: %.1f mg/dL
- Diabetes: %s

Rules:
1. Respond with ONLY a JSON object, no markdown and no extra text
2. The JSON must have exactly two keys: "riskScore" and "summary"
3. "riskScore" must be exactly one of: Low, Medium, High
4. "summary" must be 2-4 plain sentences for a non-medical reader
5. Do not prescribe medication; suggest lifestyle changes and seeing a doctor where appropriate

JSON:`, m.Age, m.Gender, m.SystolicBP, m.DiastolicBP, m.Cholesterol, diabetes)
}

// ParseRiskResult extracts a risk result from raw model output. Models
// wrap JSON in code fences or prose often enough that this is lenient.
func ParseRiskResult(content string) (*domain.RiskResult, error) {
	raw := extractJSON(content)
	if raw != "" {
		var result domain.RiskResult
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			result.Summary = strings.TrimSpace(result.Summary)
			if result.RiskScore.Valid() && result.Summary != "" {
				return &result, nil
			}
		}
	}

	// Fallback: scan the text for a risk level keyword
	score := scanRiskScore(content)
	if score == "" {
		return nil, fmt.Errorf("no risk score found in model output")
	}

	summary := strings.TrimSpace(content)
	if summary == "" {
		return nil, fmt.Errorf("empty model output")
	}

	return &domain.RiskResult{RiskScore: score, Summary: summary}, nil
}

// extractJSON returns the first top-level JSON object in the content
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

func scanRiskScore(content string) domain.RiskScore {
	lower := strings.ToLower(content)
	for _, score := range []domain.RiskScore{domain.RiskHigh, domain.RiskMedium, domain.RiskLow} {
		if strings.Contains(lower, strings.ToLower(string(score))+" risk") ||
			strings.Contains(lower, "risk: "+strings.ToLower(string(score))) {
			return score
		}
	}
	return ""
}
