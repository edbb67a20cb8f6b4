package ai

import (
	"testing"

	"github.com/ardelio/heart-risk-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(domain.HealthMetrics{
		Age:         45,
		Gender:      "Female",
		SystolicBP:  140,
		DiastolicBP: 90,
		Cholesterol: 210,
		Diabetes:    true,
	})

	assert.Contains(t, prompt, "Age: 45")
	assert.Contains(t, prompt, "Gender: Female")
	assert.Contains(t, prompt, "Systolic blood pressure: 140 mmHg")
	assert.Contains(t, prompt, "Diastolic blood pressure: 90 mmHg")
	assert.Contains(t, prompt, "Total cholesterol: 210.0 mg/dL")
	assert.Contains(t, prompt, "Diabetes: yes")
	assert.Contains(t, prompt, `"riskScore"`)
}

func TestParseRiskResult_CleanJSON(t *testing.T) {
	result, err := ParseRiskResult(`{"riskScore": "Medium", "summary": "Blood pressure is slightly elevated."}`)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskMedium, result.RiskScore)
	assert.Equal(t, "Blood pressure is slightly elevated.", result.Summary)
}

func TestParseRiskResult_FencedJSON(t *testing.T) {
	content := "```json\n{\"riskScore\": \"High\", \"summary\": \"Several readings are above healthy ranges.\"}\n```"

	result, err := ParseRiskResult(content)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskHigh, result.RiskScore)
	assert.Equal(t, "Several readings are above healthy ranges.", result.Summary)
}

func TestParseRiskResult_JSONWithProse(t *testing.T) {
	content := `Here is the assessment you asked for:
{"riskScore": "Low", "summary": "All readings are within healthy ranges."}
Let me know if you need anything else.`

	result, err := ParseRiskResult(content)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskLow, result.RiskScore)
}

func TestParseRiskResult_KeywordFallback(t *testing.T) {
	result, err := ParseRiskResult("Based on the profile this patient has a medium risk of heart disease. Regular exercise is recommended.")
	require.NoError(t, err)

	assert.Equal(t, domain.RiskMedium, result.RiskScore)
	assert.NotEmpty(t, result.Summary)
}

func TestParseRiskResult_InvalidScoreFallsBack(t *testing.T) {
	// Valid JSON with an unknown score; the keyword scan rescues it
	result, err := ParseRiskResult(`{"riskScore": "Severe", "summary": "High risk overall."}`)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskHigh, result.RiskScore)
}

func TestParseRiskResult_Garbage(t *testing.T) {
	for _, content := range []string{
		"",
		"I cannot assess this patient.",
		`{"foo": "bar"}`,
	} {
		_, err := ParseRiskResult(content)
		assert.Error(t, err, "content: %q", content)
	}
}
