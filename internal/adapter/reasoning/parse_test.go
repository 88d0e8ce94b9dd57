package reasoning

import (
	"testing"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_StrictJSON(t *testing.T) {
	raw := `{"riskScore": 72, "riskLevel": "high", "analysis": "Dry and windy.", "recommendations": ["Avoid open flames", "Monitor alerts"]}`

	p := parseResponse(raw)

	assert.Equal(t, tierJSON, p.Tier)
	require.NotNil(t, p.Score)
	assert.Equal(t, 72, *p.Score)
	assert.Equal(t, domain.RiskHigh, p.Level)
	assert.Equal(t, "Dry and windy.", p.Analysis)
	assert.Equal(t, []string{"Avoid open flames", "Monitor alerts"}, p.Recommendations)
}

func TestParseResponse_FencedJSON(t *testing.T) {
	raw := "Here is my assessment:\n```json\n{\"riskScore\": 18.6, \"riskLevel\": \"LOW\", \"analysis\": \"Quiet conditions.\", \"recommendations\": []}\n```\nLet me know if you need more."

	p := parseResponse(raw)

	assert.Equal(t, tierJSON, p.Tier)
	require.NotNil(t, p.Score)
	assert.Equal(t, 19, *p.Score, "fractional scores round")
	assert.Equal(t, domain.RiskLow, p.Level, "level comparison is case-insensitive")
}

func TestParseResponse_EmbeddedObjectWithSurroundingProse(t *testing.T) {
	raw := `Sure. The object below summarizes it.
{"riskScore": 44, "riskLevel": "medium", "analysis": "Mixed signals, e.g. \"damp\" fuels.", "recommendations": ["Stay informed"]}`

	p := parseResponse(raw)

	assert.Equal(t, tierJSON, p.Tier)
	require.NotNil(t, p.Score)
	assert.Equal(t, 44, *p.Score)
	assert.Equal(t, `Mixed signals, e.g. "damp" fuels.`, p.Analysis, "escaped quotes survive brace matching")
}

func TestParseResponse_ScoreOutOfRangeClamps(t *testing.T) {
	p := parseResponse(`{"riskScore": 140, "riskLevel": "extreme", "analysis": "", "recommendations": []}`)

	require.NotNil(t, p.Score)
	assert.Equal(t, 100, *p.Score)
}

func TestParseResponse_InvalidLevelFallsToLoose(t *testing.T) {
	// A known-bad enum value means the structured contract was not honored,
	// so the whole response drops to text extraction.
	p := parseResponse(`{"riskScore": 50, "riskLevel": "catastrophic", "analysis": "x", "recommendations": []}`)

	assert.Equal(t, tierText, p.Tier)
	assert.Nil(t, p.Score)
}

func TestParseResponse_MissingScoreFallsToLoose(t *testing.T) {
	p := parseResponse(`{"riskLevel": "high", "analysis": "no number", "recommendations": []}`)

	assert.Equal(t, tierText, p.Tier)
}

func TestParseLoose_BulletsAndScoreExtraction(t *testing.T) {
	raw := `The area is experiencing elevated fire weather with gusty conditions.
Risk Score: 62
Risk Level: High

Recommended actions:
1. Clear defensible space around structures
2) Review evacuation routes with your household
- Keep an emergency kit packed
* Monitor local fire authority channels`

	p := parseResponse(raw)

	assert.Equal(t, tierText, p.Tier)
	require.NotNil(t, p.Score)
	assert.Equal(t, 62, *p.Score)
	assert.Equal(t, domain.RiskHigh, p.Level)
	assert.Equal(t, []string{
		"Clear defensible space around structures",
		"Review evacuation routes with your household",
		"Keep an emergency kit packed",
		"Monitor local fire authority channels",
	}, p.Recommendations)
	assert.Contains(t, p.Analysis, "elevated fire weather")
}

func TestParseLoose_NoScoreNoLevel(t *testing.T) {
	p := parseResponse("Conditions look broadly unremarkable across the region today.")

	assert.Equal(t, tierText, p.Tier)
	assert.Nil(t, p.Score)
	assert.Empty(t, p.Level)
	assert.Empty(t, p.Recommendations)
	assert.NotEmpty(t, p.Analysis)
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	_, ok := extractJSONObject(`{"riskScore": 10, "analysis": "truncated`)
	assert.False(t, ok)
}
