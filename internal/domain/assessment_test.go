package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationValidate(t *testing.T) {
	assert.NoError(t, Location{Lat: 43.7315, Lon: -79.7624}.Validate())
	assert.NoError(t, Location{Lat: -90, Lon: 180}.Validate())

	assert.ErrorIs(t, Location{Lat: 91, Lon: 0}.Validate(), ErrInvalidCoordinates)
	assert.ErrorIs(t, Location{Lat: 0, Lon: -181}.Validate(), ErrInvalidCoordinates)
}

func TestAssessmentDisplayScore(t *testing.T) {
	base := Assessment{
		FireRisk: FireRiskRecord{Score: 42, Level: RiskMedium},
	}

	t.Run("deterministic baseline when AI absent", func(t *testing.T) {
		score, level := base.DisplayScore()
		assert.Equal(t, 42, score)
		assert.Equal(t, RiskMedium, level)
	})

	t.Run("deterministic baseline when AI has no score", func(t *testing.T) {
		a := base
		a.AI = &AIAssessment{Analysis: "narrative only"}
		score, level := a.DisplayScore()
		assert.Equal(t, 42, score)
		assert.Equal(t, RiskMedium, level)
	})

	t.Run("AI score takes display precedence", func(t *testing.T) {
		aiScore := 61
		a := base
		a.AI = &AIAssessment{RiskScore: &aiScore, RiskLevel: RiskHigh}

		score, level := a.DisplayScore()
		assert.Equal(t, 61, score)
		assert.Equal(t, RiskHigh, level)

		// The deterministic baseline stays attached and inspectable.
		assert.Equal(t, 42, a.FireRisk.Score)
	})
}
