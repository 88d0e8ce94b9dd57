package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForScore_Thresholds(t *testing.T) {
	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{35, RiskLow},
		{36, RiskMedium},
		{55, RiskMedium},
		{56, RiskHigh},
		{75, RiskHigh},
		{76, RiskExtreme},
		{100, RiskExtreme},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LevelForScore(c.score), "score %d", c.score)
	}
}

func TestLevelForScore_ExhaustiveAndMonotonic(t *testing.T) {
	order := map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2, RiskExtreme: 3}

	prev := RiskLow
	for score := 0; score <= 100; score++ {
		level := LevelForScore(score)
		_, known := order[level]
		assert.True(t, known, "score %d mapped to unknown level %q", score, level)
		assert.GreaterOrEqual(t, order[level], order[prev], "level regressed at score %d", score)
		prev = level
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, s := range []string{"low", "LOW", " High ", "Extreme", "medium"} {
		level, ok := ParseRiskLevel(s)
		assert.True(t, ok, s)
		assert.NotEmpty(t, level)
	}

	_, ok := ParseRiskLevel("catastrophic")
	assert.False(t, ok)
}

// The reference scenario from the scoring model's documentation: Brampton, ON
// with 69% humidity, 13 km/h wind, 0°C, fire-context score 78, no satellite
// data. Terms: 31*0.18 + min(15.6,15) + 0 + min(19.5,25) = 40.08; ×0.9 → 36.
func TestScoreRisk_ReferenceScenario(t *testing.T) {
	weather := WeatherRecord{Humidity: 69, WindSpeedKmh: 13, TemperatureC: 0}
	fire := FireRiskRecord{Score: 78, NearbyCount: 7}

	score, level := ScoreRisk(weather, fire, nil)

	assert.Equal(t, 36, score)
	assert.Equal(t, RiskMedium, level)
}

func TestScoreRisk_SatelliteBranch(t *testing.T) {
	weather := WeatherRecord{Humidity: 25, WindSpeedKmh: 30, TemperatureC: 35}
	fire := FireRiskRecord{Score: 60, NearbyCount: 3}
	sat := &SatelliteRecord{
		NDVI:            0.2,
		SoilMoisturePct: 15,
		DroughtIndex:    0.8,
	}

	// 13.5 + 15 + 12 + 4.8 + 5.1 + 5.6 + 7.5 = 63.5; ×0.9 → 57.
	score, level := ScoreRisk(weather, fire, sat)

	assert.Equal(t, 57, score)
	assert.Equal(t, RiskHigh, level)
}

func TestScoreRisk_TemperatureFloorAtFiveDegrees(t *testing.T) {
	base := WeatherRecord{Humidity: 50, WindSpeedKmh: 0, TemperatureC: 5}
	cooler := base
	cooler.TemperatureC = 4

	s1, _ := ScoreRisk(base, FireRiskRecord{}, nil)
	s2, _ := ScoreRisk(cooler, FireRiskRecord{}, nil)
	assert.Equal(t, s1, s2, "temperatures at or below 5°C contribute nothing")
}

func TestScoreRisk_ClampedToHundred(t *testing.T) {
	weather := WeatherRecord{Humidity: 0, WindSpeedKmh: 100, TemperatureC: 50}
	fire := FireRiskRecord{Score: 100, NearbyCount: 50}
	sat := &SatelliteRecord{NDVI: -1, SoilMoisturePct: 0, DroughtIndex: 1}

	score, level := ScoreRisk(weather, fire, sat)

	assert.LessOrEqual(t, score, 100)
	assert.Equal(t, RiskExtreme, level)
}

func TestComputeDroughtIndex(t *testing.T) {
	t.Run("weighted composite", func(t *testing.T) {
		// 0.3*(1-0.5) + 0.4*(1-0.4) + 0.3*(25/50) = 0.15+0.24+0.15 = 0.54
		assert.InDelta(t, 0.54, ComputeDroughtIndex(0.5, 40, 25), 1e-9)
	})

	t.Run("temperature term saturates at 50", func(t *testing.T) {
		assert.Equal(t, ComputeDroughtIndex(0.5, 40, 50), ComputeDroughtIndex(0.5, 40, 90))
	})

	t.Run("clamped to unit interval", func(t *testing.T) {
		assert.Equal(t, 1.0, ComputeDroughtIndex(-1, 0, 100))
		assert.Equal(t, 0.0, ComputeDroughtIndex(1, 100, -50))
	})
}
