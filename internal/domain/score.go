package domain

import (
	"math"
	"strings"
)

// scoreDamping shrinks the summed factors before rounding, to keep a single
// saturated factor from pushing the composite into an over-confident extreme.
const scoreDamping = 0.9

// LevelForScore maps a 0-100 score onto the four-tier ladder. This is the one
// canonical mapping; every component that turns a score into a level calls it.
func LevelForScore(score int) RiskLevel {
	switch {
	case score < 36:
		return RiskLow
	case score < 56:
		return RiskMedium
	case score < 76:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// ParseRiskLevel recognizes one of the four levels case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow, true
	case RiskMedium:
		return RiskMedium, true
	case RiskHigh:
		return RiskHigh, true
	case RiskExtreme:
		return RiskExtreme, true
	default:
		return "", false
	}
}

// ScoreRisk computes the deterministic composite risk score from the weighted
// factors documented in the package doc. fire.Score is the fire-context score
// from correlation (or the synthetic fallback); it only contributes directly
// when satellite data is absent.
func ScoreRisk(weather WeatherRecord, fire FireRiskRecord, satellite *SatelliteRecord) (int, RiskLevel) {
	sum := math.Max(0, float64(100-weather.Humidity)) * 0.18
	sum += math.Min(float64(weather.WindSpeedKmh)*1.2, 15)
	sum += math.Min(math.Max(0, float64(weather.TemperatureC)-5)*0.4, 12)

	if satellite != nil {
		sum += (1 - satellite.NDVI) * 6
		sum += (100 - satellite.SoilMoisturePct) * 0.06
		sum += satellite.DroughtIndex * 7
		sum += math.Min(float64(fire.NearbyCount)*2.5, 12)
	} else {
		sum += math.Min(float64(fire.Score)*0.25, 25)
	}

	score := clampScore(int(math.Round(sum * scoreDamping)))
	return score, LevelForScore(score)
}

// ComputeDroughtIndex derives the 0-1 drought composite from vegetation
// health, soil moisture, and land surface temperature. Live and synthetic
// satellite records both go through here, so the composite is identical
// regardless of where the inputs came from.
func ComputeDroughtIndex(ndvi, soilMoisturePct, landSurfaceTempC float64) float64 {
	idx := 0.3*(1-ndvi) +
		0.4*(1-soilMoisturePct/100) +
		0.3*math.Min(landSurfaceTempC/50, 1)

	return math.Max(0, math.Min(1, idx))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
