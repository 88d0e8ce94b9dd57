package domain

import (
	"errors"
	"fmt"
	"time"
)

// RiskLevel is the four-tier wildfire risk classification.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// Record sources, attached so callers can distinguish live readings from
// coordinate-seeded fallbacks.
const (
	SourceLive      = "live"
	SourceSynthetic = "synthetic"
)

// ErrInvalidCoordinates is returned for caller input outside the WGS-84
// domain. This is the only failure class that propagates as a request-level
// error; every upstream failure degrades to a synthetic record instead.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Location is a resolved WGS-84 query point. Immutable once resolved for a
// given assessment.
type Location struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Name       string  `json:"name,omitempty"`
	Population int     `json:"population,omitempty"`
}

// Validate rejects coordinates outside the WGS-84 domain.
func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 || l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%w: lat=%g lon=%g", ErrInvalidCoordinates, l.Lat, l.Lon)
	}
	return nil
}

// WeatherRecord is a normalized current-weather reading. Produced per request,
// never cached. Numeric fields are rounded to integers except visibility,
// which keeps one decimal.
type WeatherRecord struct {
	Humidity         int      `json:"humidity"`           // percent
	TemperatureC     int      `json:"temperature_c"`
	WindSpeedKmh     int      `json:"wind_speed_kmh"`
	WindDirectionDeg int      `json:"wind_direction_deg"` // 0-360
	PressureHpa      int      `json:"pressure_hpa"`
	VisibilityKm     *float64 `json:"visibility_km,omitempty"`
	Description      string   `json:"description,omitempty"`
	Source           string   `json:"source"`
}

// WildfireEvent is one reported open wildfire from the global event feed.
// Ephemeral; re-fetched each request.
type WildfireEvent struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
}

// FireRiskRecord carries the deterministic composite score plus the
// correlation counts it was derived from. Score and Level always agree with
// [LevelForScore].
type FireRiskRecord struct {
	Level       RiskLevel  `json:"risk_level"`
	Score       int        `json:"risk_score"` // 0-100
	NearbyCount int        `json:"nearby_fire_count"`
	TotalEvents int        `json:"total_events"` // events found globally this request
	MostRecent  *time.Time `json:"most_recent,omitempty"`
	Source      string     `json:"source"`
}

// SatelliteRecord holds vegetation, soil, and thermal indices for the region
// around the query point.
type SatelliteRecord struct {
	NDVI             float64 `json:"ndvi"` // -1..1
	EVI              float64 `json:"evi"`
	SoilMoisturePct  float64 `json:"soil_moisture_pct"`
	LandSurfaceTempC float64 `json:"land_surface_temp_c"`
	BurnedPixelCount int     `json:"burned_pixel_count"` // past year
	DroughtIndex     float64 `json:"drought_index"`      // 0..1 composite
	Source           string  `json:"source"`
}

// HotspotDetection is one thermal anomaly from the hotspot CSV feed.
type HotspotDetection struct {
	ID           string  `json:"id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	BrightnessK  float64 `json:"brightness_k"`
	Brightness2K float64 `json:"brightness_2_k"`
	ScanKm       float64 `json:"scan_km"`
	TrackKm      float64 `json:"track_km"`
	AcqDate      string  `json:"acq_date"` // YYYY-MM-DD
	AcqTime      string  `json:"acq_time"` // HH:MM
	Satellite    string  `json:"satellite"`
	Instrument   string  `json:"instrument"`
	Confidence   string  `json:"confidence"`
	Version      string  `json:"version"`
	FRP          float64 `json:"frp_mw"` // fire radiative power
	DayNight     string  `json:"day_night"`
}

// AIAssessment is the reasoning layer's contribution: narrative analysis,
// 3-5 recommendations, and optionally its own score and level. Score and
// Level are nil/empty when no reasoning provider is configured or when the
// adapter fell back entirely.
type AIAssessment struct {
	Analysis        string    `json:"analysis"`
	Recommendations []string  `json:"recommendations"`
	RiskScore       *int      `json:"risk_score,omitempty"`
	RiskLevel       RiskLevel `json:"risk_level,omitempty"`
	Model           string    `json:"model,omitempty"`
	Note            string    `json:"note,omitempty"` // user-safe degradation message
}

// Assessment is the root aggregate returned to callers. When AI is present
// with a score, that score takes display precedence, but FireRisk remains the
// deterministic audit baseline and is always populated.
type Assessment struct {
	Location    Location         `json:"location"`
	Weather     WeatherRecord    `json:"weather"`
	FireRisk    FireRiskRecord   `json:"fire_risk"`
	Satellite   *SatelliteRecord `json:"satellite,omitempty"`
	AI          *AIAssessment    `json:"ai,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// DisplayScore returns the score and level a caller should present: the AI
// figures when available, the deterministic baseline otherwise.
func (a Assessment) DisplayScore() (int, RiskLevel) {
	if a.AI != nil && a.AI.RiskScore != nil {
		return *a.AI.RiskScore, a.AI.RiskLevel
	}
	return a.FireRisk.Score, a.FireRisk.Level
}
