package reasoning

import (
	"fmt"
	"strings"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
)

// buildPrompt embeds all available numeric context in one structured prompt
// with explicit instructions for the strict JSON output shape the tier-1
// parser expects.
func buildPrompt(loc domain.Location, weather domain.WeatherRecord, fire domain.FireRiskRecord, sat *domain.SatelliteRecord) string {
	var b strings.Builder

	name := loc.Name
	if name == "" {
		name = fmt.Sprintf("%.4f, %.4f", loc.Lat, loc.Lon)
	}

	fmt.Fprintf(&b, "You are a wildfire risk analyst. Assess the wildfire risk for %s (lat %.4f, lon %.4f).\n\n", name, loc.Lat, loc.Lon)

	fmt.Fprintf(&b, "Current weather:\n")
	fmt.Fprintf(&b, "- Humidity: %d%%\n", weather.Humidity)
	fmt.Fprintf(&b, "- Temperature: %d C\n", weather.TemperatureC)
	fmt.Fprintf(&b, "- Wind: %d km/h from %d degrees\n", weather.WindSpeedKmh, weather.WindDirectionDeg)
	fmt.Fprintf(&b, "- Pressure: %d hPa\n", weather.PressureHpa)

	fmt.Fprintf(&b, "\nFire activity:\n")
	fmt.Fprintf(&b, "- Active fires within search radius: %d\n", fire.NearbyCount)
	fmt.Fprintf(&b, "- Events found globally: %d\n", fire.TotalEvents)
	fmt.Fprintf(&b, "- Deterministic baseline risk score: %d/100 (%s)\n", fire.Score, fire.Level)
	if fire.MostRecent != nil {
		fmt.Fprintf(&b, "- Most recent nearby event: %s\n", fire.MostRecent.Format("2006-01-02"))
	}

	if sat != nil {
		fmt.Fprintf(&b, "\nSatellite indices:\n")
		fmt.Fprintf(&b, "- NDVI: %.3f, EVI: %.3f\n", sat.NDVI, sat.EVI)
		fmt.Fprintf(&b, "- Soil moisture: %.1f%%\n", sat.SoilMoisturePct)
		fmt.Fprintf(&b, "- Land surface temperature: %.1f C\n", sat.LandSurfaceTempC)
		fmt.Fprintf(&b, "- Burned pixels (past year): %d\n", sat.BurnedPixelCount)
		fmt.Fprintf(&b, "- Drought index: %.2f\n", sat.DroughtIndex)
	}

	b.WriteString(`
Respond with exactly one JSON object and nothing else, in this shape:
{"riskScore": <integer 0-100>, "riskLevel": "<low|medium|high|extreme>", "analysis": "<2-4 sentence assessment>", "recommendations": ["<3 to 5 short actionable recommendations>"]}
`)

	return b.String()
}
