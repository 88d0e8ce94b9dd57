package domain

import "math"

// Seed offsets keep the per-feed generators decorrelated while staying pure
// functions of the coordinates.
const (
	seedWeatherHumidity = 1.0
	seedWeatherTemp     = 2.0
	seedWeatherWind     = 3.0
	seedWeatherWindDir  = 4.0
	seedWeatherPressure = 5.0
	seedWeatherVisib    = 6.0
	seedWeatherCode     = 7.0

	seedFireScore = 11.0
	seedFireCount = 12.0

	seedSatNDVI   = 21.0
	seedSatEVI    = 22.0
	seedSatSoil   = 23.0
	seedSatTemp   = 24.0
	seedSatBurned = 25.0
)

var syntheticDescriptions = []string{
	"clear sky",
	"partly cloudy",
	"overcast",
	"light rain",
	"haze",
}

// seeded is the deterministic hash-like transform behind every synthetic
// generator: fract(sin(seed)*10000), in [0, 1). Identical inputs always yield
// identical outputs, which is what makes a full upstream outage testable.
func seeded(lat, lon, offset float64) float64 {
	v := math.Sin(lat*12.9898+lon*78.233+offset) * 10000
	return v - math.Floor(v)
}

// SyntheticWeather generates a plausible weather reading for a coordinate
// when the live provider is unavailable.
func SyntheticWeather(lat, lon float64) WeatherRecord {
	visibility := roundTo(5+seeded(lat, lon, seedWeatherVisib)*15, 1)
	desc := syntheticDescriptions[int(seeded(lat, lon, seedWeatherCode)*float64(len(syntheticDescriptions)))%len(syntheticDescriptions)]

	return WeatherRecord{
		Humidity:         20 + int(seeded(lat, lon, seedWeatherHumidity)*60),
		TemperatureC:     int(seeded(lat, lon, seedWeatherTemp)*30) - 2,
		WindSpeedKmh:     int(seeded(lat, lon, seedWeatherWind) * 35),
		WindDirectionDeg: int(seeded(lat, lon, seedWeatherWindDir) * 360),
		PressureHpa:      990 + int(seeded(lat, lon, seedWeatherPressure)*40),
		VisibilityKm:     &visibility,
		Description:      desc,
		Source:           SourceSynthetic,
	}
}

// SyntheticFireRisk generates a fire-context record for a coordinate when the
// event feed is unavailable or no events correlate within the search radius.
// MostRecent is left unset: a synthetic record has no real event to date.
func SyntheticFireRisk(lat, lon float64) FireRiskRecord {
	score := 10 + int(seeded(lat, lon, seedFireScore)*60)
	count := int(seeded(lat, lon, seedFireCount) * 6)

	return FireRiskRecord{
		Level:       LevelForScore(score),
		Score:       score,
		NearbyCount: count,
		TotalEvents: count * 3,
		Source:      SourceSynthetic,
	}
}

// SyntheticSatellite generates vegetation/soil/thermal indices for a
// coordinate when the satellite provider is unavailable or unconfigured. The
// drought composite goes through [ComputeDroughtIndex], the same path live
// data takes.
func SyntheticSatellite(lat, lon float64) SatelliteRecord {
	ndvi := roundTo(0.15+seeded(lat, lon, seedSatNDVI)*0.6, 3)
	soil := roundTo(10+seeded(lat, lon, seedSatSoil)*55, 1)
	temp := roundTo(8+seeded(lat, lon, seedSatTemp)*32, 1)

	return SatelliteRecord{
		NDVI:             ndvi,
		EVI:              roundTo(ndvi*0.65, 3),
		SoilMoisturePct:  soil,
		LandSurfaceTempC: temp,
		BurnedPixelCount: int(seeded(lat, lon, seedSatBurned) * 400),
		DroughtIndex:     ComputeDroughtIndex(ndvi, soil, temp),
		Source:           SourceSynthetic,
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
