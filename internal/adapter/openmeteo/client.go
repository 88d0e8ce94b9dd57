// Package openmeteo fetches current weather from an Open-Meteo-compatible
// forecast API and normalizes it into a domain.WeatherRecord.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

const feedName = "weather"

// wmoDescriptions maps WMO weather interpretation codes to fixed text
// descriptions. Unknown codes get no description rather than an error.
var wmoDescriptions = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	80: "rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

// Client fetches current weather. Any upstream failure is absorbed into the
// coordinate-seeded synthetic fallback; Fetch never errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a weather client with a bounded request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.open-meteo.com",
		logger:     logger,
		metrics:    metrics,
	}
}

type response struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WindSpeed     float64 `json:"wind_speed_10m"` // km/h, requested explicitly
		WindDirection float64 `json:"wind_direction_10m"`
		Pressure      float64 `json:"surface_pressure"`
		Visibility    float64 `json:"visibility"` // meters
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// Fetch returns the normalized current weather for a coordinate, substituting
// the synthetic generator on any upstream failure.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) domain.WeatherRecord {
	record, err := c.fetchLive(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("weather fetch failed, using synthetic fallback",
			"lat", lat, "lon", lon, "error", err)
		c.metrics.FeedRequests.WithLabelValues(feedName, "error").Inc()
		c.metrics.FeedFallbacks.WithLabelValues(feedName).Inc()
		return domain.SyntheticWeather(lat, lon)
	}

	c.metrics.FeedRequests.WithLabelValues(feedName, "success").Inc()
	return record
}

func (c *Client) fetchLive(ctx context.Context, lat, lon float64) (domain.WeatherRecord, error) {
	params := url.Values{
		"latitude":        {fmt.Sprintf("%.4f", lat)},
		"longitude":       {fmt.Sprintf("%.4f", lon)},
		"current":         {"temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,surface_pressure,visibility,weather_code"},
		"wind_speed_unit": {"kmh"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherRecord{}, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.WeatherRecord{}, fmt.Errorf("decode response: %w", err)
	}

	return normalize(payload), nil
}

// normalize converts the validated payload into the domain record: integer
// rounding per field, visibility meters → km kept to one decimal.
func normalize(payload response) domain.WeatherRecord {
	cur := payload.Current

	visibility := math.Round(cur.Visibility/1000*10) / 10

	return domain.WeatherRecord{
		Humidity:         int(math.Round(cur.Humidity)),
		TemperatureC:     int(math.Round(cur.Temperature)),
		WindSpeedKmh:     int(math.Round(cur.WindSpeed)),
		WindDirectionDeg: int(math.Round(cur.WindDirection)),
		PressureHpa:      int(math.Round(cur.Pressure)),
		VisibilityKm:     &visibility,
		Description:      wmoDescriptions[cur.WeatherCode],
		Source:           domain.SourceLive,
	}
}
