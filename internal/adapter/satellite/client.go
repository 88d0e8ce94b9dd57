// Package satellite fetches vegetation, soil, and thermal indices through
// region-reduction queries over a fixed buffer around the query point.
package satellite

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

const (
	feedName = "satellite"

	// bufferKm is the region-reduction radius around the query point.
	bufferKm = 5
)

// Metrics requested from the provider, one region reduction each.
const (
	metricNDVI   = "ndvi"
	metricEVI    = "evi"
	metricSoil   = "soil_moisture"
	metricLST    = "lst"
	metricBurned = "burned_area"
)

// Client fetches satellite indices. An empty token is a supported, non-error
// configuration: the client serves synthetic records without attempting the
// provider. Any live failure is likewise absorbed into the synthetic
// fallback; Fetch never errors.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a satellite client. Pass an empty token to run in
// synthetic-only mode.
func NewClient(token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.earthstats.dev",
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch returns the satellite record for a coordinate. The drought composite
// always goes through domain.ComputeDroughtIndex, so live and synthetic
// records are scored identically.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) domain.SatelliteRecord {
	if c.token == "" {
		c.metrics.FeedFallbacks.WithLabelValues(feedName).Inc()
		return domain.SyntheticSatellite(lat, lon)
	}

	record, err := c.fetchLive(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("satellite fetch failed, using synthetic fallback",
			"lat", lat, "lon", lon, "error", err)
		c.metrics.FeedRequests.WithLabelValues(feedName, "error").Inc()
		c.metrics.FeedFallbacks.WithLabelValues(feedName).Inc()
		return domain.SyntheticSatellite(lat, lon)
	}

	c.metrics.FeedRequests.WithLabelValues(feedName, "success").Inc()
	return record
}

func (c *Client) fetchLive(ctx context.Context, lat, lon float64) (domain.SatelliteRecord, error) {
	ndvi, err := c.reduceRegion(ctx, metricNDVI, lat, lon)
	if err != nil {
		return domain.SatelliteRecord{}, err
	}
	evi, err := c.reduceRegion(ctx, metricEVI, lat, lon)
	if err != nil {
		return domain.SatelliteRecord{}, err
	}
	soil, err := c.reduceRegion(ctx, metricSoil, lat, lon)
	if err != nil {
		return domain.SatelliteRecord{}, err
	}
	lst, err := c.reduceRegion(ctx, metricLST, lat, lon)
	if err != nil {
		return domain.SatelliteRecord{}, err
	}
	burned, err := c.reduceRegion(ctx, metricBurned, lat, lon)
	if err != nil {
		return domain.SatelliteRecord{}, err
	}

	return domain.SatelliteRecord{
		NDVI:             ndvi,
		EVI:              evi,
		SoilMoisturePct:  soil,
		LandSurfaceTempC: lst,
		BurnedPixelCount: int(math.Round(burned)),
		DroughtIndex:     domain.ComputeDroughtIndex(ndvi, soil, lst),
		Source:           domain.SourceLive,
	}, nil
}

type reduceResponse struct {
	Value float64 `json:"value"`
}

// reduceRegion runs one mean-reduction over the buffer for a single metric.
func (c *Client) reduceRegion(ctx context.Context, metric string, lat, lon float64) (float64, error) {
	params := url.Values{
		"metric":    {metric},
		"lat":       {fmt.Sprintf("%.4f", lat)},
		"lon":       {fmt.Sprintf("%.4f", lon)},
		"buffer_km": {fmt.Sprintf("%d", bufferKm)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/reduce?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s reduction: %w", metric, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%s reduction: status %d: %s", metric, resp.StatusCode, body)
	}

	var payload reduceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%s reduction: decode: %w", metric, err)
	}

	return payload.Value, nil
}
