// Package firms fetches thermal hotspot detections from a FIRMS-compatible
// area CSV endpoint.
package firms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

const (
	feedName = "hotspots"

	// defaultSource is the satellite product queried for detections.
	defaultSource = "VIIRS_SNPP_NRT"
	// defaultDays is the detection window in days.
	defaultDays = 1
)

// ErrFeedUnavailable means the hotspot feed could not be fetched or read at
// all. Callers must present this differently from a healthy feed with zero
// detections.
var ErrFeedUnavailable = errors.New("hotspot feed unavailable")

// Client fetches and parses the hotspot CSV feed.
type Client struct {
	mapKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a hotspot feed client with a bounded request timeout.
func NewClient(mapKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		mapKey:     mapKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://firms.modaps.eosdis.nasa.gov",
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch returns the detections for an area identifier ("world" or a
// west,south,east,north bounding box). Per-row problems are skipped inside
// the parser; only a wholly failed fetch or unreadable payload returns
// ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context, area string) ([]domain.HotspotDetection, error) {
	if area == "" {
		area = "world"
	}

	u := fmt.Sprintf("%s/api/area/csv/%s/%s/%s/%d",
		c.baseURL, url.PathEscape(c.mapKey), defaultSource, url.PathEscape(area), defaultDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, c.feedDown(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.feedDown(fmt.Errorf("hotspot request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, c.feedDown(fmt.Errorf("hotspot API error: status %d: %s", resp.StatusCode, body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.feedDown(fmt.Errorf("read response: %w", err))
	}

	detections, err := domain.ParseHotspots(string(raw))
	if err != nil {
		return nil, c.feedDown(fmt.Errorf("parse feed: %w", err))
	}

	c.metrics.FeedRequests.WithLabelValues(feedName, "success").Inc()
	return detections, nil
}

func (c *Client) feedDown(cause error) error {
	c.logger.Warn("hotspot feed unavailable", "error", cause)
	c.metrics.FeedRequests.WithLabelValues(feedName, "error").Inc()
	return fmt.Errorf("%w: %v", ErrFeedUnavailable, cause)
}
