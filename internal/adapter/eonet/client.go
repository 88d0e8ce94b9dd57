// Package eonet fetches open wildfire events from an EONET-compatible global
// event feed.
package eonet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

const feedName = "events"

// Client fetches the global open-wildfire event list. A failed fetch is
// reported as live=false so the caller can substitute the synthetic fire
// fallback; Fetch never errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an event feed client with a bounded request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://eonet.gsfc.nasa.gov",
		logger:     logger,
		metrics:    metrics,
	}
}

// Feed payload types. Geometries carry [lon, lat] coordinate order.

type response struct {
	Events []event `json:"events"`
}

type event struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Geometry []geometry `json:"geometry"`
}

type geometry struct {
	Date        string    `json:"date"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

// Fetch returns the current global open-wildfire events and whether the feed
// was reachable. On failure it returns (nil, false); downstream correlation
// then finds no context and the synthetic fire fallback takes over.
func (c *Client) Fetch(ctx context.Context) ([]domain.WildfireEvent, bool) {
	events, err := c.fetchLive(ctx)
	if err != nil {
		c.logger.Warn("event feed fetch failed", "error", err)
		c.metrics.FeedRequests.WithLabelValues(feedName, "error").Inc()
		c.metrics.FeedFallbacks.WithLabelValues(feedName).Inc()
		return nil, false
	}

	c.metrics.FeedRequests.WithLabelValues(feedName, "success").Inc()
	return events, true
}

func (c *Client) fetchLive(ctx context.Context) ([]domain.WildfireEvent, error) {
	u := c.baseURL + "/api/v3/events?category=wildfires&status=open&limit=500"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("event feed error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return normalize(payload), nil
}

// normalize flattens the feed into domain events, taking each event's most
// recent geometry. Events without a usable coordinate pair are dropped.
func normalize(payload response) []domain.WildfireEvent {
	out := make([]domain.WildfireEvent, 0, len(payload.Events))
	for _, e := range payload.Events {
		if len(e.Geometry) == 0 {
			continue
		}
		g := e.Geometry[len(e.Geometry)-1]
		if len(g.Coordinates) < 2 {
			continue
		}

		ev := domain.WildfireEvent{
			ID:  e.ID,
			Lon: g.Coordinates[0],
			Lat: g.Coordinates[1],
		}
		if t, err := time.Parse(time.RFC3339, g.Date); err == nil {
			ev.Date = t
		}
		out = append(out, ev)
	}
	return out
}
