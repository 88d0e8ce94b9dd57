// Command assess runs one assessment from the command line and prints the
// result as JSON. Useful for smoke checks without standing up the service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/eonet"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/openmeteo"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/reasoning"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/satellite"
	"github.com/emberwatch/wildfire-risk-engine/internal/assess"
	"github.com/emberwatch/wildfire-risk-engine/internal/config"
	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude of the query point")
	lon := flag.Float64("lon", 0, "longitude of the query point")
	name := flag.String("name", "", "optional location name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays clean JSON for piping.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	var provider reasoning.Provider
	if cfg.ReasoningAPIKey != "" {
		provider = reasoning.NewClient(cfg.ReasoningAPIKey, cfg.ReasoningBaseURL, cfg.ReasoningTimeout, logger)
	}
	reasoner := reasoning.New(provider, cfg.ReasoningModels, logger, metrics)

	assessor := assess.New(
		openmeteo.NewClient(cfg.FetchTimeout, logger, metrics),
		eonet.NewClient(cfg.FetchTimeout, logger, metrics),
		satellite.NewClient(cfg.SatelliteToken, cfg.FetchTimeout, logger, metrics),
		reasoner,
		nil,
		cfg.SearchRadiusKm,
		logger,
		metrics,
	)

	assessment, err := assessor.Assess(context.Background(), domain.Location{Lat: *lat, Lon: *lon, Name: *name})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(assessment); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
