package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/eonet"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/firms"
	httpadapter "github.com/emberwatch/wildfire-risk-engine/internal/adapter/http"
	kafkaadapter "github.com/emberwatch/wildfire-risk-engine/internal/adapter/kafka"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/openmeteo"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/reasoning"
	"github.com/emberwatch/wildfire-risk-engine/internal/adapter/satellite"
	"github.com/emberwatch/wildfire-risk-engine/internal/assess"
	"github.com/emberwatch/wildfire-risk-engine/internal/config"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	weather := openmeteo.NewClient(cfg.FetchTimeout, logger, metrics)
	events := eonet.NewClient(cfg.FetchTimeout, logger, metrics)
	sat := satellite.NewClient(cfg.SatelliteToken, cfg.FetchTimeout, logger, metrics)
	hotspots := firms.NewClient(cfg.FIRMSMapKey, cfg.FetchTimeout, logger, metrics)

	// Reasoning is feature-flagged via REASONING_API_KEY; without it the
	// adapter serves deterministic output with an explanatory note.
	var provider reasoning.Provider
	if cfg.ReasoningAPIKey != "" {
		provider = reasoning.NewClient(cfg.ReasoningAPIKey, cfg.ReasoningBaseURL, cfg.ReasoningTimeout, logger)
		logger.Info("reasoning enabled", "models", len(cfg.ReasoningModels))
	} else {
		logger.Info("reasoning disabled, serving deterministic assessments")
	}
	reasoner := reasoning.New(provider, cfg.ReasoningModels, logger, metrics)

	var publisher assess.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.PublishEnabled() {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("assessment publishing enabled", "topic", cfg.KafkaAssessmentTopic)
	} else {
		logger.Info("assessment publishing disabled")
	}

	assessor := assess.New(weather, events, sat, reasoner, publisher, cfg.SearchRadiusKm, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, hotspots, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
