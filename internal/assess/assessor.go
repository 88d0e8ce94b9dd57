// Package assess assembles the composite risk assessment: concurrent feed
// fan-out, event correlation, deterministic scoring, and the AI narrative
// layer on top.
package assess

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

// WeatherFetcher returns a current-weather record, live or synthetic.
type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) domain.WeatherRecord
}

// EventsFetcher returns the global open-wildfire event list. The second
// return is false when the feed was unreachable and nothing was fetched.
type EventsFetcher interface {
	Fetch(ctx context.Context) ([]domain.WildfireEvent, bool)
}

// SatelliteFetcher returns regional satellite indices, live or synthetic.
type SatelliteFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) domain.SatelliteRecord
}

// Reasoner produces the AI layer. Implementations never error; degradation is
// expressed inside the returned value.
type Reasoner interface {
	Assess(ctx context.Context, loc domain.Location, weather domain.WeatherRecord, fire domain.FireRiskRecord, sat *domain.SatelliteRecord) domain.AIAssessment
}

// Publisher emits a completed assessment to the audit stream.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Assessor orchestrates one assessment per call. Safe for concurrent use.
type Assessor struct {
	weather   WeatherFetcher
	events    EventsFetcher
	satellite SatelliteFetcher
	reasoner  Reasoner
	publisher Publisher // nil disables publishing

	searchRadiusKm float64
	logger         *slog.Logger
	metrics        *observability.Metrics
	ready          atomic.Bool
}

// New creates an Assessor. Pass a nil publisher to disable the audit stream.
func New(weather WeatherFetcher, events EventsFetcher, satellite SatelliteFetcher, reasoner Reasoner, publisher Publisher, searchRadiusKm float64, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	if searchRadiusKm <= 0 {
		searchRadiusKm = domain.DefaultSearchRadiusKm
	}
	return &Assessor{
		weather:        weather,
		events:         events,
		satellite:      satellite,
		reasoner:       reasoner,
		publisher:      publisher,
		searchRadiusKm: searchRadiusKm,
		logger:         logger,
		metrics:        metrics,
	}
}

// CheckReadiness returns nil once at least one assessment has completed.
func (a *Assessor) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no assessment completed yet")
	}
	return nil
}

// Assess produces a complete assessment for the location. The only error is
// invalid input; every upstream failure degrades into synthetic records or a
// noted AI fallback, so callers always get a scored result for valid
// coordinates.
func (a *Assessor) Assess(ctx context.Context, loc domain.Location) (domain.Assessment, error) {
	if err := loc.Validate(); err != nil {
		return domain.Assessment{}, err
	}

	start := time.Now()

	// The three feeds are independent; fetch them concurrently. Each fetcher
	// absorbs its own failures, so the goroutines only ever write results.
	var (
		wg      sync.WaitGroup
		weather domain.WeatherRecord
		events  []domain.WildfireEvent
		live    bool
		sat     domain.SatelliteRecord
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		weather = a.weather.Fetch(ctx, loc.Lat, loc.Lon)
	}()
	go func() {
		defer wg.Done()
		events, live = a.events.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		sat = a.satellite.Fetch(ctx, loc.Lat, loc.Lon)
	}()
	wg.Wait()

	fire := a.correlate(loc, events, live)

	// The correlation score feeds the composite as the fire-activity term;
	// the record then carries the composite so Score and Level always
	// describe the full picture.
	score, level := domain.ScoreRisk(weather, fire, &sat)
	fire.Score, fire.Level = score, level

	ai := a.reasoner.Assess(ctx, loc, weather, fire, &sat)

	assessment := domain.Assessment{
		Location:    loc,
		Weather:     weather,
		FireRisk:    fire,
		Satellite:   &sat,
		AI:          &ai,
		GeneratedAt: domain.Clock().Now(),
	}

	a.publish(ctx, assessment)

	a.metrics.AssessmentsTotal.Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.ready.Store(true)

	displayScore, displayLevel := assessment.DisplayScore()
	a.logger.Info("assessment completed",
		"lat", loc.Lat, "lon", loc.Lon,
		"score", displayScore, "level", displayLevel,
		"nearby_fires", fire.NearbyCount,
		"duration_ms", time.Since(start).Milliseconds())

	return assessment, nil
}

// correlate turns the global event list into the fire-context record. A dead
// event feed falls back to the synthetic record; a live feed with nothing in
// radius is a genuine zero, not a fallback.
func (a *Assessor) correlate(loc domain.Location, events []domain.WildfireEvent, live bool) domain.FireRiskRecord {
	if !live {
		return domain.SyntheticFireRisk(loc.Lat, loc.Lon)
	}

	fctx, err := domain.Correlate(loc.Lat, loc.Lon, events, a.searchRadiusKm)
	if err != nil {
		return domain.FireRiskFromContext(domain.FireContext{}, len(events))
	}
	return domain.FireRiskFromContext(fctx, len(events))
}

// publish is best-effort: audit-stream trouble is logged and counted, never
// surfaced to the caller.
func (a *Assessor) publish(ctx context.Context, assessment domain.Assessment) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, assessment); err != nil {
		a.logger.Error("assessment publish failed",
			"lat", assessment.Location.Lat, "lon", assessment.Location.Lon, "error", err)
		a.metrics.PublishErrors.Inc()
		return
	}
	a.metrics.AssessmentsPublished.Inc()
}
