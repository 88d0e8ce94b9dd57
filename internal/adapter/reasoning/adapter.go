// Package reasoning produces the AI narrative layer of an assessment through
// an ordered model fallback chain over a single provider endpoint. Every
// failure mode degrades to deterministic output; the adapter never errors.
package reasoning

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
)

// User-safe notes attached when no model produced a usable response. Provider
// error details stay in the logs.
const (
	noteNotConfigured = "AI analysis is not configured. Showing deterministic risk scoring only."
	noteQuota         = "The AI analysis service has reached its usage limit. Deterministic risk scoring remains available."
	noteModelGone     = "The configured AI models are currently unavailable. Deterministic risk scoring remains available."
	noteGeneric       = "AI analysis is temporarily unavailable. Deterministic risk scoring remains available."
)

// Adapter runs the model fallback chain and normalizes whatever comes back
// into a complete AIAssessment.
type Adapter struct {
	provider Provider
	models   []string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a reasoning adapter. A nil provider is a supported
// configuration; Assess then returns deterministic output with an explanatory
// note.
func New(provider Provider, models []string, logger *slog.Logger, metrics *observability.Metrics) *Adapter {
	return &Adapter{
		provider: provider,
		models:   models,
		logger:   logger,
		metrics:  metrics,
	}
}

// Assess asks the first responsive model for an analysis of the gathered
// context. The chain advances only on call failure; a delivered response is
// always accepted and parsed, however malformed. With no provider or an
// exhausted chain, the result carries deterministic recommendations and a
// user-safe note instead of a score.
func (a *Adapter) Assess(ctx context.Context, loc domain.Location, weather domain.WeatherRecord, fire domain.FireRiskRecord, sat *domain.SatelliteRecord) domain.AIAssessment {
	if a.provider == nil || len(a.models) == 0 {
		return domain.AIAssessment{
			Recommendations: domain.DefaultRecommendations(weather, fire),
			Note:            noteNotConfigured,
		}
	}

	prompt := buildPrompt(loc, weather, fire, sat)

	var lastErr error
	for _, model := range a.models {
		raw, err := a.provider.Complete(ctx, model, prompt)
		if err != nil {
			a.logger.Warn("reasoning model failed, trying next",
				"model", model, "error", err)
			a.metrics.ReasoningAttempts.WithLabelValues(model, "error").Inc()
			lastErr = err
			continue
		}

		a.metrics.ReasoningAttempts.WithLabelValues(model, "success").Inc()
		return a.finalize(model, parseResponse(raw), weather, fire, sat)
	}

	a.logger.Error("all reasoning models exhausted", "models", len(a.models), "error", lastErr)
	return domain.AIAssessment{
		Recommendations: domain.DefaultRecommendations(weather, fire),
		Note:            classify(lastErr),
	}
}

// finalize fills whatever the parse left empty: a missing score falls back to
// the deterministic scorer, missing recommendations to the rule set. The
// result always carries a score, a level, and at least one recommendation.
func (a *Adapter) finalize(model string, p parsed, weather domain.WeatherRecord, fire domain.FireRiskRecord, sat *domain.SatelliteRecord) domain.AIAssessment {
	tier := p.Tier
	score := p.Score
	level := p.Level

	if score == nil {
		s, l := domain.ScoreRisk(weather, fire, sat)
		score, level = &s, l
		tier = tierDeterministic
	} else if level == "" {
		level = domain.LevelForScore(*score)
	}
	a.metrics.ReasoningParses.WithLabelValues(tier).Inc()

	recs := p.Recommendations
	if len(recs) == 0 {
		recs = domain.DefaultRecommendations(weather, fire)
	}

	return domain.AIAssessment{
		Analysis:        p.Analysis,
		Recommendations: recs,
		RiskScore:       score,
		RiskLevel:       level,
		Model:           model,
	}
}

// classify maps the last chain error to a user-safe note. Status codes are
// authoritative when present; message sniffing covers providers that report
// quota exhaustion inside a generic status.
func classify(err error) string {
	if err == nil {
		return noteGeneric
	}

	var callErr *CallError
	if errors.As(err, &callErr) {
		switch callErr.StatusCode {
		case 429:
			return noteQuota
		case 404:
			return noteModelGone
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return noteQuota
	case strings.Contains(msg, "model"), strings.Contains(msg, "not found"):
		return noteModelGone
	}
	return noteGeneric
}
