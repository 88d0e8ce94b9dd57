package reasoning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	"github.com/emberwatch/wildfire-risk-engine/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned results per model and records the call order.
type stubProvider struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (s *stubProvider) Complete(_ context.Context, model, _ string) (string, error) {
	s.calls = append(s.calls, model)
	if err, ok := s.errs[model]; ok {
		return "", err
	}
	return s.responses[model], nil
}

func testAdapter(p Provider, models ...string) *Adapter {
	return New(p, models, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

var (
	testLocation = domain.Location{Lat: 43.7315, Lon: -79.7624, Name: "Brampton"}
	testWeather  = domain.WeatherRecord{Humidity: 40, TemperatureC: 28, WindSpeedKmh: 18, Source: domain.SourceLive}
	testFire     = domain.FireRiskRecord{Level: domain.RiskMedium, Score: 42, NearbyCount: 2, TotalEvents: 120, Source: domain.SourceLive}
)

func TestAssess_NilProviderIsDeterministic(t *testing.T) {
	result := testAdapter(nil, "model-a").Assess(context.Background(), testLocation, testWeather, testFire, nil)

	assert.Nil(t, result.RiskScore)
	assert.Empty(t, result.Model)
	assert.Equal(t, noteNotConfigured, result.Note)
	assert.Equal(t, domain.DefaultRecommendations(testWeather, testFire), result.Recommendations)
}

func TestAssess_FallbackChainAdvancesOnErrorOnly(t *testing.T) {
	stub := &stubProvider{
		errs: map[string]error{
			"model-a": &CallError{StatusCode: 500, Message: "upstream exploded"},
		},
		responses: map[string]string{
			"model-b": `{"riskScore": 55, "riskLevel": "medium", "analysis": "Moderate conditions.", "recommendations": ["Stay alert"]}`,
			"model-c": `{"riskScore": 99, "riskLevel": "extreme", "analysis": "should never be asked", "recommendations": []}`,
		},
	}

	result := testAdapter(stub, "model-a", "model-b", "model-c").Assess(context.Background(), testLocation, testWeather, testFire, nil)

	assert.Equal(t, []string{"model-a", "model-b"}, stub.calls, "chain stops at first success")
	require.NotNil(t, result.RiskScore)
	assert.Equal(t, 55, *result.RiskScore)
	assert.Equal(t, domain.RiskMedium, result.RiskLevel)
	assert.Equal(t, "model-b", result.Model)
	assert.Empty(t, result.Note)
}

func TestAssess_MalformedResponseDoesNotAdvanceChain(t *testing.T) {
	// A delivered response is accepted even when it ignores the JSON contract;
	// the loose parser still extracts what it can.
	stub := &stubProvider{
		responses: map[string]string{
			"model-a": "Conditions are drying out quickly across the foothills today.\nRisk score: 62\nRisk level: high\n- Limit outdoor burning",
		},
	}

	result := testAdapter(stub, "model-a", "model-b").Assess(context.Background(), testLocation, testWeather, testFire, nil)

	assert.Equal(t, []string{"model-a"}, stub.calls)
	require.NotNil(t, result.RiskScore)
	assert.Equal(t, 62, *result.RiskScore)
	assert.Equal(t, domain.RiskHigh, result.RiskLevel)
	assert.Equal(t, []string{"Limit outdoor burning"}, result.Recommendations)
}

func TestAssess_DeterministicSafetyNetWhenNoScoreExtractable(t *testing.T) {
	stub := &stubProvider{
		responses: map[string]string{
			"model-a": "The outlook is benign and nothing noteworthy stands out right now.",
		},
	}

	sat := domain.SyntheticSatellite(testLocation.Lat, testLocation.Lon)
	result := testAdapter(stub, "model-a").Assess(context.Background(), testLocation, testWeather, testFire, &sat)

	wantScore, wantLevel := domain.ScoreRisk(testWeather, testFire, &sat)
	require.NotNil(t, result.RiskScore)
	assert.Equal(t, wantScore, *result.RiskScore)
	assert.Equal(t, wantLevel, result.RiskLevel)
	assert.Equal(t, "model-a", result.Model, "response was used even though scoring fell back")
	assert.NotEmpty(t, result.Recommendations, "rule-based recommendations backfill an empty list")
}

func TestAssess_LevelDerivedWhenScorePresentWithoutLevel(t *testing.T) {
	stub := &stubProvider{
		responses: map[string]string{
			"model-a": "A dry spell is stressing fuels near the urban fringe.\nRisk score: 80",
		},
	}

	result := testAdapter(stub, "model-a").Assess(context.Background(), testLocation, testWeather, testFire, nil)

	require.NotNil(t, result.RiskScore)
	assert.Equal(t, 80, *result.RiskScore)
	assert.Equal(t, domain.RiskExtreme, result.RiskLevel)
}

func TestAssess_ExhaustedChainClassification(t *testing.T) {
	tests := []struct {
		name     string
		lastErr  error
		wantNote string
	}{
		{"quota status", &CallError{StatusCode: 429, Message: "slow down"}, noteQuota},
		{"model missing status", &CallError{StatusCode: 404, Message: "no such model"}, noteModelGone},
		{"quota in message", errors.New("provider quota exceeded for key"), noteQuota},
		{"model in message", errors.New("model deprecated upstream"), noteModelGone},
		{"opaque failure", errors.New("connection reset by peer"), noteGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubProvider{errs: map[string]error{
				"model-a": errors.New("first failure"),
				"model-b": tt.lastErr,
			}}

			result := testAdapter(stub, "model-a", "model-b").Assess(context.Background(), testLocation, testWeather, testFire, nil)

			assert.Equal(t, []string{"model-a", "model-b"}, stub.calls)
			assert.Nil(t, result.RiskScore)
			assert.Equal(t, tt.wantNote, result.Note)
			assert.Equal(t, domain.DefaultRecommendations(testWeather, testFire), result.Recommendations)
		})
	}
}
