package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 500.0, cfg.SearchRadiusKm)
	assert.Empty(t, cfg.FIRMSMapKey)
	assert.Empty(t, cfg.SatelliteToken)
	assert.Empty(t, cfg.ReasoningAPIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.ReasoningBaseURL)
	assert.Len(t, cfg.ReasoningModels, 3)
	assert.Equal(t, 30*time.Second, cfg.ReasoningTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.PublishEnabled())
	assert.Equal(t, "wildfire-risk-assessments", cfg.KafkaAssessmentTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("SEARCH_RADIUS_KM", "250")
	t.Setenv("FIRMS_MAP_KEY", "firms-key")
	t.Setenv("SATELLITE_TOKEN", "sat-token")
	t.Setenv("REASONING_API_KEY", "sk-test")
	t.Setenv("REASONING_BASE_URL", "https://example.test/v1")
	t.Setenv("REASONING_MODELS", "model-a, model-b")
	t.Setenv("REASONING_TIMEOUT", "45s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ASSESSMENT_TOPIC", "custom-assessments")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 250.0, cfg.SearchRadiusKm)
	assert.Equal(t, "firms-key", cfg.FIRMSMapKey)
	assert.Equal(t, "sat-token", cfg.SatelliteToken)
	assert.Equal(t, "sk-test", cfg.ReasoningAPIKey)
	assert.Equal(t, "https://example.test/v1", cfg.ReasoningBaseURL)
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.ReasoningModels)
	assert.Equal(t, 45*time.Second, cfg.ReasoningTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PublishEnabled())
	assert.Equal(t, "custom-assessments", cfg.KafkaAssessmentTopic)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("FETCH_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "-5s")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad radius", func(t *testing.T) {
		t.Setenv("SEARCH_RADIUS_KM", "wide")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive radius", func(t *testing.T) {
		t.Setenv("SEARCH_RADIUS_KM", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("empty model list", func(t *testing.T) {
		t.Setenv("REASONING_MODELS", " , ")
		_, err := Load()
		assert.Error(t, err)
	})
}
