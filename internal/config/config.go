package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Feed fetching.
	FetchTimeout   time.Duration
	SearchRadiusKm float64
	FIRMSMapKey    string
	SatelliteToken string // empty is a supported, non-error state

	// Reasoning provider.
	ReasoningAPIKey  string
	ReasoningBaseURL string
	ReasoningModels  []string // ordered fallback chain
	ReasoningTimeout time.Duration

	// Optional assessment audit stream. Empty brokers disable publishing.
	KafkaBrokers         []string
	KafkaAssessmentTopic string
}

// defaultModels is the ordered reasoning fallback chain used when
// REASONING_MODELS is unset. Each identifier is a distinct backing model;
// the adapter tries them strictly in order.
var defaultModels = []string{
	"google/gemini-2.0-flash-001",
	"meta-llama/llama-3.3-70b-instruct",
	"mistralai/mistral-small-3.1-24b-instruct",
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := envDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	reasoningTimeout, err := envDuration("REASONING_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	radius, err := envFloat("SEARCH_RADIUS_KM", 500)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FetchTimeout:   fetchTimeout,
		SearchRadiusKm: radius,
		FIRMSMapKey:    os.Getenv("FIRMS_MAP_KEY"),
		SatelliteToken: os.Getenv("SATELLITE_TOKEN"),

		ReasoningAPIKey:  os.Getenv("REASONING_API_KEY"),
		ReasoningBaseURL: envOrDefault("REASONING_BASE_URL", "https://openrouter.ai/api/v1"),
		ReasoningModels:  parseList(envOrDefault("REASONING_MODELS", strings.Join(defaultModels, ","))),
		ReasoningTimeout: reasoningTimeout,

		KafkaBrokers:         parseList(os.Getenv("KAFKA_BROKERS")),
		KafkaAssessmentTopic: envOrDefault("KAFKA_ASSESSMENT_TOPIC", "wildfire-risk-assessments"),
	}

	if cfg.SearchRadiusKm <= 0 {
		return nil, errors.New("SEARCH_RADIUS_KM must be positive")
	}
	if len(cfg.ReasoningModels) == 0 {
		return nil, errors.New("REASONING_MODELS must name at least one model")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaAssessmentTopic == "" {
		return nil, errors.New("KAFKA_ASSESSMENT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether the Kafka assessment stream is configured.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

// parseList splits a comma-separated value, trimming whitespace and dropping
// empty entries.
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
