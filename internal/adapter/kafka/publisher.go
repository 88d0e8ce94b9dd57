// Package kafka publishes completed assessments to an audit topic so
// downstream consumers can archive or alert on them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emberwatch/wildfire-risk-engine/internal/config"
	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces assessment records to the audit topic. It implements
// assess.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured assessment topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAssessmentTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes and writes one assessment. Messages for the same
// coordinate share a key so per-location history stays ordered within a
// partition.
func (p *Publisher) Publish(ctx context.Context, a domain.Assessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an assessment into a Kafka message.
func serializeToMessage(a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	_, level := a.DisplayScore()
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", a.Location.Lat, a.Location.Lon)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(level)},
			{Key: "generated_at", Value: []byte(a.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
