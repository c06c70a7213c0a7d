package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/air-quality-predictor/internal/config"
	"github.com/couchcryptid/air-quality-predictor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces prediction events to a Kafka topic.
// It implements predictor.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured predictions topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaPredictionsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes a single prediction event.
func (w *Writer) Publish(ctx context.Context, event domain.PredictionEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write prediction event: %w", err)
	}
	w.logger.Debug("prediction event published", "event_id", event.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PredictionEvent into a Kafka message keyed by event ID.
func serializeToMessage(event domain.PredictionEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction event: %w", err)
	}
	severity, _ := event.Severity.MarshalText()
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: severity},
			{Key: "predicted_at", Value: []byte(event.PredictedAt.Format(time.RFC3339))},
		},
	}, nil
}
