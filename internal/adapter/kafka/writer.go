package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-hazard-service/internal/config"
	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes hazard reports to a Kafka topic.
// It implements selector.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a report and writes it synchronously.
func (w *Writer) Publish(ctx context.Context, report domain.HazardReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write hazard report: %w", err)
	}
	w.logger.Debug("hazard report published",
		"topic", w.writer.Topic,
		"start_date", report.StartDate,
		"count", len(report.Asteroids),
	)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a HazardReport into a Kafka message keyed by start date.
func serializeToMessage(report domain.HazardReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hazard report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.StartDate),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "days", Value: []byte(strconv.Itoa(report.Days))},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
