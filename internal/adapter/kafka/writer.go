// Package kafka publishes records rejected as duplicates so they can be
// inspected without re-reading the input.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/isd-loader/internal/config"
	"github.com/couchcryptid/isd-loader/internal/domain"
)

// DuplicateWriter produces duplicate records to a Kafka topic.
// It implements pipeline.DuplicateSink.
type DuplicateWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewDuplicateWriter creates a Kafka producer for the configured duplicates topic.
func NewDuplicateWriter(cfg *config.Config, logger *slog.Logger) *DuplicateWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.DuplicatesTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &DuplicateWriter{writer: w, logger: logger}
}

// PublishDuplicates serializes and publishes records in a single
// WriteMessages call. Records from one station share a partition.
func (w *DuplicateWriter) PublishDuplicates(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d duplicates: %w", len(msgs), err)
	}
	w.logger.Debug("published duplicates", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *DuplicateWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a record's stored document into a Kafka message
// keyed by station id.
func serializeToMessage(rec domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec.Document())
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record %s: %w", rec.StationID, err)
	}
	return kafkago.Message{
		Key:   []byte(rec.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(rec.StationID)},
			{Key: "observed_at", Value: []byte(rec.Timestamp.UTC().Format(time.RFC3339))},
		},
	}, nil
}
