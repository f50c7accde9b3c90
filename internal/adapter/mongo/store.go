// Package mongo stores observations and stations in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/couchcryptid/isd-loader/internal/config"
	"github.com/couchcryptid/isd-loader/internal/domain"
)

// Server error codes reported for a unique index violation.
var duplicateKeyCodes = map[int]bool{11000: true, 11001: true, 12582: true}

// Store writes observation and station documents to two collections.
type Store struct {
	client   *mongo.Client
	data     *mongo.Collection
	stations *mongo.Collection
	logger   *slog.Logger
}

// Connect dials MongoDB and pings it until it answers or the connect
// timeout expires.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	backoff := 100 * time.Millisecond
	for {
		err = client.Ping(ctx, nil)
		if err == nil {
			break
		}
		logger.Warn("mongo ping failed, retrying", "error", err, "backoff", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		backoff = retry.NextBackoff(backoff, 2*time.Second)
	}

	db := client.Database(cfg.MongoDatabase)
	logger.Info("connected to mongo", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
	return &Store{
		client:   client,
		data:     db.Collection(cfg.MongoCollection),
		stations: db.Collection(cfg.MongoStationCollection),
		logger:   logger,
	}, nil
}

// EnsureIndexes creates the geospatial indexes used by position queries and
// the station id index used to join observations to stations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	geo := mongo.IndexModel{Keys: bson.D{{Key: "position", Value: "2dsphere"}}}
	if _, err := s.data.Indexes().CreateOne(ctx, geo); err != nil {
		return fmt.Errorf("create data index: %w", err)
	}
	_, err := s.stations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		geo,
		{Keys: bson.D{{Key: "st", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create station indexes: %w", err)
	}
	return nil
}

// BulkInsert inserts batch without stopping at the first error. Items that
// collide with an existing _id are reported as duplicates.
func (s *Store) BulkInsert(ctx context.Context, batch []domain.Record) (domain.BulkResult, error) {
	if len(batch) == 0 {
		return domain.BulkResult{}, nil
	}
	docs := make([]any, len(batch))
	for i := range batch {
		docs[i] = batch[i].Document()
	}
	_, err := s.data.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return classifyInsertError(len(batch), err)
}

// InsertStation inserts one station document.
func (s *Store) InsertStation(ctx context.Context, st domain.Station) error {
	if _, err := s.stations.InsertOne(ctx, st.Document()); err != nil {
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

// CheckReadiness pings the server.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// classifyInsertError splits an unordered InsertMany failure into duplicate
// indexes and everything else. Anything but duplicates is an error.
func classifyInsertError(n int, err error) (domain.BulkResult, error) {
	if err == nil {
		return domain.BulkResult{Inserted: n}, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return domain.BulkResult{}, fmt.Errorf("insert many: %w", err)
	}

	res := domain.BulkResult{Inserted: n - len(bwe.WriteErrors)}
	var other []string
	for _, we := range bwe.WriteErrors {
		if duplicateKeyCodes[we.Code] {
			res.Duplicates = append(res.Duplicates, we.Index)
			continue
		}
		other = append(other, fmt.Sprintf("item %d: code %d: %s", we.Index, we.Code, we.Message))
	}
	if bwe.WriteConcernError != nil {
		other = append(other, "write concern: "+bwe.WriteConcernError.Message)
	}
	if len(other) > 0 {
		return res, fmt.Errorf("insert many: %s", strings.Join(other, "; "))
	}
	return res, nil
}
