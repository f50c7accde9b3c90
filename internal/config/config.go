package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// File pool policies.
const (
	PolicyRandom     = "random"
	PolicySequential = "sequential"
)

// Config holds all loader settings, populated from environment variables.
// Command-line flags may override individual fields after Load.
type Config struct {
	StoreBackend string

	// MongoDB target.
	MongoURI               string
	MongoDatabase          string
	MongoCollection        string
	MongoStationCollection string
	MongoConnectTimeout    time.Duration

	SQLitePath string

	Workers        int
	BatchSize      int
	PoolPolicy     string
	DominantPrefix string
	MaxShards      int

	// Optional duplicate sink. Disabled when no brokers are set.
	KafkaBrokers    []string
	DuplicatesTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	connectTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MONGO_CONNECT_TIMEOUT", "10s"))
	if err != nil || connectTimeout <= 0 {
		return nil, errors.New("invalid MONGO_CONNECT_TIMEOUT")
	}

	workers, err := parseIntInRange("WORKERS", 8, 1, 1024)
	if err != nil {
		return nil, err
	}
	batchSize, err := parseIntInRange("BATCH_SIZE", 400, 1, 100000)
	if err != nil {
		return nil, err
	}
	maxShards, err := parseIntInRange("MAX_SHARDS", 8, 1, 9)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StoreBackend:           strings.ToLower(sharedcfg.EnvOrDefault("STORE_BACKEND", BackendMongo)),
		MongoURI:               sharedcfg.EnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:          sharedcfg.EnvOrDefault("MONGO_DATABASE", "ncdc"),
		MongoCollection:        sharedcfg.EnvOrDefault("MONGO_COLLECTION", "data"),
		MongoStationCollection: sharedcfg.EnvOrDefault("MONGO_STATION_COLLECTION", "station"),
		MongoConnectTimeout:    connectTimeout,
		SQLitePath:             sharedcfg.EnvOrDefault("SQLITE_PATH", "ncdc.db"),
		Workers:                workers,
		BatchSize:              batchSize,
		PoolPolicy:             strings.ToLower(sharedcfg.EnvOrDefault("POOL_POLICY", PolicyRandom)),
		DominantPrefix:         sharedcfg.EnvOrDefault("DOMINANT_PREFIX", "999999-99999-"),
		MaxShards:              maxShards,
		KafkaBrokers:           sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "")),
		DuplicatesTopic:        sharedcfg.EnvOrDefault("DUPLICATES_TOPIC", "isd-duplicates"),
		HTTPAddr:               sharedcfg.EnvOrDefault("HTTP_ADDR", ""),
		LogLevel:               sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:        shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may have overridden after Load.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required")
		}
		if c.MongoDatabase == "" || c.MongoCollection == "" {
			return errors.New("MONGO_DATABASE and MONGO_COLLECTION are required")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want %s or %s", c.StoreBackend, BackendMongo, BackendSQLite)
	}

	switch c.PoolPolicy {
	case PolicyRandom, PolicySequential:
	default:
		return fmt.Errorf("invalid POOL_POLICY %q: want %s or %s", c.PoolPolicy, PolicyRandom, PolicySequential)
	}

	if c.Workers < 1 {
		return errors.New("WORKERS must be at least 1")
	}
	if c.BatchSize < 1 {
		return errors.New("BATCH_SIZE must be at least 1")
	}
	if len(c.KafkaBrokers) > 0 && c.DuplicatesTopic == "" {
		return errors.New("DUPLICATES_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// DuplicateSinkEnabled reports whether rejected duplicates are published to Kafka.
func (c *Config) DuplicateSinkEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseIntInRange(name string, def, lo, hi int) (int, error) {
	s := sharedcfg.EnvOrDefault(name, strconv.Itoa(def))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s %d: must be between %d and %d", name, n, lo, hi)
	}
	return n, nil
}
