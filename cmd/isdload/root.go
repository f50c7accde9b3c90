package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/couchcryptid/isd-loader/internal/adapter/mongo"
	"github.com/couchcryptid/isd-loader/internal/adapter/sqlite"
	"github.com/couchcryptid/isd-loader/internal/config"
	"github.com/couchcryptid/isd-loader/internal/domain"
	"github.com/couchcryptid/isd-loader/internal/observability"
	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

// env is what every subcommand needs once configuration has been read.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRootCommand builds the isdload command tree.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	e := &env{}
	rc := &cobra.Command{
		Use:   "isdload",
		Short: "isdload - load NOAA ISD weather observations into a document store",
		Long: `Decodes fixed-width Integrated Surface Data files and bulk inserts one
document per observation. Settings come from the environment; see the
load command flags for per-run overrides.`,
		SilenceUsage: true,
	}
	rc.SetIn(stdin)
	rc.SetOut(stdout)
	rc.SetErr(stderr)

	rc.AddCommand(
		newLoadCommand(e),
		newStationsCommand(e),
		newDecodeCommand(),
	)
	return rc
}

// setup reads the environment for commands that talk to a store. decode
// does not call it, so it runs whatever the store settings are.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, cmd.Flags()); err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = observability.NewLogger(cfg)
	e.metrics = observability.NewMetrics()
	return nil
}

// applyFlags copies explicitly set load flags over the environment values.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Lookup("workers") == nil {
		return nil
	}
	if flags.Changed("workers") {
		n, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Workers = n
	}
	if flags.Changed("batch-size") {
		n, err := flags.GetInt("batch-size")
		if err != nil {
			return err
		}
		cfg.BatchSize = n
	}
	if flags.Changed("policy") {
		p, err := flags.GetString("policy")
		if err != nil {
			return err
		}
		cfg.PoolPolicy = p
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}

// store is the write side shared by the mongo and sqlite backends.
type store interface {
	pipeline.BulkInserter
	pipeline.StationInserter
	CheckReadiness(ctx context.Context) error
	Close() error
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", "path", cfg.SQLitePath)
		return s, nil
	default:
		s, err := mongo.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	}
}

func newAssembler() (*domain.RecordAssembler, error) {
	a, err := domain.NewRecordAssembler()
	if err != nil {
		return nil, fmt.Errorf("build decoder table: %w", err)
	}
	return a, nil
}
