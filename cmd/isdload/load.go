package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/isd-loader/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/isd-loader/internal/adapter/kafka"
	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

func newLoadCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <dir>",
		Short: "load every ISD file in a directory",
		Long: `Starts the configured number of workers over the files in dir. Each worker
decodes lines, buffers them and bulk inserts a batch at a time. Records the
store already holds are counted as duplicates and do not fail the load.
The exit status is non-zero if any worker failed.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: e.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), e, args[0], cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.IntP("workers", "w", 8, "number of concurrent workers (WORKERS)")
	flags.IntP("batch-size", "b", 400, "records per bulk insert (BATCH_SIZE)")
	flags.String("policy", "random", "file pool policy, random or sequential (POOL_POLICY)")
	return cmd
}

func runLoad(ctx context.Context, e *env, dir string, out io.Writer) error {
	cfg, logger := e.cfg, e.logger

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := pipeline.ListFiles(dir)
	if err != nil {
		return err
	}
	pool, err := pipeline.NewFilePool(cfg.PoolPolicy, dir, files, cfg.Workers,
		pipeline.WithDominantPrefix(cfg.DominantPrefix),
		pipeline.WithMaxShards(cfg.MaxShards),
	)
	if err != nil {
		return err
	}
	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}()

	var sink pipeline.DuplicateSink
	if cfg.DuplicateSinkEnabled() {
		w := kafkaadapter.NewDuplicateWriter(cfg, logger)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		sink = w
		logger.Info("duplicate sink enabled", "topic", cfg.DuplicatesTopic)
	}

	clock := clockwork.NewRealClock()
	factory := func(id int) *pipeline.Loader {
		return pipeline.NewLoader(id, assembler, st, logger, e.metrics, cfg.BatchSize,
			pipeline.WithDuplicateSink(sink),
			pipeline.WithClock(clock),
		)
	}
	orch := pipeline.NewOrchestrator(cfg.Workers, factory, logger, e.metrics, clock)

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, orch, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	sum, err := orch.Run(ctx, pool)
	printSummary(out, sum)
	if err != nil {
		reportFailure(e, err)
		return fmt.Errorf("%d of %d workers failed", sum.Failed, sum.Workers)
	}
	return nil
}

func printSummary(w io.Writer, sum pipeline.Summary) {
	rate := 0.0
	if secs := sum.Elapsed.Seconds(); secs > 0 {
		rate = float64(sum.Inserted) / secs
	}
	fmt.Fprintf(w, "files:      %s\n", humanize.Comma(int64(sum.Files)))
	fmt.Fprintf(w, "lines:      %s\n", humanize.Comma(int64(sum.Lines)))
	fmt.Fprintf(w, "inserted:   %s\n", humanize.Comma(int64(sum.Inserted)))
	fmt.Fprintf(w, "duplicates: %s\n", humanize.Comma(int64(sum.Duplicates)))
	fmt.Fprintf(w, "elapsed:    %s (%s records/s)\n", sum.Elapsed.Round(time.Millisecond), humanize.CommafWithDigits(rate, 0))
}

// reportFailure logs where the first fatal error of each kind happened.
func reportFailure(e *env, err error) {
	var le *pipeline.LineError
	if errors.As(err, &le) {
		e.logger.Error("malformed input", "file", le.File, "line", le.Line, "error", le.Err)
	}
	var we *pipeline.WriteError
	if errors.As(err, &we) {
		e.logger.Error("store write failed", "file", we.File, "records", we.Records, "error", we.Err)
	}
	var re *pipeline.ReadError
	if errors.As(err, &re) {
		e.logger.Error("input unreadable", "file", re.File, "error", re.Err)
	}
}
