package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/isd-loader/internal/observability"
)

// LoaderFactory builds the loader for worker id.
type LoaderFactory func(id int) *Loader

// Summary aggregates the outcome of a load across all workers.
type Summary struct {
	Stats
	Workers int
	Failed  int
	Elapsed time.Duration
}

// Orchestrator runs a fixed number of workers over one shared FilePool.
type Orchestrator struct {
	workers   int
	newLoader LoaderFactory
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	started   atomic.Bool

	mu      sync.Mutex
	pool    FilePool
	loaders []*Loader
}

// Progress is a point-in-time view of a running load.
type Progress struct {
	Started   bool     `json:"started"`
	Remaining int      `json:"remaining"`
	Workers   []string `json:"workers"`
}

// NewOrchestrator creates an Orchestrator for workers goroutines.
func NewOrchestrator(workers int, newLoader LoaderFactory, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Orchestrator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Orchestrator{
		workers:   max(workers, 1),
		newLoader: newLoader,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// CheckReadiness returns nil once workers have been started.
func (o *Orchestrator) CheckReadiness(_ context.Context) error {
	if !o.started.Load() {
		return errors.New("load has not started")
	}
	return nil
}

// Progress reports the pool backlog and each worker's state. It is safe to
// call while Run is in progress.
func (o *Orchestrator) Progress() Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	p := Progress{Started: o.started.Load(), Workers: make([]string, len(o.loaders))}
	if o.pool != nil {
		p.Remaining = o.pool.Len()
	}
	for i, l := range o.loaders {
		p.Workers[i] = l.State().String()
	}
	return p
}

// Run starts the workers and blocks until every one of them has finished.
// A failing worker does not stop the others; all failures are joined into
// the returned error.
func (o *Orchestrator) Run(ctx context.Context, pool FilePool) (Summary, error) {
	start := o.clock.Now()
	o.logger.Info("load started", "workers", o.workers, "items", pool.Len())

	loaders := make([]*Loader, o.workers)
	for i := range loaders {
		loaders[i] = o.newLoader(i)
	}
	o.mu.Lock()
	o.pool, o.loaders = pool, loaders
	o.mu.Unlock()
	o.started.Store(true)

	stats := make([]Stats, o.workers)
	errs := make([]error, o.workers)

	var wg sync.WaitGroup
	for i := range o.workers {
		wg.Go(func() {
			o.metrics.WorkersActive.Inc()
			defer o.metrics.WorkersActive.Dec()

			s, err := loaders[i].Run(ctx, pool)
			stats[i] = s
			if err != nil {
				o.metrics.WorkerErrors.Inc()
				o.logger.Error("worker failed", "worker", i, "error", err)
				errs[i] = fmt.Errorf("worker %d: %w", i, err)
			}
		})
	}
	wg.Wait()

	sum := Summary{Workers: o.workers, Elapsed: o.clock.Since(start)}
	for i := range o.workers {
		sum.Add(stats[i])
		if errs[i] != nil {
			sum.Failed++
		}
	}
	o.logger.Info("load finished",
		"files", sum.Files,
		"lines", sum.Lines,
		"inserted", sum.Inserted,
		"duplicates", sum.Duplicates,
		"failed_workers", sum.Failed,
		"elapsed", sum.Elapsed,
	)
	return sum, errors.Join(errs...)
}
