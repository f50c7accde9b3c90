// Package pipeline hands input files to workers that decode them and write
// the records to a store in batches.
package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/isd-loader/internal/domain"
	"github.com/couchcryptid/isd-loader/internal/observability"
)

// RecordDecoder converts one input line into a record.
type RecordDecoder interface {
	Decode(line string) (domain.Record, error)
}

// BulkInserter writes a batch without stopping at the first failed item.
// Items rejected for an existing key are reported in BulkResult.Duplicates and
// are not an error; any other failure is returned as an error.
type BulkInserter interface {
	BulkInsert(ctx context.Context, batch []domain.Record) (domain.BulkResult, error)
}

// DuplicateSink receives records the store rejected as duplicates.
type DuplicateSink interface {
	PublishDuplicates(ctx context.Context, records []domain.Record) error
}

// State is a loader's position in its work loop.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateReading
	StateFlushing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReading:
		return "reading"
	case StateFlushing:
		return "flushing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Stats counts what one loader has processed.
type Stats struct {
	Files      int
	Lines      int
	Inserted   int
	Duplicates int
	Flushes    int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Files += o.Files
	s.Lines += o.Lines
	s.Inserted += o.Inserted
	s.Duplicates += o.Duplicates
	s.Flushes += o.Flushes
}

// Loader is the per-worker state: one batch buffer and its counters. A Loader
// is not safe for concurrent use; each worker owns its own.
type Loader struct {
	id        int
	decoder   RecordDecoder
	store     BulkInserter
	sink      DuplicateSink
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	batchSize int

	buffer []domain.Record
	stats  Stats
	state  atomic.Int32
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDuplicateSink forwards rejected duplicates to sink. A nil sink is ignored.
func WithDuplicateSink(sink DuplicateSink) LoaderOption {
	return func(l *Loader) { l.sink = sink }
}

// WithClock sets the clock used to time flushes.
func WithClock(c clockwork.Clock) LoaderOption {
	return func(l *Loader) { l.clock = c }
}

// NewLoader creates a Loader that flushes every batchSize records.
func NewLoader(id int, decoder RecordDecoder, store BulkInserter, logger *slog.Logger, metrics *observability.Metrics, batchSize int, opts ...LoaderOption) *Loader {
	l := &Loader{
		id:        id,
		decoder:   decoder,
		store:     store,
		logger:    logger.With("worker", id),
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		batchSize: max(batchSize, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.buffer = make([]domain.Record, 0, l.batchSize)
	return l
}

// State returns the loader's current state. It may be called from any goroutine.
func (l *Loader) State() State { return State(l.state.Load()) }

// Stats returns the loader's counters so far.
func (l *Loader) Stats() Stats { return l.stats }

func (l *Loader) setState(s State) { l.state.Store(int32(s)) }

// Run takes items from pool until it is exhausted, loading each one. It stops
// at the first failure; records already flushed stay written.
func (l *Loader) Run(ctx context.Context, pool FilePool) (Stats, error) {
	defer l.setState(StateDone)
	for {
		l.setState(StateFetching)
		item, ok := pool.Next()
		if !ok {
			break
		}
		if err := l.load(ctx, item); err != nil {
			return l.stats, err
		}
	}
	if err := l.flush(ctx, WorkItem{}); err != nil {
		return l.stats, err
	}
	l.logger.Info("worker finished",
		"files", l.stats.Files,
		"inserted", l.stats.Inserted,
		"duplicates", l.stats.Duplicates,
	)
	return l.stats, nil
}

// LoadFile loads a single file. name may carry a "-<shard>-<shards>" suffix.
func (l *Loader) LoadFile(ctx context.Context, name string) (Stats, error) {
	defer l.setState(StateDone)
	err := l.load(ctx, ParseWorkItem(name))
	return l.stats, err
}

func (l *Loader) load(ctx context.Context, item WorkItem) error {
	l.setState(StateReading)
	l.logger.Debug("loading file", "file", item.String())

	err := ReadLines(item, func(lineNo int, line string) error {
		l.stats.Lines++
		l.metrics.LinesRead.Inc()

		rec, err := l.decoder.Decode(line)
		if err != nil {
			return &LineError{File: item.String(), Line: lineNo, Err: err}
		}
		l.metrics.RecordsDecoded.Inc()

		l.buffer = append(l.buffer, rec)
		if len(l.buffer) >= l.batchSize {
			return l.flush(ctx, item)
		}
		return nil
	})
	if err != nil {
		if isLoadError(err) {
			return err
		}
		return &ReadError{File: item.String(), Err: err}
	}

	if err := l.flush(ctx, item); err != nil {
		return err
	}
	l.stats.Files++
	l.metrics.FilesProcessed.Inc()
	return nil
}

// flush writes the buffer and clears it whatever the outcome. Duplicates are
// counted and forwarded; any other store error is returned.
func (l *Loader) flush(ctx context.Context, item WorkItem) error {
	if len(l.buffer) == 0 {
		return nil
	}
	prev := l.State()
	l.setState(StateFlushing)
	defer l.setState(prev)

	batch := l.buffer
	l.buffer = make([]domain.Record, 0, l.batchSize)

	start := l.clock.Now()
	res, err := l.store.BulkInsert(ctx, batch)
	l.metrics.FlushDuration.Observe(l.clock.Since(start).Seconds())
	l.metrics.BatchSize.Observe(float64(len(batch)))
	l.metrics.Flushes.Inc()
	l.stats.Flushes++

	l.stats.Inserted += res.Inserted
	l.metrics.RecordsInserted.Add(float64(res.Inserted))
	if len(res.Duplicates) > 0 {
		l.duplicates(ctx, item, batch, res.Duplicates)
	}

	if err != nil {
		return &WriteError{File: item.String(), Records: len(batch), Err: err}
	}
	return nil
}

func (l *Loader) duplicates(ctx context.Context, item WorkItem, batch []domain.Record, idx []int) {
	l.stats.Duplicates += len(idx)
	l.metrics.Duplicates.Add(float64(len(idx)))

	dups := make([]domain.Record, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(batch) {
			dups = append(dups, batch[i])
		}
	}
	l.logger.Debug("duplicate records skipped", "file", item.String(), "count", len(dups))

	if l.sink == nil {
		return
	}
	if err := l.sink.PublishDuplicates(ctx, dups); err != nil {
		l.logger.Warn("publish duplicates failed", "error", err, "count", len(dups))
	}
}
