package pipeline

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/couchcryptid/isd-loader/internal/config"
)

const (
	// DefaultDominantPrefix names the catch-all file for observations without
	// a station identifier, typically two orders of magnitude larger than any other.
	DefaultDominantPrefix = "999999-99999-"
	// DefaultMaxShards caps how many shards the dominant file is split into.
	DefaultMaxShards = 8
)

// FilePool hands out each work item exactly once to concurrent callers. Once
// Next reports false it reports false for every later call.
type FilePool interface {
	Next() (WorkItem, bool)
	Len() int
}

// SequentialPool hands out files in sorted order.
type SequentialPool struct {
	mu    sync.Mutex
	items []WorkItem
}

// NewSequentialPool returns a FIFO pool over files in dir.
func NewSequentialPool(dir string, files []string) *SequentialPool {
	sorted := sortedCopy(files)
	items := make([]WorkItem, len(sorted))
	for i, f := range sorted {
		items[i] = WorkItem{Path: filepath.Join(dir, f)}
	}
	return &SequentialPool{items: items}
}

func (p *SequentialPool) Next() (WorkItem, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.items) == 0 {
		return WorkItem{}, false
	}
	item := p.items[0]
	p.items = p.items[1:]
	return item, true
}

func (p *SequentialPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// RandomPool hands out files in random order. With more than one worker the
// dominant file is replaced by shard items, which are handed out first.
type RandomPool struct {
	mu     sync.Mutex
	shards []WorkItem
	items  []WorkItem
	rng    *rand.Rand
}

type poolOptions struct {
	dominantPrefix string
	maxShards      int
	rng            *rand.Rand
}

// PoolOption configures a RandomPool.
type PoolOption func(*poolOptions)

// WithDominantPrefix sets the base-name prefix that identifies the dominant file.
func WithDominantPrefix(prefix string) PoolOption {
	return func(o *poolOptions) { o.dominantPrefix = prefix }
}

// WithMaxShards caps the shard count. Values outside 1..9 are ignored.
func WithMaxShards(n int) PoolOption {
	return func(o *poolOptions) {
		if n >= 1 && n <= 9 {
			o.maxShards = n
		}
	}
}

// WithRand sets the random source, for reproducible ordering in tests.
func WithRand(r *rand.Rand) PoolOption {
	return func(o *poolOptions) { o.rng = r }
}

// NewRandomPool returns a random pool over files in dir sized for workers.
// The dominant file is the last file in sorted order whose name starts with
// the dominant prefix.
func NewRandomPool(dir string, files []string, workers int, opts ...PoolOption) *RandomPool {
	o := poolOptions{dominantPrefix: DefaultDominantPrefix, maxShards: DefaultMaxShards}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	sorted := sortedCopy(files)
	p := &RandomPool{rng: o.rng}

	n := min(workers, o.maxShards)
	if n > 1 && o.dominantPrefix != "" {
		if i := dominantIndex(sorted, o.dominantPrefix); i >= 0 {
			path := filepath.Join(dir, sorted[i])
			sorted = slices.Delete(sorted, i, i+1)
			for s := range n {
				p.shards = append(p.shards, WorkItem{Path: path, Shard: s, Shards: n})
			}
		}
	}
	for _, f := range sorted {
		p.items = append(p.items, WorkItem{Path: filepath.Join(dir, f)})
	}
	return p
}

func (p *RandomPool) Next() (WorkItem, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.shards); n > 0 {
		item := p.shards[n-1]
		p.shards = p.shards[:n-1]
		return item, true
	}
	if len(p.items) == 0 {
		return WorkItem{}, false
	}
	i := p.rng.IntN(len(p.items))
	item := p.items[i]
	last := len(p.items) - 1
	p.items[i] = p.items[last]
	p.items = p.items[:last]
	return item, true
}

func (p *RandomPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.shards) + len(p.items)
}

// NewFilePool builds the pool for policy.
func NewFilePool(policy, dir string, files []string, workers int, opts ...PoolOption) (FilePool, error) {
	switch policy {
	case config.PolicyRandom:
		return NewRandomPool(dir, files, workers, opts...), nil
	case config.PolicySequential:
		return NewSequentialPool(dir, files), nil
	default:
		return nil, fmt.Errorf("unknown pool policy %q", policy)
	}
}

// ListFiles returns the sorted names of regular, non-hidden files in dir.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

func dominantIndex(sorted []string, prefix string) int {
	for i := len(sorted) - 1; i >= 0; i-- {
		if strings.HasPrefix(filepath.Base(sorted[i]), prefix) {
			return i
		}
	}
	return -1
}

func sortedCopy(files []string) []string {
	out := slices.Clone(files)
	slices.Sort(out)
	return out
}
