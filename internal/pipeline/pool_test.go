package pipeline_test

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isd-loader/internal/config"
	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

var poolFiles = []string{
	"010010-99999-2013.gz",
	"999999-99999-2013.gz",
	"010014-99999-2013.gz",
	"725030-14732-2013.gz",
	"010020-99999-2013.gz",
}

const dominant = "data/999999-99999-2013.gz"

func drain(p pipeline.FilePool) []pipeline.WorkItem {
	var items []pipeline.WorkItem
	for {
		item, ok := p.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

func seeded() pipeline.PoolOption {
	return pipeline.WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestSequentialPool_SortedFIFO(t *testing.T) {
	p := pipeline.NewSequentialPool("data", poolFiles)
	assert.Equal(t, 5, p.Len())

	items := drain(p)
	require.Len(t, items, 5)
	assert.Equal(t, "data/010010-99999-2013.gz", items[0].Path)
	assert.Equal(t, "data/010014-99999-2013.gz", items[1].Path)
	assert.Equal(t, "data/010020-99999-2013.gz", items[2].Path)
	assert.Equal(t, "data/725030-14732-2013.gz", items[3].Path)
	assert.Equal(t, dominant, items[4].Path)
	for _, it := range items {
		assert.False(t, it.Sharded())
	}

	_, ok := p.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
}

func TestRandomPool_ShardsDominantFileFirst(t *testing.T) {
	const workers = 4
	p := pipeline.NewRandomPool("data", poolFiles, workers, seeded())
	assert.Equal(t, len(poolFiles)-1+workers, p.Len())

	items := drain(p)
	require.Len(t, items, len(poolFiles)-1+workers)

	shardIdx := map[int]bool{}
	for _, it := range items[:workers] {
		assert.Equal(t, dominant, it.Path)
		assert.Equal(t, workers, it.Shards)
		shardIdx[it.Shard] = true
	}
	assert.Len(t, shardIdx, workers)

	seen := map[string]bool{}
	for _, it := range items[workers:] {
		assert.False(t, it.Sharded())
		assert.NotEqual(t, dominant, it.Path)
		seen[it.Path] = true
	}
	assert.Len(t, seen, len(poolFiles)-1)
}

func TestRandomPool_ShardCountCapped(t *testing.T) {
	p := pipeline.NewRandomPool("data", poolFiles, 20, seeded())
	assert.Equal(t, len(poolFiles)-1+pipeline.DefaultMaxShards, p.Len())

	p = pipeline.NewRandomPool("data", poolFiles, 20, seeded(), pipeline.WithMaxShards(3))
	items := drain(p)
	assert.Len(t, items, len(poolFiles)-1+3)
	assert.Equal(t, 3, items[0].Shards)
}

func TestRandomPool_SingleWorkerNoSplit(t *testing.T) {
	p := pipeline.NewRandomPool("data", poolFiles, 1, seeded())
	items := drain(p)
	require.Len(t, items, len(poolFiles))
	for _, it := range items {
		assert.False(t, it.Sharded())
	}
}

func TestRandomPool_NoDominantFile(t *testing.T) {
	files := []string{"010010-99999-2013.gz", "010014-99999-2013.gz"}
	p := pipeline.NewRandomPool("data", files, 8, seeded())
	assert.Len(t, drain(p), 2)
}

func TestRandomPool_CustomPrefix(t *testing.T) {
	p := pipeline.NewRandomPool("data", poolFiles, 2, seeded(), pipeline.WithDominantPrefix("725030-"))
	item, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, "data/725030-14732-2013.gz", item.Path)
	assert.True(t, item.Sharded())
}

func TestRandomPool_ConcurrentExactlyOnce(t *testing.T) {
	files := make([]string, 200)
	for i := range files {
		files[i] = filepath.Join("y", string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	files = append(files, "999999-99999-2013")
	const workers = 8

	p := pipeline.NewRandomPool("", files, workers)

	var mu sync.Mutex
	got := map[string]int{}
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for {
				item, ok := p.Next()
				if !ok {
					return
				}
				mu.Lock()
				got[item.String()]++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Len(t, got, len(files)-1+workers)
	for name, n := range got {
		assert.Equal(t, 1, n, name)
	}
	_, ok := p.Next()
	assert.False(t, ok)
}

func TestNewFilePool(t *testing.T) {
	p, err := pipeline.NewFilePool(config.PolicySequential, "data", poolFiles, 4)
	require.NoError(t, err)
	assert.IsType(t, &pipeline.SequentialPool{}, p)

	p, err = pipeline.NewFilePool(config.PolicyRandom, "data", poolFiles, 4)
	require.NoError(t, err)
	assert.IsType(t, &pipeline.RandomPool{}, p)

	_, err = pipeline.NewFilePool("lifo", "data", poolFiles, 4)
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-2013", "a-2013.gz", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	files, err := pipeline.ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-2013.gz", "b-2013"}, files)

	_, err = pipeline.ListFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
