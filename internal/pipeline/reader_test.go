package pipeline_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func collect(t *testing.T, item pipeline.WorkItem) ([]int, []string) {
	t.Helper()
	var nums []int
	var lines []string
	err := pipeline.ReadLines(item, func(n int, line string) error {
		nums = append(nums, n)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	return nums, lines
}

func TestReadLines_Formats(t *testing.T) {
	content := "one\ntwo\nthree\n"
	dir := t.TempDir()
	files := map[string][]byte{
		"plain":    []byte(content),
		"data.gz":  gzipBytes(t, content),
		"data.zst": zstdBytes(t, content),
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			nums, lines := collect(t, pipeline.WorkItem{Path: path})
			assert.Equal(t, []int{1, 2, 3}, nums)
			assert.Equal(t, []string{"one", "two", "three"}, lines)
		})
	}
}

func TestReadLines_Shard(t *testing.T) {
	path := writeLines(t, t.TempDir(), "f", []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6"})

	nums, lines := collect(t, pipeline.WorkItem{Path: path, Shard: 1, Shards: 3})
	assert.Equal(t, []int{2, 5}, nums)
	assert.Equal(t, []string{"l1", "l4"}, lines)
}

func TestReadLines_ShardsPartitionFile(t *testing.T) {
	lines := make([]string, 101)
	for i := range lines {
		lines[i] = strings.Repeat("x", i%7+1)
	}
	path := writeLines(t, t.TempDir(), "f", lines)

	total := 0
	for s := range 8 {
		nums, _ := collect(t, pipeline.WorkItem{Path: path, Shard: s, Shards: 8})
		total += len(nums)
	}
	assert.Equal(t, len(lines), total)
}

func TestReadLines_Errors(t *testing.T) {
	dir := t.TempDir()

	err := pipeline.ReadLines(pipeline.WorkItem{Path: filepath.Join(dir, "missing")}, func(int, string) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.gz")
	require.NoError(t, os.WriteFile(bad, []byte("not gzip"), 0o600))
	err = pipeline.ReadLines(pipeline.WorkItem{Path: bad}, func(int, string) error { return nil })
	assert.Error(t, err)
}
