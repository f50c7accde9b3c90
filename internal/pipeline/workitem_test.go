package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

func TestWorkItem_String(t *testing.T) {
	assert.Equal(t, "data/010010-99999-2013.gz", pipeline.WorkItem{Path: "data/010010-99999-2013.gz"}.String())
	assert.Equal(t, "data/999999-99999-2013.gz-3-8",
		pipeline.WorkItem{Path: "data/999999-99999-2013.gz", Shard: 3, Shards: 8}.String())
}

func TestParseWorkItem(t *testing.T) {
	tests := []struct {
		name string
		want pipeline.WorkItem
	}{
		{"999999-99999-2013.gz-3-8", pipeline.WorkItem{Path: "999999-99999-2013.gz", Shard: 3, Shards: 8}},
		{"999999-99999-2013-0-2", pipeline.WorkItem{Path: "999999-99999-2013", Shard: 0, Shards: 2}},
		{"010010-99999-2013.gz", pipeline.WorkItem{Path: "010010-99999-2013.gz"}},
		{"010010-99999-2013", pipeline.WorkItem{Path: "010010-99999-2013"}},
		{"file-8-8", pipeline.WorkItem{Path: "file-8-8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.ParseWorkItem(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}

func TestParseWorkItem_SingleShardIsWholeFile(t *testing.T) {
	got := pipeline.ParseWorkItem("data/010010-99999-2013-0-1")
	assert.Equal(t, pipeline.WorkItem{Path: "data/010010-99999-2013"}, got)
	assert.False(t, got.Sharded())
	assert.Equal(t, "data/010010-99999-2013", got.String())
}

func TestWorkItem_Selects(t *testing.T) {
	whole := pipeline.WorkItem{Path: "f"}
	for i := range 5 {
		assert.True(t, whole.Selects(i))
	}

	shard := pipeline.WorkItem{Path: "f", Shard: 1, Shards: 3}
	var picked []int
	for i := range 10 {
		if shard.Selects(i) {
			picked = append(picked, i)
		}
	}
	assert.Equal(t, []int{1, 4, 7}, picked)
}
