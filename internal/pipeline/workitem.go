package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
)

var shardSuffix = regexp.MustCompile(`^(.+)-([0-9])-([0-9])$`)

// WorkItem is one unit handed out by a FilePool: a whole file, or one shard
// of a file that selects every Shards-th line starting at line Shard.
type WorkItem struct {
	Path   string
	Shard  int
	Shards int
}

// Sharded reports whether only a subset of the file's lines belongs to the item.
func (w WorkItem) Sharded() bool { return w.Shards > 1 }

// Selects reports whether the zero-based line index belongs to this item.
func (w WorkItem) Selects(line int) bool {
	return !w.Sharded() || line%w.Shards == w.Shard
}

// String renders the item using the "<path>-<shard>-<shards>" convention.
func (w WorkItem) String() string {
	if !w.Sharded() {
		return w.Path
	}
	return fmt.Sprintf("%s-%d-%d", w.Path, w.Shard, w.Shards)
}

// ParseWorkItem is the inverse of WorkItem.String. A suffix with a single
// shard ("-0-1") names the whole file. Names without a valid shard suffix are
// returned unchanged as whole-file items.
func ParseWorkItem(name string) WorkItem {
	m := shardSuffix.FindStringSubmatch(name)
	if m == nil {
		return WorkItem{Path: name}
	}
	shard, _ := strconv.Atoi(m[2])
	shards, _ := strconv.Atoi(m[3])
	if shard >= shards {
		return WorkItem{Path: name}
	}
	if shards < 2 {
		return WorkItem{Path: m[1]}
	}
	return WorkItem{Path: m[1], Shard: shard, Shards: shards}
}
