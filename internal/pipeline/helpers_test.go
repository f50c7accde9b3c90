package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isd-loader/internal/domain"
	"github.com/couchcryptid/isd-loader/internal/observability"
)

// --- mocks ---

type mockStore struct {
	mu      sync.Mutex
	seen    map[string]bool
	batches []int
	err     error
}

func newMockStore() *mockStore {
	return &mockStore{seen: make(map[string]bool)}
}

func (m *mockStore) BulkInsert(_ context.Context, batch []domain.Record) (domain.BulkResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, len(batch))
	if m.err != nil {
		return domain.BulkResult{}, m.err
	}
	var res domain.BulkResult
	for i, rec := range batch {
		key := rec.StationID + "|" + rec.Timestamp.Format(time.RFC3339)
		if m.seen[key] {
			res.Duplicates = append(res.Duplicates, i)
			continue
		}
		m.seen[key] = true
		res.Inserted++
	}
	return res, nil
}

func (m *mockStore) Batches() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.batches...)
}

func (m *mockStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

type mockSink struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
}

func (m *mockSink) PublishDuplicates(_ context.Context, records []domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return m.err
}

type mockStationStore struct {
	stations []domain.Station
	err      error
}

func (m *mockStationStore) InsertStation(_ context.Context, st domain.Station) error {
	if m.err != nil {
		return m.err
	}
	m.stations = append(m.stations, st)
	return nil
}

var errStoreDown = errors.New("store unavailable")

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func newAssembler(t *testing.T) *domain.RecordAssembler {
	t.Helper()
	a, err := domain.NewRecordAssembler()
	require.NoError(t, err)
	return a
}

var baseTime = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

// isdLine builds a minimal valid observation line for station usaf at ts.
func isdLine(usaf string, ts time.Time) string {
	return "0000" + usaf + "99999" + ts.UTC().Format("200601021504") + "4" +
		"+70933" + "-008667" + "FM-12" + "+0009" + "ENJA " + "V020" +
		"3301N00701" + "0120019N" + "0030001N1" + "-00211" + "-00341" + "100401"
}

// isdLines returns n lines for usaf, one minute apart.
func isdLines(usaf string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = isdLine(usaf, baseTime.Add(time.Duration(i)*time.Minute))
	}
	return lines
}

func writeLines(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}
