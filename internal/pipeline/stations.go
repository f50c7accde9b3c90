package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/isd-loader/internal/domain"
	"github.com/couchcryptid/isd-loader/internal/observability"
)

// StationInserter stores one station document.
type StationInserter interface {
	InsertStation(ctx context.Context, st domain.Station) error
}

// LoadStations reads a station history file, skipping its header line and
// blank lines, and inserts every station in order. It returns the number
// of stations written.
func LoadStations(ctx context.Context, name string, r io.Reader, store StationInserter, logger *slog.Logger, metrics *observability.Metrics) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	for lineNo := 1; sc.Scan(); lineNo++ {
		if lineNo == 1 {
			continue
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		st, err := domain.DecodeStation(line)
		if err != nil {
			return n, &LineError{File: name, Line: lineNo, Err: err}
		}
		if err := store.InsertStation(ctx, st); err != nil {
			return n, fmt.Errorf("insert station %s: %w", st.StationID, err)
		}
		n++
		metrics.Stations.Inc()
	}
	if err := sc.Err(); err != nil {
		return n, &ReadError{File: name, Err: err}
	}
	logger.Info("stations loaded", "file", name, "count", n)
	return n, nil
}
