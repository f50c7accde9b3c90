//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

var baseTime = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("isd-test"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func startMongo(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start mongo")

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func isdLine(usaf string, ts time.Time) string {
	return "0000" + usaf + "99999" + ts.UTC().Format("200601021504") + "4" +
		"+70933" + "-008667" + "FM-12" + "+0009" + "ENJA " + "V020" +
		"3301N00701" + "0120019N" + "0030001N1" + "-00211" + "-00341" + "100401"
}

// isdLines returns n hourly lines for usaf starting at baseTime plus offset hours.
func isdLines(usaf string, offset, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = isdLine(usaf, baseTime.Add(time.Duration(offset+i)*time.Hour))
	}
	return lines
}

func writeLines(t *testing.T, dir, name string, lines []string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}
