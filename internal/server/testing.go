package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/basecamp/visit-recorder/internal/store"
)

var (
	testInstant = time.Date(2024, 1, 1, 14, 5, 9, 0, time.UTC)
)

func testConfig(t testing.TB) *Config {
	t.Helper()

	return &Config{
		Bind:                "127.0.0.1",
		HttpPort:            0,
		Store:               StoreMemory,
		ListKey:             DefaultListKey,
		Render:              RenderHTML,
		TimestampFormat:     TimestampClock,
		FutureEnabled:       true,
		HealthCheckInterval: time.Millisecond * 10,
		HealthCheckTimeout:  time.Millisecond * 10,
	}
}

func testServer(t testing.TB, config *Config, visits store.VisitLog) (*Server, string) {
	t.Helper()

	server := NewServer(config, visits)
	server.clock = func() time.Time { return testInstant }

	err := server.Start()
	require.NoError(t, err)
	t.Cleanup(server.Stop)

	return server, fmt.Sprintf("http://127.0.0.1:%d", server.HttpPort())
}

func testGet(t testing.TB, url string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func testRange(t testing.TB, visits store.VisitLog) []string {
	t.Helper()

	times, err := visits.Range(context.Background())
	require.NoError(t, err)
	return times
}

func testFreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}
