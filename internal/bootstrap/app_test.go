package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/infra/config"
	"github.com/yanqian/hairmatch/internal/infra/discoveryqueue"
)

type recordingQueue struct {
	mu      sync.Mutex
	events  *[]string
	handler discoveryqueue.Handler
}

func (q *recordingQueue) Enqueue(context.Context, string, map[string]any) error { return nil }

func (q *recordingQueue) SetHandler(handler discoveryqueue.Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
}

func (q *recordingQueue) Close() { *q.events = append(*q.events, "queue") }

type recordingDispatcher struct {
	events *[]string
}

func (d *recordingDispatcher) Dispatch(context.Context, []string) {}

func (d *recordingDispatcher) Wait(context.Context) { *d.events = append(*d.events, "dispatcher") }

type noopDiscovery struct{}

func (noopDiscovery) Discover(context.Context, discovery.Request) (discovery.Result, error) {
	return discovery.Result{}, nil
}

func TestAppShutdownOrder(t *testing.T) {
	var events []string
	queue := &recordingQueue{events: &events}
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}}
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()}
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server, queue, noopDiscovery{},
		&recordingDispatcher{events: &events},
		Resources{Closers: []func(){func() { events = append(events, "valkey") }, func() { events = append(events, "postgres") }}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.Run(ctx))
	require.NotNil(t, queue.handler)
	require.Equal(t, []string{"dispatcher", "queue", "valkey", "postgres"}, events)
}
