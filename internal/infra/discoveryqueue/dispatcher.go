package discoveryqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/pkg/metrics"
)

// Sender delivers one discovery batch to the synthesizer.
type Sender interface {
	Send(ctx context.Context, names []string) error
}

// AsyncDispatcher implements scoring.Dispatcher by sending in the background.
// Send errors are logged and counted, never returned.
type AsyncDispatcher struct {
	sender  Sender
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncDispatcher constructs the dispatcher. timeout bounds each send.
func NewAsyncDispatcher(sender Sender, timeout time.Duration, logger *slog.Logger) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AsyncDispatcher{
		sender:  sender,
		timeout: timeout,
		logger:  logger.With("component", "discoveryqueue.dispatcher"),
	}
}

// Dispatch returns immediately; the send runs detached from ctx's cancellation.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, names []string) {
	if len(names) == 0 {
		return
	}
	batch := append([]string(nil), names...)
	base := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(base, d.timeout)
		defer cancel()
		if err := d.sender.Send(sendCtx, batch); err != nil {
			metrics.DiscoveryDispatches.WithLabelValues(metrics.OutcomeFailure).Inc()
			d.logger.Error("failed to trigger rule discovery", "count", len(batch), "error", err)
			return
		}
		metrics.DiscoveryDispatches.WithLabelValues(metrics.OutcomeSuccess).Inc()
		d.logger.Debug("rule discovery dispatched", "count", len(batch))
	}()
}

// Wait blocks until in-flight sends finish or ctx ends.
func (d *AsyncDispatcher) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// NoopDispatcher drops every batch.
type NoopDispatcher struct{}

// Dispatch implements scoring.Dispatcher.
func (NoopDispatcher) Dispatch(context.Context, []string) {}

// QueueSender enqueues batches as discovery jobs.
type QueueSender struct {
	queue JobQueue
}

// NewQueueSender constructs a sender over queue.
func NewQueueSender(queue JobQueue) *QueueSender {
	return &QueueSender{queue: queue}
}

// Send implements Sender.
func (s *QueueSender) Send(ctx context.Context, names []string) error {
	return s.queue.Enqueue(ctx, JobDiscoverRules, map[string]any{"ingredients": names})
}

// HTTPSender posts batches to a remote discovery endpoint. The response body is
// not consumed beyond the status code.
type HTTPSender struct {
	endpoint   string
	serviceKey string
	client     *http.Client
}

// NewHTTPSender constructs a sender for endpoint authorized by serviceKey.
func NewHTTPSender(endpoint, serviceKey string, client *http.Client) *HTTPSender {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSender{
		endpoint:   strings.TrimSpace(endpoint),
		serviceKey: serviceKey,
		client:     client,
	}
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, names []string) error {
	payload, err := json.Marshal(map[string]any{"ingredients": names})
	if err != nil {
		return fmt.Errorf("encode discovery payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build discovery request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send discovery request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discovery endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var (
	_ scoring.Dispatcher = (*AsyncDispatcher)(nil)
	_ scoring.Dispatcher = NoopDispatcher{}
	_ Sender             = (*QueueSender)(nil)
	_ Sender             = (*HTTPSender)(nil)
)
