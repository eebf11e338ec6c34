package discoveryqueue

import (
	"context"
	"sync"
)

// ImmediateQueue hands jobs to the handler in a goroutine on enqueue.
type ImmediateQueue struct {
	mu      sync.RWMutex
	handler Handler
	wg      sync.WaitGroup
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
}

// Enqueue invokes the handler asynchronously. The job outlives ctx.
func (q *ImmediateQueue) Enqueue(ctx context.Context, name string, payload map[string]any) error {
	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	if handler == nil {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	jobCtx := context.WithoutCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		handler(jobCtx, name, payload)
	}()
	return nil
}

// Close waits for in-flight jobs.
func (q *ImmediateQueue) Close() {
	q.wg.Wait()
}

var _ HandlerQueue = (*ImmediateQueue)(nil)
