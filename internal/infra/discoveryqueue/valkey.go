package discoveryqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type jobEnvelope struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// ValkeyQueue persists jobs in a Valkey list and delivers them to a handler.
type ValkeyQueue struct {
	client      valkey.Client
	queueKey    string
	logger      *slog.Logger
	pollTimeout time.Duration

	mu      sync.Mutex
	handler Handler
	stop    chan struct{}
	done    chan struct{}
}

// NewValkeyQueue constructs a Valkey-backed queue.
func NewValkeyQueue(client valkey.Client, queueKey string, logger *slog.Logger) *ValkeyQueue {
	if queueKey == "" {
		queueKey = "hairmatch:jobs"
	}
	return &ValkeyQueue{
		client:      client,
		queueKey:    queueKey,
		logger:      logger.With("component", "discoveryqueue.valkey"),
		pollTimeout: 5 * time.Second,
	}
}

// SetHandler starts the worker loop that pops jobs and invokes the handler.
func (q *ValkeyQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handler = handler
	if handler == nil || q.stop != nil {
		return
	}
	q.stop = make(chan struct{})
	q.done = make(chan struct{})
	go q.consume(q.stop, q.done)
}

// Enqueue pushes a job onto the queue.
func (q *ValkeyQueue) Enqueue(ctx context.Context, name string, payload map[string]any) error {
	encoded, err := encodeJob(name, payload)
	if err != nil {
		return err
	}
	cmd := q.client.B().Lpush().Key(q.queueKey).Element(encoded).Build()
	return q.client.Do(ctx, cmd).Error()
}

// Close stops the worker loop after the current poll. The client is owned by
// the caller.
func (q *ValkeyQueue) Close() {
	q.mu.Lock()
	stop, done := q.stop, q.done
	q.stop = nil
	q.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
}

func (q *ValkeyQueue) consume(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ctx := context.Background()
	for {
		select {
		case <-stop:
			return
		default:
		}
		resp := q.client.Do(ctx, q.client.B().Brpop().Key(q.queueKey).Timeout(q.pollTimeout.Seconds()).Build())
		values, err := resp.ToArray()
		if err != nil {
			if !valkey.IsValkeyNil(err) {
				q.logger.Warn("valkey queue pop failed", "error", err)
				select {
				case <-stop:
					return
				case <-time.After(time.Second):
				}
			}
			continue
		}
		if len(values) < 2 {
			continue
		}
		raw, err := values[1].ToString()
		if err != nil {
			q.logger.Warn("valkey queue payload decode failed", "error", err)
			continue
		}
		job, err := decodeJob(raw)
		if err != nil {
			q.logger.Warn("valkey queue unmarshal failed", "error", err)
			continue
		}
		q.mu.Lock()
		handler := q.handler
		q.mu.Unlock()
		if handler != nil {
			handler(ctx, job.Name, job.Payload)
		}
	}
}

func encodeJob(name string, payload map[string]any) (string, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	encoded, err := json.Marshal(jobEnvelope{Name: name, Payload: payload})
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeJob(raw string) (jobEnvelope, error) {
	var job jobEnvelope
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return jobEnvelope{}, err
	}
	if job.Payload == nil {
		job.Payload = map[string]any{}
	}
	return job, nil
}

var _ HandlerQueue = (*ValkeyQueue)(nil)
