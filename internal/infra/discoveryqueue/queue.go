package discoveryqueue

import "context"

// JobDiscoverRules is the job name carrying a discovery batch.
const JobDiscoverRules = "discover_ingredient_rules"

// JobQueue accepts named jobs.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload map[string]any) error
}

// Handler executes a delivered job.
type Handler func(ctx context.Context, name string, payload map[string]any)

// HandlerQueue supports setting a handler for job delivery.
type HandlerQueue interface {
	JobQueue
	SetHandler(handler Handler)
	Close()
}
