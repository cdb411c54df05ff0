package port

import (
	"context"
	"errors"
	"time"
)

// Task is a background job: a stable type name plus an opaque payload.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error is retried per adapter policy
// unless it wraps ErrSkipRetry. Handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// ErrSkipRetry marks a handler failure that retrying cannot fix (bad payload, unknown user).
var ErrSkipRetry = errors.New("queue: skip retry")

// EnqueueOption controls enqueue behavior. Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	ProcessAt time.Time     // absolute schedule time, wins over ProcessIn
	MaxRetry  int
	UniqueTTL time.Duration // dedupe identical tasks within this window
	Retention time.Duration
	Deadline  time.Time
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs workers. Run blocks until ctx is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
