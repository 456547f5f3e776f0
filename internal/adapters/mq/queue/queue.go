// Package queue carries roster events from request handlers to the journal workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

const defaultCapacity = 1024

// Drop reasons reported to metrics.
const (
	reasonClosed    = "closed"
	reasonFull      = "queue_full"
	reasonCancelled = "context_cancelled"
)

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event to the queue.
	// Returns false if the queue is full or closed and the event was not enqueued.
	Enqueue(ctx context.Context, e model.RosterEvent) bool

	// Dequeue returns the channel events are delivered on.
	// The channel is closed once the queue is closed and drained.
	Dequeue() <-chan model.RosterEvent

	// Len returns the current number of queued events.
	Len() int

	// Close stops accepting events. Buffered events stay readable.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan model.RosterEvent
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan model.RosterEvent, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds an event without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e model.RosterEvent) bool { //nolint:gocritic // hugeParam: events travel by value
	// the read lock keeps Close from closing the channel under a send
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError(reasonClosed)
		return false
	}
	if ctx.Err() != nil {
		metrics.RecordQueueEnqueueError(reasonCancelled)
		return false
	}

	select {
	case q.events <- e:
		metrics.UpdateQueueSize(len(q.events))
		return true
	default:
		metrics.RecordQueueEnqueueError(reasonFull)
		return false
	}
}

// Dequeue returns the receive side of the queue.
func (q *InMemoryQueue) Dequeue() <-chan model.RosterEvent {
	return q.events
}

// Len returns the current number of queued events.
func (q *InMemoryQueue) Len() int {
	size := len(q.events)
	metrics.UpdateQueueSize(size)
	return size
}

// Capacity returns the maximum number of buffered events.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close stops accepting events. It is safe to call more than once.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
