// Package worker drains roster events from the queue into the journal.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

const defaultWorkerCount = 2

// Sink receives committed roster events.
type Sink interface {
	Record(ctx context.Context, e model.RosterEvent) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue() <-chan model.RosterEvent
}

// Worker processes roster events until its queue is closed and drained.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue is drained.
	Run(ctx context.Context)

	// Done is closed once Run has returned.
	Done() <-chan struct{}
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue Queue
	sink  Sink
	name  string

	done   chan struct{}
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue: queue,
		sink:  sink,
		name:  "worker",
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run consumes events until the queue channel closes or ctx is done.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := w.process(ctx, e); err != nil {
				w.logger.Error(ctx, "error processing roster event", logger.Error(err))
			}
		}
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) process(ctx context.Context, e model.RosterEvent) error { //nolint:gocritic // hugeParam: events travel by value
	if err := w.sink.Record(ctx, e); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("record event %s: %w", e.ID, err)
	}
	metrics.RecordWorkerProcessed()

	if sized, ok := w.sink.(interface{ Size() int }); ok {
		metrics.UpdateJournalSize(sized.Size())
	}
	w.logger.Debug(ctx, "roster event recorded",
		logger.String("event_id", e.ID),
		logger.String("kind", string(e.Kind)),
		logger.String("activity", e.Activity),
	)
	return nil
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	startOnce sync.Once
	logger    logger.Logger
}

// NewPool creates a worker pool. Non-positive counts fall back to the default.
func NewPool(workerCount int, queue Queue, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, sink, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start launches every worker. Later calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for _, w := range p.workers {
			go w.Run(ctx)
		}
	})
}

// Shutdown closes the queue and waits for the workers to drain it.
// Workers still busy when ctx expires are abandoned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker shutdown: %w", ctx.Err())
		}
	}
	return nil
}
