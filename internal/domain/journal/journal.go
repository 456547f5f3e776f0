// Package journal keeps a bounded, in-memory history of roster changes.
package journal

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
)

const defaultMaxSize = 1000

// ErrInvalidEvent is returned by Record for events missing identity fields.
var ErrInvalidEvent = errors.New("invalid roster event")

// Journal records committed roster events.
type Journal interface {
	// Record appends an event, evicting the oldest one when full.
	Record(ctx context.Context, e model.RosterEvent) error

	// Recent returns up to n events, newest first.
	Recent(ctx context.Context, n int) []model.RosterEvent

	// Size returns the number of retained events.
	Size() int
}

// ringJournal implements Journal with a fixed-size ring buffer.
type ringJournal struct {
	mu      sync.RWMutex
	buf     []model.RosterEvent
	next    int // index the next event is written to
	size    int
	maxSize int
}

// New creates an in-memory journal.
func New(opts ...Option) Journal {
	j := &ringJournal{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(j)
	}
	j.buf = make([]model.RosterEvent, j.maxSize)
	return j
}

func (j *ringJournal) Record(_ context.Context, e model.RosterEvent) error {
	if e.ID == "" || e.Activity == "" || e.Kind == "" {
		return ErrInvalidEvent
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.buf[j.next] = e
	j.next = (j.next + 1) % j.maxSize
	if j.size < j.maxSize {
		j.size++
	}
	return nil
}

func (j *ringJournal) Recent(_ context.Context, n int) []model.RosterEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 || n > j.size {
		n = j.size
	}
	out := make([]model.RosterEvent, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, j.buf[(j.next-i+j.maxSize)%j.maxSize])
	}
	return out
}

func (j *ringJournal) Size() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.size
}
