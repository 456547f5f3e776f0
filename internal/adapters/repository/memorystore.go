package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

// MemoryStore is an in-memory Store. A single RWMutex serialises roster
// mutations so that every signup and cancel is one linearizable step.
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity

	seed            map[string]model.Activity
	enforceCapacity bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store from the configured catalog.
func NewMemoryStore(_ context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}

	s.activities = make(map[string]*model.Activity, len(s.seed))
	for name, a := range s.seed {
		c := a.Clone()
		c.Name = name
		s.activities[name] = &c
		metrics.UpdateEnrollment(name, len(c.Participants))
	}
	s.seed = nil
	metrics.UpdateActivitiesTotal(len(s.activities))

	return s
}

// List returns a copy of every activity keyed by name.
func (s *MemoryStore) List(_ context.Context) (map[string]model.Activity, error) {
	defer observe("list", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

// Get returns a copy of one activity.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	defer observe("get", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// AddParticipant appends email to the named roster.
func (s *MemoryStore) AddParticipant(_ context.Context, name, email string) (model.Activity, error) {
	defer observe("add", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	if a.Has(email) {
		return model.Activity{}, ErrAlreadySignedUp
	}
	if s.enforceCapacity && a.Full() {
		return model.Activity{}, ErrActivityFull
	}

	a.Participants = append(a.Participants, email)
	metrics.UpdateEnrollment(name, len(a.Participants))
	return a.Clone(), nil
}

// RemoveParticipant removes email from the named roster, keeping the order
// of the remaining participants.
func (s *MemoryStore) RemoveParticipant(_ context.Context, name, email string) (model.Activity, error) {
	defer observe("remove", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return model.Activity{}, ErrNotSignedUp
	}

	a.Participants = slices.Delete(a.Participants, i, i+1)
	metrics.UpdateEnrollment(name, len(a.Participants))
	return a.Clone(), nil
}

// Count returns the number of activities.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// ParticipantCount returns the number of roster entries across activities.
func (s *MemoryStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.activities {
		n += len(a.Participants)
	}
	return n
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}
