// Package service provides the activity directory: the roster operations the
// HTTP API depends on, plus the journal pipeline fed by every committed change.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/mergington/internal/adapters/mq/queue"
	workerpool "github.com/okian/mergington/internal/adapters/mq/worker"
	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/catalog"
	"github.com/okian/mergington/internal/domain/journal"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

const (
	defaultJournalSize     = 1000
	defaultQueueSize       = 1024
	defaultWorkerCount     = 2
	defaultShutdownTimeout = 10 * time.Second
)

// Operation names used in logs and rejection metrics.
const (
	opSignup = "signup"
	opCancel = "cancel"
)

// Service implements the API dependencies for the activities directory.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	journal    journal.Journal
	eventQueue *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool

	// Configuration
	catalog         map[string]model.Activity
	enforceCapacity bool
	journalSize     int
	queueSize       int
	workerCount     int
	shutdownTimeout time.Duration

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a new Service. Nothing runs until Start.
func New(opts ...Option) *Service {
	s := &Service{
		journalSize:     defaultJournalSize,
		queueSize:       defaultQueueSize,
		workerCount:     defaultWorkerCount,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start seeds the store and launches the journal workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}

	s.logger.Info(ctx, "starting activities service...")

	s.store = repository.NewMemoryStore(ctx,
		repository.WithCatalog(s.catalog),
		repository.WithCapacityEnforcement(s.enforceCapacity),
	)
	s.journal = journal.New(journal.WithMaxSize(s.journalSize))
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.journal)

	// workers outlive the request that started us and stop through Stop
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.workerPool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("journalSize", s.journalSize),
		logger.Bool("enforceCapacity", s.enforceCapacity),
	)
	return nil
}

// Stop drains the journal queue and stops the workers. Requests arriving
// during the drain fail with ErrNotStarted instead of waiting on it.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	pool, jrnl, cancelRun, log := s.workerPool, s.journal, s.cancel, s.logger
	s.mu.Unlock()

	ctx := context.Background()
	log.Info(ctx, "stopping activities service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "journal workers did not drain", logger.Error(err))
	}
	cancelRun()

	log.Info(ctx, "activities service stopped", logger.Int("journalSize", jrnl.Size()))
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]model.Activity, error) {
	rt, err := s.active()
	if err != nil {
		return nil, err
	}
	return rt.store.List(ctx)
}

// Signup adds email to the named activity and returns the confirmation message.
func (s *Service) Signup(ctx context.Context, activity, email string) (string, error) {
	rt, err := s.active()
	if err != nil {
		return "", err
	}

	a, err := rt.store.AddParticipant(ctx, activity, email)
	if err != nil {
		rt.reject(ctx, opSignup, activity, email, err)
		return "", err
	}

	metrics.RecordSignup(activity)
	rt.publish(ctx, model.EventSignedUp, a, email)
	rt.logger.Info(ctx, "signed up",
		logger.String("activity", activity),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Cancel removes email from the named activity and returns the confirmation message.
func (s *Service) Cancel(ctx context.Context, activity, email string) (string, error) {
	rt, err := s.active()
	if err != nil {
		return "", err
	}

	a, err := rt.store.RemoveParticipant(ctx, activity, email)
	if err != nil {
		rt.reject(ctx, opCancel, activity, email, err)
		return "", err
	}

	metrics.RecordCancellation(activity)
	rt.publish(ctx, model.EventCancelled, a, email)
	rt.logger.Info(ctx, "removed",
		logger.String("activity", activity),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return fmt.Sprintf("Removed %s from %s", email, activity), nil
}

// RecentChanges returns up to n journaled roster events, newest first.
// The journal is fed asynchronously so the latest change may lag briefly.
func (s *Service) RecentChanges(ctx context.Context, n int) ([]model.RosterEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.journal.Recent(ctx, n), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"journalCapacity": s.journalSize,
		"enforceCapacity": s.enforceCapacity,
	}

	if s.started {
		ctx := context.Background()
		activities := s.store.Count(ctx)
		journalSize := s.journal.Size()

		stats["activities"] = activities
		stats["participants"] = s.store.ParticipantCount(ctx)
		stats["queueLength"] = s.eventQueue.Len()
		stats["journalSize"] = journalSize

		metrics.UpdateActivitiesTotal(activities)
		metrics.UpdateJournalSize(journalSize)
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}

// runtime is the set of components a request works against, captured under
// the read lock so a concurrent Stop/Start cannot swap them mid-request.
type runtime struct {
	store  repository.Store
	queue  *eventqueue.InMemoryQueue
	logger logger.Logger
}

func (s *Service) active() (runtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return runtime{}, ErrNotStarted
	}
	return runtime{store: s.store, queue: s.eventQueue, logger: s.logger}, nil
}

// publish hands a committed change to the journal pipeline. A full or closed
// queue drops the event; the roster change itself already happened.
func (rt runtime) publish(ctx context.Context, kind model.RosterEventKind, a model.Activity, email string) { //nolint:gocritic // hugeParam
	e := model.RosterEvent{
		ID:           uuid.NewString(),
		Kind:         kind,
		Activity:     a.Name,
		Email:        email,
		Participants: len(a.Participants),
		At:           time.Now().UTC(),
	}
	if !rt.queue.Enqueue(ctx, e) {
		rt.logger.Warn(ctx, "roster event dropped",
			logger.String("event_id", e.ID),
			logger.String("kind", string(kind)),
			logger.String("activity", a.Name),
		)
	}
}

func (rt runtime) reject(ctx context.Context, op, activity, email string, err error) {
	metrics.RecordRejection(op, rejectionReason(err))
	rt.logger.Debug(ctx, "roster operation rejected",
		logger.String("operation", op),
		logger.String("activity", activity),
		logger.String("email", email),
		logger.Error(err),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, repository.ErrNotSignedUp):
		return "not_signed_up"
	case errors.Is(err, repository.ErrActivityFull):
		return "activity_full"
	default:
		return "internal"
	}
}
