package service

import (
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the activities the store is seeded with.
func WithCatalog(catalog map[string]model.Activity) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithCapacityEnforcement rejects sign-ups once an activity is full.
func WithCapacityEnforcement(enforce bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enforce
	}
}

// WithJournalSize sets how many roster events the journal retains.
func WithJournalSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.journalSize = size
		}
	}
}

// WithQueueSize sets the capacity of the roster event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of journal workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for the queue to drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
