// Package repository defines the activity store interface and errors.
package repository

import "github.com/okian/mergington/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCatalog seeds the store. The map is deep-copied.
func WithCatalog(catalog map[string]model.Activity) Option {
	return func(s *MemoryStore) {
		if catalog != nil {
			s.seed = catalog
		}
	}
}

// WithCapacityEnforcement makes AddParticipant reject sign-ups on full rosters.
func WithCapacityEnforcement(enforce bool) Option {
	return func(s *MemoryStore) {
		s.enforceCapacity = enforce
	}
}
