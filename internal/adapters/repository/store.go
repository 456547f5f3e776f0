// Package repository defines the activity store interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Store provides read/write access to the activity catalog and rosters.
// Activities are fixed at construction; only rosters change.
type Store interface {
	// List returns a copy of every activity keyed by name.
	List(ctx context.Context) (map[string]model.Activity, error)

	// Get returns a copy of one activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// AddParticipant appends email, compared byte for byte, to the roster and returns the updated activity.
	// Returns ErrActivityNotFound, ErrAlreadySignedUp or ErrActivityFull.
	AddParticipant(ctx context.Context, name, email string) (model.Activity, error)

	// RemoveParticipant removes email from the roster and returns the updated activity.
	// Returns ErrActivityNotFound or ErrNotSignedUp.
	RemoveParticipant(ctx context.Context, name, email string) (model.Activity, error)

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// ParticipantCount returns the total number of roster entries across activities.
	ParticipantCount(ctx context.Context) int
}
