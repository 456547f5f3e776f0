// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"time"
)

// Activity is an extracurricular offering and its roster of participant emails.
// The name is the catalog key and is not part of the JSON body.
type Activity struct {
	Name            string   `json:"-" koanf:"-"`
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is MaxParticipants minus the roster size. It goes negative when
// capacity is not enforced and the roster overflows.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Full reports whether the roster reached MaxParticipants.
func (a Activity) Full() bool {
	return a.SpotsLeft() <= 0
}

// Clone returns a deep copy. Participants is never nil so it encodes as [].
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// RosterEventKind names a roster mutation.
type RosterEventKind string

const (
	// EventSignedUp is emitted after an email was added to a roster.
	EventSignedUp RosterEventKind = "signed_up"
	// EventCancelled is emitted after an email was removed from a roster.
	EventCancelled RosterEventKind = "cancelled"
)

// RosterEvent records one committed roster mutation.
type RosterEvent struct {
	ID           string          `json:"id"`
	Kind         RosterEventKind `json:"kind"`
	Activity     string          `json:"activity"`
	Email        string          `json:"email"`
	Participants int             `json:"participants"` // roster size after the mutation
	At           time.Time       `json:"at"`
}
