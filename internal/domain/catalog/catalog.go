// Package catalog provides the activity catalog a store is seeded with.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// Sentinel kinds for catalog errors.
var (
	ErrLoad    = errors.New("load catalog failed")
	ErrInvalid = errors.New("invalid catalog")
)

// Activity names contain spaces and dots, so the koanf key path uses a
// delimiter that cannot appear in a display name.
const keyDelim = "\x1f"

// rootKey is the top-level YAML key holding the activity map.
const rootKey = "activities"

// Default returns the built-in Mergington High School catalog.
func Default() map[string]model.Activity {
	return map[string]model.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Soccer Team": {
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		"Math Club": {
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

// Load reads a YAML catalog:
//
//	activities:
//	  Chess Club:
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
func Load(_ context.Context, path string) (map[string]model.Activity, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	var out map[string]model.Activity
	if err := k.UnmarshalWithConf(rootKey, &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the seed invariants: at least one named activity,
// non-negative capacity and no email listed twice on one roster.
func Validate(c map[string]model.Activity) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalid)
	}
	for name, a := range c {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty activity name", ErrInvalid)
		}
		if a.MaxParticipants < 0 {
			return fmt.Errorf("%w: %s: max_participants must not be negative", ErrInvalid, name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("%w: %s: empty participant email", ErrInvalid, name)
			}
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: %s: %s listed twice", ErrInvalid, name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
