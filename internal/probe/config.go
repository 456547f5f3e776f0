// Package probe drives a running activities server through the sign-up
// lifecycle and checks every response against the documented contract.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Activity      string        // Activity the flow signs up for
	EmailDomain   string        // Domain of generated probe emails
	Concurrent    int           // Distinct emails signed up and cancelled in parallel; 0 skips the phase
	DuplicateRace int           // Goroutines racing to sign up one email; 0 skips the phase
	Timeout       time.Duration // HTTP request timeout
	Verbose       bool          // Log every request
}

// Stats holds probe statistics.
type Stats struct {
	Requests    int64
	Signups     int64
	Cancels     int64
	Rejections  int64
	Unexpected  int64
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	StepsPassed int
}
