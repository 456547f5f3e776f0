package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrVerification     = errors.New("verification failed")
	ErrRequest          = errors.New("request failed")
)
