package repository

import (
	"errors"
	"fmt"
)

// Error kinds. Every store error wraps exactly one of them.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Specific store errors.
var (
	ErrActivityNotFound = fmt.Errorf("%w: activity not found", ErrNotFound)
	ErrAlreadySignedUp  = fmt.Errorf("%w: student is already signed up", ErrInvalidOperation)
	ErrNotSignedUp      = fmt.Errorf("%w: student is not signed up for this activity", ErrInvalidOperation)
	ErrActivityFull     = fmt.Errorf("%w: activity is full", ErrInvalidOperation)
)
