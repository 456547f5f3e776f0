package service

import "errors"

// ErrNotStarted is returned by roster operations called before Start.
var ErrNotStarted = errors.New("service not started")
