package api

import (
	"errors"
	"fmt"
)

// Error kinds the API maps to status codes.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// kindError tags an underlying error with an API kind and the operation that failed.
type kindError struct {
	op   string
	kind error
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// WrapKind tags err with kind so errors.Is matches both.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{op: op, kind: kind, err: err}
}

// NewKind builds a kinded error from a message.
func NewKind(op string, kind error, msg string) error {
	return &kindError{op: op, kind: kind, err: errors.New(msg)}
}
