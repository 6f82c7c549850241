package domain

import "errors"

// Sentinel errors shared by services, repositories and the HTTP layer.
// Services wrap them with context (fmt.Errorf("%w: ...")); controllers map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	// ErrConcurrentUpdate is returned by a store when an optimistic write lost a race or a
	// transaction was aborted. The write had no effect and may be retried.
	ErrConcurrentUpdate = errors.New("concurrent update")
)
