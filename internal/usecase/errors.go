package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrBettingClosed         = errors.New("betting closed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
