package domain

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidPhase    = errors.New("invalid phase")
	ErrCacheMiss       = errors.New("snapshot not cached")
)
