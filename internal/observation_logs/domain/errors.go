package domain

import "errors"

var (
	ErrLogNotFound     = errors.New("observation log not found")
	ErrInvalidWeather  = errors.New("invalid weather tag")
	ErrInvalidLocation = errors.New("invalid location")
	ErrImageTooLarge   = errors.New("image too large")
	ErrInvalidImage    = errors.New("invalid image")
	ErrMissingUser     = errors.New("user id required")
)
