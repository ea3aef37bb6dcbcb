package errors

import "errors"

var (
	ErrNotFound = errors.New("meetup not found")

	ErrInvalidID = errors.New("invalid meetup ID format")
)
