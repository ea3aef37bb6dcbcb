package errors

import "errors"

var (
	ErrNotFound  = errors.New("response not found")
	ErrInvalidID = errors.New("invalid response ID")
)
