package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a create request is missing a required
// field. Handlers map it to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned when a meme ID does not exist. Handlers map it
// to HTTP 404.
var ErrNotFound = errors.New("meme not found")

// missingField wraps ErrInvalidInput with the name of the offending field
// so handlers can return a field-level message.
func missingField(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
}
