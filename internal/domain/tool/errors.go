package tool

import (
	"errors"
	"fmt"
)

var (
	ErrToolNotFound    = errors.New("tool not found")
	ErrInvalidSlug     = errors.New("invalid tool slug")
	ErrUndeclaredField = errors.New("template references undeclared field")
	ErrEmptyCompletion = errors.New("completion provider returned empty text")
)

// MissingFieldError is returned when a run omits a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}
