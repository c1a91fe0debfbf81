package task

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned by mutations targeting an id with no
	// stored row. Plain lookups report absence with a nil entity instead.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotPersisted is returned when deleting a task that was never saved.
	ErrNotPersisted = errors.New("task has not been persisted")
)

// ValidationError reports malformed input rejected by an entity setter.
// It is always recoverable at the request boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
