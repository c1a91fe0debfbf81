package db

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrConnectionFailed = errors.New("database connection failed")
)

// Error provides detailed error information for a failed statement.
// Every driver failure is terminal for the current request; no
// transient/permanent distinction is made.
type Error struct {
	Op    string // Operation that failed
	Table string // Table involved, when known
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("db: %s", e.Op))

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for Error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}

	if t.Op != "" && e.Op == t.Op {
		return true
	}

	return errors.Is(e.Err, t.Err)
}

// IsNotFound reports whether err wraps a missing-row condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
