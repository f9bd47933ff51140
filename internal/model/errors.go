package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no item exists for a public id, or when an
// item unexpectedly has no revisions (a consistency violation).
var ErrNotFound = errors.New("item not found")

// ErrInvalidState is returned when an operation is not allowed in the
// item's current state, e.g. editing a deleted item before restoring it.
var ErrInvalidState = errors.New("operation not allowed in current item state")

// ErrDuplicate is returned when a catalog name already exists.
var ErrDuplicate = errors.New("name already exists")

// ErrExhausted is returned when public id generation keeps colliding.
// Expected never to trigger in practice.
var ErrExhausted = errors.New("public id generation exhausted retries")

// ValidationError rejects an operation because of bad input. Problems
// lists every offending field or value; nothing is persisted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validationf builds a single-problem ValidationError.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Problems: []string{fmt.Sprintf(format, args...)}}
}
