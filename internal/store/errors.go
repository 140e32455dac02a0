package store

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or inconsistent input, such as a
// seriality mismatch between a product and a delivery line. Requests
// failing validation are never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError reports a state conflict: a uniqueness violation, a
// foreign-key reference blocking deletion, or a stock item that is no
// longer available for delivery.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// mapConstraintErr converts SQLite constraint violations into
// ConflictError with a human-readable cause. Other errors pass through
// unchanged.
func mapConstraintErr(err error, uniqueMsg, fkMsg string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &ConflictError{Message: uniqueMsg}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ConflictError{Message: fkMsg}
	}
	return err
}
