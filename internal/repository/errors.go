package repository

import (
	"errors"
	"strings"

	"yilin/internal/models"
)

// Lookup failures. Everything else coming out of this package is a store
// failure wrapped once with operation context ("failed to ...: %w") and
// forwarded to the caller as-is, never retried.
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCitizenNotFound = errors.New("citizen not found")
)

// IsNotFound checks if an error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) || errors.Is(err, ErrCitizenNotFound)
}

// IsValidation reports whether the store rejected the payload itself: a model
// hook sentinel, or a constraint violation bubbling up from the database.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, models.ErrTextRequired) ||
		errors.Is(err, models.ErrContextRequired) ||
		errors.Is(err, models.ErrReferenceRequired) ||
		errors.Is(err, models.ErrAuthorRequired) ||
		errors.Is(err, models.ErrNameRequired) {
		return true
	}

	// Postgres spells these out in the message; sqlite (tests) differs.
	msg := err.Error()
	return strings.Contains(msg, "violates not-null") ||
		strings.Contains(msg, "violates check") ||
		strings.Contains(msg, "violates foreign key") ||
		strings.Contains(msg, "NOT NULL constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
