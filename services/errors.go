package services

import (
	"errors"
	"fmt"
)

// Expected domain outcomes. Controllers map these to responses; anything not
// in this set is an unexpected store failure and gets logged and hidden
// behind a generic message.
var (
	// ErrCourseNotVisible: unpublished or soft-deleted course requested by a
	// non-owner. Rendered as not-found so the resource's existence is not
	// revealed.
	ErrCourseNotVisible = errors.New("course not visible")

	// ErrSignInRequired: the course is published and sign-in restricted, and
	// the viewer is anonymous. Rendered as a login redirect.
	ErrSignInRequired = errors.New("sign-in required")

	// ErrNotOwner: an instructor-privileged operation attempted by someone
	// other than the course's instructor. Rendered exactly like not-found.
	ErrNotOwner = errors.New("not the owner")

	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotEnrolled     = errors.New("not enrolled")
	ErrNotFound        = errors.New("not found")
)

// ValidationError marks a malformed submission, e.g. an answer id that does
// not belong to the quiz being attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
