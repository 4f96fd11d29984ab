package domain

import (
	"errors"
	"fmt"
)

// Tipos de error expuestos por el motor. Los errores concretos envuelven uno
// de estos y se clasifican con errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrTransactionFailure  = errors.New("transaction failure")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRateLimited         = errors.New("rate limited")
)

var (
	ErrMentorshipNotFound    = fmt.Errorf("%w: mentorship", ErrNotFound)
	ErrRequestNotFound       = fmt.Errorf("%w: collaboration request", ErrNotFound)
	ErrCollaborationNotFound = fmt.Errorf("%w: collaboration", ErrNotFound)

	ErrSelfRequest      = fmt.Errorf("%w: mentorship cannot request itself", ErrValidation)
	ErrSameMentor       = fmt.Errorf("%w: mentorships share the same mentor", ErrValidation)
	ErrInvalidTier      = fmt.Errorf("%w: invalid tier", ErrValidation)
	ErrTierNotQualified = fmt.Errorf("%w: pair does not qualify for tier", ErrValidation)

	ErrRequestNotPending    = fmt.Errorf("%w: request is not pending", ErrConflict)
	ErrAlreadyCollaborating = fmt.Errorf("%w: mentorship already collaborating", ErrConflict)
	ErrDuplicateRequest     = fmt.Errorf("%w: pending request already exists for pair", ErrConflict)
	ErrStaleSnapshot        = fmt.Errorf("%w: request snapshot no longer matches current traits", ErrConflict)
	ErrCollaborationEnded   = fmt.Errorf("%w: collaboration already ended", ErrConflict)

	ErrMissingToken   = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	ErrInvalidToken   = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrNotParticipant = fmt.Errorf("%w: mentor does not participate", ErrForbidden)
)

// Retryable indica si el llamador puede reintentar la operacion tal cual.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransactionFailure)
}
