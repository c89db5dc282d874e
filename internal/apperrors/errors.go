// Package apperrors defines the sentinel errors shared across features.
// Handlers map these to HTTP statuses with errors.Is; stores wrap their
// driver errors so an I/O failure is never mistaken for an empty result.
package apperrors

import "errors"

// Validation errors — rejected before any I/O.
var (
	ErrInvalidAmount     = errors.New("xp amount must be a non-negative number")
	ErrInvalidMultiplier = errors.New("multiplier must be greater than zero")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrInvalidPerk       = errors.New("perk definition is invalid")
	ErrUnknownPerk       = errors.New("perk not found in course catalog")
)

// Not-found errors.
var (
	ErrProgressNotFound = errors.New("progress record not found")
	ErrRequestNotFound  = errors.New("perk request not found")
	ErrCourseNotFound   = errors.New("course settings not found")
)

// Conflict errors.
var (
	ErrAlreadyResolved = errors.New("perk request already resolved")
)

// IsValidation reports whether err is one of the pre-I/O validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidMultiplier) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidPerk) ||
		errors.Is(err, ErrUnknownPerk)
}

// IsNotFound reports whether err is a missing-entity error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrCourseNotFound)
}
