// Package services defines the business logic for the walk-request
// lifecycle, application registry, matching, and rating. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// The sentinels group into a small taxonomy:
//   - validation: malformed input (bad duration, zero time, out-of-range rating)
//   - authorization: role mismatch or non-ownership
//   - state: operation invalid for the entity's current status
//   - conflict: uniqueness or race violations; retrying the same call will
//     keep failing, but the caller may legitimately retry with different
//     parameters
//   - not found: referenced entity absent
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import "errors"

// Validation errors.
var (
	// ErrInvalidDuration is returned when a walk request's duration is not
	// a positive number of minutes.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrInvalidTime is returned when a walk request's requested time is
	// missing or unparseable.
	ErrInvalidTime = errors.New("requested time is missing or invalid")

	// ErrEmptyLocation is returned when a walk request has no location
	// after normalization.
	ErrEmptyLocation = errors.New("location is empty")

	// ErrInvalidRating is returned when a rating value is outside [1,5].
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
)

// Authorization errors.
var (
	// ErrNotDogOwner is returned when the caller does not own the dog they
	// are acting on behalf of.
	ErrNotDogOwner = errors.New("caller does not own this dog")

	// ErrNotRequestOwner is returned when the caller does not own the dog
	// behind the walk request they are acting on.
	ErrNotRequestOwner = errors.New("caller does not own this walk request")

	// ErrNotWalker is returned when an operation reserved for walker-role
	// users is attempted by someone else.
	ErrNotWalker = errors.New("caller is not a walker")
)

// State errors.
var (
	// ErrRequestNotOpen is returned when an application is submitted for a
	// request that is no longer accepting applications.
	ErrRequestNotOpen = errors.New("walk request is not open")

	// ErrRequestNotCompleted is returned when a rating is submitted for a
	// request that has not been completed.
	ErrRequestNotCompleted = errors.New("walk request is not completed")

	// ErrInvalidTransition is returned when a requested lifecycle edge is
	// not legal from the request's current status.
	ErrInvalidTransition = errors.New("illegal walk request transition")

	// ErrApplicationNotPending indicates the named application was already
	// resolved (accepted or rejected) and cannot be accepted.
	ErrApplicationNotPending = errors.New("application is not pending")
)

// Conflict errors.
var (
	// ErrDuplicateApplication is returned when a walker applies to the
	// same request twice.
	ErrDuplicateApplication = errors.New("application already exists for this walker and request")

	// ErrAlreadyMatched is returned when an accept call loses the race:
	// some other caller already transitioned the request out of open.
	ErrAlreadyMatched = errors.New("walk request is already matched")

	// ErrDuplicateRating is returned when a rating already exists for the
	// request.
	ErrDuplicateRating = errors.New("rating already exists for this walk request")
)

// Not-found errors.
var (
	// ErrUserNotFound indicates the caller identity references no known user.
	ErrUserNotFound = errors.New("user not found")

	// ErrDogNotFound indicates the referenced dog does not exist.
	ErrDogNotFound = errors.New("dog not found")

	// ErrRequestNotFound indicates the referenced walk request does not exist.
	ErrRequestNotFound = errors.New("walk request not found")

	// ErrApplicationNotFound indicates the referenced application does not
	// exist or does not belong to the named request.
	ErrApplicationNotFound = errors.New("application not found for this request")

	// ErrNoAcceptedApplication indicates a completed request has no accepted
	// application to derive the walker from. This should not happen through
	// normal operation and points at data written outside the core.
	ErrNoAcceptedApplication = errors.New("no accepted application for this request")
)
