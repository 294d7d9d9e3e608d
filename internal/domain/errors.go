package domain

import "errors"

// Sentinel errors returned by repositories and services. Handlers map these
// to HTTP status codes; everything else is treated as an internal failure.
var (
	// ErrNotFound means the requested event, user, or registration id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRegistered means a live registration already exists for the (user, event) pair.
	ErrAlreadyRegistered = errors.New("user is already registered for this event")

	// ErrCapacityExceeded means the event has no free spots left.
	ErrCapacityExceeded = errors.New("no spot available in this event")

	// ErrAlreadyExists means a uniqueness constraint other than the
	// registration pair was violated (e.g. username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput means the request is well-formed but violates a domain rule.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials means the username/password pair did not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEventHasRegistrations means an event cannot be deleted while live
	// registrations still reference it.
	ErrEventHasRegistrations = errors.New("event still has registrations")
)
