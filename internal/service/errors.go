package service

import "errors"

// Sentinel errors shared by the domain services. Callers match them with
// errors.Is; the HTTP layer maps each to a status code.
var (
	// ErrValidation signals a missing or malformed domain input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signals that a record does not exist or is not visible to
	// the requesting user. Ownership-scoped lookups deliberately collapse
	// "not mine" and "does not exist" into this one error.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner signals that a record exists but belongs to another user.
	// Only raised on paths that fetch by id first and check ownership after.
	ErrNotOwner = errors.New("not authorized")

	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEstimationUnavailable signals that the external generator could not
	// be reached or returned an unusable response.
	ErrEstimationUnavailable = errors.New("estimation service unavailable")

	// ErrMalformedEstimation signals that no JSON object could be extracted
	// from the generator's response.
	ErrMalformedEstimation = errors.New("malformed estimation response")

	// ErrInvalidEstimationShape signals that the extracted JSON is missing
	// keys the operation cannot proceed without.
	ErrInvalidEstimationShape = errors.New("estimation response missing required fields")
)
