package service

import "errors"

// Common service errors. Service methods return sentinel errors for the
// conditions callers are expected to branch on with errors.Is; unexpected
// failures are wrapped in service-specific error types. The API layer maps
// these to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. Maps to HTTP 403.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrStatsNotFound indicates that user card statistics were not found.
	// Maps to HTTP 404.
	ErrStatsNotFound = errors.New("user card statistics not found")
)
