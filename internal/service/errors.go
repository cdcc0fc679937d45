package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a post is owned by a different user than the one
	// making the request, or by nobody at all. Unowned legacy posts are never
	// mutable through the ownership check. Maps to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("post is owned by another user")

	// ErrInvalidPage indicates a listing request with page < 1. It is decided
	// before any storage access. Maps to HTTP 400 Bad Request.
	ErrInvalidPage = errors.New("page must be at least 1")

	// ErrUsernameTaken indicates a registration attempt with a username that
	// already exists. Maps to HTTP 409 Conflict.
	ErrUsernameTaken = errors.New("username already taken")
)
