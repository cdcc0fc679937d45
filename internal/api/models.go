package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse defines the successful response for authentication endpoints.
// The access token itself travels in the cookie, never in the body.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// CreatePostRequest represents the request body for publishing a new post.
type CreatePostRequest struct {
	Title string   `json:"title" validate:"required,min=1"`
	Body  string   `json:"body"  validate:"required,min=1"`
	Tags  []string `json:"tags"`
}

// UpdatePostRequest represents the request body for editing a post.
// Absent fields are left unchanged; tags may be replaced wholesale.
type UpdatePostRequest struct {
	Title *string  `json:"title" validate:"omitempty,min=1"`
	Body  *string  `json:"body"  validate:"omitempty,min=1"`
	Tags  []string `json:"tags"`
}

// PostResponse represents the response data for a post.
type PostResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
