package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for managing signed session tokens.
//
// Tokens are stateless: validity is purely cryptographic plus expiry, and
// logout is a client-side concern. A logged-out token therefore stays valid
// until its natural expiry; that is an accepted design limitation.
type TokenService interface {
	// Issue creates a signed session token carrying the user's identity.
	// Returns the token string or an error if signing fails.
	Issue(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// Validate checks the provided token's signature and expiry and extracts
	// the claims. Returns ErrInvalidToken or ErrExpiredToken on failure;
	// it never panics into the caller's control flow.
	Validate(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the identity encoded in a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username is the user's unique username, carried so the identity check
	// endpoint can answer without a store round-trip.
	Username string `json:"unm,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity is the verified {account id, username} pair attached to a request
// after successful token validation.
type Identity struct {
	UserID   uuid.UUID
	Username string
}
