package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueFn allows test cases to mock the Issue behavior
	IssueFn func(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateFn allows test cases to mock the Validate behavior
	ValidateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	IssueErr    error
	Claims      *auth.Claims
	ValidateErr error
}

// Issue implements the auth.TokenService interface
func (m *MockTokenService) Issue(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID, username)
	}
	return m.Token, m.IssueErr
}

// Validate implements the auth.TokenService interface
func (m *MockTokenService) Validate(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// Ensure MockTokenService implements the interface
var _ auth.TokenService = (*MockTokenService)(nil)
