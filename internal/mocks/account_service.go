package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	// RegisterFn allows test cases to mock the Register behavior
	RegisterFn func(ctx context.Context, username, password string) (*domain.User, error)

	// AuthenticateFn allows test cases to mock the Authenticate behavior
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserFn allows test cases to mock the GetUser behavior
	GetUserFn func(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// Default values used when functions aren't explicitly defined
	User            *domain.User
	RegisterErr     error
	AuthenticateErr error
	GetUserErr      error
}

// Register implements the service.AccountService interface
func (m *MockAccountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	return m.User, nil
}

// Authenticate implements the service.AccountService interface
func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	if m.AuthenticateErr != nil {
		return nil, m.AuthenticateErr
	}
	return m.User, nil
}

// GetUser implements the service.AccountService interface
func (m *MockAccountService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	if m.GetUserErr != nil {
		return nil, m.GetUserErr
	}
	return m.User, nil
}

// Ensure MockAccountService implements the interface
var _ service.AccountService = (*MockAccountService)(nil)
