package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

// AccountService provides account registration and credential verification.
type AccountService interface {
	// Register creates a new account with the given username and password.
	// Returns ErrUsernameTaken if the username already exists. The duplicate
	// check is best-effort check-then-insert; the storage layer's uniqueness
	// constraint is the real guarantee under concurrent registration.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Authenticate verifies the given credentials and returns the account.
	// Returns auth.ErrInvalidCredentials on unknown username or wrong
	// password, with no indication of which was wrong.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves an account by its ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// Ensure AccountServiceImpl implements AccountService
var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "account_service")),
	}
}

// Register creates a new account.
func (s *AccountServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	// Best-effort duplicate check before inserting. A concurrent registration
	// with the same name can still slip past; the UNIQUE constraint collapses
	// that race to ErrUsernameExists below.
	if _, err := s.userStore.GetByUsername(ctx, username); err == nil {
		s.logger.Debug("attempted to register existing username",
			slog.String("username", username))
		return nil, ErrUsernameTaken
	} else if !store.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash
	user.Password = "" // Plaintext never leaves this function

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("lost registration race for username",
				slog.String("username", username))
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("account registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username))
	return user, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("login attempt for unknown username",
				slog.String("username", username))
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			slog.String("username", username))
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves an account by its ID.
func (s *AccountServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
