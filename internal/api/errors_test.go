package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"user missing", store.ErrUserNotFound, http.StatusNotFound},
		{"post missing", store.ErrPostNotFound, http.StatusNotFound},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict},
		{"storage duplicate", store.ErrUsernameExists, http.StatusConflict},
		{"bad page", service.ErrInvalidPage, http.StatusBadRequest},
		{"bad id", domain.ErrInvalidID, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not owned", fmt.Errorf("update: %w", service.ErrNotOwned), http.StatusForbidden},
		{"wrapped post missing", fmt.Errorf("read: %w", store.ErrPostNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not owned", service.ErrNotOwned, "You do not own this post"},
		{"post missing", store.ErrPostNotFound, "Post not found"},
		{"username taken", service.ErrUsernameTaken, "Username already exists"},
		{"bad page", service.ErrInvalidPage, "Invalid page number"},
		{"bad credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"expired", auth.ErrExpiredToken, "Token expired"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New(`pq: duplicate key value violates unique constraint "users_username_unique"`)
	msg := GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "pq:")
	assert.NotContains(t, msg, "users_username_unique")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	validatorMsg := errors.New(
		"Key: 'RegisterRequest.Username' Error:Field validation for 'Username' failed on the 'min' tag",
	)
	got := SanitizeValidationError(validatorMsg)
	assert.Equal(t, "Invalid Username: too short", got)

	plain := errors.New("something else entirely")
	assert.Equal(t, "Validation error", SanitizeValidationError(plain))
}
