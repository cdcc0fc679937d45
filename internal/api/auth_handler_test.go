package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsong/blogd/internal/api/middleware"
	"github.com/hsong/blogd/internal/api/shared"
	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/mocks"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

func newTestUser(t *testing.T, username string) *domain.User {
	t.Helper()
	return &domain.User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: "not-a-real-hash",
		CreatedAt:      time.Now().UTC(),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, "alice42")

	tests := []struct {
		name        string
		payload     map[string]interface{}
		registerErr error
		wantStatus  int
		wantCookie  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"username": "alice42",
				"password": "correct horse battery",
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name: "username too short",
			payload: map[string]interface{}{
				"username": "ab",
				"password": "correct horse battery",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "username with symbols",
			payload: map[string]interface{}{
				"username": "alice_42!",
				"password": "correct horse battery",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "alice42",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "username already taken",
			payload: map[string]interface{}{
				"username": "alice42",
				"password": "correct horse battery",
			},
			registerErr: service.ErrUsernameTaken,
			wantStatus:  http.StatusConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			accountService := &mocks.MockAccountService{User: user, RegisterErr: tc.registerErr}
			tokenService := &mocks.MockTokenService{Token: "signed-token"}
			handler := NewAuthHandler(accountService, tokenService, 7*24*time.Hour)

			w := postJSON(t, handler.Register, "/api/auth/register", tc.payload)

			assert.Equal(t, tc.wantStatus, w.Code)

			cookie := findCookie(w.Result(), middleware.AccessTokenCookie)
			if tc.wantCookie {
				require.NotNil(t, cookie, "expected access token cookie")
				assert.Equal(t, "signed-token", cookie.Value)
				assert.True(t, cookie.HttpOnly)
				assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)

				var resp UserResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, user.ID, resp.ID)
				assert.Equal(t, "alice42", resp.Username)
			} else {
				assert.Nil(t, cookie, "no cookie expected on failure")
			}
		})
	}
}

func TestRegisterInvalidJSON(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mocks.MockAccountService{}, &mocks.MockTokenService{}, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, "alice42")

	tests := []struct {
		name       string
		payload    map[string]interface{}
		authErr    error
		wantStatus int
		wantCookie bool
	}{
		{
			name: "valid login",
			payload: map[string]interface{}{
				"username": "alice42",
				"password": "correct horse battery",
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name: "wrong credentials",
			payload: map[string]interface{}{
				"username": "alice42",
				"password": "wrong",
			},
			authErr:    auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			payload: map[string]interface{}{
				"username": "nobody",
				"password": "whatever",
			},
			authErr:    auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing username",
			payload: map[string]interface{}{
				"password": "whatever",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "alice42",
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			accountService := &mocks.MockAccountService{User: user, AuthenticateErr: tc.authErr}
			tokenService := &mocks.MockTokenService{Token: "signed-token"}
			handler := NewAuthHandler(accountService, tokenService, 7*24*time.Hour)

			w := postJSON(t, handler.Login, "/api/auth/login", tc.payload)

			assert.Equal(t, tc.wantStatus, w.Code)

			cookie := findCookie(w.Result(), middleware.AccessTokenCookie)
			if tc.wantCookie {
				require.NotNil(t, cookie)
				assert.Equal(t, "signed-token", cookie.Value)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	accountService := &mocks.MockAccountService{AuthenticateErr: auth.ErrInvalidCredentials}
	handler := NewAuthHandler(accountService, &mocks.MockTokenService{}, time.Hour)

	// Wrong password, unknown user, and missing fields must all produce the
	// same status and body so callers cannot tell which part was wrong.
	payloads := map[string]map[string]interface{}{
		"wrong password":   {"username": "alice42", "password": "wrong"},
		"unknown user":     {"username": "nosuchuser", "password": "wrong"},
		"missing password": {"username": "alice42"},
		"missing username": {"password": "whatever"},
	}

	bodies := map[string]string{}
	for name, payload := range payloads {
		w := postJSON(t, handler.Login, "/api/auth/login", payload)
		require.Equal(t, http.StatusUnauthorized, w.Code, name)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		bodies[name] = resp.Error
	}

	for name, body := range bodies {
		assert.Equal(t, bodies["wrong password"], body, name)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, "alice42")
	identity := auth.Identity{UserID: user.ID, Username: user.Username}

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockAccountService{User: user}, &mocks.MockTokenService{}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		ctx := context.WithValue(req.Context(), shared.IdentityContextKey, identity)
		w := httptest.NewRecorder()
		handler.Check(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, user.Username, resp.Username)
	})

	t.Run("account no longer exists", func(t *testing.T) {
		t.Parallel()

		accountService := &mocks.MockAccountService{GetUserErr: store.ErrUserNotFound}
		handler := NewAuthHandler(accountService, &mocks.MockTokenService{}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		ctx := context.WithValue(req.Context(), shared.IdentityContextKey, identity)
		w := httptest.NewRecorder()
		handler.Check(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no identity in context", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockAccountService{}, &mocks.MockTokenService{}, time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		w := httptest.NewRecorder()
		handler.Check(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mocks.MockAccountService{}, &mocks.MockTokenService{}, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	cookie := findCookie(w.Result(), middleware.AccessTokenCookie)
	require.NotNil(t, cookie, "logout must overwrite the token cookie")
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
