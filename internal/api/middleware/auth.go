package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hsong/blogd/internal/api/shared"
	"github.com/hsong/blogd/internal/redact"
	"github.com/hsong/blogd/internal/service/auth"
)

// AccessTokenCookie is the name of the cookie carrying the signed access
// token. Browser clients authenticate with it automatically; API clients may
// send the same token in the Authorization header instead.
const AccessTokenCookie = "access_token"

// AuthMiddleware provides token authentication for routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the access token from the request and adds the
// caller's identity to the request context. Requests without a valid token
// are rejected with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := m.tokenService.Validate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		identity := auth.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
		}
		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Populate resolves the caller's identity like Authenticate but never rejects
// the request. Public routes use it so handlers can see who is asking when a
// valid token happens to be present.
func (m *AuthMiddleware) Populate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokenService.Validate(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := auth.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
		}
		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the access token from the request. The cookie is the
// primary transport; a Bearer Authorization header is accepted as a fallback
// for non-browser clients.
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrMissingToken
	}

	return parts[1], nil
}

// GetIdentity extracts the authenticated identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(shared.IdentityContextKey).(auth.Identity)
	return identity, ok
}
