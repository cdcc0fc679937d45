package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hsong/blogd/internal/api/middleware"
	"github.com/hsong/blogd/internal/api/shared"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accountService service.AccountService
	tokenService   auth.TokenService
	tokenLifetime  time.Duration
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// tokenLifetime controls the cookie expiry and should match the lifetime of
// the tokens the service issues.
func NewAuthHandler(
	accountService service.AccountService,
	tokenService auth.TokenService,
	tokenLifetime time.Duration,
) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		tokenService:   tokenService,
		tokenLifetime:  tokenLifetime,
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.accountService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.tokenService.Issue(r.Context(), user.ID, user.Username)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to issue authentication token")
		return
	}

	h.setTokenCookie(w, token)
	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Login handles the /api/auth/login endpoint.
// Failures are reported uniformly so callers cannot probe which usernames
// exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// A missing username or password is answered exactly like a wrong one so
	// the response never reveals which part of the login failed.
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
			"Invalid credentials", auth.ErrInvalidCredentials, shared.WithElevatedLogLevel())
		return
	}

	user, err := h.accountService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Invalid credentials", err, shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	token, err := h.tokenService.Issue(r.Context(), user.ID, user.Username)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to issue authentication token")
		return
	}

	h.setTokenCookie(w, token)
	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Check handles the /api/auth/check endpoint. The authentication middleware
// has already validated the token; the account is re-read so a token for a
// since-deleted account stops answering as authenticated.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.accountService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		HandleAPIError(w, r, err, "Failed to verify session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Logout handles the /api/auth/logout endpoint by expiring the token cookie.
// Logout is idempotent and succeeds whether or not the caller held a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// setTokenCookie attaches the signed token as an HttpOnly cookie so browser
// scripts cannot read it.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
