package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/api/middleware"
	"github.com/hsong/blogd/internal/api/shared"
	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service/auth"
)

// getIdentityFromContext extracts the authenticated identity from the request
// context. The identity is placed there by the authentication middleware.
func getIdentityFromContext(r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok || identity.UserID == uuid.Nil {
		return auth.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts a UUID from the URL path parameters, handling the
// missing and malformed cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireIdentityAndPathUUID is a composite helper that extracts the caller's
// identity from context and a UUID from the path parameters. It writes an
// error response and returns false if either extraction fails.
func requireIdentityAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (auth.Identity, uuid.UUID, bool) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return auth.Identity{}, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return auth.Identity{}, uuid.Nil, false
	}

	return identity, pathID, true
}
