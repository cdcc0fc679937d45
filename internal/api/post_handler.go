package api

import (
	"net/http"
	"strconv"

	"github.com/hsong/blogd/internal/api/shared"
	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/store"
)

// LastPageHeader communicates the index of the last listing page so clients
// can render pagination controls without a second request.
const LastPageHeader = "Last-Page"

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// List handles GET /api/posts requests. Listed posts carry truncated bodies;
// the full text is only served by Get.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			HandleAPIError(w, r, service.ErrInvalidPage, "")
			return
		}
		page = parsed
	}

	filter := store.PostFilter{
		Tag:      r.URL.Query().Get("tag"),
		Username: r.URL.Query().Get("username"),
	}

	result, err := h.postService.ListPosts(r.Context(), page, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]PostResponse, 0, len(result.Posts))
	for _, post := range result.Posts {
		responses = append(responses, postToResponse(post))
	}

	w.Header().Set(LastPageHeader, strconv.Itoa(result.LastPage))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /api/posts requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	post, err := h.postService.CreatePost(r.Context(), identity.UserID, req.Title, req.Body, req.Tags)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// Get handles GET /api/posts/{id} requests.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// Update handles PATCH /api/posts/{id} requests.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, postID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := store.PostUpdate{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	}

	post, err := h.postService.UpdatePost(r.Context(), identity.UserID, postID, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// Delete handles DELETE /api/posts/{id} requests.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, postID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(r.Context(), identity.UserID, postID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postToResponse converts a domain.Post to a PostResponse
func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		Tags:        post.Tags,
		Author:      post.AuthorUsername,
		PublishedAt: post.PublishedAt,
	}
}
