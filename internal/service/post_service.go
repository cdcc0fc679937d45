package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/store"
)

// Listing constants.
const (
	// PageSize is the fixed number of posts per listing page.
	PageSize = 10

	// snippetLength is the maximum body length, in runes, shown in listings.
	snippetLength = 200

	// snippetMarker is appended to truncated listing bodies.
	snippetMarker = "..."
)

// PostPage is one page of a filtered, newest-first post listing.
type PostPage struct {
	// Posts holds at most PageSize posts with bodies truncated to
	// snippetLength runes. Empty (not nil) for pages beyond the last.
	Posts []*domain.Post

	// LastPage is ceiling(total matching count / PageSize). It describes the
	// whole filtered collection, not this page, and is exposed to clients as
	// response metadata rather than part of the body.
	LastPage int
}

// PostService provides post creation, reading, owner-gated mutation, and the
// paginated listing engine.
type PostService interface {
	// CreatePost stores a new post owned by the given author.
	CreatePost(ctx context.Context, authorID uuid.UUID, title, body string, tags []string) (*domain.Post, error)

	// GetPost retrieves a single post by ID with its full, untruncated body.
	// Returns store.ErrPostNotFound if the post does not exist.
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListPosts returns the given 1-based page of posts matching the filter,
	// newest first. Returns ErrInvalidPage for page < 1 before touching
	// storage. Pages beyond the last page yield an empty result, not an
	// error.
	ListPosts(ctx context.Context, page int, filter store.PostFilter) (*PostPage, error)

	// UpdatePost applies the update to the post if the given user owns it.
	// Returns store.ErrPostNotFound if the post is absent (checked before
	// ownership) and ErrNotOwned if the user is not the owner.
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error)

	// DeletePost removes the post if the given user owns it. Same error
	// contract as UpdatePost.
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
}

// PostServiceImpl implements the PostService interface.
type PostServiceImpl struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// Ensure PostServiceImpl implements PostService
var _ PostService = (*PostServiceImpl)(nil)

// NewPostService creates a new PostService.
func NewPostService(postStore store.PostStore, logger *slog.Logger) *PostServiceImpl {
	return &PostServiceImpl{
		postStore: postStore,
		logger:    logger.With(slog.String("component", "post_service")),
	}
}

// CreatePost stores a new post owned by the given author.
func (s *PostServiceImpl) CreatePost(
	ctx context.Context,
	authorID uuid.UUID,
	title, body string,
	tags []string,
) (*domain.Post, error) {
	post, err := domain.NewPost(authorID, title, body, tags)
	if err != nil {
		return nil, err
	}

	if err := s.postStore.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("author_id", authorID.String()))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("author_id", authorID.String()))
	return post, nil
}

// GetPost retrieves a single post with its full body.
func (s *PostServiceImpl) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.postStore.GetByID(ctx, id)
}

// ListPosts computes one page of the filtered, newest-first listing.
func (s *PostServiceImpl) ListPosts(ctx context.Context, page int, filter store.PostFilter) (*PostPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	total, err := s.postStore.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	posts, err := s.postStore.List(ctx, filter, PageSize, (page-1)*PageSize)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	// Truncate bodies on copies; listings must not mutate stored posts.
	trimmed := make([]*domain.Post, 0, len(posts))
	for _, post := range posts {
		p := *post
		p.Body = snippet(p.Body)
		trimmed = append(trimmed, &p)
	}

	return &PostPage{
		Posts:    trimmed,
		LastPage: int((total + PageSize - 1) / PageSize),
	}, nil
}

// UpdatePost applies the update after the ownership check passes.
func (s *PostServiceImpl) UpdatePost(
	ctx context.Context,
	userID, postID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	if err := s.authorizeOwner(ctx, userID, postID); err != nil {
		return nil, err
	}

	post, err := s.postStore.Update(ctx, postID, update)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.logger.Info("post updated",
		slog.String("post_id", postID.String()),
		slog.String("user_id", userID.String()))
	return post, nil
}

// DeletePost removes the post after the ownership check passes.
func (s *PostServiceImpl) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	if err := s.authorizeOwner(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return err
		}
		s.logger.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted",
		slog.String("post_id", postID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// authorizeOwner loads the target post and checks ownership. A missing post
// short-circuits with store.ErrPostNotFound before any authorization
// decision; an unowned post denies everyone.
func (s *PostServiceImpl) authorizeOwner(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !post.OwnedBy(userID) {
		s.logger.Warn("user does not own post",
			slog.String("user_id", userID.String()),
			slog.String("post_id", postID.String()))
		return ErrNotOwned
	}

	return nil
}

// snippet truncates body to snippetLength runes, appending the marker when
// anything was cut.
func snippet(body string) string {
	runes := []rune(body)
	if len(runes) <= snippetLength {
		return body
	}
	return string(runes[:snippetLength]) + snippetMarker
}
