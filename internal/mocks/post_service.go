package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/store"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	// CreatePostFn allows test cases to mock the CreatePost behavior
	CreatePostFn func(ctx context.Context, authorID uuid.UUID, title, body string, tags []string) (*domain.Post, error)

	// GetPostFn allows test cases to mock the GetPost behavior
	GetPostFn func(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListPostsFn allows test cases to mock the ListPosts behavior
	ListPostsFn func(ctx context.Context, page int, filter store.PostFilter) (*service.PostPage, error)

	// UpdatePostFn allows test cases to mock the UpdatePost behavior
	UpdatePostFn func(ctx context.Context, userID, postID uuid.UUID, update store.PostUpdate) (*domain.Post, error)

	// DeletePostFn allows test cases to mock the DeletePost behavior
	DeletePostFn func(ctx context.Context, userID, postID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Post      *domain.Post
	Page      *service.PostPage
	Err       error
	DeleteErr error
}

// CreatePost implements the service.PostService interface
func (m *MockPostService) CreatePost(
	ctx context.Context,
	authorID uuid.UUID,
	title, body string,
	tags []string,
) (*domain.Post, error) {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, authorID, title, body, tags)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Post, nil
}

// GetPost implements the service.PostService interface
func (m *MockPostService) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.GetPostFn != nil {
		return m.GetPostFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Post, nil
}

// ListPosts implements the service.PostService interface
func (m *MockPostService) ListPosts(
	ctx context.Context,
	page int,
	filter store.PostFilter,
) (*service.PostPage, error) {
	if m.ListPostsFn != nil {
		return m.ListPostsFn(ctx, page, filter)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Page, nil
}

// UpdatePost implements the service.PostService interface
func (m *MockPostService) UpdatePost(
	ctx context.Context,
	userID, postID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, userID, postID, update)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Post, nil
}

// DeletePost implements the service.PostService interface
func (m *MockPostService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, userID, postID)
	}
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.Err
}

// Ensure MockPostService implements the interface
var _ service.PostService = (*MockPostService)(nil)
