package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hsong/blogd/internal/domain"
)

// PostFilter restricts a listing to posts matching every set field.
// Zero-valued fields impose no restriction.
type PostFilter struct {
	// Tag restricts to posts whose tag sequence contains the value.
	Tag string

	// Username restricts to posts owned by the account with this username.
	Username string
}

// PostUpdate carries the mutable fields of a post. Nil fields are left
// unchanged. The author reference and published timestamp are immutable
// and deliberately absent.
type PostUpdate struct {
	Title *string
	Body  *string
	Tags  []string
}

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post to the store. The storage layer assigns the
	// insertion-order sequence key used for newest-first sorting.
	// Returns validation errors from the domain Post if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID, including the owner's
	// username when the post is owned.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List returns at most limit posts matching the filter, newest first
	// (descending insertion order), skipping the first offset matches.
	// An offset beyond the last match yields an empty slice, not an error.
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*domain.Post, error)

	// Count returns the total number of posts matching the filter.
	Count(ctx context.Context, filter PostFilter) (int64, error)

	// Update applies the given field changes to an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, id uuid.UUID, update PostUpdate) (*domain.Post, error)

	// Delete removes a post from the store by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PostStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) PostStore
}
