package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common post validation errors, wrapping ErrEmptyContent so callers can
// match the category.
var (
	ErrEmptyPostID    = fmt.Errorf("%w: post ID cannot be empty", ErrValidation)
	ErrEmptyPostTitle = fmt.Errorf("%w: post title", ErrEmptyContent)
	ErrEmptyPostBody  = fmt.Errorf("%w: post body", ErrEmptyContent)
	ErrEmptyPostTag   = fmt.Errorf("%w: post tags cannot contain empty strings", ErrValidation)
)

// Post represents a published blog post.
//
// AuthorID is nullable: posts that predate account ownership carry no author
// and can never be mutated through the ownership check. AuthorID is set at
// creation time and is immutable thereafter.
//
// Seq is a storage-assigned, strictly increasing insertion key. Listings sort
// on it descending so "newest first" stays stable even when PublishedAt values
// collide.
type Post struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Body           string        `json:"body"`
	Tags           []string      `json:"tags"`
	AuthorID       uuid.NullUUID `json:"-"`
	AuthorUsername string        `json:"author,omitempty"` // Joined at read time; empty for unowned posts
	PublishedAt    time.Time     `json:"published_at"`
	Seq            int64         `json:"-"`
}

// NewPost creates a new Post owned by the given author.
// It generates a new UUID for the post ID and stamps PublishedAt.
// Returns an error if validation fails.
func NewPost(authorID uuid.UUID, title, body string, tags []string) (*Post, error) {
	if tags == nil {
		tags = []string{}
	}
	post := &Post{
		ID:          uuid.New(),
		Title:       title,
		Body:        body,
		Tags:        tags,
		AuthorID:    uuid.NullUUID{UUID: authorID, Valid: authorID != uuid.Nil},
		PublishedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.Title == "" {
		return ErrEmptyPostTitle
	}
	if p.Body == "" {
		return ErrEmptyPostBody
	}
	for _, tag := range p.Tags {
		if tag == "" {
			return ErrEmptyPostTag
		}
	}
	return nil
}

// OwnedBy reports whether the post is owned by the given user.
// Unowned posts (NULL author) are owned by nobody.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.AuthorID.Valid && p.AuthorID.UUID == userID
}

// HasTag reports whether the post's tag sequence contains the given tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
