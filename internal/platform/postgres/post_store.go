package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/platform/logger"
	"github.com/hsong/blogd/internal/store"
)

// PostStore implements the store.PostStore interface using a PostgreSQL
// database as the storage backend.
//
// Tags are stored as a JSONB array. The seq column is a bigserial and serves
// as the stable insertion-order key behind the newest-first listing sort.
type PostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostStore creates a new PostgreSQL implementation of the PostStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostStore(db store.DBTX, logger *slog.Logger) *PostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostStore implements store.PostStore interface
var _ store.PostStore = (*PostStore)(nil)

// Create implements store.PostStore.Create.
// The database assigns the seq ordering key, which is read back into the post.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO posts (id, title, body, tags, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq
	`
	err = s.db.QueryRowContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Body,
		tags,
		post.AuthorID,
		post.PublishedAt,
	).Scan(&post.Seq)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("author does not exist",
				slog.String("post_id", post.ID.String()))
			return fmt.Errorf("%w: author not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	log.Info("post created successfully",
		slog.String("post_id", post.ID.String()))
	return nil
}

// GetByID implements store.PostStore.GetByID.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := selectPost + ` WHERE p.id = $1`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, fmt.Errorf("failed to get post: %w", MapError(err))
	}

	return post, nil
}

// List implements store.PostStore.List.
// Results are ordered newest first by the insertion-derived seq key.
func (s *PostStore) List(ctx context.Context, filter store.PostFilter, limit, offset int) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := filterClause(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s %s ORDER BY p.seq DESC LIMIT $%d OFFSET $%d`,
		selectPost, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", MapError(err))
	}

	return posts, nil
}

// Count implements store.PostStore.Count using the same predicate as List.
func (s *PostStore) Count(ctx context.Context, filter store.PostFilter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := filterClause(filter)
	query := `
		SELECT COUNT(*)
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
	` + where

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count posts", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to count posts: %w", MapError(err))
	}

	return count, nil
}

// Update implements store.PostStore.Update.
// Only title, body, and tags are mutable; the author reference and published
// timestamp never change. Returns the updated post.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, update store.PostUpdate) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := []string{}
	args := []any{}
	n := 1

	if update.Title != nil {
		set = append(set, fmt.Sprintf("title = $%d", n))
		args = append(args, *update.Title)
		n++
	}
	if update.Body != nil {
		set = append(set, fmt.Sprintf("body = $%d", n))
		args = append(args, *update.Body)
		n++
	}
	if update.Tags != nil {
		tags, err := json.Marshal(update.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		set = append(set, fmt.Sprintf("tags = $%d", n))
		args = append(args, tags)
		n++
	}

	if len(set) > 0 {
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`, strings.Join(set, ", "), n)

		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to update post",
				slog.String("error", err.Error()),
				slog.String("post_id", id.String()))
			return nil, fmt.Errorf("failed to update post: %w", MapError(err))
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check update result: %w", err)
		}
		if affected == 0 {
			log.Debug("post not found for update", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
	}

	return s.GetByID(ctx, id)
}

// Delete implements store.PostStore.Delete.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return fmt.Errorf("failed to delete post: %w", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		log.Debug("post not found for delete", slog.String("post_id", id.String()))
		return store.ErrPostNotFound
	}

	log.Info("post deleted successfully", slog.String("post_id", id.String()))
	return nil
}

// WithTx implements store.PostStore.WithTx.
func (s *PostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostStore{
		db:     tx,
		logger: s.logger,
	}
}

// selectPost is the shared projection joining each post with its owner's
// username. The join is LEFT so unowned posts still come back.
const selectPost = `
	SELECT p.id, p.title, p.body, p.tags, p.author_id, u.username, p.published_at, p.seq
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id
`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPost maps one selectPost row into a domain Post.
func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var tags []byte
	var username sql.NullString

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&tags,
		&post.AuthorID,
		&username,
		&post.PublishedAt,
		&post.Seq,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &post.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.AuthorUsername = username.String

	return &post, nil
}

// filterClause renders the conjunctive WHERE clause for a PostFilter.
// jsonb_exists tests tag membership and is backed by the GIN index on
// posts.tags.
func filterClause(filter store.PostFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("jsonb_exists(p.tags, $%d)", len(args)))
	}
	if filter.Username != "" {
		args = append(args, filter.Username)
		conds = append(conds, fmt.Sprintf("u.username = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
