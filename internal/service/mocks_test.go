package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for service tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// createErr, when set, is returned by Create to simulate storage
	// failures such as losing the uniqueness race.
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

// Count reports the number of stored users; test-only assertion helper.
func (f *fakeUserStore) Count() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

// fakePostStore is an in-memory store.PostStore with the same filter and
// ordering semantics as the Postgres implementation.
type fakePostStore struct {
	mu      sync.Mutex
	posts   map[uuid.UUID]*domain.Post
	nextSeq int64

	// usernames maps user IDs to usernames for the username filter.
	usernames map[uuid.UUID]string
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		posts:     make(map[uuid.UUID]*domain.Post),
		usernames: make(map[uuid.UUID]string),
	}
}

func (f *fakePostStore) Create(ctx context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSeq++
	copied := *post
	copied.Seq = f.nextSeq
	if copied.AuthorID.Valid {
		copied.AuthorUsername = f.usernames[copied.AuthorID.UUID]
	}
	f.posts[post.ID] = &copied
	post.Seq = copied.Seq
	return nil
}

func (f *fakePostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, store.ErrPostNotFound
}

func (f *fakePostStore) matching(filter store.PostFilter) []*domain.Post {
	var matched []*domain.Post
	for _, p := range f.posts {
		if filter.Tag != "" && !p.HasTag(filter.Tag) {
			continue
		}
		if filter.Username != "" {
			if !p.AuthorID.Valid || f.usernames[p.AuthorID.UUID] != filter.Username {
				continue
			}
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Seq > matched[j].Seq
	})
	return matched
}

func (f *fakePostStore) List(ctx context.Context, filter store.PostFilter, limit, offset int) ([]*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := f.matching(filter)
	if offset >= len(matched) {
		return []*domain.Post{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]*domain.Post, 0, len(matched))
	for _, p := range matched {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePostStore) Count(ctx context.Context, filter store.PostFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakePostStore) Update(ctx context.Context, id uuid.UUID, update store.PostUpdate) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Body != nil {
		p.Body = *update.Body
	}
	if update.Tags != nil {
		p.Tags = update.Tags
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return store.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) WithTx(tx *sql.Tx) store.PostStore { return f }
