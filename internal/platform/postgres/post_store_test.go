package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/platform/postgres"
	"github.com/hsong/blogd/internal/store"
	"github.com/hsong/blogd/internal/testdb"
)

// seedAuthor creates a user inside the test transaction and returns it.
func seedAuthor(t *testing.T, ctx context.Context, users store.UserStore, username string) *domain.User {
	t.Helper()
	user := mustNewUser(t, username)
	require.NoError(t, users.Create(ctx, user))
	return user
}

func mustNewPost(t *testing.T, authorID uuid.UUID, title string, tags []string) *domain.Post {
	t.Helper()
	post, err := domain.NewPost(authorID, title, "body of "+title, tags)
	require.NoError(t, err)
	return post
}

func TestPostStoreCreateAssignsSeq(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)
		author := seedAuthor(t, ctx, users, "seqwriter")

		first := mustNewPost(t, author.ID, "first", nil)
		second := mustNewPost(t, author.ID, "second", nil)
		require.NoError(t, posts.Create(ctx, first))
		require.NoError(t, posts.Create(ctx, second))

		assert.Positive(t, first.Seq)
		assert.Greater(t, second.Seq, first.Seq, "later inserts get larger ordering keys")
	})
}

func TestPostStoreGetByIDJoinsAuthor(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)
		author := seedAuthor(t, ctx, users, "joinwriter")

		post := mustNewPost(t, author.ID, "joined", []string{"go", "sql"})
		require.NoError(t, posts.Create(ctx, post))

		got, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "joinwriter", got.AuthorUsername)
		assert.Equal(t, []string{"go", "sql"}, got.Tags)
		assert.True(t, got.OwnedBy(author.ID))
	})
}

func TestPostStoreUnownedPost(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		posts := postgres.NewPostStore(db, nil).WithTx(tx)

		post := mustNewPost(t, uuid.Nil, "orphan", nil)
		require.NoError(t, posts.Create(ctx, post))

		got, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, got.AuthorID.Valid)
		assert.Empty(t, got.AuthorUsername)
	})
}

func TestPostStoreListOrderingAndCount(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)
		author := seedAuthor(t, ctx, users, "listwriter")

		titles := []string{"oldest", "middle", "newest"}
		for _, title := range titles {
			require.NoError(t, posts.Create(ctx, mustNewPost(t, author.ID, title, nil)))
		}

		listed, err := posts.List(ctx, store.PostFilter{Username: "listwriter"}, 10, 0)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "newest", listed[0].Title)
		assert.Equal(t, "oldest", listed[2].Title)

		count, err := posts.Count(ctx, store.PostFilter{Username: "listwriter"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		// Offset walks further down the same ordering.
		page2, err := posts.List(ctx, store.PostFilter{Username: "listwriter"}, 2, 2)
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, "oldest", page2[0].Title)
	})
}

func TestPostStoreFilters(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)

		alice := seedAuthor(t, ctx, users, "filteralice")
		bob := seedAuthor(t, ctx, users, "filterbob")

		require.NoError(t, posts.Create(ctx, mustNewPost(t, alice.ID, "alice go", []string{"go"})))
		require.NoError(t, posts.Create(ctx, mustNewPost(t, alice.ID, "alice misc", []string{"misc"})))
		require.NoError(t, posts.Create(ctx, mustNewPost(t, bob.ID, "bob go", []string{"go"})))

		byTag, err := posts.List(ctx, store.PostFilter{Tag: "go"}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, byTag, 2)

		both, err := posts.List(ctx, store.PostFilter{Tag: "go", Username: "filteralice"}, 10, 0)
		require.NoError(t, err)
		require.Len(t, both, 1)
		assert.Equal(t, "alice go", both[0].Title)

		none, err := posts.List(ctx, store.PostFilter{Tag: "no-such-tag"}, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestPostStoreUpdate(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)
		author := seedAuthor(t, ctx, users, "editwriter")

		post := mustNewPost(t, author.ID, "before", []string{"draft"})
		require.NoError(t, posts.Create(ctx, post))

		newTitle := "after"
		updated, err := posts.Update(ctx, post.ID, store.PostUpdate{
			Title: &newTitle,
			Tags:  []string{"published"},
		})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, post.Body, updated.Body, "omitted fields keep their values")
		assert.Equal(t, []string{"published"}, updated.Tags)

		_, err = posts.Update(ctx, uuid.New(), store.PostUpdate{Title: &newTitle})
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})
}

func TestPostStoreDelete(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(db, nil).WithTx(tx)
		posts := postgres.NewPostStore(db, nil).WithTx(tx)
		author := seedAuthor(t, ctx, users, "delwriter")

		post := mustNewPost(t, author.ID, "doomed", nil)
		require.NoError(t, posts.Create(ctx, post))

		require.NoError(t, posts.Delete(ctx, post.ID))

		_, err := posts.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, store.ErrPostNotFound)

		assert.ErrorIs(t, posts.Delete(ctx, post.ID), store.ErrPostNotFound)
	})
}
