// Package main implements a development seeding tool that fills the database
// with a demo account and a batch of generated posts. Everything is written
// in a single transaction so a failed run leaves the database untouched.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/hsong/blogd/internal/config"
	"github.com/hsong/blogd/internal/domain"
	"github.com/hsong/blogd/internal/platform/logger"
	"github.com/hsong/blogd/internal/platform/postgres"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

var sampleTags = [][]string{
	{"go", "backend"},
	{"notes"},
	{"go", "databases"},
	{"recipes", "cooking"},
	{},
}

func main() {
	count := flag.Int("posts", 40, "number of posts to generate")
	flag.Parse()

	if err := run(*count); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(count int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := logger.WithLogger(context.Background(), appLogger)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := seed(ctx, db, appLogger, count); err != nil {
		return err
	}

	appLogger.Info("seeding complete",
		slog.String("username", demoUsername),
		slog.Int("posts", count))
	return nil
}

// seed creates the demo account and its posts atomically. Re-running against
// an already seeded database reuses the existing demo account.
func seed(ctx context.Context, db *sql.DB, appLogger *slog.Logger, count int) error {
	userStore := postgres.NewUserStore(db, appLogger)
	postStore := postgres.NewPostStore(db, appLogger)

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		users := userStore.WithTx(tx)
		posts := postStore.WithTx(tx)

		user, err := ensureDemoUser(ctx, users)
		if err != nil {
			return err
		}

		for i := 0; i < count; i++ {
			post, err := domain.NewPost(
				user.ID,
				fmt.Sprintf("Sample post %d", i+1),
				sampleBody(i),
				sampleTags[i%len(sampleTags)],
			)
			if err != nil {
				return fmt.Errorf("failed to build post %d: %w", i+1, err)
			}
			// Spread publication times so the newest-first ordering is
			// visible in listings.
			post.PublishedAt = time.Now().UTC().Add(-time.Duration(count-i) * time.Hour)

			if err := posts.Create(ctx, post); err != nil {
				return fmt.Errorf("failed to create post %d: %w", i+1, err)
			}
		}

		return nil
	})
}

// ensureDemoUser fetches the demo account, creating it on first run.
func ensureDemoUser(ctx context.Context, users store.UserStore) (*domain.User, error) {
	user, err := users.GetByUsername(ctx, demoUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up demo user: %w", err)
	}

	user, err = domain.NewUser(demoUsername, demoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to build demo user: %w", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	hashed, err := hasher.Hash(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}

	return user, nil
}

// sampleBody generates post text long enough that every third post overflows
// the listing snippet and gets truncated.
func sampleBody(i int) string {
	base := fmt.Sprintf("This is the body of sample post %d. ", i+1)
	body := base
	if i%3 == 0 {
		for len(body) < 400 {
			body += "It keeps going well past the snippet cutoff to demonstrate truncated listings. "
		}
	}
	return body
}
