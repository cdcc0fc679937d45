package postgres

import "embed"

// MigrationsFS holds the embedded goose migration files so the server binary
// can migrate without a migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
