// Package store opens the gateway's local sqlite database, applies the
// embedded migrations, and hands out the repository set.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"focusd/internal/store/apikeys"
	"focusd/internal/store/journal"
	"focusd/internal/store/migrations"
	"focusd/internal/store/templates"
	"focusd/internal/store/users"

	"github.com/pressly/goose/v3"
)

type Repositories struct {
	Templates templates.Repository
	Users     users.Repository
	APIKeys   apikeys.Repository
	Journal   journal.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens dsn, runs migrations, and returns the repositories plus
// the underlying handle (the caller owns closing it).
func InitDatabase(ctx context.Context, dsn string) (*Repositories, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Templates: templates.NewSQLiteRepository(db),
		Users:     users.NewSQLiteRepository(db),
		APIKeys:   apikeys.NewSQLiteRepository(db),
		Journal:   journal.NewSQLiteRepository(db),
	}
	return repos, db, nil
}
