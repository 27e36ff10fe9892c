package apkg

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrate creates the collection schema. The goose version table is dropped
// afterwards so the shipped collection only holds Anki tables.
func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+goose.TableName()); err != nil {
		return fmt.Errorf("failed to drop migration table: %w", err)
	}

	return nil
}
