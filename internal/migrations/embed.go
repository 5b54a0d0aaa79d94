// Package migrations provides embedded SQL migration files.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_external_ids.sql
var ExternalIDsSQL string

// Apply runs every migration against db. Statements are idempotent.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ExternalIDsSQL); err != nil {
		return fmt.Errorf("migrate external_ids: %w", err)
	}
	return nil
}
