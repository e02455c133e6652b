package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upRenamePasswordColumn, downRenamePasswordColumn)
}

// Stores written by earlier releases keep the digest in a column named
// password.
func upRenamePasswordColumn(ctx context.Context, tx *sql.Tx) error {
	legacy, err := columnExists(ctx, tx, "users", "password")
	if err != nil || !legacy {
		return err
	}
	current, err := columnExists(ctx, tx, "users", "password_hash")
	if err != nil || current {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE users RENAME COLUMN password TO password_hash`)
	return err
}

// The rename is not reverted: every schema version the server runs against
// reads password_hash.
func downRenamePasswordColumn(ctx context.Context, tx *sql.Tx) error {
	return nil
}
