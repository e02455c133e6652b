package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddEmailToUsers, downAddEmailToUsers)
}

// SQLite has no ADD COLUMN IF NOT EXISTS, and databases created by earlier
// releases may already carry the column without any recorded version.
func upAddEmailToUsers(ctx context.Context, tx *sql.Tx) error {
	exists, err := columnExists(ctx, tx, "users", "email")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE users ADD COLUMN email TEXT`)
	return err
}

func downAddEmailToUsers(ctx context.Context, tx *sql.Tx) error {
	exists, err := columnExists(ctx, tx, "users", "email")
	if err != nil || !exists {
		return err
	}
	_, err = tx.ExecContext(ctx, `ALTER TABLE users DROP COLUMN email`)
	return err
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
