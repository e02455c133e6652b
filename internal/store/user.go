package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/keyprint/authserver/internal/db"
	"github.com/keyprint/authserver/types"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Initialize brings the users table up to the current schema.
func (r *UserRepository) Initialize(ctx context.Context, logger *zap.Logger) error {
	return db.Migrate(ctx, r.db.DB, logger)
}

// FindByUsername returns the stored password hash for username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (string, error) {
	const query = `SELECT password_hash FROM users WHERE username = ?`
	var hash sql.NullString
	if err := r.db.GetContext(ctx, &hash, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find user %q: %w", username, err)
	}
	return hash.String, nil
}

// GetByUsername returns the full user record.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT id, username, COALESCE(email, '') AS email, COALESCE(password_hash, '') AS password_hash
		FROM users
		WHERE username = ?`
	var user types.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}

// Insert stores a new user and returns its id.
func (r *UserRepository) Insert(ctx context.Context, username, email, passwordHash string) (int64, error) {
	const query = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, username, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// Ping checks that the underlying database answers.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
