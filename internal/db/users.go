package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

// UserRecord is a user row including the password hash. It never crosses the
// HTTP boundary; handlers work with types.User instead.
type UserRecord struct {
	types.User
	PasswordHash string
}

// CreateUser creates a user account and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID, or nil when no such user exists.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var u types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user row (including password hash) by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var rec UserRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &rec, nil
}

// GetPasswordHash retrieves the stored password hash for a user.
func (db *DB) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := db.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1`, id,
	).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", fmt.Errorf("user not found: %s", id)
		}
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}

// UpdatePassword replaces a user's password hash.
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
