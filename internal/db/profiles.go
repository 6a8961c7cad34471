package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

// GetProfile retrieves a user's profile document, or nil when the user has
// not created one yet.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT doc FROM profiles WHERE user_id = $1`, userID,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile document: %w", err)
	}
	profile.UserID = userID.String()
	profile.EnsureCollections()
	return &profile, nil
}

// UpsertProfile stores the full profile document for a user, creating the row
// on first save.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, profile types.Profile) error {
	profile.UserID = userID.String()
	profile.EnsureCollections()

	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile document: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, doc) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		userID, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
