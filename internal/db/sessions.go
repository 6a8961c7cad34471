package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

// CreateSession inserts an empty practice session (no questions yet) and
// returns its ID.
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID, categories []types.QuestionCategory) (uuid.UUID, error) {
	cats, err := json.Marshal(categories)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode categories: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO practice_sessions (user_id, job_id, categories) VALUES ($1, $2, $3) RETURNING id`,
		userID, jobID, cats,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session owned by the given user, or nil when not
// found. The persisted index is returned as stored; callers repair
// out-of-range values before use.
func (db *DB) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.PracticeSession, error) {
	var (
		s         types.PracticeSession
		cats      []byte
		questions []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, job_id, categories, questions, current_question_index, created_at, updated_at
		 FROM practice_sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(&s.ID, &s.UserID, &s.JobID, &cats, &questions, &s.CurrentQuestionIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal(cats, &s.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode session categories: %w", err)
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode session questions: %w", err)
	}
	return &s, nil
}

// AttachQuestions writes the generated question list into a session if and
// only if the session is still empty, resetting the cursor to 0. Returns
// false when another writer got there first; the caller should re-read the
// session and use whichever list won.
func (db *DB) AttachQuestions(ctx context.Context, sessionID uuid.UUID, questions []types.Question) (bool, error) {
	qs, err := json.Marshal(questions)
	if err != nil {
		return false, fmt.Errorf("failed to encode questions: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE practice_sessions
		 SET questions = $2, current_question_index = 0, updated_at = NOW()
		 WHERE id = $1 AND jsonb_array_length(questions) = 0`,
		sessionID, qs,
	)
	if err != nil {
		return false, fmt.Errorf("failed to attach questions: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateSessionIndex persists the cursor position.
func (db *DB) UpdateSessionIndex(ctx context.Context, sessionID uuid.UUID, index int) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE practice_sessions SET current_question_index = $2, updated_at = NOW() WHERE id = $1`,
		sessionID, index,
	)
	if err != nil {
		return fmt.Errorf("failed to update session index: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// ListSessions returns a user's practice sessions, newest first.
func (db *DB) ListSessions(ctx context.Context, userID uuid.UUID) ([]types.PracticeSession, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_id, categories, questions, current_question_index, created_at, updated_at
		 FROM practice_sessions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []types.PracticeSession{}
	for rows.Next() {
		var (
			s         types.PracticeSession
			cats      []byte
			questions []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.JobID, &cats, &questions,
			&s.CurrentQuestionIndex, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal(cats, &s.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode session categories: %w", err)
		}
		if err := json.Unmarshal(questions, &s.Questions); err != nil {
			return nil, fmt.Errorf("failed to decode session questions: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session owned by the given user. Returns false when
// nothing was deleted.
func (db *DB) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM practice_sessions WHERE id = $1 AND user_id = $2`, sessionID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
