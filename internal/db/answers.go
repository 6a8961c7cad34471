package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

const answerColumns = `id, user_id, question_id, question_text, answer_text, category, feedback, tags, job_id, is_favorite, created_at, updated_at`

func scanAnswer(row pgx.Row) (*types.Answer, error) {
	var a types.Answer
	err := row.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.QuestionText, &a.AnswerText,
		&a.Category, &a.Feedback, &a.Tags, &a.JobID, &a.IsFavorite, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAnswer inserts an answer and returns it with server-assigned ID and
// timestamps. Tags are normalized first so the stored set is never empty.
func (db *DB) SaveAnswer(ctx context.Context, answer types.Answer) (*types.Answer, error) {
	answer.NormalizeTags()
	row := db.pool.QueryRow(ctx,
		`INSERT INTO answers (user_id, question_id, question_text, answer_text, category, feedback, tags, job_id, is_favorite)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+answerColumns,
		answer.UserID, answer.QuestionID, answer.QuestionText, answer.AnswerText,
		answer.Category, answer.Feedback, answer.Tags, answer.JobID, answer.IsFavorite,
	)
	saved, err := scanAnswer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}
	return saved, nil
}

// GetAnswer retrieves an answer owned by the given user, or nil when not found.
func (db *DB) GetAnswer(ctx context.Context, userID, answerID uuid.UUID) (*types.Answer, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = $1 AND user_id = $2`,
		answerID, userID,
	)
	answer, err := scanAnswer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return answer, nil
}

// ListAnswers returns a user's answer library, most recently updated first.
func (db *DB) ListAnswers(ctx context.Context, userID uuid.UUID) ([]types.Answer, error) {
	return db.listAnswers(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID)
}

// ListAnswersByJob returns the answers a user saved against one job.
func (db *DB) ListAnswersByJob(ctx context.Context, userID, jobID uuid.UUID) ([]types.Answer, error) {
	return db.listAnswers(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE user_id = $1 AND job_id = $2 ORDER BY updated_at DESC`,
		userID, jobID)
}

func (db *DB) listAnswers(ctx context.Context, query string, args ...any) ([]types.Answer, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	answers := []types.Answer{}
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, *answer)
	}
	return answers, rows.Err()
}

// UpdateAnswer rewrites an answer's mutable fields. Returns the updated row,
// or nil when the answer does not exist or belongs to another user.
func (db *DB) UpdateAnswer(ctx context.Context, answer types.Answer) (*types.Answer, error) {
	answer.NormalizeTags()
	row := db.pool.QueryRow(ctx,
		`UPDATE answers SET answer_text = $3, feedback = $4, tags = $5, is_favorite = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+answerColumns,
		answer.ID, answer.UserID, answer.AnswerText, answer.Feedback, answer.Tags, answer.IsFavorite,
	)
	updated, err := scanAnswer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}
	return updated, nil
}

// DeleteAnswer removes an answer owned by the given user. Returns false when
// nothing was deleted.
func (db *DB) DeleteAnswer(ctx context.Context, userID, answerID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM answers WHERE id = $1 AND user_id = $2`, answerID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete answer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
