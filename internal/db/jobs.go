package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-prep/internal/types"
)

const jobColumns = `id, user_id, company, title, description, status, resume_url, cover_letter_url, notes, created_at, updated_at`

func scanJob(row pgx.Row) (*types.Job, error) {
	var j types.Job
	err := row.Scan(&j.ID, &j.UserID, &j.Company, &j.Title, &j.Description, &j.Status,
		&j.ResumeURL, &j.CoverLetterURL, &j.Notes, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a tracked application and returns it with server-assigned
// ID and timestamps.
func (db *DB) CreateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	if job.Status == "" {
		job.Status = types.JobDrafted
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (user_id, company, title, description, status, resume_url, cover_letter_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		job.UserID, job.Company, job.Title, job.Description, job.Status,
		job.ResumeURL, job.CoverLetterURL, job.Notes,
	)
	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// GetJob retrieves a job owned by the given user, or nil when not found.
func (db *DB) GetJob(ctx context.Context, userID, jobID uuid.UUID) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns a user's tracked applications, most recently updated first.
func (db *DB) ListJobs(ctx context.Context, userID uuid.UUID) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// UpdateJob rewrites a job's mutable fields. Returns the updated row, or nil
// when the job does not exist or belongs to another user.
func (db *DB) UpdateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE jobs SET company = $3, title = $4, description = $5, status = $6,
		        resume_url = $7, cover_letter_url = $8, notes = $9, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+jobColumns,
		job.ID, job.UserID, job.Company, job.Title, job.Description, job.Status,
		job.ResumeURL, job.CoverLetterURL, job.Notes,
	)
	updated, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return updated, nil
}

// DeleteJob removes a job owned by the given user. Returns false when nothing
// was deleted.
func (db *DB) DeleteJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND user_id = $2`, jobID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
