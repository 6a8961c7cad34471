// Package session coordinates the practice-session lifecycle: create an empty
// session, populate it with generated questions exactly once, then walk the
// question list to completion.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/interview-prep/internal/types"
)

// ErrSessionNotFound is returned when a session does not exist or belongs to
// another user.
var ErrSessionNotFound = errors.New("session not found")

// Store is the persistence surface the orchestrator needs.
type Store interface {
	CreateSession(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID, categories []types.QuestionCategory) (uuid.UUID, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.PracticeSession, error)
	AttachQuestions(ctx context.Context, sessionID uuid.UUID, questions []types.Question) (bool, error)
	UpdateSessionIndex(ctx context.Context, sessionID uuid.UUID, index int) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	GetJob(ctx context.Context, userID, jobID uuid.UUID) (*types.Job, error)
	SaveAnswer(ctx context.Context, answer types.Answer) (*types.Answer, error)
}

// Generator is the AI surface the orchestrator needs.
type Generator interface {
	GenerateQuestions(ctx context.Context, profile types.Profile, categories []types.QuestionCategory, count int, job *types.Job) ([]types.Question, error)
	AnswerFeedback(ctx context.Context, question, answer string, profile types.Profile, job *types.Job) (string, error)
}

// DefaultQuestionCount is how many questions a session asks for when the
// caller does not say.
const DefaultQuestionCount = 5

// Orchestrator drives practice sessions. Generation is guarded twice: a
// singleflight group collapses concurrent in-process loads of the same
// session, and the store's conditional update-if-empty write is the
// authoritative guard across processes.
type Orchestrator struct {
	store         Store
	ai            Generator
	questionCount int
	group         singleflight.Group
}

// New creates an orchestrator with the default question count.
func New(store Store, ai Generator) *Orchestrator {
	return &Orchestrator{store: store, ai: ai, questionCount: DefaultQuestionCount}
}

// Start creates an empty session and immediately loads it, which triggers
// question generation.
func (o *Orchestrator) Start(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID, categories []types.QuestionCategory) (*types.PracticeSession, error) {
	if len(categories) == 0 {
		categories = append([]types.QuestionCategory(nil), types.AllCategories...)
	}
	for _, c := range categories {
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown question category: %q", c)
		}
	}

	id, err := o.store.CreateSession(ctx, userID, jobID, categories)
	if err != nil {
		return nil, err
	}
	return o.Load(ctx, userID, id)
}

// Load retrieves a session, generating its questions if it is still empty.
// A session that was interrupted mid-generation simply generates on its next
// load; a generation failure still yields a usable session built from
// placeholder questions. The persisted cursor is repaired to 0 if a partial
// write left it out of range.
func (o *Orchestrator) Load(ctx context.Context, userID, sessionID uuid.UUID) (*types.PracticeSession, error) {
	s, err := o.store.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}

	if len(s.Questions) == 0 {
		s, err = o.generate(ctx, userID, s)
		if err != nil {
			return nil, err
		}
	}

	if idx := s.CurrentQuestionIndex; idx < 0 || idx >= len(s.Questions) {
		s.ClampIndex()
		if err := o.store.UpdateSessionIndex(ctx, sessionID, s.CurrentQuestionIndex); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// generate populates an empty session's question list exactly once.
// Concurrent loads of the same session share a single generation call; losing
// the conditional write is not an error, it just means another writer's list
// is already in place.
func (o *Orchestrator) generate(ctx context.Context, userID uuid.UUID, s *types.PracticeSession) (*types.PracticeSession, error) {
	result, err, _ := o.group.Do(s.ID.String(), func() (any, error) {
		profile, job, err := o.generationInputs(ctx, userID, s)
		if err != nil {
			return nil, err
		}

		questions, genErr := o.ai.GenerateQuestions(ctx, profile, s.Categories, o.questionCount, job)
		if genErr != nil {
			// The gateway always hands back a usable list (placeholders at
			// worst), so the session proceeds in degraded mode.
			log.Printf("Question generation degraded for session %s: %v", s.ID, genErr)
		}

		won, err := o.store.AttachQuestions(ctx, s.ID, questions)
		if err != nil {
			return nil, err
		}
		if !won {
			log.Printf("Session %s already has questions; keeping the existing list", s.ID)
		}

		return o.store.GetSession(ctx, userID, s.ID)
	})
	if err != nil {
		return nil, err
	}

	latest := result.(*types.PracticeSession)
	if latest == nil {
		return nil, ErrSessionNotFound
	}
	return latest, nil
}

func (o *Orchestrator) generationInputs(ctx context.Context, userID uuid.UUID, s *types.PracticeSession) (types.Profile, *types.Job, error) {
	profile, err := o.store.GetProfile(ctx, userID)
	if err != nil {
		return types.Profile{}, nil, err
	}
	if profile == nil {
		profile = &types.Profile{}
		profile.EnsureCollections()
	}

	var job *types.Job
	if s.JobID != nil {
		job, err = o.store.GetJob(ctx, userID, *s.JobID)
		if err != nil {
			return types.Profile{}, nil, err
		}
	}
	return *profile, job, nil
}

// NextResult reports where the cursor landed after an advance.
type NextResult struct {
	Session   *types.PracticeSession
	Question  *types.Question // nil when the session completed
	Completed bool
}

// Next advances the session cursor. Advancing past the last question reports
// completion without persisting an out-of-range index, so a reload lands on
// the final question rather than a broken cursor.
func (o *Orchestrator) Next(ctx context.Context, userID, sessionID uuid.UUID) (*NextResult, error) {
	s, err := o.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if s.CurrentQuestionIndex >= len(s.Questions)-1 {
		return &NextResult{Session: s, Completed: true}, nil
	}

	s.CurrentQuestionIndex++
	if err := o.store.UpdateSessionIndex(ctx, sessionID, s.CurrentQuestionIndex); err != nil {
		return nil, err
	}
	return &NextResult{Session: s, Question: s.CurrentQuestion()}, nil
}

// SaveAnswer records the user's answer to the session's current question,
// copying the question text and category so the saved answer outlives the
// session.
func (o *Orchestrator) SaveAnswer(ctx context.Context, userID, sessionID uuid.UUID, answerText string, tags []string) (*types.Answer, error) {
	s, err := o.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	q := s.CurrentQuestion()
	if q == nil {
		return nil, fmt.Errorf("session %s has no current question", sessionID)
	}

	answer := types.Answer{
		UserID:       userID,
		QuestionID:   q.ID,
		QuestionText: q.Text,
		AnswerText:   answerText,
		Category:     q.Category,
		Tags:         tags,
		JobID:        s.JobID,
	}
	answer.NormalizeTags()
	return o.store.SaveAnswer(ctx, answer)
}

// Feedback asks the AI gateway to critique an answer to the session's current
// question. The gateway degrades to a stock apology on failure, so feedback
// is always non-empty.
func (o *Orchestrator) Feedback(ctx context.Context, userID, sessionID uuid.UUID, answerText string) (string, error) {
	s, err := o.Load(ctx, userID, sessionID)
	if err != nil {
		return "", err
	}

	q := s.CurrentQuestion()
	if q == nil {
		return "", fmt.Errorf("session %s has no current question", sessionID)
	}

	profile, job, err := o.generationInputs(ctx, userID, s)
	if err != nil {
		return "", err
	}
	return o.ai.AnswerFeedback(ctx, q.Text, answerText, profile, job)
}
