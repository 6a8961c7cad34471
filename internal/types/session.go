package types

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the explicit lifecycle state of a practice session.
type SessionState string

// Session lifecycle states. A session is created empty, populated exactly
// once by generation, then its index advances monotonically until the list
// is exhausted.
const (
	SessionCreated    SessionState = "created"    // no questions yet
	SessionGenerating SessionState = "generating" // generation call in flight
	SessionActive     SessionState = "active"     // index points into a non-empty list
	SessionCompleted  SessionState = "completed"  // index reached the list length
)

// PracticeSession is a bounded sequence of interview questions presented to
// one user, with a cursor tracking progress.
type PracticeSession struct {
	ID                   uuid.UUID          `json:"id"`
	UserID               uuid.UUID          `json:"userId"`
	JobID                *uuid.UUID         `json:"jobId,omitempty"`
	Categories           []QuestionCategory `json:"categories"`
	Questions            []Question         `json:"questions"`
	CurrentQuestionIndex int                `json:"currentQuestionIndex"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// State derives the session's lifecycle state from its persisted fields.
// Generating is a transient in-memory state and is never derived from storage.
func (s *PracticeSession) State() SessionState {
	if len(s.Questions) == 0 {
		return SessionCreated
	}
	if s.CurrentQuestionIndex >= len(s.Questions) {
		return SessionCompleted
	}
	return SessionActive
}

// ClampIndex repairs an out-of-bounds persisted index by resetting it to 0.
// A partial write can leave the index pointing past the question list; the
// session must still load rather than fail.
func (s *PracticeSession) ClampIndex() {
	if s.CurrentQuestionIndex < 0 || (len(s.Questions) > 0 && s.CurrentQuestionIndex >= len(s.Questions)) {
		s.CurrentQuestionIndex = 0
	}
}

// CurrentQuestion returns the question at the cursor, or nil when the session
// has no questions or is completed.
func (s *PracticeSession) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}
