package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAnswerTag is the sentinel tag applied when an answer is saved with
// no tags; persisted tag sets are never empty.
const DefaultAnswerTag = "interview"

// Answer is a saved response to an interview question. The question text and
// category are copied at save time, not referenced live, so the answer stays
// readable even if the originating session is deleted.
type Answer struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"userId"`
	QuestionID   string           `json:"questionId"`
	QuestionText string           `json:"questionText"`
	AnswerText   string           `json:"answerText"`
	Category     QuestionCategory `json:"category"`
	Feedback     string           `json:"feedback,omitempty"`
	Tags         []string         `json:"tags"`
	JobID        *uuid.UUID       `json:"jobId,omitempty"`
	IsFavorite   bool             `json:"isFavorite"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// NormalizeTags applies the sentinel default and strips empty entries.
func (a *Answer) NormalizeTags() {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = []string{DefaultAnswerTag}
	}
	a.Tags = tags
}
