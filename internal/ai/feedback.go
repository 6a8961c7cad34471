package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/types"
)

// FeedbackFallback is shown when the gateway cannot produce feedback. It is a
// fixed apology, not an error, so the practice flow keeps moving.
const FeedbackFallback = "Unfortunately, I couldn't generate feedback at this time. " +
	"Your answer appears complete, but I recommend reviewing it for clarity, " +
	"relevance, and impact before proceeding."

// AnswerFeedback asks the gateway for free-text coaching on an interview
// answer. On any failure it returns the fixed apology string and the error.
func (s *Service) AnswerFeedback(
	ctx context.Context,
	question, answer string,
	profile types.Profile,
	job *types.Job,
) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return FeedbackFallback, fmt.Errorf("failed to serialize profile: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Provide constructive feedback on this interview answer.")
	if job != nil {
		fmt.Fprintf(&sb, " The candidate is applying for %s at %s.", job.Title, job.Company)
	}
	fmt.Fprintf(&sb, "\n\nQuestion: %s\nAnswer: %s\nCandidate Profile: %s", question, answer, profileJSON)

	instruction := prompts.MustGet(promptFile, "answer-feedback")
	text, err := s.client.GenerateContent(ctx, instruction, sb.String(), llm.TierAdvanced)
	if err != nil {
		return FeedbackFallback, fmt.Errorf("feedback generation failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return FeedbackFallback, fmt.Errorf("feedback generation returned empty content")
	}
	return text, nil
}
