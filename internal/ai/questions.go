package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/types"
)

// GenerateQuestions produces interview questions tailored to the candidate's
// profile, the requested categories and (optionally) a specific job. The
// returned slice is never empty: on gateway or parse failure it contains one
// placeholder question per requested category, and the error reports the
// degradation.
func (s *Service) GenerateQuestions(
	ctx context.Context,
	profile types.Profile,
	categories []types.QuestionCategory,
	count int,
	job *types.Job,
) ([]types.Question, error) {
	if count <= 0 {
		count = 5
	}

	payload, genErr := s.questionPayload(ctx, profile, categories, count, job)
	var drafts []QuestionDraft
	if genErr != nil {
		drafts = placeholderDrafts(categories)
	} else {
		drafts = decodeQuestionPayload(payload, categories)
	}

	questions := make([]types.Question, 0, len(drafts))
	for _, draft := range drafts {
		q := types.Question{
			ID:          uuid.NewString(),
			Text:        draft.Text,
			Category:    draft.Category,
			JobSpecific: job != nil,
		}
		if job != nil {
			q.JobID = job.ID.String()
		}
		questions = append(questions, q)
	}
	return questions, genErr
}

func (s *Service) questionPayload(
	ctx context.Context,
	profile types.Profile,
	categories []types.QuestionCategory,
	count int,
	job *types.Job,
) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d unique interview questions based on the candidate's profile", count)
	if job != nil {
		fmt.Fprintf(&sb, " and the job they are applying for (%s at %s)", job.Title, job.Company)
		if job.Description != "" {
			fmt.Fprintf(&sb, ". Here's the job description: %s", job.Description)
		}
	}
	fmt.Fprintf(&sb, ". Focus on the following categories: %s.", strings.Join(names, ", "))
	fmt.Fprintf(&sb, "\n\nCandidate Profile: %s", profileJSON)

	instruction := prompts.MustGet(promptFile, "generate-questions")
	raw, err := s.client.GenerateJSON(ctx, instruction, sb.String(), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("question generation failed: %w", err)
	}
	return raw, nil
}
