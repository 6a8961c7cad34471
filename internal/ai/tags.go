package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/types"
)

// SuggestTags asks the gateway for 3-5 tags categorizing a question/answer
// pair. On failure it returns an empty list and the error; the answer-save
// path applies the sentinel default tag separately.
func (s *Service) SuggestTags(ctx context.Context, question, answer string, job *types.Job) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("Suggest relevant tags for the following interview Q&A.")
	if job != nil {
		fmt.Fprintf(&sb, " The context is an application for %s at %s.", job.Title, job.Company)
	}
	fmt.Fprintf(&sb, "\n\nQuestion: %s\nAnswer: %s", question, answer)

	instruction := prompts.MustGet(promptFile, "suggest-tags")
	raw, err := s.client.GenerateJSON(ctx, instruction, sb.String(), llm.TierLite)
	if err != nil {
		return []string{}, fmt.Errorf("tag suggestion failed: %w", err)
	}

	return decodeTagPayload(raw), nil
}
