package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/types"
)

// ExtractResume asks the gateway to pull structured profile fields out of raw
// resume text. On any failure — transport, empty content, malformed JSON —
// it returns an empty candidate and a non-nil error; the empty candidate
// merges as a no-op, so the caller's workflow continues.
func (s *Service) ExtractResume(ctx context.Context, resumeText string) (types.ExtractedProfile, error) {
	var candidate types.ExtractedProfile

	instruction := prompts.MustGet(promptFile, "extract-resume")
	raw, err := s.client.GenerateJSON(ctx, instruction, resumeText, llm.TierStandard)
	if err != nil {
		return candidate, fmt.Errorf("resume extraction failed: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return types.ExtractedProfile{}, fmt.Errorf("resume extraction returned malformed JSON: %w", err)
	}
	return candidate, nil
}

// BeautifyProfile asks the gateway to enhance an existing profile's prose.
// The returned candidate mirrors the profile structure; on failure it is
// empty and the error marks the degradation.
func (s *Service) BeautifyProfile(ctx context.Context, profile types.Profile) (types.ExtractedProfile, error) {
	var enhanced types.ExtractedProfile

	payload, err := json.Marshal(profile)
	if err != nil {
		return enhanced, fmt.Errorf("failed to serialize profile: %w", err)
	}

	instruction := prompts.MustGet(promptFile, "beautify-profile")
	raw, err := s.client.GenerateJSON(ctx, instruction, string(payload), llm.TierAdvanced)
	if err != nil {
		return enhanced, fmt.Errorf("profile enhancement failed: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &enhanced); err != nil {
		return types.ExtractedProfile{}, fmt.Errorf("profile enhancement returned malformed JSON: %w", err)
	}
	return enhanced, nil
}
