// Package ai implements the AI-backed operations of the interview-prep
// pipeline: resume extraction, profile enhancement, question generation,
// answer feedback and tag suggestion. Every operation maps gateway and parse
// failures to a typed default, so callers always receive a usable value; the
// accompanying error only signals that the workflow is running degraded.
package ai

import (
	"github.com/jonathan/interview-prep/internal/llm"
)

const promptFile = "ai.json"

// Service wraps the completion gateway with the pipeline's call sites.
// The gateway is injected at construction so tests can substitute a fake.
type Service struct {
	client llm.Client
}

// NewService creates an AI service backed by the given gateway client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}
