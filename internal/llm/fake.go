package llm

import (
	"context"
	"errors"
)

// FakeClient is a canned-response Client for tests. Responses are consumed in
// order per call shape; when the queue is exhausted the zero value (an error)
// is returned, mirroring a gateway failure.
type FakeClient struct {
	TextResponses []string
	JSONResponses []string
	Err           error

	// Calls records every invocation for assertions.
	Calls []FakeCall

	textIdx int
	jsonIdx int
}

// FakeCall records a single gateway invocation.
type FakeCall struct {
	JSONMode    bool
	Instruction string
	Payload     string
	Tier        ModelTier
}

// GenerateContent returns the next canned free-text response.
func (f *FakeClient) GenerateContent(_ context.Context, instruction, payload string, tier ModelTier) (string, error) {
	f.Calls = append(f.Calls, FakeCall{Instruction: instruction, Payload: payload, Tier: tier})
	if f.Err != nil {
		return "", f.Err
	}
	if f.textIdx >= len(f.TextResponses) {
		return "", errors.New("fake client: no text responses left")
	}
	resp := f.TextResponses[f.textIdx]
	f.textIdx++
	return resp, nil
}

// GenerateJSON returns the next canned JSON-mode response.
func (f *FakeClient) GenerateJSON(_ context.Context, instruction, payload string, tier ModelTier) (string, error) {
	f.Calls = append(f.Calls, FakeCall{JSONMode: true, Instruction: instruction, Payload: payload, Tier: tier})
	if f.Err != nil {
		return "", f.Err
	}
	if f.jsonIdx >= len(f.JSONResponses) {
		return "", errors.New("fake client: no JSON responses left")
	}
	resp := f.JSONResponses[f.jsonIdx]
	f.jsonIdx++
	return resp, nil
}

// Close implements Client.
func (f *FakeClient) Close() error { return nil }
