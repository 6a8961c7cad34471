package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/types"
)

func TestExtractResume_WellFormedResponse(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{
		`{"name": "Ada Lovelace", "email": "ada@example.com", "skills": [{"id": "s1", "name": "Mathematics"}]}`,
	}}
	svc := NewService(fake)

	candidate, err := svc.ExtractResume(context.Background(), "Ada Lovelace\nada@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", candidate.Name)
	assert.Len(t, candidate.Skills, 1)
	require.Len(t, fake.Calls, 1)
	assert.True(t, fake.Calls[0].JSONMode)
}

func TestExtractResume_GatewayFailureYieldsEmptyCandidate(t *testing.T) {
	fake := &llm.FakeClient{Err: errors.New("service unavailable")}
	svc := NewService(fake)

	candidate, err := svc.ExtractResume(context.Background(), "some text")

	assert.Error(t, err)
	assert.Equal(t, types.ExtractedProfile{}, candidate)
}

func TestExtractResume_MalformedJSONYieldsEmptyCandidate(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{"here is your profile: name=Ada"}}
	svc := NewService(fake)

	candidate, err := svc.ExtractResume(context.Background(), "some text")

	assert.Error(t, err)
	assert.Equal(t, types.ExtractedProfile{}, candidate)
}

func TestGenerateQuestions_ParsesResponse(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{
		`{"questions": [
			{"text": "Why do you want this role?", "category": "Motivational"},
			{"text": "Describe a hard bug.", "category": "Technical"}
		]}`,
	}}
	svc := NewService(fake)

	questions, err := svc.GenerateQuestions(context.Background(), types.Profile{Name: "Ada"},
		[]types.QuestionCategory{types.CategoryMotivational, types.CategoryTechnical}, 2, nil)

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.NotEmpty(t, questions[0].ID)
	assert.False(t, questions[0].JobSpecific)
	assert.Equal(t, types.CategoryTechnical, questions[1].Category)
}

func TestGenerateQuestions_FallbackOnUnparseableResponse(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{"I am sorry, I cannot do that."}}
	svc := NewService(fake)

	categories := []types.QuestionCategory{types.CategoryBehavioral, types.CategoryTechnical}
	questions, err := svc.GenerateQuestions(context.Background(), types.Profile{}, categories, 5, nil)

	// Exactly one placeholder per requested category, each carrying it.
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, types.CategoryBehavioral, questions[0].Category)
	assert.Equal(t, types.CategoryTechnical, questions[1].Category)
}

func TestGenerateQuestions_FallbackOnGatewayError(t *testing.T) {
	fake := &llm.FakeClient{Err: errors.New("network down")}
	svc := NewService(fake)

	categories := []types.QuestionCategory{types.CategoryMotivational}
	questions, err := svc.GenerateQuestions(context.Background(), types.Profile{}, categories, 5, nil)

	assert.Error(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, types.CategoryMotivational, questions[0].Category)
}

func TestGenerateQuestions_JobSpecific(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{
		`{"questions": [{"text": "Why Acme?", "category": "Motivational"}]}`,
	}}
	svc := NewService(fake)

	job := &types.Job{Title: "Engineer", Company: "Acme", Description: "Build widgets"}
	questions, err := svc.GenerateQuestions(context.Background(), types.Profile{},
		[]types.QuestionCategory{types.CategoryMotivational}, 1, job)

	require.NoError(t, err)
	assert.True(t, questions[0].JobSpecific)
	assert.Contains(t, fake.Calls[0].Payload, "Engineer at Acme")
	assert.Contains(t, fake.Calls[0].Payload, "Build widgets")
}

func TestAnswerFeedback(t *testing.T) {
	fake := &llm.FakeClient{TextResponses: []string{"Strong answer; add a concrete metric."}}
	svc := NewService(fake)

	feedback, err := svc.AnswerFeedback(context.Background(), "Why us?", "Because...", types.Profile{}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Strong answer; add a concrete metric.", feedback)
}

func TestAnswerFeedback_FallbackOnError(t *testing.T) {
	fake := &llm.FakeClient{Err: errors.New("boom")}
	svc := NewService(fake)

	feedback, err := svc.AnswerFeedback(context.Background(), "Why us?", "Because...", types.Profile{}, nil)

	assert.Error(t, err)
	assert.Equal(t, FeedbackFallback, feedback)
}

func TestAnswerFeedback_FallbackOnEmptyContent(t *testing.T) {
	fake := &llm.FakeClient{TextResponses: []string{"   "}}
	svc := NewService(fake)

	feedback, err := svc.AnswerFeedback(context.Background(), "Why us?", "Because...", types.Profile{}, nil)

	assert.Error(t, err)
	assert.Equal(t, FeedbackFallback, feedback)
}

func TestSuggestTags(t *testing.T) {
	fake := &llm.FakeClient{JSONResponses: []string{`{"tags": ["leadership", "mentoring"]}`}}
	svc := NewService(fake)

	tags, err := svc.SuggestTags(context.Background(), "Q", "A", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"leadership", "mentoring"}, tags)
}

func TestSuggestTags_EmptyOnGatewayError(t *testing.T) {
	fake := &llm.FakeClient{Err: errors.New("boom")}
	svc := NewService(fake)

	tags, err := svc.SuggestTags(context.Background(), "Q", "A", nil)

	assert.Error(t, err)
	assert.Empty(t, tags)
}

func TestNormalizeRoundTrip(t *testing.T) {
	// A well-formed JSON-mode response survives decode + re-encode with all
	// fields intact.
	fake := &llm.FakeClient{JSONResponses: []string{
		`{"name": "Ada", "location": "London", "skills": [{"id": "s1", "name": "Math", "level": "Expert"}]}`,
	}}
	svc := NewService(fake)

	candidate, err := svc.ExtractResume(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Ada", candidate.Name)
	assert.Equal(t, "London", candidate.Location)
	require.Len(t, candidate.Skills, 1)
	assert.Equal(t, "Expert", candidate.Skills[0].Level)
}
