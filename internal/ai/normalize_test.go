package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-prep/internal/types"
)

func TestDecodeQuestionPayload_BareArray(t *testing.T) {
	raw := `[{"text": "Why Go?", "category": "Technical"}, {"text": "Why us?", "category": "Motivational"}]`

	drafts := decodeQuestionPayload(raw, []types.QuestionCategory{types.CategoryTechnical})

	assert.Len(t, drafts, 2)
	assert.Equal(t, "Why Go?", drafts[0].Text)
	assert.Equal(t, types.CategoryTechnical, drafts[0].Category)
}

func TestDecodeQuestionPayload_QuestionsProperty(t *testing.T) {
	raw := `{"questions": [{"text": "Tell me about a challenge.", "category": "Behavioral"}]}`

	drafts := decodeQuestionPayload(raw, []types.QuestionCategory{types.CategoryBehavioral})

	assert.Len(t, drafts, 1)
	assert.Equal(t, "Tell me about a challenge.", drafts[0].Text)
}

func TestDecodeQuestionPayload_StringArrayCoercedToDrafts(t *testing.T) {
	raw := `["Why this company?", "Describe a failure."]`

	drafts := decodeQuestionPayload(raw, []types.QuestionCategory{types.CategoryMotivational})

	assert.Len(t, drafts, 2)
	assert.Equal(t, "Why this company?", drafts[0].Text)
	assert.Equal(t, types.CategoryBehavioral, drafts[0].Category)
}

func TestDecodeQuestionPayload_FallbackPlaceholders(t *testing.T) {
	categories := []types.QuestionCategory{types.CategoryBehavioral, types.CategoryTechnical}

	for _, raw := range []string{
		"not json at all",
		`{"unexpected": "shape"}`,
		`{"questions": "not an array"}`,
		"",
	} {
		drafts := decodeQuestionPayload(raw, categories)

		// One placeholder per requested category, labeled by category.
		assert.Len(t, drafts, 2, "raw=%q", raw)
		assert.Equal(t, types.CategoryBehavioral, drafts[0].Category)
		assert.Equal(t, types.CategoryTechnical, drafts[1].Category)
		assert.Contains(t, drafts[0].Text, "Behavioral")
		assert.Contains(t, drafts[1].Text, "Technical")
	}
}

func TestDecodeQuestionPayload_RepairsBadCategories(t *testing.T) {
	raw := `[{"text": "Odd one", "category": "Trivia"}, {"category": "Technical"}]`

	drafts := decodeQuestionPayload(raw, []types.QuestionCategory{types.CategoryTechnical})

	assert.Equal(t, types.CategoryBehavioral, drafts[0].Category)
	assert.NotEmpty(t, drafts[1].Text)
}

func TestDecodeTagPayload(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"bare array", `["go", "testing"]`, []string{"go", "testing"}},
		{"tags property", `{"tags": ["leadership", "communication"]}`, []string{"leadership", "communication"}},
		{"empty tags property", `{"tags": []}`, []string{}},
		{"not json", "nope", []string{}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeTagPayload(tt.raw))
		})
	}
}

func TestDecodeTagPayload_FlattensObjectValues(t *testing.T) {
	raw := `{"technical": ["go", "sql"], "soft": "communication", "count": 3}`

	tags := decodeTagPayload(raw)

	// Only strings survive the flatten; map order is not guaranteed.
	assert.ElementsMatch(t, []string{"go", "sql", "communication"}, tags)
}
