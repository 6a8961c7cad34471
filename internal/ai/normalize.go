package ai

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
)

// QuestionDraft is a generated question before it is assigned an identity
// and attached to a session.
type QuestionDraft struct {
	Text     string                 `json:"text"`
	Category types.QuestionCategory `json:"category"`
}

// decodeQuestionPayload turns a raw JSON-mode gateway response into question
// drafts. Accepted shapes are tried in priority order:
//
//  1. a bare array of {text, category} objects
//  2. a bare array of question strings, coerced into drafts
//  3. an object with a schema-valid "questions" array
//  4. fallback: one placeholder question per requested category
//
// The fallback guarantees the session always receives questions for every
// category it asked for, even when the model answers garbage.
func decodeQuestionPayload(raw string, categories []types.QuestionCategory) []QuestionDraft {
	var drafts []QuestionDraft
	if err := json.Unmarshal([]byte(raw), &drafts); err == nil && len(drafts) > 0 {
		return sanitizeDrafts(drafts)
	}

	var texts []string
	if err := json.Unmarshal([]byte(raw), &texts); err == nil && len(texts) > 0 {
		drafts = make([]QuestionDraft, len(texts))
		for i, text := range texts {
			drafts[i] = QuestionDraft{Text: text}
		}
		return sanitizeDrafts(drafts)
	}

	if err := schemas.ValidateQuestionsPayload(raw); err == nil {
		var wrapper struct {
			Questions []QuestionDraft `json:"questions"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapper); err == nil && len(wrapper.Questions) > 0 {
			return sanitizeDrafts(wrapper.Questions)
		}
	}

	return placeholderDrafts(categories)
}

// sanitizeDrafts backfills missing text and repairs categories outside the
// closed set.
func sanitizeDrafts(drafts []QuestionDraft) []QuestionDraft {
	for i := range drafts {
		if drafts[i].Text == "" {
			drafts[i].Text = fmt.Sprintf("Question %d", i+1)
		}
		if !drafts[i].Category.IsValid() {
			drafts[i].Category = types.CategoryBehavioral
		}
	}
	return drafts
}

// placeholderDrafts synthesizes one labeled question per requested category.
func placeholderDrafts(categories []types.QuestionCategory) []QuestionDraft {
	drafts := make([]QuestionDraft, 0, len(categories))
	for i, category := range categories {
		drafts = append(drafts, QuestionDraft{
			Text:     fmt.Sprintf("Interview question %d for %s category", i+1, category),
			Category: category,
		})
	}
	return drafts
}

// decodeTagPayload turns a raw JSON-mode gateway response into a tag list.
// Accepted shapes, in priority order: a bare string array, an object with a
// "tags" string array, then a last-ditch flatten of all string values in the
// parsed object. Total failure yields an empty list; callers apply the
// sentinel default tag separately.
func decodeTagPayload(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err == nil {
		return tags
	}

	var wrapper struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil && wrapper.Tags != nil {
		return wrapper.Tags
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(raw), &object); err == nil {
		return flattenStrings(object)
	}

	return []string{}
}

// flattenStrings collects every string reachable in the object's values,
// descending one level into nested arrays.
func flattenStrings(object map[string]any) []string {
	tags := []string{}
	for _, value := range object {
		switch v := value.(type) {
		case string:
			tags = append(tags, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					tags = append(tags, s)
				}
			}
		}
	}
	return tags
}
