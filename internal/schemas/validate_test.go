package schemas

import "testing"

func TestValidateQuestionsPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			"well-formed",
			`{"questions": [{"text": "Why us?", "category": "Motivational"}]}`,
			true,
		},
		{
			"empty questions array",
			`{"questions": []}`,
			true,
		},
		{
			"missing questions property",
			`{"items": []}`,
			false,
		},
		{
			"bad category",
			`{"questions": [{"text": "Why us?", "category": "Trivia"}]}`,
			false,
		},
		{
			"missing text",
			`{"questions": [{"category": "Technical"}]}`,
			false,
		},
		{
			"empty text",
			`{"questions": [{"text": "", "category": "Technical"}]}`,
			false,
		},
		{
			"not json",
			`question one, question two`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestionsPayload(tt.payload)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
