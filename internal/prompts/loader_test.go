package prompts

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	keys := []string{
		"extract-resume",
		"beautify-profile",
		"generate-questions",
		"answer-feedback",
		"suggest-tags",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			prompt, err := Get("ai.json", key)
			if err != nil {
				t.Fatalf("Get(ai.json, %q) error: %v", key, err)
			}
			if strings.TrimSpace(prompt) == "" {
				t.Errorf("prompt %q is empty", key)
			}
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	if _, err := Get("ai.json", "no-such-prompt"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestGet_MissingFile(t *testing.T) {
	if _, err := Get("nope.json", "extract-resume"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormat(t *testing.T) {
	template := "Question: {{.Question}}\nAnswer: {{.Answer}}"
	result := Format(template, map[string]string{
		"Question": "Why Go?",
		"Answer":   "Because of the tooling.",
	})

	expected := "Question: Why Go?\nAnswer: Because of the tooling."
	if result != expected {
		t.Errorf("Format() = %q, want %q", result, expected)
	}
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	if result != "Hello {{.Name}}" {
		t.Errorf("Format() = %q, want placeholder untouched", result)
	}
}
