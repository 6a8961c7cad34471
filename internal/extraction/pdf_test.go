package extraction

import (
	"strings"
	"testing"
)

func TestExtractText_NotAPDF(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("hello, this is plain text"),
		[]byte("%PDF-1.4 truncated garbage"),
		{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe},
	}

	for _, input := range inputs {
		text := ExtractText(input)
		if !strings.HasPrefix(text, "Error reading PDF") {
			t.Errorf("ExtractText(%q) = %q, want sentinel", input, text)
		}
	}
}

func TestExtractText_NeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ExtractText panicked: %v", r)
		}
	}()

	// A header that passes the magic check but has no valid xref table.
	_ = ExtractText([]byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF"))
}

func TestIsExtractionError(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{ErrorSentinel, true},
		{"Error reading PDF", true},
		{"John Doe\nSoftware Engineer\n", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsExtractionError(tt.text); got != tt.expected {
			t.Errorf("IsExtractionError(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}
