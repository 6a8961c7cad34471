// Package extraction converts uploaded resume documents into plain text for
// the AI gateway.
package extraction

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrorSentinel is returned in place of extracted text whenever a document
// cannot be read. Callers treat the return value uniformly as text content,
// so extraction never fails with an error.
const ErrorSentinel = "Error reading PDF. The file may be corrupted, password-protected, " +
	"or using a format that's difficult to parse. Please try a different PDF format " +
	"or enter information manually."

// ExtractText reads every page of a PDF payload in order and returns a single
// text blob: one line per page, with each page's text fragments joined by
// single spaces. A failure at any page aborts the whole extraction and yields
// the sentinel — there is no partial-result recovery.
func ExtractText(data []byte) (text string) {
	// The pdf library panics on some malformed inputs; the sentinel contract
	// covers those too.
	defer func() {
		if r := recover(); r != nil {
			text = ErrorSentinel
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ErrorSentinel
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return ErrorSentinel
		}
		fragments := page.Content().Text
		for j, fragment := range fragments {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fragment.S)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// IsExtractionError reports whether a blob of extracted text is actually the
// failure sentinel rather than document content.
func IsExtractionError(text string) bool {
	return strings.HasPrefix(text, "Error reading PDF")
}
