// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedProfile outputs a human-readable summary of the profile
// candidate pulled from a resume.
func (p *Printer) PrintExtractedProfile(candidate *types.ExtractedProfile) {
	if candidate == nil {
		return
	}

	var sb strings.Builder

	if candidate.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", candidate.Name))
	}
	if candidate.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", candidate.Email))
	}
	if candidate.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", candidate.Location))
	}
	sb.WriteString("\n")

	if len(candidate.WorkExperience) > 0 {
		sb.WriteString("Work Experience:\n")
		count := min(len(candidate.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := candidate.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Position))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString("\n")
		}
		if len(candidate.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidate.WorkExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(candidate.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(candidate.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := candidate.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s", skill.Name))
			if skill.Level != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", skill.Level))
			}
			sb.WriteString("\n")
		}
		if len(candidate.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidate.Skills)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs generated questions grouped with their categories.
func (p *Printer) PrintQuestions(questions []types.Question) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d questions:\n\n", len(questions)))

	count := min(len(questions), maxItemsToShow)
	for i := 0; i < count; i++ {
		q := questions[i]
		text := q.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  [%s]\n", i+1, q.Category))
		sb.WriteString(fmt.Sprintf("    %s\n", text))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(questions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more questions", len(questions)-maxItemsToShow))
	}

	p.printBox("GENERATED QUESTIONS", sb.String())
}
