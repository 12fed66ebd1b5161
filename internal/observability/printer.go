// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/internship-apply/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
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

// PrintProfile outputs a human-readable summary of an extracted candidate
// profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:    %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Email:   %s\n", profile.Email))
	if profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:   %s\n", profile.Phone))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience entries: %d\n", len(profile.Experience)))
	sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(profile.Education)))
	sb.WriteString(fmt.Sprintf("Projects:           %d\n", len(profile.Projects)))

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		sb.WriteString(formatList(profile.Skills))
	}

	p.printBox("Candidate Profile", strings.TrimRight(sb.String(), "\n"))
}

// PrintTopics outputs a human-readable summary of extracted opportunity
// topics.
func (p *Printer) PrintTopics(topics []types.OpportunityTopic) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Topics extracted: %d\n", len(topics)))

	shown := topics
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for i, topic := range shown {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, topic.Title))
		if topic.ReferenceNumber != "" {
			sb.WriteString(fmt.Sprintf("   Ref:   %s\n", topic.ReferenceNumber))
		}
		if len(topic.TechStack) > 0 {
			sb.WriteString(fmt.Sprintf("   Stack: %s\n", strings.Join(topic.TechStack, ", ")))
		}
		if topic.ContactEmail != "" {
			sb.WriteString(fmt.Sprintf("   Contact: %s\n", topic.ContactEmail))
		}
	}
	if len(topics) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(topics)-maxItemsToShow))
	}

	p.printBox("Extracted Topics", strings.TrimRight(sb.String(), "\n"))
}

// PrintDefaultedFields warns about profile fields that fell back to their
// configured defaults because the document did not state them.
func (p *Printer) PrintDefaultedFields(fields []string) {
	if len(fields) == 0 {
		return
	}
	p.printBox("Defaulted Fields", formatList(fields))
}

// formatList formats a string slice as indented lines, truncated to
// maxItemsToShow entries.
func formatList(items []string) string {
	var sb strings.Builder
	shown := items
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for _, item := range shown {
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	return strings.TrimRight(sb.String(), "\n")
}
