// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
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

// PrintRecord outputs a human-readable summary of an extracted record.
func (p *Printer) PrintRecord(rec *types.CvRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", rec.Personal.Name))
	if rec.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", rec.Personal.Email))
	}
	if rec.Target.Role != "" {
		sb.WriteString(fmt.Sprintf("Target:   %s\n", rec.Target.Role))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience entries:  %d\n", len(rec.Experience)))
	sb.WriteString(fmt.Sprintf("Education entries:   %d\n", len(rec.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:      %d\n", len(rec.Certifications)))
	sb.WriteString(fmt.Sprintf("Projects:            %d\n", len(rec.Projects)))
	sb.WriteString(fmt.Sprintf("Languages:           %d\n", len(rec.Languages)))

	if len(rec.Skills.Hard) > 0 {
		sb.WriteString("\nHard skills:\n")
		count := min(len(rec.Skills.Hard), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.Skills.Hard[i]))
		}
		if len(rec.Skills.Hard) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Skills.Hard)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSession outputs the interview progress of a session.
func (p *Printer) PrintSession(state *session.State) {
	if state == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Session:  %s\n", state.ID))
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", state.Stage))
	sb.WriteString(fmt.Sprintf("Revision: %d\n", state.Revision))
	sb.WriteString(fmt.Sprintf("Asked:    %d of %d\n", state.Ledger.Len(), state.QuestionCap))

	if len(state.Pending) > 0 {
		sb.WriteString("\nPending questions:\n")
		count := min(len(state.Pending), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", state.Pending[i]))
		}
		if len(state.Pending) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(state.Pending)-maxItemsToShow))
		}
	}

	if state.FailureReason != "" {
		sb.WriteString(fmt.Sprintf("\nFailure:  %s\n", state.FailureReason))
	}

	p.printBox("SESSION STATUS", strings.TrimSuffix(sb.String(), "\n"))
}
