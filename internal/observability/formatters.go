// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
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

// PrintSections outputs a human-readable summary of the extracted CV.
func (p *Printer) PrintSections(cv *types.CV) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	if cv.Header.Name != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", cv.Header.Name))
	}
	for _, id := range cv.Order {
		section := cv.Sections[id]
		sb.WriteString(fmt.Sprintf("%-15s %d lines", id, len(section.Lines)))
		if len(section.Entries) > 0 {
			sb.WriteString(fmt.Sprintf(", %d entries", len(section.Entries)))
		}
		sb.WriteString("\n")
	}

	p.printBox("Extracted Sections", sb.String())
}

// PrintContentModel outputs the transformed content per section.
func (p *Printer) PrintContentModel(model *types.ContentModel) {
	if model == nil {
		return
	}

	var sb strings.Builder
	for _, id := range model.Order {
		sc := model.Sections[id]
		sb.WriteString(fmt.Sprintf("%s:\n", id))
		count := min(len(sc.Lines), maxItemsToShow)
		for i := 0; i < count; i++ {
			line := sc.Lines[i]
			bullet := "•"
			if line.Emphasis {
				bullet = "★"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", bullet, line.Text))
		}
		if len(sc.Lines) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sc.Lines)-maxItemsToShow))
		}
	}

	p.printBox("Content Model", sb.String())
}

// PrintAssignment outputs the slide assignment plan.
func (p *Printer) PrintAssignment(plan *types.SlideAssignment) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	for _, a := range plan.Assignments {
		sb.WriteString(fmt.Sprintf("[%d] %s / %s ← %s (%d lines)\n",
			a.LayoutIndex, a.LayoutName, a.Placeholder, a.Section, len(a.Lines)))
	}

	p.printBox("Slide Assignment", sb.String())
}

// PrintTraceSummary outputs the audit log summary.
func (p *Printer) PrintTraceSummary(export trace.Export) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", export.RunID))
	sb.WriteString(fmt.Sprintf("Applied:  %d\n", export.Summary.Applied))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", export.Summary.Skipped))
	sb.WriteString(fmt.Sprintf("Warnings: %d\n", export.Summary.Warnings))
	sb.WriteString(fmt.Sprintf("Total:    %d\n", export.Summary.Total))

	p.printBox("Traceability Summary", sb.String())
}
