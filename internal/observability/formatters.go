// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
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

// PrintMatchList outputs a human-readable summary of a ranked match list.
func (p *Printer) PrintMatchList(results []types.MatchResult) {
	if len(results) == 0 {
		p.printBox("RANKED MATCHES", "No candidates cleared the inclusion floor.")
		return
	}

	var sb strings.Builder

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, shortID(r.CandidateID.String())))
		sb.WriteString(fmt.Sprintf("   score %d  type %s\n", r.Score, r.MatchType))
		if len(r.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("   missing: %s\n", strings.Join(r.MissingSkills, ", ")))
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("RANKED MATCHES (%d)", len(results)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs one scored pairing in detail.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidate: %s\n", shortID(result.CandidateID.String())))
	sb.WriteString(fmt.Sprintf("Score:     %d (%s)\n", result.Score, result.MatchType))

	if len(result.SkillsMatched) > 0 {
		sb.WriteString("\nMatched skills:\n")
		for _, d := range result.SkillsMatched {
			marker := "•"
			if d.Required {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf("  %s %s (%.1fy, %d%%)\n", marker, d.Skill, d.CandidateYears, d.SimilarityPct))
		}
	}
	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		for _, s := range result.MissingSkills {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs the organization-wide gap report.
func (p *Printer) PrintSkillGaps(entries []types.SkillGapEntry) {
	if len(entries) == 0 {
		p.printBox("SKILL GAPS", "No gaps: every open demand has an adequate candidate.")
		return
	}

	var sb strings.Builder

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("• %s\n", e.Skill))
		sb.WriteString(fmt.Sprintf("  %d demand(s) affected, urgency %s\n", e.DemandCount, e.Urgency))
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(entries)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("SKILL GAPS (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
