// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-search/internal/match"
	"github.com/jonathan/talent-search/internal/types"
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

// PrintParsedQuery outputs a human-readable summary of the interpreted query.
func (p *Printer) PrintParsedQuery(parsed *types.ParsedQuery) {
	if parsed == nil {
		return
	}

	var sb strings.Builder

	if len(parsed.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%s): %s\n",
			parsed.SkillOperator, strings.Join(parsed.Skills, ", ")))
	}
	if len(parsed.OptionalSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Optional:     %s\n", strings.Join(parsed.OptionalSkills, ", ")))
	}
	if len(parsed.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("Categories:   %s\n", strings.Join(parsed.Categories, ", ")))
	}

	if len(parsed.SkillRequirements) > 0 {
		sb.WriteString("\nExperience per skill:\n")
		count := min(len(parsed.SkillRequirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			req := parsed.SkillRequirements[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", req.Skill, formatRequirement(req)))
		}
		if len(parsed.SkillRequirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(parsed.SkillRequirements)-maxItemsToShow))
		}
	} else if parsed.MinYears != nil {
		sb.WriteString(fmt.Sprintf("\nExperience:   %s %s years", parsed.ExperienceOperator, trimFloat(*parsed.MinYears)))
		if parsed.MaxYears != nil {
			sb.WriteString(fmt.Sprintf(" to %s years", trimFloat(*parsed.MaxYears)))
		}
		sb.WriteString("\n")
	}

	if len(parsed.Locations) > 0 {
		sb.WriteString(fmt.Sprintf("Location:     %s\n", strings.Join(parsed.Locations, ", ")))
	}
	if parsed.Availability.Detected() {
		sb.WriteString(fmt.Sprintf("Availability: %s\n", parsed.Availability.Status))
	}
	if len(parsed.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("Roles:        %s\n", strings.Join(parsed.Roles, ", ")))
	}

	if sb.Len() == 0 {
		sb.WriteString("Nothing extracted\n")
	}

	p.printBox("Interpreted Query", strings.TrimRight(sb.String(), "\n"))
}

// PrintAppliedFilters lists the human-readable filter summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAppliedFilters(filters []string) {
	if len(filters) == 0 {
		return
	}
	fmt.Fprintln(p.out, "Applied filters:")
	for _, f := range filters {
		fmt.Fprintf(p.out, "  • %s\n", f)
	}
}

// PrintMatchResult outputs the score breakdown for one candidate.
func (p *Printer) PrintMatchResult(result *types.MatchResult, rec types.Recommendation) {
	if result == nil {
		return
	}

	var sb strings.Builder

	if result.CandidateName != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", result.CandidateName))
	}
	sb.WriteString(fmt.Sprintf("Overall:   %.1f%%  (%s)\n", result.OverallMatchPercentage, rec.Verdict))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:        %.1f\n", result.ComponentScores.Skill))
	sb.WriteString(fmt.Sprintf("Experience:    %.1f\n", result.ComponentScores.Experience))
	sb.WriteString(fmt.Sprintf("Location:      %.1f\n", result.ComponentScores.Location))
	sb.WriteString(fmt.Sprintf("Availability:  %.1f\n", result.ComponentScores.Availability))
	sb.WriteString(fmt.Sprintf("Similarity:    %.1f\n", result.ComponentScores.Similarity))

	missing := missingSkills(result.SkillAnalysis)
	if len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing:   %s\n", strings.Join(missing, ", ")))
	}

	p.printBox("Match Result", strings.TrimRight(sb.String(), "\n"))
}

// PrintRanking lists ranked candidates in order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRanking(ranked []match.RankedCandidate) {
	if len(ranked) == 0 {
		fmt.Fprintln(p.out, "No candidates matched.")
		return
	}

	for i, rc := range ranked {
		name := rc.Candidate.Name
		if name == "" {
			name = rc.Candidate.ID
		}
		fmt.Fprintf(p.out, "%2d. %-24s %6.1f%%  %s\n",
			i+1, name, rc.Result.OverallMatchPercentage, rc.Recommendation.Verdict)
	}
}

// PrintLearningSuggestions lists training suggestions for skill gaps.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLearningSuggestions(suggestions []types.LearningSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(p.out, "Learning suggestions:")
	for _, s := range suggestions {
		fmt.Fprintf(p.out, "  • %s: %s more years (%s priority, ~%d hours)\n",
			s.Skill, trimFloat(s.GapYears), s.Priority, s.EstimatedHours)
	}
}

func formatRequirement(req types.SkillRequirement) string {
	if req.MaxYears != nil {
		return fmt.Sprintf("%s-%s years", trimFloat(req.MinYears), trimFloat(*req.MaxYears))
	}
	return fmt.Sprintf("%s+ years", trimFloat(req.MinYears))
}

func missingSkills(analysis []types.SkillAssessment) []string {
	var missing []string
	for _, a := range analysis {
		if a.Status == types.SkillStatusMissing {
			missing = append(missing, a.Skill)
		}
	}
	return missing
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
