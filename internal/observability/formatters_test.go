package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-search/internal/match"
	"github.com/jonathan/talent-search/internal/types"
)

func TestPrintParsedQuery_ShowsSkillsAndExperience(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	minYears := 5.0
	p.PrintParsedQuery(&types.ParsedQuery{
		Skills:             []string{"Python", "SQL Server"},
		SkillOperator:      types.SkillOperatorAnd,
		MinYears:           &minYears,
		ExperienceOperator: types.OpAtLeast,
		Locations:          []string{"bangalore"},
	})

	out := buf.String()
	assert.Contains(t, out, "Python, SQL Server")
	assert.Contains(t, out, "5 years")
	assert.Contains(t, out, "bangalore")
	assert.Contains(t, out, "Interpreted Query")
}

func TestPrintParsedQuery_PerSkillRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	maxYears := 5.0
	p.PrintParsedQuery(&types.ParsedQuery{
		Skills: []string{"Python"},
		SkillRequirements: []types.SkillRequirement{
			{Skill: "Python", MinYears: 2, MaxYears: &maxYears, Operator: types.OpBetween},
			{Skill: "Java", MinYears: 3, Operator: types.OpAtLeast},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Python: 2-5 years")
	assert.Contains(t, out, "Java: 3+ years")
}

func TestPrintParsedQuery_NothingExtracted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedQuery(types.EmptyParsedQuery())
	assert.Contains(t, buf.String(), "Nothing extracted")
}

func TestPrintParsedQuery_NilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintParsedQuery(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_ShowsBreakdownAndMissing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(&types.MatchResult{
		CandidateName:          "Asha",
		OverallMatchPercentage: 72.5,
		ComponentScores: types.ComponentScores{
			Skill: 50, Experience: 100, Location: 100, Availability: 100, Similarity: 100,
		},
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "Python", Status: types.SkillStatusMatch},
			{Skill: "Kubernetes", Status: types.SkillStatusMissing},
		},
	}, types.Recommendation{Verdict: "Needs training"})

	out := buf.String()
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "72.5%")
	assert.Contains(t, out, "Needs training")
	assert.Contains(t, out, "Missing:   Kubernetes")
}

func TestPrintRanking_OrderedWithVerdicts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRanking([]match.RankedCandidate{
		{
			Candidate:      types.CandidateRecord{Name: "Asha"},
			Result:         &types.MatchResult{OverallMatchPercentage: 91.0},
			Recommendation: types.Recommendation{Verdict: "Good fit"},
		},
		{
			Candidate:      types.CandidateRecord{ID: "c-2"},
			Result:         &types.MatchResult{OverallMatchPercentage: 44.0},
			Recommendation: types.Recommendation{Verdict: "Not recommended"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, " 1. Asha")
	assert.Contains(t, out, "91.0%")
	// Falls back to the ID when the name is empty.
	assert.Contains(t, out, " 2. c-2")
}

func TestPrintRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking(nil)
	assert.Contains(t, buf.String(), "No candidates matched")
}

func TestPrintLearningSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLearningSuggestions([]types.LearningSuggestion{
		{Skill: "Kubernetes", GapYears: 2, Priority: "High", EstimatedHours: 80},
	})

	out := buf.String()
	assert.Contains(t, out, "Kubernetes: 2 more years")
	assert.Contains(t, out, "High priority")
	assert.Contains(t, out, "~80 hours")
}

func TestPrintAppliedFilters(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAppliedFilters([]string{"Skills: Python", "Location: bangalore"})
	out := buf.String()
	assert.Contains(t, out, "Skills: Python")
	assert.Contains(t, out, "Location: bangalore")

	buf.Reset()
	p.PrintAppliedFilters(nil)
	assert.Empty(t, buf.String())
}
