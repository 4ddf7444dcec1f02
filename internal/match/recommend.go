package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-search/internal/types"
)

// Recommendation thresholds on the overall match percentage.
const (
	goodFitThreshold       = 80
	needsTrainingThreshold = 60
)

// hoursPerYearGap converts an experience gap in years into a rough training
// estimate.
const hoursPerYearGap = 40

// Recommend turns a scored result into hiring advice. A missing mandatory
// skill vetoes regardless of the overall percentage.
func Recommend(result *types.MatchResult) types.Recommendation {
	var missingMandatory []string
	var missing []string
	var partial []string
	for _, s := range result.SkillAnalysis {
		switch s.Status {
		case types.SkillStatusMissing:
			missing = append(missing, s.Skill)
			if s.Mandatory {
				missingMandatory = append(missingMandatory, s.Skill)
			}
		case types.SkillStatusPartial:
			partial = append(partial, s.Skill)
		}
	}

	if len(missingMandatory) > 0 {
		return types.Recommendation{
			Verdict:         "Not recommended",
			Reason:          "Missing mandatory skills: " + strings.Join(missingMandatory, ", "),
			SuggestedAction: "Consider training or alternative candidates",
			MissingSkills:   missingMandatory,
		}
	}

	switch {
	case result.OverallMatchPercentage >= goodFitThreshold:
		return types.Recommendation{
			Verdict:         "Good fit",
			Reason:          "Candidate meets or exceeds all major skill requirements",
			SuggestedAction: "Proceed with interview",
		}
	case result.OverallMatchPercentage >= needsTrainingThreshold:
		return types.Recommendation{
			Verdict:         "Needs training",
			Reason:          "Good foundation but needs improvement in: " + strings.Join(firstN(partial, 3), ", "),
			SuggestedAction: "Consider with training plan",
		}
	default:
		return types.Recommendation{
			Verdict:         "Not recommended",
			Reason:          "Significant skill gaps: " + strings.Join(firstN(missing, 3), ", "),
			SuggestedAction: "Look for better matched candidates",
			MissingSkills:   missing,
		}
	}
}

// LearningSuggestions lists one training suggestion per skill gap, mandatory
// gaps first, larger gaps first within the same priority.
func LearningSuggestions(analysis []types.SkillAssessment) []types.LearningSuggestion {
	var suggestions []types.LearningSuggestion

	for _, s := range analysis {
		if s.Status != types.SkillStatusMissing && s.Status != types.SkillStatusPartial {
			continue
		}
		gap := s.RequiredYears - s.CandidateYears
		if gap < 0 {
			gap = 0
		}
		priority := "Medium"
		if s.Mandatory {
			priority = "High"
		}
		suggestions = append(suggestions, types.LearningSuggestion{
			Skill:          s.Skill,
			CurrentYears:   s.CandidateYears,
			RequiredYears:  s.RequiredYears,
			GapYears:       gap,
			Priority:       priority,
			EstimatedHours: int(gap * hoursPerYearGap),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority == "High"
		}
		return suggestions[i].GapYears > suggestions[j].GapYears
	})

	return suggestions
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// Summary renders a one-line human-readable verdict for logs and CLI output.
func Summary(result *types.MatchResult, rec types.Recommendation) string {
	return fmt.Sprintf("%.1f%%: %s (%s)", result.OverallMatchPercentage, rec.Verdict, rec.SuggestedAction)
}
