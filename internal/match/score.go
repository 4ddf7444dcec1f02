// Package match scores candidates against a parsed query and turns the
// result into hiring recommendations.
package match

import (
	"math"

	"github.com/jonathan/talent-search/internal/types"
)

// Component weights. Skill coverage dominates; the rest refine.
const (
	weightSkill        = 40
	weightExperience   = 30
	weightLocation     = 10
	weightAvailability = 10
	weightSimilarity   = 10

	totalWeight = weightSkill + weightExperience + weightLocation + weightAvailability + weightSimilarity
)

// partialCreditCap keeps proportional experience credit strictly below full
// credit, so a near-miss never ties with a candidate who satisfies the
// requirement outright.
const partialCreditCap = 99.0

// Score compares one candidate against the parsed query and returns the full
// weighted breakdown. Components with no corresponding requirement in the
// query score 100 so they never penalize.
func Score(candidate *types.CandidateRecord, query *types.ParsedQuery) *types.MatchResult {
	result := &types.MatchResult{
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
	}

	result.ComponentScores.Skill, result.SkillAnalysis = scoreSkills(candidate, query)
	result.ComponentScores.Experience, result.ExperienceAnalysis = scoreExperience(candidate, query)
	result.ComponentScores.Location = scoreLocation(candidate, query)
	result.ComponentScores.Availability = scoreAvailability(candidate, query)
	result.ComponentScores.Similarity = scoreSimilarity(candidate)

	result.LocationMatched = result.ComponentScores.Location == 100
	result.AvailabilityMatched = result.ComponentScores.Availability == 100

	weighted := result.ComponentScores.Skill*weightSkill +
		result.ComponentScores.Experience*weightExperience +
		result.ComponentScores.Location*weightLocation +
		result.ComponentScores.Availability*weightAvailability +
		result.ComponentScores.Similarity*weightSimilarity
	result.OverallMatchPercentage = round1(weighted / totalWeight)

	return result
}

// scoreSkills computes coverage (fraction of required skills present) and the
// per-skill breakdown. A present skill whose years fall short of its own
// requirement still counts as covered, but is labeled Partial.
func scoreSkills(candidate *types.CandidateRecord, query *types.ParsedQuery) (float64, []types.SkillAssessment) {
	analysis := []types.SkillAssessment{}
	if len(query.Skills) == 0 {
		return 100, analysis
	}

	covered := 0
	for _, required := range query.Skills {
		assessment := types.SkillAssessment{
			Skill:     required,
			Status:    types.SkillStatusMissing,
			Mandatory: true,
		}
		if req, ok := query.SkillRequirementFor(required); ok {
			assessment.RequiredYears = req.MinYears
		}

		if skill, ok := candidate.SkillNamed(required); ok {
			covered++
			assessment.CandidateYears = skill.Years
			assessment.Proficiency = skill.Proficiency
			if assessment.RequiredYears > 0 && skill.Years < assessment.RequiredYears {
				assessment.Status = types.SkillStatusPartial
			} else {
				assessment.Status = types.SkillStatusMatch
			}
		}
		analysis = append(analysis, assessment)
	}

	return float64(covered) / float64(len(query.Skills)) * 100, analysis
}

// scoreExperience checks the global experience requirement against either
// the candidate's years in the context skill or their total career years.
// Satisfied requirements earn full credit; shortfalls earn proportional
// partial credit capped below 100; a missing context skill earns zero.
func scoreExperience(candidate *types.CandidateRecord, query *types.ParsedQuery) (float64, types.ExperienceAnalysis) {
	analysis := types.ExperienceAnalysis{
		Operator:    query.ExperienceOperator,
		ContextType: types.ContextTotal,
	}
	if query.ExperienceContext != nil {
		analysis.ContextType = query.ExperienceContext.Type
		analysis.Skill = query.ExperienceContext.Skill
	}

	if query.MinYears == nil {
		analysis.CandidateYears = candidate.TotalYears
		analysis.Satisfied = true
		return 100, analysis
	}
	required := *query.MinYears
	analysis.RequiredMin = query.MinYears
	analysis.RequiredMax = query.MaxYears

	actual := candidate.TotalYears
	if analysis.ContextType == types.ContextSkillSpecific && analysis.Skill != "" {
		skill, ok := candidate.SkillNamed(analysis.Skill)
		if !ok {
			return 0, analysis
		}
		actual = skill.Years
	}
	analysis.CandidateYears = actual

	if operatorSatisfied(actual, required, query.MaxYears, query.ExperienceOperator) {
		analysis.Satisfied = true
		return 100, analysis
	}
	if required <= 0 {
		analysis.Satisfied = true
		return 100, analysis
	}

	return math.Min(actual/required*100, partialCreditCap), analysis
}

func operatorSatisfied(actual, required float64, requiredMax *float64, op types.ExperienceOperator) bool {
	switch op {
	case types.OpGreaterThan:
		return actual > required
	case types.OpLessThan:
		return actual < required
	case types.OpAtMost:
		return actual <= required
	case types.OpExactly:
		return actual == required
	case types.OpBetween:
		if requiredMax != nil {
			return actual >= required && actual <= *requiredMax
		}
		return actual >= required
	default:
		return actual >= required
	}
}

func scoreLocation(candidate *types.CandidateRecord, query *types.ParsedQuery) float64 {
	if query.Location == "" {
		return 100
	}
	if types.EqualFold(candidate.Location, query.Location) {
		return 100
	}
	return 0
}

func scoreAvailability(candidate *types.CandidateRecord, query *types.ParsedQuery) float64 {
	if !query.Availability.Detected() {
		return 100
	}
	required := string(query.Availability.Status)
	switch {
	case types.EqualFold(candidate.Availability, required):
		return 100
	case types.EqualFold(candidate.Availability, string(types.AvailabilityAvailable)) &&
		types.EqualFold(required, string(types.AvailabilityLimited)):
		// A fully available candidate can take a limited engagement.
		return 100
	default:
		return 0
	}
}

func scoreSimilarity(candidate *types.CandidateRecord) float64 {
	if candidate.Similarity == nil {
		return 100
	}
	return clamp(*candidate.Similarity, 0, 1) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
