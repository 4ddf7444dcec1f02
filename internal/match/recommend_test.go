package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/types"
)

func TestRecommend_MissingMandatoryVetoes(t *testing.T) {
	result := &types.MatchResult{
		OverallMatchPercentage: 92,
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "Python", Status: types.SkillStatusMatch, Mandatory: true},
			{Skill: "Kubernetes", Status: types.SkillStatusMissing, Mandatory: true},
		},
	}
	rec := Recommend(result)

	assert.Equal(t, "Not recommended", rec.Verdict)
	assert.Contains(t, rec.Reason, "Kubernetes")
	assert.Equal(t, []string{"Kubernetes"}, rec.MissingSkills)
}

func TestRecommend_GoodFit(t *testing.T) {
	result := &types.MatchResult{
		OverallMatchPercentage: 85,
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "Python", Status: types.SkillStatusMatch, Mandatory: true},
		},
	}
	rec := Recommend(result)

	assert.Equal(t, "Good fit", rec.Verdict)
	assert.Equal(t, "Proceed with interview", rec.SuggestedAction)
}

func TestRecommend_NeedsTraining(t *testing.T) {
	result := &types.MatchResult{
		OverallMatchPercentage: 65,
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "Python", Status: types.SkillStatusMatch, Mandatory: true},
			{Skill: "React", Status: types.SkillStatusPartial, Mandatory: true},
		},
	}
	rec := Recommend(result)

	assert.Equal(t, "Needs training", rec.Verdict)
	assert.Contains(t, rec.Reason, "React")
}

func TestRecommend_LowScore(t *testing.T) {
	result := &types.MatchResult{
		OverallMatchPercentage: 30,
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "AWS", Status: types.SkillStatusMissing},
			{Skill: "Azure", Status: types.SkillStatusMissing},
		},
	}
	rec := Recommend(result)

	assert.Equal(t, "Not recommended", rec.Verdict)
	assert.Contains(t, rec.Reason, "AWS")
}

func TestLearningSuggestions_OrderAndEstimates(t *testing.T) {
	analysis := []types.SkillAssessment{
		{Skill: "React", Status: types.SkillStatusPartial, RequiredYears: 3, CandidateYears: 1},
		{Skill: "Kubernetes", Status: types.SkillStatusMissing, Mandatory: true, RequiredYears: 2},
		{Skill: "Python", Status: types.SkillStatusMatch, RequiredYears: 2, CandidateYears: 5},
	}
	suggestions := LearningSuggestions(analysis)

	require.Len(t, suggestions, 2)
	// Mandatory gap first despite the smaller gap.
	assert.Equal(t, "Kubernetes", suggestions[0].Skill)
	assert.Equal(t, "High", suggestions[0].Priority)
	assert.Equal(t, 80, suggestions[0].EstimatedHours) // 2 years * 40h

	assert.Equal(t, "React", suggestions[1].Skill)
	assert.Equal(t, "Medium", suggestions[1].Priority)
	assert.Equal(t, 80, suggestions[1].EstimatedHours) // 2-year gap * 40h
}

func TestRank_OrdersByScore(t *testing.T) {
	q := types.EmptyParsedQuery()
	q.Skills = []string{"Python", "React"}

	candidates := []types.CandidateRecord{
		{Name: "partial", Skills: []types.CandidateSkill{{Name: "Python", Years: 2}}},
		{Name: "full", Skills: []types.CandidateSkill{
			{Name: "Python", Years: 4}, {Name: "React", Years: 3},
		}},
		{Name: "none"},
	}

	ranked, err := Rank(context.Background(), q, candidates)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "full", ranked[0].Candidate.Name)
	assert.Equal(t, "partial", ranked[1].Candidate.Name)
	assert.Equal(t, "none", ranked[2].Candidate.Name)
	assert.GreaterOrEqual(t, ranked[0].Result.OverallMatchPercentage, ranked[1].Result.OverallMatchPercentage)
}

func TestRank_EmptyBatch(t *testing.T) {
	ranked, err := Rank(context.Background(), types.EmptyParsedQuery(), nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, types.EmptyParsedQuery(), []types.CandidateRecord{{Name: "x"}})
	assert.Error(t, err)
}
