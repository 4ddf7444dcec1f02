package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/types"
)

// newTestParser builds a parser on the rule cascade alone; the statistical
// tagger stays out of unit tests so results are deterministic.
func newTestParser(t *testing.T) *Parser {
	t.Helper()
	lex := lexicon.LoadDefault()
	return New(lex, extract.New(lex, nil, nil))
}

func TestParse_SkillsAndOverallExperience(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Search for an employee with Python and SQL Server having over all experience 2 years")

	assert.ElementsMatch(t, []string{"Python", "SQL Server"}, result.Skills)
	assert.NotContains(t, result.Skills, "SQL")

	require.NotNil(t, result.MinYears)
	assert.Equal(t, 2.0, *result.MinYears)
	assert.Nil(t, result.MaxYears)

	require.NotNil(t, result.ExperienceContext)
	assert.Equal(t, types.ContextTotal, result.ExperienceContext.Type)
}

func TestParse_MandatoryAndOptionalSkills(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Python developer with Django mandatory and React nice to have")

	assert.Contains(t, result.Skills, "Django")
	// No requirement keyword attaches to Python; the default is mandatory.
	assert.Contains(t, result.Skills, "Python")
	assert.Equal(t, []string{"React"}, result.OptionalSkills)

	roleFound := false
	for _, r := range result.Roles {
		if strings.EqualFold(r, "developer") {
			roleFound = true
		}
	}
	assert.True(t, roleFound)
}

func TestParse_PerSkillExperienceBinding(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Need a python developer with Python with 2 years and SQL Server with 2 years and 5 years of experience in Java Script")

	byskill := make(map[string]types.SkillRequirement)
	for _, req := range result.SkillRequirements {
		byskill[req.Skill] = req
	}

	require.Contains(t, byskill, "Python")
	assert.Equal(t, 2.0, byskill["Python"].MinYears)

	require.Contains(t, byskill, "SQL Server")
	assert.Equal(t, 2.0, byskill["SQL Server"].MinYears)

	require.Contains(t, byskill, "JavaScript")
	assert.Equal(t, 5.0, byskill["JavaScript"].MinYears)

	// The bare "Java" fragment must not survive next to JavaScript.
	assert.NotContains(t, result.Skills, "Java")
	assert.NotContains(t, byskill, "Java")
}

func TestParse_OrOperator(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Looking for AWS or Azure engineer")

	assert.ElementsMatch(t, []string{"AWS", "Azure"}, result.Skills)
	assert.Equal(t, types.SkillOperatorOr, result.SkillOperator)
}

func TestParse_AndOperatorDefault(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Python and SQL Server developer")

	assert.Equal(t, types.SkillOperatorAnd, result.SkillOperator)
}

func TestParse_EmptyQuery(t *testing.T) {
	p := newTestParser(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		result := p.Parse(q)
		require.NotNil(t, result)
		assert.Empty(t, result.Skills)
		assert.Empty(t, result.OptionalSkills)
		assert.Empty(t, result.Categories)
		assert.Empty(t, result.Locations)
		assert.Equal(t, types.SkillOperatorAnd, result.SkillOperator)
		assert.Nil(t, result.MinYears)
	}
}

func TestParse_SkillInOneListOnly(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Python developer with Django mandatory and React nice to have")

	for _, s := range result.Skills {
		assert.NotContains(t, result.OptionalSkills, s)
	}
}

func TestParse_LocationAndAvailability(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("java developer based in Bangalore available immediately")

	assert.Contains(t, result.Skills, "Java")
	assert.Equal(t, "Bangalore", result.Location)
	assert.Equal(t, types.AvailabilityAvailable, result.Availability.Status)
}

func TestParse_NormalizesVariants(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("need a phyton developer with k8s")

	assert.Contains(t, result.Skills, "Python")
	assert.Contains(t, result.Skills, "Kubernetes")
}

func TestParse_CategoryExpansion(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("looking for cloud platforms specialists")

	require.NotEmpty(t, result.Categories)
	assert.Contains(t, result.CategorySkills, "AWS")
	assert.Contains(t, result.MandatoryCategories, result.Categories[0])
}

func TestParse_AppliedFilters(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("Python with 5 years based in London")

	assert.Contains(t, result.AppliedFilters, "Skills: Python")
	assert.Contains(t, result.AppliedFilters, "Python: 5+ years")
	assert.Contains(t, result.AppliedFilters, "Location: London")
}

func TestParse_RoleFallbackCleansImperatives(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse("find python developers")

	for _, r := range result.Roles {
		assert.NotEqual(t, "find", r)
	}
	assert.NotEmpty(t, result.Roles)
}

func TestStats(t *testing.T) {
	p := newTestParser(t)
	stats := p.Stats()

	assert.NotZero(t, stats.Lexicon.Technologies)
	assert.Contains(t, stats.EntityTypes, "TECHNOLOGY")
	assert.Contains(t, stats.EntityTypes, "OVERALL_EXPERIENCE")
}
