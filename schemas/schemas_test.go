package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/talent-search/internal/schemas"
	"github.com/jonathan/talent-search/internal/types"
)

var schemaFiles = []string{
	"parsed_query.schema.json",
	"candidate.schema.json",
	"match_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			loader := gojsonschema.NewBytesLoader(data)
			_, err = gojsonschema.NewSchema(loader)
			assert.NoError(t, err, "schema should compile: %s", schemaFile)
		})
	}
}

func readSchema(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(".", name))
	require.NoError(t, err)
	return string(data)
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestParsedQuerySchema_AcceptsEmptyResult(t *testing.T) {
	schema := readSchema(t, "parsed_query.schema.json")
	doc := marshal(t, types.EmptyParsedQuery())

	assert.NoError(t, schemas.ValidateJSONString(schema, doc))
}

func TestParsedQuerySchema_AcceptsPopulatedResult(t *testing.T) {
	schema := readSchema(t, "parsed_query.schema.json")

	minYears := 2.0
	maxYears := 5.0
	parsed := types.EmptyParsedQuery()
	parsed.Query = "Python developer with 2 to 5 years experience"
	parsed.Skills = []string{"Python"}
	parsed.MinYears = &minYears
	parsed.MaxYears = &maxYears
	parsed.ExperienceOperator = types.OpBetween
	parsed.SkillRequirements = []types.SkillRequirement{
		{Skill: "Python", MinYears: 2, MaxYears: &maxYears, Operator: types.OpBetween},
	}
	parsed.Availability = types.Availability{
		Status:   types.AvailabilityAvailable,
		Keywords: []string{"immediate"},
		Details:  "Immediate/ASAP",
	}
	parsed.AppliedFilters = []string{"Skills: Python"}

	assert.NoError(t, schemas.ValidateJSONString(schema, marshal(t, parsed)))
}

func TestParsedQuerySchema_RejectsUnknownOperator(t *testing.T) {
	schema := readSchema(t, "parsed_query.schema.json")

	doc := `{
		"query": "x",
		"skills": [],
		"optional_skills": [],
		"skill_operator": "XOR",
		"categories": [],
		"skill_requirements": [],
		"locations": [],
		"applied_filters": []
	}`

	err := schemas.ValidateJSONString(schema, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill_operator")
}

func TestCandidateSchema_AcceptsRecord(t *testing.T) {
	schema := readSchema(t, "candidate.schema.json")

	similarity := 0.85
	record := types.CandidateRecord{
		ID:         "7e0bd0d4-8aef-4a0c-9f3f-20b0d7b3a111",
		Name:       "Asha",
		TotalYears: 6,
		Location:   "bangalore",
		Similarity: &similarity,
		Skills: []types.CandidateSkill{
			{Name: "Python", Years: 6, Proficiency: "Expert"},
		},
	}

	assert.NoError(t, schemas.ValidateJSONString(schema, marshal(t, record)))
}

func TestCandidateSchema_RejectsNegativeYears(t *testing.T) {
	schema := readSchema(t, "candidate.schema.json")

	doc := `{"skills": [{"name": "Python", "years_of_experience": -1}], "total_years": 3}`
	assert.Error(t, schemas.ValidateJSONString(schema, doc))
}

func TestMatchResultSchema_AcceptsScoredResult(t *testing.T) {
	schema := readSchema(t, "match_result.schema.json")

	result := types.MatchResult{
		CandidateName:          "Asha",
		OverallMatchPercentage: 87.5,
		ComponentScores: types.ComponentScores{
			Skill: 100, Experience: 60, Location: 100, Availability: 100, Similarity: 85,
		},
		SkillAnalysis: []types.SkillAssessment{
			{Skill: "Python", Status: types.SkillStatusMatch, Mandatory: true, CandidateYears: 6},
		},
		ExperienceAnalysis: types.ExperienceAnalysis{
			Operator:       types.OpAtLeast,
			ContextType:    types.ContextTotal,
			CandidateYears: 6,
			Satisfied:      true,
		},
	}

	assert.NoError(t, schemas.ValidateJSONString(schema, marshal(t, result)))
}

func TestMatchResultSchema_RejectsOutOfRangePercentage(t *testing.T) {
	schema := readSchema(t, "match_result.schema.json")

	doc := `{
		"overall_match_percentage": 120,
		"component_scores": {
			"skill_match": 0, "experience_match": 0, "location_match": 0,
			"availability_match": 0, "semantic_similarity": 0
		},
		"skill_analysis": []
	}`

	err := schemas.ValidateJSONString(schema, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overall_match_percentage")
}
