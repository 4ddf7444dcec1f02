package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault_EmbeddedData(t *testing.T) {
	lex := LoadDefault()

	stats := lex.Stats()
	assert.Greater(t, stats.Categories, 0)
	assert.Greater(t, stats.Technologies, 0)
	assert.Greater(t, stats.Normalizations, 0)
	assert.Greater(t, stats.Locations, 0)
}

func TestLoad_MissingExternalFileDegrades(t *testing.T) {
	lex := Load(FileSet{
		TechDictionary: filepath.Join(t.TempDir(), "absent.json"),
	})

	// Technologies are empty, but the other sections still load.
	stats := lex.Stats()
	assert.Equal(t, 0, stats.Technologies)
	assert.Greater(t, stats.Normalizations, 0)
	assert.Greater(t, stats.Locations, 0)
}

func TestLoad_MalformedFileDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	lex := Load(FileSet{Locations: path})
	assert.Equal(t, 0, lex.Stats().Locations)
}

func TestLoad_ExternalOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Gotham", "metropolis"]`), 0o644))

	lex := Load(FileSet{Locations: path})
	assert.Equal(t, 2, lex.Stats().Locations)
	assert.True(t, lex.LookupLocation("gotham"))
	assert.False(t, lex.LookupLocation("bangalore"))
}

func TestKnownTechnologies_LongestFirst(t *testing.T) {
	lex := LoadDefault()

	techs := lex.KnownTechnologies()
	require.NotEmpty(t, techs)
	for i := 1; i < len(techs); i++ {
		assert.GreaterOrEqual(t, len(techs[i-1]), len(techs[i]))
	}
}

func TestNormalize_VariantsAndCanonical(t *testing.T) {
	lex := LoadDefault()

	assert.Equal(t, "Python", lex.Normalize("phyton"))
	assert.Equal(t, "Python", lex.Normalize("  py  "))
	assert.Equal(t, "JavaScript", lex.Normalize("java script"))
	assert.Equal(t, "Kubernetes", lex.Normalize("k8s"))

	// Idempotent on canonical names.
	assert.Equal(t, "Python", lex.Normalize(lex.Normalize("python3")))

	// Unknown inputs come back trimmed, unchanged.
	assert.Equal(t, "underwater basket weaving", lex.Normalize(" underwater basket weaving "))
}

func TestNormalize_StripsRequirementKeywords(t *testing.T) {
	lex := LoadDefault()

	assert.Equal(t, "Python", lex.Normalize("python mandatory"))
	assert.Equal(t, "React", lex.Normalize("react nice to have"))
}

func TestLookupTechnology(t *testing.T) {
	lex := LoadDefault()

	canonical, ok := lex.LookupTechnology("sql server")
	require.True(t, ok)
	assert.Equal(t, "SQL Server", canonical)

	_, ok = lex.LookupTechnology("not a real technology")
	assert.False(t, ok)
}

func TestExpandCategory_NameAndAlias(t *testing.T) {
	lex := LoadDefault()

	skills := lex.ExpandCategory("Cloud Platforms")
	assert.Contains(t, skills, "AWS")

	assert.Nil(t, lex.ExpandCategory("Interpretive Dance"))
}

func TestMatchTechnology_WordBoundaries(t *testing.T) {
	lex := LoadDefault()

	assert.True(t, lex.MatchTechnology("Java", "senior java developer"))
	assert.False(t, lex.MatchTechnology("Java", "senior javascript developer"))
}
