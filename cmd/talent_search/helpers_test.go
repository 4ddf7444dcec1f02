package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-search/internal/types"
)

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 50, cfg.MaxCandidates)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "max_candidates": 10}`), 0o644))
	t.Setenv("PORT", "9001")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	// Environment wins over the file.
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 10, cfg.MaxCandidates)
}

func TestLoadConfig_MissingLexiconOverrideDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tech_dictionary": "/nonexistent/tech_dictionary.json"}`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	// The catalog section degrades to empty while the rest still loads.
	stats := buildParser(cfg).Stats()
	assert.Zero(t, stats.Lexicon.Technologies)
	assert.NotZero(t, stats.Lexicon.Locations)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestReadJSONFile_CandidateArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Asha", "total_years": 6, "skills": [{"name": "Python", "years_of_experience": 6}]}
	]`), 0o644))

	var candidates []types.CandidateRecord
	require.NoError(t, readJSONFile(path, &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, "Asha", candidates[0].Name)
	assert.Equal(t, 6.0, candidates[0].Skills[0].Years)
}

func TestReadJSONFile_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	var v map[string]any
	assert.Error(t, readJSONFile(path, &v))
}

func TestValidateArtifact_ParsedQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed.json")
	data, err := json.Marshal(types.EmptyParsedQuery())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.NoError(t, validateArtifact(path, "parsed_query.schema.json"))
}

func TestValidateArtifact_RejectsMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"query": "python"}`), 0o644))

	err := validateArtifact(path, "parsed_query.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeOutput(path, map[string]string{"status": "ok"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "ok"`)
}
