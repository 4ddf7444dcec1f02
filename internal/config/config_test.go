package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeTempConfig(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/talent",
		"max_candidates": 25,
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/talent", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.MaxCandidates)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config JSON")
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg.Port = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeMaxCandidates(t *testing.T) {
	cfg := Defaults()
	cfg.MaxCandidates = -5
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingLexiconOverrideIsNotFatal(t *testing.T) {
	// Missing dictionary files degrade at lexicon load time; configuration
	// validation must not refuse to start over them.
	cfg := Defaults()
	cfg.TechDictionary = filepath.Join(t.TempDir(), "missing.json")
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ExistingLexiconOverride(t *testing.T) {
	cfg := Defaults()
	cfg.Locations = writeTempConfig(t, `["london"]`)
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Verbose: true}
	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 50, merged.MaxCandidates)
	assert.True(t, merged.Verbose)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "3000")

	cfg := Defaults()
	cfg.FromEnv()
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
}
