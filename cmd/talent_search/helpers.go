package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/talent-search/internal/config"
	"github.com/jonathan/talent-search/internal/extract"
	"github.com/jonathan/talent-search/internal/lexicon"
	"github.com/jonathan/talent-search/internal/parser"
	"github.com/jonathan/talent-search/internal/schemas"
)

// loadConfig resolves the effective configuration: file (when given), then
// environment, then defaults.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Defaults()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded.MergeWithDefaults(config.Defaults())
	}
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func lexiconFiles(cfg config.Config) lexicon.FileSet {
	return lexicon.FileSet{
		TechDictionary:   cfg.TechDictionary,
		NormalizationMap: cfg.NormalizationMap,
		Locations:        cfg.Locations,
	}
}

// buildParser constructs the query parser from the effective configuration.
func buildParser(cfg config.Config) *parser.Parser {
	lex := lexicon.Load(lexiconFiles(cfg))
	tagger := extract.NewStatisticalTagger()
	return parser.New(lex, extract.New(lex, tagger, tagger))
}

// readJSONFile decodes one JSON value from a file.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeOutput marshals v with indentation to the given file, or stdout when
// the path is empty.
func writeOutput(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// validateArtifact checks a written JSON file against one of the repository
// schemas. When the binary runs outside the repository the schema directory
// may be absent; validation is skipped rather than failing the command.
func validateArtifact(jsonPath, schemaFile string) error {
	schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaFile))
	if schemaPath == "" {
		return nil
	}
	if err := schemas.ValidateJSON(schemaPath, jsonPath); err != nil {
		return fmt.Errorf("output failed schema validation: %w", err)
	}
	return nil
}
