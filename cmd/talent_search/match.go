package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/match"
	"github.com/jonathan/talent-search/internal/observability"
	"github.com/jonathan/talent-search/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against a hiring query",
	Long:  "Score a candidate profile JSON file against a hiring query, producing component scores, a recommendation, and learning suggestions for skill gaps.",
	RunE:  runMatch,
}

var (
	matchQuery         string
	matchCandidateFile string
	matchOutputFile    string
	matchConfigFile    string
	matchVerbose       bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchQuery, "query", "q", "", "Hiring query (required)")
	matchCmd.Flags().StringVarP(&matchCandidateFile, "candidate", "c", "", "Path to candidate JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfigFile, "config", "", "Path to JSON config file")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a human-readable breakdown instead of JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	if matchQuery == "" {
		return fmt.Errorf("--query is required")
	}
	if matchCandidateFile == "" {
		return fmt.Errorf("--candidate is required")
	}

	cfg, err := loadConfig(matchConfigFile)
	if err != nil {
		return err
	}

	var candidate types.CandidateRecord
	if err := readJSONFile(matchCandidateFile, &candidate); err != nil {
		return err
	}

	parsed := buildParser(cfg).Parse(matchQuery)
	result := match.Score(&candidate, parsed)
	rec := match.Recommend(result)
	suggestions := match.LearningSuggestions(result.SkillAnalysis)

	if matchVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintParsedQuery(parsed)
		printer.PrintMatchResult(result, rec)
		printer.PrintLearningSuggestions(suggestions)
		fmt.Println(match.Summary(result, rec))
		if matchOutputFile == "" {
			return nil
		}
	}

	return writeOutput(matchOutputFile, map[string]any{
		"parsed_query":         parsed,
		"result":               result,
		"recommendation":       rec,
		"learning_suggestions": suggestions,
	})
}
