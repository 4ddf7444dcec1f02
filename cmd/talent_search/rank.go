package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/db"
	"github.com/jonathan/talent-search/internal/match"
	"github.com/jonathan/talent-search/internal/observability"
	"github.com/jonathan/talent-search/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a batch of candidates against a hiring query",
	Long:  "Rank candidates against a hiring query, best match first. Candidates come from a JSON file (--candidates) or from the candidate store (--db-url).",
	RunE:  runRank,
}

var (
	rankQuery          string
	rankCandidatesFile string
	rankDatabaseURL    string
	rankLimit          int
	rankOutputFile     string
	rankConfigFile     string
	rankVerbose        bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankQuery, "query", "q", "", "Hiring query (required)")
	rankCmd.Flags().StringVarP(&rankCandidatesFile, "candidates", "c", "", "Path to candidates JSON array file")
	rankCmd.Flags().StringVar(&rankDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "Maximum candidates to fetch from the store (0: config default)")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	rankCmd.Flags().StringVar(&rankConfigFile, "config", "", "Path to JSON config file")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a human-readable ranking instead of JSON")

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	if rankQuery == "" {
		return fmt.Errorf("--query is required")
	}

	cfg, err := loadConfig(rankConfigFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	parsed := buildParser(cfg).Parse(rankQuery)

	candidates, err := loadRankCandidates(ctx, cfg.DatabaseURL, cfg.MaxCandidates, parsed.Skills, parsed.OptionalSkills)
	if err != nil {
		return err
	}

	ranked, err := match.Rank(ctx, parsed, candidates)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if rankVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintParsedQuery(parsed)
		printer.PrintRanking(ranked)
		if rankOutputFile == "" {
			return nil
		}
	}

	return writeOutput(rankOutputFile, map[string]any{
		"parsed_query": parsed,
		"candidates":   ranked,
		"total":        len(ranked),
	})
}

// loadRankCandidates reads candidates from the file when one is given,
// otherwise from the candidate store.
func loadRankCandidates(ctx context.Context, configDBURL string, configLimit int, mandatory, optional []string) ([]types.CandidateRecord, error) {
	if rankCandidatesFile != "" {
		var candidates []types.CandidateRecord
		if err := readJSONFile(rankCandidatesFile, &candidates); err != nil {
			return nil, err
		}
		return candidates, nil
	}

	databaseURL := rankDatabaseURL
	if databaseURL == "" {
		databaseURL = configDBURL
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("provide --candidates, or a candidate store via --db-url / DATABASE_URL")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	limit := rankLimit
	if limit <= 0 {
		limit = configLimit
	}

	skills := append(append([]string{}, mandatory...), optional...)
	candidates, err := database.SearchCandidates(ctx, skills, limit)
	if err != nil {
		return nil, fmt.Errorf("candidate search failed: %w", err)
	}
	return candidates, nil
}
