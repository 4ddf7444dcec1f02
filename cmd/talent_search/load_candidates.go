package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/db"
	"github.com/jonathan/talent-search/internal/types"
)

var loadCandidatesCmd = &cobra.Command{
	Use:   "load-candidates",
	Short: "Load candidate profiles into the candidate store",
	Long:  "Load a JSON array of candidate profiles into the candidate store. Existing candidates (matched by id) are updated.",
	RunE:  runLoadCandidates,
}

var (
	loadInputFile   string
	loadDatabaseURL string
	loadConfigFile  string
)

func init() {
	loadCandidatesCmd.Flags().StringVarP(&loadInputFile, "in", "i", "", "Path to candidates JSON array file (required)")
	loadCandidatesCmd.Flags().StringVar(&loadDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	loadCandidatesCmd.Flags().StringVar(&loadConfigFile, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(loadCandidatesCmd)
}

func runLoadCandidates(_ *cobra.Command, _ []string) error {
	if loadInputFile == "" {
		return fmt.Errorf("--in is required")
	}

	cfg, err := loadConfig(loadConfigFile)
	if err != nil {
		return err
	}

	databaseURL := loadDatabaseURL
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	var candidates []types.CandidateRecord
	if err := readJSONFile(loadInputFile, &candidates); err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates in %s", loadInputFile)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	loaded := 0
	for i := range candidates {
		id, err := database.UpsertCandidate(ctx, &candidates[i])
		if err != nil {
			log.Printf("[load] Skipping candidate %d (%s): %v", i, candidates[i].Name, err)
			continue
		}
		log.Printf("[load] Upserted candidate %s (%s)", id, candidates[i].Name)
		loaded++
	}

	fmt.Printf("Loaded %d/%d candidates\n", loaded, len(candidates))
	return nil
}
