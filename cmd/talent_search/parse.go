package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/observability"
)

var parseCmd = &cobra.Command{
	Use:   "parse [query]",
	Short: "Interpret a free-form hiring query",
	Long:  "Interpret a free-form hiring query into structured filters: skills, experience requirements, locations, availability, and roles.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runParse,
}

var (
	parseOutputFile string
	parseConfigFile string
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfigFile, "config", "", "Path to JSON config file")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a human-readable breakdown instead of JSON")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("query is required (e.g. talent_search parse \"python developer with 5 years\")")
	}
	query := strings.Join(args, " ")

	cfg, err := loadConfig(parseConfigFile)
	if err != nil {
		return err
	}

	result := buildParser(cfg).Parse(query)

	if parseVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintParsedQuery(result)
		printer.PrintAppliedFilters(result.AppliedFilters)
		if parseOutputFile == "" {
			return nil
		}
	}

	if err := writeOutput(parseOutputFile, result); err != nil {
		return err
	}
	if parseOutputFile != "" {
		return validateArtifact(parseOutputFile, "parsed_query.schema.json")
	}
	return nil
}
