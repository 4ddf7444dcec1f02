package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-search/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for query parsing, candidate matching, and ranked search.`,
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigFile string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseURL,
		MaxCandidates: cfg.MaxCandidates,
		Lexicon:       lexiconFiles(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
