package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes match generation, ad-hoc scoring, and skill gap analysis endpoints.`,
	RunE:  runServe,
}

var (
	serveAddr       string
	serveConfigFile string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080, overrides LISTEN_ADDR env var)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to config JSON file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	scorer, closeScorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		closeScorer()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	gen := matching.NewGenerator(database, database, database, scorer, cfg.MaxConcurrentScores)
	analyzer := matching.NewAnalyzer(database, database, scorer, cfg.MaxConcurrentScores)

	srv := server.New(server.Config{Addr: cfg.ListenAddr}, gen, analyzer, database, func() {
		database.Close()
		closeScorer()
	})

	return srv.Start()
}
