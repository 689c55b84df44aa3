package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/types"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Report organization-wide skill gaps",
	Long:  "Analyze every open demand against the candidate pool and report which skills the best available candidates still lack.",
	RunE:  runGaps,
}

var (
	gapsDemandsFile    string
	gapsCandidatesFile string
	gapsOutputFile     string
	gapsConfigFile     string
	gapsDatabaseURL    string
)

func init() {
	gapsCmd.Flags().StringVar(&gapsDemandsFile, "demands-file", "", "Path to a demands JSON file (file mode)")
	gapsCmd.Flags().StringVar(&gapsCandidatesFile, "candidates-file", "", "Path to a candidate pool JSON file (file mode)")
	gapsCmd.Flags().StringVarP(&gapsOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	gapsCmd.Flags().StringVarP(&gapsConfigFile, "config", "c", "", "Path to config JSON file")
	gapsCmd.Flags().StringVar(&gapsDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(gapsCmd)
}

func runGaps(_ *cobra.Command, _ []string) error {
	useFiles := gapsDemandsFile != "" || gapsCandidatesFile != ""
	if useFiles && (gapsDemandsFile == "" || gapsCandidatesFile == "") {
		return fmt.Errorf("file mode requires both --demands-file and --candidates-file")
	}

	cfg, err := loadConfig(gapsConfigFile)
	if err != nil {
		return err
	}
	if gapsDatabaseURL != "" {
		cfg.DatabaseURL = gapsDatabaseURL
	}

	ctx := context.Background()

	scorer, closeScorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScorer()

	if useFiles {
		var demands []types.Demand
		if err := readJSONFile(gapsDemandsFile, &demands); err != nil {
			return err
		}
		var pool []types.Candidate
		if err := readJSONFile(gapsCandidatesFile, &pool); err != nil {
			return err
		}

		analyzer := matching.NewAnalyzer(nil, nil, scorer, cfg.MaxConcurrentScores)
		entries, err := analyzer.GapsForPools(ctx, demands, pool)
		if err != nil {
			return fmt.Errorf("failed to analyze gaps: %w", err)
		}
		if verbose {
			observability.NewPrinter(os.Stderr).PrintSkillGaps(entries)
		}
		return writeJSONOutput(gapsOutputFile, entries)
	}

	// Database mode
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL required in database mode")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	analyzer := matching.NewAnalyzer(database, database, scorer, cfg.MaxConcurrentScores)
	entries, err := analyzer.SkillGaps(ctx)
	if err != nil {
		return fmt.Errorf("failed to analyze gaps: %w", err)
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintSkillGaps(entries)
	}
	return writeJSONOutput(gapsOutputFile, entries)
}
