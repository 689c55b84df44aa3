package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Generate the ranked match list for a demand",
	Long:  "Score every eligible candidate against a demand, rank the results, and replace the stored match set. File mode (--demand-file/--candidates-file) ranks without persisting.",
	RunE:  runMatch,
}

var (
	matchDemandID       string
	matchDemandFile     string
	matchCandidatesFile string
	matchOutputFile     string
	matchConfigFile     string
	matchDatabaseURL    string
)

func init() {
	matchCmd.Flags().StringVar(&matchDemandID, "demand-id", "", "Demand ID to generate matches for (database mode)")
	matchCmd.Flags().StringVar(&matchDemandFile, "demand-file", "", "Path to a demand JSON file (file mode)")
	matchCmd.Flags().StringVar(&matchCandidatesFile, "candidates-file", "", "Path to a candidate pool JSON file (file mode)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.Flags().StringVarP(&matchConfigFile, "config", "c", "", "Path to config JSON file")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	useDatabase := matchDemandID != ""
	useFiles := matchDemandFile != "" || matchCandidatesFile != ""

	if useDatabase && useFiles {
		return fmt.Errorf("cannot use --demand-id with --demand-file/--candidates-file")
	}
	if !useDatabase && !useFiles {
		return fmt.Errorf("must provide either --demand-id or --demand-file with --candidates-file")
	}

	cfg, err := loadConfig(matchConfigFile)
	if err != nil {
		return err
	}
	if matchDatabaseURL != "" {
		cfg.DatabaseURL = matchDatabaseURL
	}

	ctx := context.Background()

	scorer, closeScorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScorer()

	if useFiles {
		if matchDemandFile == "" || matchCandidatesFile == "" {
			return fmt.Errorf("file mode requires both --demand-file and --candidates-file")
		}

		var demand types.Demand
		if err := readJSONFile(matchDemandFile, &demand); err != nil {
			return err
		}
		if err := demand.Validate(); err != nil {
			return err
		}

		var pool []types.Candidate
		if err := readJSONFile(matchCandidatesFile, &pool); err != nil {
			return err
		}

		gen := matching.NewGenerator(nil, nil, nil, scorer, cfg.MaxConcurrentScores)
		results, err := gen.RankPool(ctx, &demand, pool)
		if err != nil {
			return fmt.Errorf("failed to rank candidates: %w", err)
		}
		if verbose {
			observability.NewPrinter(os.Stderr).PrintMatchList(results)
		}
		return writeJSONOutput(matchOutputFile, results)
	}

	// Database mode
	demandID, err := uuid.Parse(matchDemandID)
	if err != nil {
		return fmt.Errorf("invalid demand-id: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL required when using --demand-id")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	gen := matching.NewGenerator(database, database, database, scorer, cfg.MaxConcurrentScores)
	results, err := gen.GenerateMatches(ctx, demandID)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintMatchList(results)
	}
	return writeJSONOutput(matchOutputFile, results)
}
