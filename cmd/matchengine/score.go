package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one demand",
	Long:  "Evaluate a single candidate/demand pair and print the full match result, including results below the ranked-list inclusion floor.",
	RunE:  runScore,
}

var (
	scoreCandidateFile string
	scoreDemandFile    string
	scoreOutputFile    string
	scoreConfigFile    string
)

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate-file", "", "Path to a candidate JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreDemandFile, "demand-file", "", "Path to a demand JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	scoreCmd.Flags().StringVarP(&scoreConfigFile, "config", "c", "", "Path to config JSON file")
	_ = scoreCmd.MarkFlagRequired("candidate-file")
	_ = scoreCmd.MarkFlagRequired("demand-file")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(scoreConfigFile)
	if err != nil {
		return err
	}

	var cand types.Candidate
	if err := readJSONFile(scoreCandidateFile, &cand); err != nil {
		return err
	}
	var demand types.Demand
	if err := readJSONFile(scoreDemandFile, &demand); err != nil {
		return err
	}

	ctx := context.Background()

	scorer, closeScorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScorer()

	gen := matching.NewGenerator(nil, nil, nil, scorer, cfg.MaxConcurrentScores)
	result, err := gen.ScoreOne(ctx, &cand, &demand)
	if err != nil {
		return fmt.Errorf("failed to score pair: %w", err)
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintMatchResult(result)
	}
	return writeJSONOutput(scoreOutputFile, result)
}
