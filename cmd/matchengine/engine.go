package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/ontology"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/similarity"
)

// loadConfig resolves configuration from an optional JSON file plus the
// environment. Flag values are merged by the individual commands afterwards.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.FromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.MergeEnv()
	return cfg, nil
}

// buildScorer wires the ontology, similarity strategy, and scoring policy.
// The returned closer releases the remote embedder client when one was
// created; it is a no-op otherwise.
func buildScorer(ctx context.Context, cfg *config.Config) (*scoring.Scorer, func(), error) {
	ont := ontology.Default()
	if cfg.OntologyPath != "" {
		loaded, err := ontology.LoadFile(cfg.OntologyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load ontology: %w", err)
		}
		ont = loaded
	}

	simCfg := similarity.DefaultConfig()
	lexical := similarity.NewLexical(ont, simCfg)

	var strategy similarity.Strategy = lexical
	closer := func() {}

	if cfg.SimilarityProvider == config.ProviderRemote {
		if cfg.GeminiAPIKey == "" {
			return nil, nil, fmt.Errorf("API key is required for remote similarity (set GEMINI_API_KEY or gemini_api_key in config)")
		}
		embedder, err := similarity.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		remote := similarity.NewRemote(embedder, simCfg, time.Duration(cfg.RemoteTimeoutMS)*time.Millisecond)
		strategy = similarity.NewFallback(remote, lexical)
		closer = func() { _ = embedder.Close() }
	}

	return scoring.NewScorer(strategy, scoring.DefaultPolicy()), closer, nil
}

// readJSONFile decodes a JSON file into dst.
func readJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSONOutput writes v as indented JSON to the given path, or to stdout
// when the path is empty.
func writeJSONOutput(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
