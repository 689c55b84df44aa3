package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
)

// defaultMaxConcurrent bounds the scoring worker pool when no limit is
// configured.
const defaultMaxConcurrent = 8

// Generator produces ranked match lists for demands.
type Generator struct {
	demands       DemandSource
	candidates    CandidateSource
	sink          MatchSink // optional; nil skips persistence
	scorer        *scoring.Scorer
	maxConcurrent int
}

// NewGenerator creates a match generator. sink may be nil for callers that
// handle persistence themselves.
func NewGenerator(demands DemandSource, candidates CandidateSource, sink MatchSink, scorer *scoring.Scorer, maxConcurrent int) *Generator {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Generator{
		demands:       demands,
		candidates:    candidates,
		sink:          sink,
		scorer:        scorer,
		maxConcurrent: maxConcurrent,
	}
}

// GenerateMatches recomputes the full match set for one demand: every
// eligible candidate is scored, results below the inclusion floor are
// dropped, the rest are ranked by score descending, and the stored set for
// the demand is replaced. A missing demand is a terminal not-found error; a
// malformed candidate is skipped with a warning and the batch continues.
func (g *Generator) GenerateMatches(ctx context.Context, demandID uuid.UUID) ([]types.MatchResult, error) {
	start := time.Now()

	demand, err := g.demands.DemandByID(ctx, demandID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch demand: %w", err)
	}
	if demand == nil {
		return nil, &NotFoundError{Resource: "demand", ID: demandID}
	}
	if err := demand.Validate(); err != nil {
		return nil, err
	}

	pool, err := g.candidates.CandidatesByAvailability(ctx, types.Available, types.Training, types.Allocated)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate pool: %w", err)
	}

	results, err := g.RankPool(ctx, demand, pool)
	if err != nil {
		return nil, err
	}

	if g.sink != nil {
		if err := g.sink.ReplaceMatches(ctx, demandID, results); err != nil {
			return nil, fmt.Errorf("failed to store match set: %w", err)
		}
	}

	slog.Info("match generation complete",
		"demand_id", demandID,
		"pool_size", len(pool),
		"matches", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// RankPool scores a candidate pool against one demand and returns the
// filtered, ranked match list. Candidates are scored concurrently; ranking is
// a stable sort by score descending, so equal scores keep pool order (the
// tiebreak is deliberately unspecified beyond stability).
func (g *Generator) RankPool(ctx context.Context, demand *types.Demand, pool []types.Candidate) ([]types.MatchResult, error) {
	// One slot per candidate keeps pool order for the stable sort; skipped
	// candidates leave their slot nil.
	scored := make([]*types.MatchResult, len(pool))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.maxConcurrent)

	for i := range pool {
		grp.Go(func() error {
			cand := &pool[i]
			if err := cand.Validate(); err != nil {
				slog.Warn("skipping malformed candidate",
					"candidate_id", cand.ID, "demand_id", demand.ID, "error", err)
				return nil
			}

			eval, err := g.scorer.Evaluate(grpCtx, cand, demand)
			if err != nil {
				return fmt.Errorf("scoring candidate %s: %w", cand.ID, err)
			}

			result := buildResult(eval, cand.ID, demand.ID)
			scored[i] = &result
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, 0, len(scored))
	for _, r := range scored {
		if r == nil || r.Score < g.scorer.Policy().InclusionFloor {
			continue
		}
		results = append(results, *r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// ScoreOne evaluates a single (candidate, demand) pair for recommendation
// views. Unlike GenerateMatches it returns the result even below the
// inclusion floor.
func (g *Generator) ScoreOne(ctx context.Context, cand *types.Candidate, demand *types.Demand) (*types.MatchResult, error) {
	if err := cand.Validate(); err != nil {
		return nil, err
	}
	if err := demand.Validate(); err != nil {
		return nil, err
	}

	eval, err := g.scorer.Evaluate(ctx, cand, demand)
	if err != nil {
		return nil, err
	}

	result := buildResult(eval, cand.ID, demand.ID)
	return &result, nil
}

func buildResult(eval *scoring.Evaluation, candidateID, demandID uuid.UUID) types.MatchResult {
	details := eval.Details
	if details == nil {
		details = []types.SkillMatchDetail{}
	}
	return types.MatchResult{
		CandidateID:   candidateID,
		DemandID:      demandID,
		Score:         eval.Score,
		MatchType:     eval.MatchType,
		MissingSkills: eval.MissingSkills(),
		SkillsMatched: details,
	}
}
