package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
)

// Analyzer aggregates unmet skill demand across the organization.
//
// For every open demand it looks only at the single best-scoring candidate
// and credits that candidate's missing skills. This is a "worst bottleneck"
// view: a demand with many near-miss candidates still contributes one sample,
// so depth of shortage is undercounted. The behavior is deliberate and should
// not be widened to all candidates without a product decision.
type Analyzer struct {
	demands       DemandSource
	candidates    CandidateSource
	scorer        *scoring.Scorer
	maxConcurrent int
}

// NewAnalyzer creates a gap analyzer.
func NewAnalyzer(demands DemandSource, candidates CandidateSource, scorer *scoring.Scorer, maxConcurrent int) *Analyzer {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Analyzer{
		demands:       demands,
		candidates:    candidates,
		scorer:        scorer,
		maxConcurrent: maxConcurrent,
	}
}

// SkillGaps runs the analysis over every open and in-progress demand against
// the available and in-training candidate pool.
func (a *Analyzer) SkillGaps(ctx context.Context) ([]types.SkillGapEntry, error) {
	start := time.Now()

	demands, err := a.demands.DemandsByStatus(ctx, types.DemandOpen, types.DemandInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open demands: %w", err)
	}
	pool, err := a.candidates.CandidatesByAvailability(ctx, types.Available, types.Training)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate pool: %w", err)
	}

	entries, err := a.GapsForPools(ctx, demands, pool)
	if err != nil {
		return nil, err
	}

	slog.Info("skill gap analysis complete",
		"demands", len(demands),
		"pool_size", len(pool),
		"gaps", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return entries, nil
}

// demandSample is one demand's contribution: the missing skills of its best
// candidate.
type demandSample struct {
	demand  *types.Demand
	missing []string
}

// GapsForPools computes the gap report for explicit demand and candidate
// pools. Demands are processed concurrently; the reduction into per-skill
// entries happens single-threaded over the collected samples, in demand-pool
// order, so repeated runs produce identical reports.
func (a *Analyzer) GapsForPools(ctx context.Context, demands []types.Demand, pool []types.Candidate) ([]types.SkillGapEntry, error) {
	samples := make([]*demandSample, len(demands))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(a.maxConcurrent)

	for i := range demands {
		grp.Go(func() error {
			demand := &demands[i]
			if err := demand.Validate(); err != nil {
				slog.Warn("skipping malformed demand", "demand_id", demand.ID, "error", err)
				return nil
			}

			best, err := a.bestCandidate(grpCtx, demand, pool)
			if err != nil {
				return err
			}
			if best == nil || len(best.MissingSkills()) == 0 {
				return nil
			}
			samples[i] = &demandSample{demand: demand, missing: best.MissingSkills()}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return reduceSamples(samples), nil
}

// bestCandidate returns the evaluation of the highest-scoring candidate for
// the demand, even when that score is poor. Ties keep the earliest candidate.
// Returns nil when the pool is empty or every candidate was skipped.
func (a *Analyzer) bestCandidate(ctx context.Context, demand *types.Demand, pool []types.Candidate) (*scoring.Evaluation, error) {
	var best *scoring.Evaluation
	for i := range pool {
		cand := &pool[i]
		if err := cand.Validate(); err != nil {
			slog.Warn("skipping malformed candidate",
				"candidate_id", cand.ID, "demand_id", demand.ID, "error", err)
			continue
		}

		eval, err := a.scorer.Evaluate(ctx, cand, demand)
		if err != nil {
			return nil, fmt.Errorf("scoring candidate %s: %w", cand.ID, err)
		}
		if best == nil || eval.Score > best.Score {
			best = eval
		}
	}
	return best, nil
}

// reduceSamples folds the per-demand samples into one entry per missing
// skill. Urgency starts at medium and escalates to high when any crediting
// demand carries high or critical priority; it never downgrades within a run.
func reduceSamples(samples []*demandSample) []types.SkillGapEntry {
	bySkill := make(map[string]*types.SkillGapEntry)
	var order []string

	for _, sample := range samples {
		if sample == nil {
			continue
		}
		for _, skill := range sample.missing {
			entry, ok := bySkill[skill]
			if !ok {
				entry = &types.SkillGapEntry{Skill: skill, Urgency: types.GapMedium}
				bySkill[skill] = entry
				order = append(order, skill)
			}
			entry.DemandCount++
			entry.AffectedDemands = append(entry.AffectedDemands, sample.demand.ID)
			if sample.demand.Priority == types.PriorityHigh || sample.demand.Priority == types.PriorityCritical {
				entry.Urgency = types.GapHigh
			}
		}
	}

	entries := make([]types.SkillGapEntry, 0, len(order))
	for _, skill := range order {
		entries = append(entries, *bySkill[skill])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DemandCount > entries[j].DemandCount
	})
	return entries
}
