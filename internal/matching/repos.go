// Package matching orchestrates the scoring engine over demand and candidate
// pools: ranked match generation for one demand, single-pair scoring for
// recommendation views, and organization-wide skill gap analysis.
package matching

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// DemandSource supplies demand projections. Implemented by internal/db in
// production and by in-memory fakes in tests.
type DemandSource interface {
	// DemandByID returns the demand, or (nil, nil) when it does not exist.
	DemandByID(ctx context.Context, id uuid.UUID) (*types.Demand, error)
	// DemandsByStatus returns all demands in any of the given statuses.
	DemandsByStatus(ctx context.Context, statuses ...types.DemandStatus) ([]types.Demand, error)
}

// CandidateSource supplies candidate projections.
type CandidateSource interface {
	// CandidatesByAvailability returns all candidates in any of the given
	// availability states.
	CandidatesByAvailability(ctx context.Context, availabilities ...types.Availability) ([]types.Candidate, error)
}

// MatchSink stores generated match sets. Regeneration replaces the previous
// set for a demand wholesale; there is at most one current result set per
// demand.
type MatchSink interface {
	ReplaceMatches(ctx context.Context, demandID uuid.UUID, results []types.MatchResult) error
}
