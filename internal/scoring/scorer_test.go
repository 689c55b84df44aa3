package scoring

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/ontology"
	"github.com/jonathan/talent-match/internal/similarity"
	"github.com/jonathan/talent-match/internal/types"
)

// stubStrategy returns fixed similarity facts, isolating scoring arithmetic
// from the real string metrics.
type stubStrategy struct {
	sim     float64
	related bool
}

func (s stubStrategy) Similarity(context.Context, string, string) (float64, error) {
	return s.sim, nil
}

func (s stubStrategy) Related(context.Context, string, string) (bool, error) {
	return s.related, nil
}

func lexicalScorer(t *testing.T) *Scorer {
	t.Helper()
	lex := similarity.NewLexical(ontology.Default(), similarity.DefaultConfig())
	return NewScorer(lex, DefaultPolicy())
}

func jsCandidate(years float64, availability types.Availability, secondaries ...types.SkillHolding) *types.Candidate {
	return &types.Candidate{
		ID:              uuid.New(),
		PrimarySkill:    types.SkillHolding{Name: "JavaScript", Years: years},
		SecondarySkills: secondaries,
		Availability:    availability,
	}
}

func jsDemand(minYears, maxYears float64, secondaries ...string) *types.Demand {
	return &types.Demand{
		ID:              uuid.New(),
		PrimarySkill:    "JavaScript",
		MinYears:        minYears,
		MaxYears:        maxYears,
		SecondarySkills: secondaries,
		Priority:        types.PriorityMedium,
		Status:          types.DemandOpen,
	}
}

func TestEvaluate_StrongCandidateIsExact(t *testing.T) {
	scorer := lexicalScorer(t)

	cand := jsCandidate(5, types.Available,
		types.SkillHolding{Name: "React", Years: 3},
		types.SkillHolding{Name: "Node.js", Years: 2},
	)
	demand := jsDemand(3, 7, "React", "Node.js")

	eval, err := scorer.Evaluate(context.Background(), cand, demand)
	require.NoError(t, err)

	assert.Greater(t, eval.Score, 85)
	assert.Equal(t, types.MatchExact, eval.MatchType)
	assert.Empty(t, eval.Missing)
	assert.True(t, eval.PrimaryMatched)
}

func TestEvaluate_UnderQualifiedCandidate(t *testing.T) {
	scorer := lexicalScorer(t)

	cand := jsCandidate(2, types.Available)
	demand := jsDemand(5, 8)

	eval, err := scorer.Evaluate(context.Background(), cand, demand)
	require.NoError(t, err)

	assert.Less(t, eval.Score, 65)
	require.NotEmpty(t, eval.Missing)
	assert.Equal(t, "JavaScript (3 more years needed)", eval.Missing[0].Description)
	assert.Equal(t, GapPriorityHigh, eval.Missing[0].Priority)
}

func TestEvaluate_AvailabilityDelta(t *testing.T) {
	scorer := lexicalScorer(t)
	ctx := context.Background()
	demand := jsDemand(3, 7)

	available, err := scorer.Evaluate(ctx, jsCandidate(5, types.Available), demand)
	require.NoError(t, err)
	allocated, err := scorer.Evaluate(ctx, jsCandidate(5, types.Allocated), demand)
	require.NoError(t, err)

	// The only difference is the availability sub-score: 10 vs 10*0.3.
	assert.Equal(t, 7, available.Score-allocated.Score)
}

func TestEvaluate_OverQualificationDiscount(t *testing.T) {
	scorer := lexicalScorer(t)

	eval, err := scorer.Evaluate(context.Background(), jsCandidate(10, types.Available), jsDemand(3, 7))
	require.NoError(t, err)

	// primary 50*(0.95 - 3/7*0.1) = 45.36, secondary 25 (none demanded),
	// experience 13.5, availability 10 -> 93.86 rounds to 94.
	assert.Equal(t, 94, eval.Score)
	assert.Empty(t, eval.Missing)
}

func TestEvaluate_NoOverQualificationPenaltyWhenUnbounded(t *testing.T) {
	scorer := lexicalScorer(t)

	// MaxYears of zero means no upper bound, so deep experience is full credit.
	eval, err := scorer.Evaluate(context.Background(), jsCandidate(20, types.Available), jsDemand(3, 0))
	require.NoError(t, err)

	assert.Equal(t, 100, eval.Score)
}

func TestEvaluate_SlightlyUnderQualifiedRamp(t *testing.T) {
	scorer := lexicalScorer(t)

	eval, err := scorer.Evaluate(context.Background(), jsCandidate(4.5, types.Available), jsDemand(5, 8))
	require.NoError(t, err)

	// primary 50*(0.7+0.25*0.9) = 46.25, secondary 25, experience 13.5,
	// availability 10 -> 94.75 rounds to 95.
	assert.Equal(t, 95, eval.Score)
}

func TestEvaluate_PartialCreditForAdjacentPrimary(t *testing.T) {
	// Unrelated primary with similarity 0.5 earns 50*0.5*0.6 = 15 points.
	scorer := NewScorer(stubStrategy{sim: 0.5, related: false}, DefaultPolicy())

	eval, err := scorer.Evaluate(context.Background(), jsCandidate(5, types.Available), jsDemand(3, 7))
	require.NoError(t, err)

	// 15 + 25 + 15 + 10 = 65.
	assert.Equal(t, 65, eval.Score)
	assert.False(t, eval.PrimaryMatched)
	require.Len(t, eval.Missing, 1)
	assert.Equal(t, "JavaScript", eval.Missing[0].Description)
}

func TestEvaluate_NoCreditBelowPartialThreshold(t *testing.T) {
	scorer := NewScorer(stubStrategy{sim: 0.2, related: false}, DefaultPolicy())

	eval, err := scorer.Evaluate(context.Background(), jsCandidate(5, types.Available), jsDemand(3, 7))
	require.NoError(t, err)

	// 0 + 25 + 15 + 10 = 50.
	assert.Equal(t, 50, eval.Score)
}

func TestEvaluate_SecondaryExperienceSaturation(t *testing.T) {
	scorer := lexicalScorer(t)
	ctx := context.Background()
	demand := jsDemand(3, 7, "React")

	// 2 years saturates the secondary contribution; 10 years adds nothing.
	twoYears, err := scorer.Evaluate(ctx, jsCandidate(5, types.Available,
		types.SkillHolding{Name: "React", Years: 2}), demand)
	require.NoError(t, err)
	tenYears, err := scorer.Evaluate(ctx, jsCandidate(5, types.Available,
		types.SkillHolding{Name: "React", Years: 10}), demand)
	require.NoError(t, err)

	assert.Equal(t, twoYears.Score, tenYears.Score)
}

func TestEvaluate_PartialSecondaryCoverage(t *testing.T) {
	scorer := lexicalScorer(t)

	cand := jsCandidate(5, types.Available, types.SkillHolding{Name: "React", Years: 2})
	demand := jsDemand(3, 7, "React", "GraphQL")

	eval, err := scorer.Evaluate(context.Background(), cand, demand)
	require.NoError(t, err)

	// primary 50, secondary 25*(1/2)*1 = 12.5, experience 15, availability 10
	// -> 87.5 rounds to 88.
	assert.Equal(t, 88, eval.Score)
	require.Len(t, eval.Missing, 1)
	assert.Equal(t, "GraphQL", eval.Missing[0].Description)
}

func TestEvaluate_ScoreAlwaysInRange(t *testing.T) {
	scorer := lexicalScorer(t)
	ctx := context.Background()

	candidates := []*types.Candidate{
		jsCandidate(0, types.Available),
		jsCandidate(40, types.Allocated),
		jsCandidate(1, types.Training, types.SkillHolding{Name: "Vue", Years: 0}),
		{ID: uuid.New(), PrimarySkill: types.SkillHolding{Name: "Welding", Years: 12}, Availability: types.OnLeave},
	}
	demands := []*types.Demand{
		jsDemand(0, 0),
		jsDemand(3, 7, "React", "Node.js", "GraphQL"),
		jsDemand(10, 20),
	}

	for _, cand := range candidates {
		for _, demand := range demands {
			eval, err := scorer.Evaluate(ctx, cand, demand)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, eval.Score, 0)
			assert.LessOrEqual(t, eval.Score, 100)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	scorer := lexicalScorer(t)
	ctx := context.Background()

	cand := jsCandidate(4, types.Training, types.SkillHolding{Name: "React", Years: 1})
	demand := jsDemand(3, 7, "React", "GraphQL")

	first, err := scorer.Evaluate(ctx, cand, demand)
	require.NoError(t, err)
	for range 5 {
		again, err := scorer.Evaluate(ctx, cand, demand)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluate_MatchedDetails(t *testing.T) {
	scorer := lexicalScorer(t)

	cand := jsCandidate(5, types.Available, types.SkillHolding{Name: "ReactJS", Years: 3})
	demand := jsDemand(3, 7, "React")

	eval, err := scorer.Evaluate(context.Background(), cand, demand)
	require.NoError(t, err)

	require.Len(t, eval.Details, 2)
	primary := eval.Details[0]
	assert.Equal(t, "JavaScript", primary.Skill)
	assert.True(t, primary.Required)
	assert.Equal(t, 5.0, primary.CandidateYears)
	assert.Equal(t, 3.0, primary.RequiredYears)
	assert.Equal(t, 100, primary.SimilarityPct)

	secondary := eval.Details[1]
	assert.Equal(t, "React", secondary.Skill)
	assert.False(t, secondary.Required)
	assert.Equal(t, 3.0, secondary.CandidateYears)
	assert.Greater(t, secondary.SimilarityPct, 0)
}
