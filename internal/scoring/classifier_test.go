package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/types"
)

func TestClassify_DecisionTable(t *testing.T) {
	scorer := NewScorer(stubStrategy{}, DefaultPolicy())

	tests := []struct {
		name           string
		score          int
		missingCount   int
		primaryMatched bool
		want           types.MatchType
	}{
		{"high score, no gaps, primary matched", 90, 0, true, types.MatchExact},
		{"exact cutoff boundary", 85, 0, true, types.MatchExact},
		{"high score but missing skills", 90, 1, true, types.MatchNear},
		{"high score but primary unmatched", 90, 0, false, types.MatchNear},
		{"near via primary cutoff", 72, 3, true, types.MatchNear},
		{"near cutoff with primary", 55, 5, true, types.MatchNear},
		{"near cutoff with few gaps", 55, 2, false, types.MatchNear},
		{"near cutoff with too many gaps", 55, 3, false, types.MatchNotEligible},
		{"below near cutoff", 49, 0, true, types.MatchNotEligible},
		{"zero score", 0, 0, false, types.MatchNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Classify(tt.score, tt.missingCount, tt.primaryMatched)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	scorer := NewScorer(stubStrategy{}, DefaultPolicy())

	for range 10 {
		assert.Equal(t, types.MatchExact, scorer.Classify(92, 0, true))
		assert.Equal(t, types.MatchNear, scorer.Classify(70, 1, true))
		assert.Equal(t, types.MatchNotEligible, scorer.Classify(30, 4, false))
	}
}

func TestClassify_ExactNeverWithMissingSkills(t *testing.T) {
	scorer := NewScorer(stubStrategy{}, DefaultPolicy())

	for score := 0; score <= 100; score++ {
		for missing := 1; missing <= 5; missing++ {
			assert.NotEqual(t, types.MatchExact, scorer.Classify(score, missing, true))
			assert.NotEqual(t, types.MatchExact, scorer.Classify(score, missing, false))
		}
	}
}
