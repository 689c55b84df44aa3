package scoring

import (
	"github.com/jonathan/talent-match/internal/types"
)

// Classify maps a score plus derived facts to a discrete match category.
// It is a pure decision table:
//
//   - Exact: score >= ExactCutoff, no missing skills, primary skill matched.
//   - Near: score >= NearPrimaryCutoff with the primary matched, or
//     score >= NearCutoff with the primary matched or at most NearMaxMissing
//     missing skills.
//   - NotEligible: everything else.
func (s *Scorer) Classify(score, missingCount int, primaryMatched bool) types.MatchType {
	if score >= s.policy.ExactCutoff && missingCount == 0 && primaryMatched {
		return types.MatchExact
	}
	if score >= s.policy.NearPrimaryCutoff && primaryMatched {
		return types.MatchNear
	}
	if score >= s.policy.NearCutoff && (primaryMatched || missingCount <= s.policy.NearMaxMissing) {
		return types.MatchNear
	}
	return types.MatchNotEligible
}
