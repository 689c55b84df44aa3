package scoring

import (
	"fmt"

	"github.com/jonathan/talent-match/internal/types"
)

// Gap priorities.
const (
	GapPriorityHigh   = "high"
	GapPriorityMedium = "medium"
)

// Gap is one human-readable skill gap between a candidate and a demand.
type Gap struct {
	Description string
	Priority    string
}

// missingSkills produces the ordered gap list for one pair: the primary-skill
// or experience gap first (when present), then unmatched secondary skills in
// demand-list order.
func (s *Scorer) missingSkills(facts *pairFacts, cand *types.Candidate, demand *types.Demand) []Gap {
	var gaps []Gap

	switch {
	case !facts.primaryRelated:
		gaps = append(gaps, Gap{
			Description: demand.PrimarySkill,
			Priority:    GapPriorityHigh,
		})

	case cand.PrimarySkill.Years < demand.MinYears:
		shortfall := demand.MinYears - cand.PrimarySkill.Years
		priority := GapPriorityMedium
		if shortfall > s.policy.ExperienceGapUrgentYears {
			priority = GapPriorityHigh
		}
		gaps = append(gaps, Gap{
			Description: fmt.Sprintf("%s (%s more years needed)", demand.PrimarySkill, formatYears(shortfall)),
			Priority:    priority,
		})
	}

	for _, fact := range facts.secondaries {
		if fact.held != nil {
			continue
		}
		gaps = append(gaps, Gap{Description: fact.name, Priority: GapPriorityMedium})
	}
	return gaps
}

// formatYears renders a year count without a trailing ".0" for whole values.
func formatYears(years float64) string {
	if years == float64(int64(years)) {
		return fmt.Sprintf("%d", int64(years))
	}
	return fmt.Sprintf("%.1f", years)
}
