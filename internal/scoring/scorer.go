package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/talent-match/internal/similarity"
	"github.com/jonathan/talent-match/internal/types"
)

// Scorer evaluates candidates against demands using a similarity strategy and
// a scoring policy, both fixed at construction time.
type Scorer struct {
	sim    similarity.Strategy
	policy Policy
}

// NewScorer creates a scorer.
func NewScorer(sim similarity.Strategy, policy Policy) *Scorer {
	return &Scorer{sim: sim, policy: policy}
}

// Policy returns the scorer's policy, for callers that share its thresholds.
func (s *Scorer) Policy() Policy {
	return s.policy
}

// Evaluation is the full, explainable outcome of scoring one pair.
type Evaluation struct {
	Score          int
	MatchType      types.MatchType
	PrimaryMatched bool
	Missing        []Gap
	Details        []types.SkillMatchDetail
}

// MissingSkills flattens the gaps into the MatchResult wire format.
func (e *Evaluation) MissingSkills() []string {
	out := make([]string, 0, len(e.Missing))
	for _, g := range e.Missing {
		out = append(out, g.Description)
	}
	return out
}

// Evaluate computes the score, classification, matched-skill detail, and
// missing skills for one (candidate, demand) pair. Both inputs must already
// be validated.
func (s *Scorer) Evaluate(ctx context.Context, cand *types.Candidate, demand *types.Demand) (*Evaluation, error) {
	facts, err := s.collectFacts(ctx, cand, demand)
	if err != nil {
		return nil, fmt.Errorf("similarity lookup failed: %w", err)
	}

	total := s.primaryScore(facts, cand, demand) +
		s.secondaryScore(facts) +
		s.experienceScore(cand, demand) +
		s.availabilityScore(cand)

	score := int(math.Round(total))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	missing := s.missingSkills(facts, cand, demand)

	eval := &Evaluation{
		Score:          score,
		PrimaryMatched: facts.primaryRelated,
		Missing:        missing,
		Details:        s.matchedDetails(facts, cand, demand),
	}
	eval.MatchType = s.Classify(score, len(missing), facts.primaryRelated)
	return eval, nil
}

// pairFacts caches the similarity lookups for one pair so that score, detail,
// and gap extraction agree on a single view of relatedness.
type pairFacts struct {
	primaryRelated bool
	primarySim     float64
	secondaries    []secondaryFact // one per demanded secondary, demand order
}

type secondaryFact struct {
	name string
	held *types.SkillHolding // best related held skill, nil when unmatched
	sim  float64
}

func (s *Scorer) collectFacts(ctx context.Context, cand *types.Candidate, demand *types.Demand) (*pairFacts, error) {
	facts := &pairFacts{}

	related, err := s.sim.Related(ctx, cand.PrimarySkill.Name, demand.PrimarySkill)
	if err != nil {
		return nil, err
	}
	sim, err := s.sim.Similarity(ctx, cand.PrimarySkill.Name, demand.PrimarySkill)
	if err != nil {
		return nil, err
	}
	facts.primaryRelated = related
	facts.primarySim = sim

	for _, wanted := range demand.SecondarySkills {
		fact := secondaryFact{name: wanted}
		for i := range cand.SecondarySkills {
			held := &cand.SecondarySkills[i]
			related, err := s.sim.Related(ctx, held.Name, wanted)
			if err != nil {
				return nil, err
			}
			if !related {
				continue
			}
			sim, err := s.sim.Similarity(ctx, held.Name, wanted)
			if err != nil {
				return nil, err
			}
			if fact.held == nil || sim > fact.sim {
				fact.held = held
				fact.sim = sim
			}
		}
		facts.secondaries = append(facts.secondaries, fact)
	}
	return facts, nil
}

// primaryScore awards up to PrimaryWeight points for the primary skill fit.
func (s *Scorer) primaryScore(facts *pairFacts, cand *types.Candidate, demand *types.Demand) float64 {
	if !facts.primaryRelated {
		// Consolation credit for adjacent-but-unrelated skills.
		if facts.primarySim >= s.policy.PartialCreditThreshold {
			return s.policy.PrimaryWeight * facts.primarySim * s.policy.PartialCreditFactor
		}
		return 0
	}

	// MaxYears of zero means no upper bound.
	years := cand.PrimarySkill.Years
	switch {
	case years >= demand.MinYears && (demand.MaxYears <= 0 || years <= demand.MaxYears):
		return s.policy.PrimaryWeight

	case demand.MaxYears > 0 && years > demand.MaxYears:
		// Small over-qualification discount, capped at 10%.
		penalty := math.Min(0.1, (years-demand.MaxYears)/demand.MaxYears*0.1)
		return s.policy.PrimaryWeight * (0.95 - penalty)

	case years >= demand.MinYears*0.8:
		// Slightly under-qualified: near-linear ramp back to full credit.
		return s.policy.PrimaryWeight * (0.7 + 0.25*(years/demand.MinYears))

	default:
		return s.policy.PrimaryWeight * math.Max(0.3, 0.6*years/demand.MinYears)
	}
}

// secondaryScore awards up to SecondaryWeight points for coverage of the
// demanded secondary skills. A demand with no secondary skills earns full
// points; experience saturates each skill's contribution at
// SecondarySaturationYears.
func (s *Scorer) secondaryScore(facts *pairFacts) float64 {
	if len(facts.secondaries) == 0 {
		return s.policy.SecondaryWeight
	}

	matched := 0
	subTotal := 0.0
	for _, fact := range facts.secondaries {
		if fact.held == nil {
			continue
		}
		matched++
		subTotal += math.Min(1, fact.held.Years/s.policy.SecondarySaturationYears)
	}
	if matched == 0 {
		return 0
	}

	coverage := float64(matched) / float64(len(facts.secondaries))
	avgSubScore := subTotal / float64(matched)
	return s.policy.SecondaryWeight * coverage * avgSubScore
}

// experienceScore awards up to ExperienceWeight points for how the candidate's
// primary experience sits in the demanded range, independent of whether the
// skill names match.
func (s *Scorer) experienceScore(cand *types.Candidate, demand *types.Demand) float64 {
	years := cand.PrimarySkill.Years
	switch {
	case years >= demand.MinYears && (demand.MaxYears <= 0 || years <= demand.MaxYears):
		return s.policy.ExperienceWeight
	case demand.MaxYears > 0 && years > demand.MaxYears:
		return s.policy.ExperienceWeight * 0.9
	default:
		// years < MinYears implies MinYears > 0.
		return s.policy.ExperienceWeight * math.Max(0.2, years/demand.MinYears)
	}
}

// availabilityScore awards up to AvailabilityWeight points by staffing status.
func (s *Scorer) availabilityScore(cand *types.Candidate) float64 {
	switch cand.Availability {
	case types.Available:
		return s.policy.AvailabilityWeight
	case types.Training:
		return s.policy.AvailabilityWeight * s.policy.TrainingFactor
	case types.Allocated:
		return s.policy.AvailabilityWeight * s.policy.AllocatedFactor
	default:
		return 0
	}
}

// matchedDetails builds the explainability records for every matched skill,
// primary first.
func (s *Scorer) matchedDetails(facts *pairFacts, cand *types.Candidate, demand *types.Demand) []types.SkillMatchDetail {
	var details []types.SkillMatchDetail

	if facts.primaryRelated {
		details = append(details, types.SkillMatchDetail{
			Skill:          demand.PrimarySkill,
			Required:       true,
			CandidateYears: cand.PrimarySkill.Years,
			RequiredYears:  demand.MinYears,
			SimilarityPct:  int(math.Round(facts.primarySim * 100)),
		})
	}

	for _, fact := range facts.secondaries {
		if fact.held == nil {
			continue
		}
		details = append(details, types.SkillMatchDetail{
			Skill:          fact.name,
			Required:       false,
			CandidateYears: fact.held.Years,
			SimilarityPct:  int(math.Round(fact.sim * 100)),
		})
	}
	return details
}
