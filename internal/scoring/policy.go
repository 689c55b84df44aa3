// Package scoring turns one (candidate, demand) pair into a 0-100 match score,
// a discrete match classification, and a human-readable list of skill gaps.
// Scoring is deterministic and side-effect free; malformed input is rejected
// by callers before it reaches this package.
package scoring

// Policy gathers every scoring weight and threshold in one auditable place.
// The default values are the engine's product behavior; tests construct
// variants to isolate individual rules.
type Policy struct {
	// Sub-score weights, summing to 100.
	PrimaryWeight      float64
	SecondaryWeight    float64
	ExperienceWeight   float64
	AvailabilityWeight float64

	// Availability factors applied to AvailabilityWeight.
	TrainingFactor  float64
	AllocatedFactor float64

	// PartialCreditThreshold is the minimum similarity for an unrelated
	// primary skill to earn consolation credit; PartialCreditFactor scales it.
	PartialCreditThreshold float64
	PartialCreditFactor    float64

	// SecondarySaturationYears caps the experience contribution of one
	// matched secondary skill.
	SecondarySaturationYears float64

	// InclusionFloor is the score below which a match is considered noise
	// and dropped rather than surfaced.
	InclusionFloor int

	// Classification cutoffs.
	ExactCutoff       int
	NearPrimaryCutoff int
	NearCutoff        int
	NearMaxMissing    int

	// ExperienceGapUrgentYears is the experience shortfall beyond which a
	// primary-skill gap is reported as high priority.
	ExperienceGapUrgentYears float64
}

// DefaultPolicy returns the engine's standard scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		PrimaryWeight:      50,
		SecondaryWeight:    25,
		ExperienceWeight:   15,
		AvailabilityWeight: 10,

		TrainingFactor:  0.7,
		AllocatedFactor: 0.3,

		PartialCreditThreshold: 0.4,
		PartialCreditFactor:    0.6,

		SecondarySaturationYears: 2,

		InclusionFloor: 30,

		ExactCutoff:       85,
		NearPrimaryCutoff: 70,
		NearCutoff:        50,
		NearMaxMissing:    2,

		ExperienceGapUrgentYears: 2,
	}
}
