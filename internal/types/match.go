package types

import (
	"github.com/google/uuid"
)

// MatchType classifies how well a candidate fits a demand.
type MatchType string

// MatchType values.
const (
	MatchExact       MatchType = "exact"
	MatchNear        MatchType = "near"
	MatchNotEligible MatchType = "not_eligible"
)

// SkillMatchDetail explains one matched skill inside a MatchResult.
type SkillMatchDetail struct {
	Skill          string  `json:"skill"`
	Required       bool    `json:"required"`
	CandidateYears float64 `json:"candidate_experience"`
	RequiredYears  float64 `json:"required_experience"`
	SimilarityPct  int     `json:"similarity_percent"`
}

// MatchResult is the scored, classified pairing of one candidate to one demand.
// Results are immutable once produced; regenerating matches for a demand
// replaces the previous result set wholesale.
type MatchResult struct {
	CandidateID   uuid.UUID          `json:"candidate_id"`
	DemandID      uuid.UUID          `json:"demand_id"`
	Score         int                `json:"score"`
	MatchType     MatchType          `json:"match_type"`
	MissingSkills []string           `json:"missing_skills"`
	SkillsMatched []SkillMatchDetail `json:"skills_matched"`
}

// GapUrgency is the escalation level of a skill gap entry.
type GapUrgency string

// GapUrgency values. Urgency only ever escalates from medium to high within
// a single analysis run, never downgrades.
const (
	GapMedium GapUrgency = "medium"
	GapHigh   GapUrgency = "high"
)

// SkillGapEntry aggregates one missing skill across all demands whose best
// matching candidate still lacked it.
type SkillGapEntry struct {
	Skill           string      `json:"skill"`
	DemandCount     int         `json:"demand_count"`
	Urgency         GapUrgency  `json:"urgency"`
	AffectedDemands []uuid.UUID `json:"affected_demands"`
}
