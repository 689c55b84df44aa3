package types

import (
	"github.com/google/uuid"
)

// Priority is the business urgency attached to a demand.
type Priority string

// Priority values.
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// DemandStatus is the lifecycle state of a demand.
type DemandStatus string

// DemandStatus values.
const (
	DemandOpen       DemandStatus = "open"
	DemandInProgress DemandStatus = "in_progress"
	DemandFulfilled  DemandStatus = "fulfilled"
	DemandCancelled  DemandStatus = "cancelled"
)

// SkillRequirement is a skill a demand asks for. The primary skill is always
// required; secondary skills form a set with no expected duplicates.
type SkillRequirement struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// Demand is the read-only projection of an open role the engine consumes.
type Demand struct {
	ID              uuid.UUID    `json:"id"`
	Role            string       `json:"role,omitempty"`
	PrimarySkill    string       `json:"primary_skill"`
	MinYears        float64      `json:"min_years"`
	MaxYears        float64      `json:"max_years"`
	SecondarySkills []string     `json:"secondary_skills,omitempty"`
	Priority        Priority     `json:"priority"`
	Status          DemandStatus `json:"status"`
}

// Validate checks that the demand's skill and experience fields are well-formed.
func (d *Demand) Validate() error {
	if d.PrimarySkill == "" {
		return &InvalidInputError{Field: "primary_skill", Message: "primary skill is empty"}
	}
	if d.MinYears < 0 {
		return &InvalidInputError{Field: "min_years", Message: "minimum years must be non-negative"}
	}
	// MaxYears of zero means no upper bound.
	if d.MaxYears > 0 && d.MinYears > d.MaxYears {
		return &InvalidInputError{Field: "min_years", Message: "minimum years exceeds maximum years"}
	}
	for _, s := range d.SecondarySkills {
		if s == "" {
			return &InvalidInputError{Field: "secondary_skills", Message: "secondary skill name is empty"}
		}
	}
	return nil
}

// Requirements expands the demand's skills into SkillRequirement entries,
// primary first.
func (d *Demand) Requirements() []SkillRequirement {
	reqs := make([]SkillRequirement, 0, 1+len(d.SecondarySkills))
	reqs = append(reqs, SkillRequirement{Name: d.PrimarySkill, Required: true})
	for _, s := range d.SecondarySkills {
		reqs = append(reqs, SkillRequirement{Name: s, Required: false})
	}
	return reqs
}
