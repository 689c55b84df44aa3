// Package types provides type definitions for structured data shared across the talent-match engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/google/uuid"
)

// Availability describes whether a candidate can be staffed on a demand.
type Availability string

// Availability values, ordered from most to least staffable.
const (
	Available Availability = "available"
	Training  Availability = "training"
	Allocated Availability = "allocated"
	OnLeave   Availability = "on_leave"
)

// Valid reports whether the availability is one of the known values.
func (a Availability) Valid() bool {
	switch a {
	case Available, Training, Allocated, OnLeave:
		return true
	}
	return false
}

// SkillHolding represents a skill a candidate holds, with accumulated experience.
type SkillHolding struct {
	Name  string  `json:"name"`
	Years float64 `json:"years_experience"`
}

// Candidate is the read-only projection of an employee profile the engine consumes.
// Availability affects score but never gates inclusion; candidates on leave are
// excluded upstream by the repository query that selects the pool.
type Candidate struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name,omitempty"`
	PrimarySkill    SkillHolding   `json:"primary_skill"`
	SecondarySkills []SkillHolding `json:"secondary_skills,omitempty"`
	Availability    Availability   `json:"availability"`
}

// Validate checks that the candidate's skill fields are well-formed.
// The scorer assumes validated input, so malformed candidates must be
// rejected (or skipped) before scoring.
func (c *Candidate) Validate() error {
	if c.PrimarySkill.Name == "" {
		return &InvalidInputError{Field: "primary_skill.name", Message: "primary skill name is empty"}
	}
	if c.PrimarySkill.Years < 0 {
		return &InvalidInputError{Field: "primary_skill.years_experience", Message: "years of experience must be non-negative"}
	}
	for _, s := range c.SecondarySkills {
		if s.Name == "" {
			return &InvalidInputError{Field: "secondary_skills.name", Message: "secondary skill name is empty"}
		}
		if s.Years < 0 {
			return &InvalidInputError{Field: "secondary_skills.years_experience", Message: "years of experience must be non-negative"}
		}
	}
	if !c.Availability.Valid() {
		return &InvalidInputError{Field: "availability", Message: "unknown availability: " + string(c.Availability)}
	}
	return nil
}
