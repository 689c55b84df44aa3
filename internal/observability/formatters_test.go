package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/types"
)

func TestPrintMatchList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchList([]types.MatchResult{
		{
			CandidateID:   uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000"),
			Score:         92,
			MatchType:     types.MatchExact,
			MissingSkills: []string{},
		},
		{
			CandidateID:   uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000"),
			Score:         71,
			MatchType:     types.MatchNear,
			MissingSkills: []string{"GraphQL"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "RANKED MATCHES (2)")
	assert.Contains(t, output, "aaaaaaaa")
	assert.Contains(t, output, "score 92")
	assert.Contains(t, output, "missing: GraphQL")
}

func TestPrintMatchList_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchList(nil)

	assert.Contains(t, buf.String(), "No candidates cleared the inclusion floor")
}

func TestPrintMatchList_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := make([]types.MatchResult, 8)
	for i := range results {
		results[i] = types.MatchResult{CandidateID: uuid.New(), Score: 90 - i, MatchType: types.MatchExact}
	}

	p.PrintMatchList(results)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(&types.MatchResult{
		CandidateID: uuid.MustParse("cccccccc-0000-0000-0000-000000000000"),
		Score:       78,
		MatchType:   types.MatchNear,
		SkillsMatched: []types.SkillMatchDetail{
			{Skill: "JavaScript", Required: true, CandidateYears: 5, RequiredYears: 3, SimilarityPct: 100},
		},
		MissingSkills: []string{"React"},
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "Score:     78 (near)")
	assert.Contains(t, output, "* JavaScript")
	assert.Contains(t, output, "React")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSkillGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillGaps([]types.SkillGapEntry{
		{Skill: "Rust", DemandCount: 3, Urgency: types.GapHigh},
		{Skill: "Kafka", DemandCount: 1, Urgency: types.GapMedium},
	})
	output := buf.String()

	assert.Contains(t, output, "SKILL GAPS (2)")
	assert.Contains(t, output, "Rust")
	assert.Contains(t, output, "3 demand(s) affected, urgency high")
	assert.Contains(t, output, "Kafka")
}

func TestPrintSkillGaps_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillGaps(nil)

	assert.Contains(t, buf.String(), "No gaps")
}
