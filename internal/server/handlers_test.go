package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/ontology"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/similarity"
	"github.com/jonathan/talent-match/internal/types"
)

// fakeStore backs the engine with in-memory data for handler tests.
type fakeStore struct {
	demands    []types.Demand
	candidates []types.Candidate
	stored     map[uuid.UUID][]types.MatchResult
}

func newFakeStore() *fakeStore {
	return &fakeStore{stored: make(map[uuid.UUID][]types.MatchResult)}
}

func (s *fakeStore) DemandByID(_ context.Context, id uuid.UUID) (*types.Demand, error) {
	for i := range s.demands {
		if s.demands[i].ID == id {
			d := s.demands[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) DemandsByStatus(_ context.Context, statuses ...types.DemandStatus) ([]types.Demand, error) {
	var out []types.Demand
	for _, d := range s.demands {
		for _, status := range statuses {
			if d.Status == status {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) CandidatesByAvailability(_ context.Context, availabilities ...types.Availability) ([]types.Candidate, error) {
	var out []types.Candidate
	for _, c := range s.candidates {
		for _, a := range availabilities {
			if c.Availability == a {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) ReplaceMatches(_ context.Context, demandID uuid.UUID, results []types.MatchResult) error {
	s.stored[demandID] = results
	return nil
}

func (s *fakeStore) MatchesForDemand(_ context.Context, demandID uuid.UUID) ([]types.MatchResult, error) {
	return s.stored[demandID], nil
}

func testServer(t *testing.T, store *fakeStore) *Server {
	t.Helper()
	lex := similarity.NewLexical(ontology.Default(), similarity.DefaultConfig())
	scorer := scoring.NewScorer(lex, scoring.DefaultPolicy())
	gen := matching.NewGenerator(store, store, store, scorer, 4)
	analyzer := matching.NewAnalyzer(store, store, scorer, 4)
	return New(Config{Addr: ":0"}, gen, analyzer, store, nil)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleGenerateMatches(t *testing.T) {
	store := newFakeStore()
	demand := types.Demand{
		ID: uuid.New(), Role: "Frontend", PrimarySkill: "JavaScript",
		MinYears: 3, MaxYears: 7,
		Priority: types.PriorityMedium, Status: types.DemandOpen,
	}
	store.demands = []types.Demand{demand}
	store.candidates = []types.Candidate{{
		ID: uuid.New(), Name: "Alice",
		PrimarySkill: types.SkillHolding{Name: "JavaScript", Years: 5},
		Availability: types.Available,
	}}
	srv := testServer(t, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/demands/%s/matches", demand.ID), nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		DemandID uuid.UUID           `json:"demand_id"`
		Matches  []types.MatchResult `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, demand.ID, body.DemandID)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, store.candidates[0].ID, body.Matches[0].CandidateID)

	// Generation must have persisted the set for later reads.
	assert.Len(t, store.stored[demand.ID], 1)
}

func TestHandleGenerateMatches_UnknownDemand(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/demands/%s/matches", uuid.New()), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestHandleGenerateMatches_BadID(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/demands/not-a-uuid/matches", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetMatches_EmptyStore(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/demands/%s/matches", uuid.New()), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matches":[]`)
}

func TestHandleScore(t *testing.T) {
	srv := testServer(t, newFakeStore())

	body := `{
		"candidate": {
			"id": "` + uuid.NewString() + `",
			"name": "Alice",
			"primary_skill": {"name": "JavaScript", "years_experience": 5},
			"availability": "available"
		},
		"demand": {
			"id": "` + uuid.NewString() + `",
			"primary_skill": "JavaScript",
			"min_years": 3,
			"max_years": 7,
			"priority": "medium",
			"status": "open"
		}
	}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.Score, 85)
	assert.Equal(t, types.MatchExact, result.MatchType)
}

func TestHandleScore_InvalidInput(t *testing.T) {
	srv := testServer(t, newFakeStore())

	// Candidate with no primary skill fails domain validation.
	body := `{
		"candidate": {"id": "` + uuid.NewString() + `", "availability": "available"},
		"demand": {
			"id": "` + uuid.NewString() + `",
			"primary_skill": "JavaScript",
			"min_years": 3, "max_years": 7,
			"priority": "medium", "status": "open"
		}
	}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "primary_skill")
}

func TestHandleScore_MalformedJSON(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSkillGaps(t *testing.T) {
	store := newFakeStore()
	store.demands = []types.Demand{{
		ID: uuid.New(), Role: "Platform", PrimarySkill: "Rust",
		MinYears: 5, MaxYears: 10,
		Priority: types.PriorityCritical, Status: types.DemandOpen,
	}}
	store.candidates = []types.Candidate{{
		ID: uuid.New(), Name: "Bob",
		PrimarySkill: types.SkillHolding{Name: "JavaScript", Years: 5},
		Availability: types.Available,
	}}
	srv := testServer(t, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skill-gaps", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SkillGaps []types.SkillGapEntry `json:"skill_gaps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.SkillGaps, 1)
	assert.Equal(t, "Rust", body.SkillGaps[0].Skill)
	assert.Equal(t, types.GapHigh, body.SkillGaps[0].Urgency)
}

func TestHandleSkillGaps_Empty(t *testing.T) {
	srv := testServer(t, newFakeStore())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skill-gaps", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"skill_gaps":[]}`, rec.Body.String())
}
