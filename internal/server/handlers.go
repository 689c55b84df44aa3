package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// handleGenerateMatches recomputes and stores the ranked match set for one
// demand, returning the fresh list.
func (s *Server) handleGenerateMatches(w http.ResponseWriter, r *http.Request) {
	demandID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid demand id")
		return
	}

	results, err := s.generator.GenerateMatches(r.Context(), demandID)
	if err != nil {
		s.engineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"demand_id": demandID,
		"matches":   results,
	})
}

// handleGetMatches returns the stored match set for a demand without
// recomputing it.
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	if s.matches == nil {
		s.errorResponse(w, http.StatusNotImplemented, "no match store configured")
		return
	}

	demandID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid demand id")
		return
	}

	results, err := s.matches.MatchesForDemand(r.Context(), demandID)
	if err != nil {
		s.engineError(w, err)
		return
	}
	if results == nil {
		results = []types.MatchResult{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"demand_id": demandID,
		"matches":   results,
	})
}

// scoreRequest is an ad-hoc candidate/demand pair to evaluate.
type scoreRequest struct {
	Candidate types.Candidate `json:"candidate"`
	Demand    types.Demand    `json:"demand"`
}

// handleScore evaluates one candidate against one demand. The result is
// returned even when it falls below the ranked-list inclusion floor.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.generator.ScoreOne(r.Context(), &req.Candidate, &req.Demand)
	if err != nil {
		s.engineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleSkillGaps runs the organization-wide gap analysis.
func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	entries, err := s.analyzer.SkillGaps(r.Context())
	if err != nil {
		s.engineError(w, err)
		return
	}
	if entries == nil {
		entries = []types.SkillGapEntry{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"skill_gaps": entries})
}

// engineError maps engine error types to HTTP statuses.
func (s *Server) engineError(w http.ResponseWriter, err error) {
	var notFound *matching.NotFoundError
	if errors.As(err, &notFound) {
		s.errorResponse(w, http.StatusNotFound, notFound.Error())
		return
	}

	var invalid *types.InvalidInputError
	if errors.As(err, &invalid) {
		s.errorResponse(w, http.StatusUnprocessableEntity, invalid.Error())
		return
	}

	slog.Error("request failed", "error", err)
	s.errorResponse(w, http.StatusInternalServerError, "internal error")
}
