package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// ReplaceMatches swaps the stored match set for a demand in one transaction.
// Rank order is persisted explicitly so reads never depend on insert order.
func (db *DB) ReplaceMatches(ctx context.Context, demandID uuid.UUID, results []types.MatchResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE demand_id = $1`, demandID); err != nil {
		return fmt.Errorf("failed to clear previous matches: %w", err)
	}

	for rank, result := range results {
		missing, err := json.Marshal(result.MissingSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal missing skills: %w", err)
		}
		matched, err := json.Marshal(result.SkillsMatched)
		if err != nil {
			return fmt.Errorf("failed to marshal matched skills: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO matches (demand_id, candidate_id, rank, score, match_type, missing_skills, skills_matched)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			demandID, result.CandidateID, rank, result.Score,
			string(result.MatchType), missing, matched,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match for candidate %s: %w", result.CandidateID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit match set: %w", err)
	}
	return nil
}

// MatchesForDemand retrieves the current stored match set for a demand in
// rank order.
func (db *DB) MatchesForDemand(ctx context.Context, demandID uuid.UUID) ([]types.MatchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT demand_id, candidate_id, score, match_type, missing_skills, skills_matched
		 FROM matches WHERE demand_id = $1 ORDER BY rank`,
		demandID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var results []types.MatchResult
	for rows.Next() {
		var result types.MatchResult
		var matchType string
		var missing, matched []byte

		if err := rows.Scan(&result.DemandID, &result.CandidateID, &result.Score,
			&matchType, &missing, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		result.MatchType = types.MatchType(matchType)
		if len(missing) > 0 {
			if err := json.Unmarshal(missing, &result.MissingSkills); err != nil {
				return nil, fmt.Errorf("failed to parse missing skills: %w", err)
			}
		}
		if len(matched) > 0 {
			if err := json.Unmarshal(matched, &result.SkillsMatched); err != nil {
				return nil, fmt.Errorf("failed to parse matched skills: %w", err)
			}
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
