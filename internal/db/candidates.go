package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// CandidateByID retrieves one candidate, or (nil, nil) when it does not exist.
func (db *DB) CandidateByID(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, primary_skill, primary_years, secondary_skills, availability
		 FROM candidates WHERE id = $1`,
		id,
	)
	cand, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return cand, nil
}

// CandidatesByAvailability retrieves all candidates in any of the given
// availability states, ordered by name for stable pool ordering.
func (db *DB) CandidatesByAvailability(ctx context.Context, availabilities ...types.Availability) ([]types.Candidate, error) {
	states := make([]string, len(availabilities))
	for i, a := range availabilities {
		states[i] = string(a)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, primary_skill, primary_years, secondary_skills, availability
		 FROM candidates WHERE availability = ANY($1) ORDER BY name, id`,
		states,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *cand)
	}
	return candidates, rows.Err()
}

// SaveCandidate inserts or updates a candidate profile.
func (db *DB) SaveCandidate(ctx context.Context, cand *types.Candidate) error {
	secondaries, err := json.Marshal(cand.SecondarySkills)
	if err != nil {
		return fmt.Errorf("failed to marshal secondary skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidates (id, name, primary_skill, primary_years, secondary_skills, availability)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   name = $2, primary_skill = $3, primary_years = $4,
		   secondary_skills = $5, availability = $6, updated_at = NOW()`,
		cand.ID, cand.Name, cand.PrimarySkill.Name, cand.PrimarySkill.Years,
		secondaries, string(cand.Availability),
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

func scanCandidate(row pgx.Row) (*types.Candidate, error) {
	var cand types.Candidate
	var availability string
	var secondaries []byte

	err := row.Scan(&cand.ID, &cand.Name, &cand.PrimarySkill.Name,
		&cand.PrimarySkill.Years, &secondaries, &availability)
	if err != nil {
		return nil, err
	}

	cand.Availability = types.Availability(availability)
	if len(secondaries) > 0 {
		if err := json.Unmarshal(secondaries, &cand.SecondarySkills); err != nil {
			return nil, fmt.Errorf("failed to parse secondary skills: %w", err)
		}
	}
	return &cand, nil
}
