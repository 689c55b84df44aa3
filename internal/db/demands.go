package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// DemandByID retrieves one demand, or (nil, nil) when it does not exist.
func (db *DB) DemandByID(ctx context.Context, id uuid.UUID) (*types.Demand, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, role_title, primary_skill, min_years, max_years, secondary_skills, priority, status
		 FROM demands WHERE id = $1`,
		id,
	)
	demand, err := scanDemand(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get demand: %w", err)
	}
	return demand, nil
}

// DemandsByStatus retrieves all demands in any of the given statuses, ordered
// by creation time so analysis runs see a stable demand order.
func (db *DB) DemandsByStatus(ctx context.Context, statuses ...types.DemandStatus) ([]types.Demand, error) {
	states := make([]string, len(statuses))
	for i, s := range statuses {
		states[i] = string(s)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, role_title, primary_skill, min_years, max_years, secondary_skills, priority, status
		 FROM demands WHERE status = ANY($1) ORDER BY created_at, id`,
		states,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list demands: %w", err)
	}
	defer rows.Close()

	var demands []types.Demand
	for rows.Next() {
		demand, err := scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		demands = append(demands, *demand)
	}
	return demands, rows.Err()
}

// SaveDemand inserts or updates a demand.
func (db *DB) SaveDemand(ctx context.Context, demand *types.Demand) error {
	secondaries, err := json.Marshal(demand.SecondarySkills)
	if err != nil {
		return fmt.Errorf("failed to marshal secondary skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO demands (id, role_title, primary_skill, min_years, max_years, secondary_skills, priority, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   role_title = $2, primary_skill = $3, min_years = $4, max_years = $5,
		   secondary_skills = $6, priority = $7, status = $8, updated_at = NOW()`,
		demand.ID, demand.Role, demand.PrimarySkill, demand.MinYears, demand.MaxYears,
		secondaries, string(demand.Priority), string(demand.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to save demand: %w", err)
	}
	return nil
}

func scanDemand(row pgx.Row) (*types.Demand, error) {
	var demand types.Demand
	var priority, status string
	var secondaries []byte

	err := row.Scan(&demand.ID, &demand.Role, &demand.PrimarySkill,
		&demand.MinYears, &demand.MaxYears, &secondaries, &priority, &status)
	if err != nil {
		return nil, err
	}

	demand.Priority = types.Priority(priority)
	demand.Status = types.DemandStatus(status)
	if len(secondaries) > 0 {
		if err := json.Unmarshal(secondaries, &demand.SecondarySkills); err != nil {
			return nil, fmt.Errorf("failed to parse secondary skills: %w", err)
		}
	}
	return &demand, nil
}
