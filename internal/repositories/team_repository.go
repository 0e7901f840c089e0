// internal/repositories/team_repository.go
// Team data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-planner/internal/models"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `
	id, save_id, region_id, name, short_name, power_rating,
	total_matches, wins, win_rate, annual_points, cross_year_points,
	balance, gm_personality
`

func scanTeam(row interface{ Scan(...interface{}) error }, t *models.Team) error {
	return row.Scan(
		&t.ID, &t.SaveID, &t.RegionID, &t.Name, &t.ShortName, &t.PowerRating,
		&t.TotalMatches, &t.Wins, &t.WinRate, &t.AnnualPoints, &t.CrossYearPoints,
		&t.Balance, &t.GMPersonality,
	)
}

// Create inserts a new team
func (r *TeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `INSERT INTO teams (` + teamColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.SaveID, t.RegionID, t.Name, t.ShortName, t.PowerRating,
		t.TotalMatches, t.Wins, t.WinRate, t.AnnualPoints, t.CrossYearPoints,
		t.Balance, t.GMPersonality,
	)
	return err
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id models.ID) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = ?`
	var t models.Team
	err := scanTeam(r.db.QueryRowContext(ctx, query, id), &t)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found")
	}
	return &t, err
}

// ListBySave retrieves every team in a save
func (r *TeamRepository) ListBySave(ctx context.Context, saveID models.ID) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE save_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, saveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, nil
}

// ListByRegion retrieves every team in a region
func (r *TeamRepository) ListByRegion(ctx context.Context, regionID models.ID) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE region_id = ? ORDER BY power_rating DESC`
	rows, err := r.db.QueryContext(ctx, query, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, nil
}

// UpdateRecord persists a team's post-match aggregate stats
func (r *TeamRepository) UpdateRecord(ctx context.Context, t *models.Team) error {
	query := `
		UPDATE teams SET
			total_matches = ?, wins = ?, win_rate = ?,
			annual_points = ?, cross_year_points = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, t.TotalMatches, t.Wins, t.WinRate, t.AnnualPoints, t.CrossYearPoints, t.ID)
	return err
}

// UpdateBalance adjusts a team's financial balance by a signed delta
func (r *TeamRepository) UpdateBalance(ctx context.Context, teamID models.ID, delta int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE teams SET balance = balance + ? WHERE id = ?`, delta, teamID)
	return err
}

// ResetAnnualPoints rolls annual points into cross-year points at season end
// and zeroes the annual counter (spec.md §4.1).
func (r *TeamRepository) ResetAnnualPoints(ctx context.Context, teamID models.ID) error {
	query := `UPDATE teams SET cross_year_points = cross_year_points + annual_points, annual_points = 0 WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, teamID)
	return err
}
