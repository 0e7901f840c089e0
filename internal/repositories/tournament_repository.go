// internal/repositories/tournament_repository.go
// Tournament data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-planner/internal/models"
)

// TournamentRepository handles tournament data access
type TournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *sql.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentColumns = `
	id, save_id, season, phase, region_id, format, status, rounds_total, created_at, updated_at
`

func scanTournament(row interface{ Scan(...interface{}) error }, t *models.Tournament) error {
	return row.Scan(
		&t.ID, &t.SaveID, &t.Season, &t.Phase, &t.RegionID, &t.Format,
		&t.Status, &t.RoundsTotal, &t.CreatedAt, &t.UpdatedAt,
	)
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `INSERT INTO tournaments (` + tournamentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.SaveID, t.Season, t.Phase, t.RegionID, t.Format,
		t.Status, t.RoundsTotal, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetByID retrieves a tournament by ID
func (r *TournamentRepository) GetByID(ctx context.Context, id models.ID) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ?`
	var t models.Tournament
	err := scanTournament(r.db.QueryRowContext(ctx, query, id), &t)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament not found")
	}
	return &t, err
}

// GetBySeasonPhase retrieves the tournament(s) active for a save's season/phase
func (r *TournamentRepository) GetBySeasonPhase(ctx context.Context, saveID models.ID, season uint32, phase models.SeasonPhase) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE save_id = ? AND season = ? AND phase = ?`
	rows, err := r.db.QueryContext(ctx, query, saveID, season, phase)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

// GetBySeason retrieves every tournament played across all phases of a
// save's season, used to aggregate annual award statlines.
func (r *TournamentRepository) GetBySeason(ctx context.Context, saveID models.ID, season uint32) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE save_id = ? AND season = ?`
	rows, err := r.db.QueryContext(ctx, query, saveID, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

// UpdateStatus transitions a tournament's lifecycle status
func (r *TournamentRepository) UpdateStatus(ctx context.Context, id models.ID, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}
