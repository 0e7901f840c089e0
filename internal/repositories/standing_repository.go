// internal/repositories/standing_repository.go
// TournamentEntry (team standings within a tournament) data access layer.
// Replaces the teacher's generic tournament_participant_repository.go now
// that every participant is a Team (see DESIGN.md's Open-question decision
// on the deleted Participant abstraction).

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// StandingRepository handles TournamentEntry data access
type StandingRepository struct {
	db *sql.DB
}

// NewStandingRepository creates a new standing repository
func NewStandingRepository(db *sql.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

const standingColumns = `id, tournament_id, team_id, seed, group_name, wins, losses, points, eliminated`

func scanStanding(row interface{ Scan(...interface{}) error }, s *models.TournamentEntry) error {
	return row.Scan(&s.ID, &s.TournamentID, &s.TeamID, &s.Seed, &s.GroupName, &s.Wins, &s.Losses, &s.Points, &s.Eliminated)
}

// Create inserts a tournament entry (team registration/seed)
func (r *StandingRepository) Create(ctx context.Context, s *models.TournamentEntry) error {
	query := `INSERT INTO tournament_entries (` + standingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.TournamentID, s.TeamID, s.Seed, s.GroupName, s.Wins, s.Losses, s.Points, s.Eliminated)
	return err
}

// ListByTournament retrieves every entry for a tournament, ordered by
// current standing (points desc, then wins desc, then seed).
func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID models.ID) ([]*models.TournamentEntry, error) {
	query := `SELECT ` + standingColumns + ` FROM tournament_entries WHERE tournament_id = ? ORDER BY points DESC, wins DESC, seed ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.TournamentEntry, 0)
	for rows.Next() {
		var s models.TournamentEntry
		if err := scanStanding(rows, &s); err != nil {
			return nil, err
		}
		entries = append(entries, &s)
	}
	return entries, nil
}

// RecordResult applies one BO3 match result's points/wins/losses to an entry.
func (r *StandingRepository) RecordResult(ctx context.Context, entryID models.ID, won bool, wins, losses int) error {
	points := models.StandingPoints(wins, losses)
	query := `
		UPDATE tournament_entries SET
			wins = wins + ?, losses = losses + ?, points = points + ?
		WHERE id = ?
	`
	wDelta, lDelta := 0, 0
	if won {
		wDelta = 1
	} else {
		lDelta = 1
	}
	_, err := r.db.ExecContext(ctx, query, wDelta, lDelta, points, entryID)
	return err
}

// Eliminate marks a knockout entry as eliminated.
func (r *StandingRepository) Eliminate(ctx context.Context, entryID models.ID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tournament_entries SET eliminated = TRUE WHERE id = ?`, entryID)
	return err
}
