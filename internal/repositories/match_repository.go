// internal/repositories/match_repository.go
// Match data access layer

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tournament-planner/internal/models"
)

// MatchRepository handles match data access
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, round_number, match_number, format, team1_id, team2_id,
	winner_id, score1, score2, status, next_match_id, mvp_player_id, played_at,
	created_at, updated_at
`

func scanMatch(row interface{ Scan(...interface{}) error }, m *models.Match) error {
	return row.Scan(
		&m.ID, &m.TournamentID, &m.RoundNumber, &m.MatchNumber, &m.Format,
		&m.Team1ID, &m.Team2ID, &m.WinnerID, &m.Score1, &m.Score2, &m.Status,
		&m.NextMatchID, &m.MvpPlayerID, &m.PlayedAt, &m.CreatedAt, &m.UpdatedAt,
	)
}

// Create inserts a new match (series) shell before it is played
func (r *MatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `INSERT INTO matches (` + matchColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.TournamentID, m.RoundNumber, m.MatchNumber, m.Format,
		m.Team1ID, m.Team2ID, m.WinnerID, m.Score1, m.Score2, m.Status,
		m.NextMatchID, m.MvpPlayerID, m.PlayedAt, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id models.ID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = ?`
	var m models.Match
	err := scanMatch(r.db.QueryRowContext(ctx, query, id), &m)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match not found")
	}
	return &m, err
}

// ListByTournament retrieves all matches for a tournament, in bracket order
func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID models.ID) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = ? ORDER BY round_number, match_number`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

// GetNextMatch retrieves the bracket match a completed match feeds into
func (r *MatchRepository) GetNextMatch(ctx context.Context, matchID models.ID) (*models.Match, error) {
	query := `
		SELECT m2.id, m2.tournament_id, m2.round_number, m2.match_number, m2.format,
			m2.team1_id, m2.team2_id, m2.winner_id, m2.score1, m2.score2, m2.status,
			m2.next_match_id, m2.mvp_player_id, m2.played_at, m2.created_at, m2.updated_at
		FROM matches m1
		JOIN matches m2 ON m1.next_match_id = m2.id
		WHERE m1.id = ?
	`
	var m models.Match
	err := scanMatch(r.db.QueryRowContext(ctx, query, matchID), &m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &m, err
}

// SetFinalResult persists the completed series score and MVP
func (r *MatchRepository) SetFinalResult(ctx context.Context, id models.ID, score1, score2 int, winnerID, mvpPlayerID models.ID) error {
	query := `
		UPDATE matches SET
			score1 = ?, score2 = ?, winner_id = ?, mvp_player_id = ?,
			status = ?, played_at = NOW(), updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, score1, score2, winnerID, mvpPlayerID, models.MatchCompleted, id)
	return err
}

// UpdateStatus updates a series' lifecycle status
func (r *MatchRepository) UpdateStatus(ctx context.Context, id models.ID, status models.MatchStatus) error {
	query := `UPDATE matches SET status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// CreateGameResult records one completed game within a series
func (r *MatchRepository) CreateGameResult(ctx context.Context, g *models.GameResult) error {
	statsJSON, err := json.Marshal(g.PlayerStats)
	if err != nil {
		return err
	}
	eventsJSON, err := json.Marshal(g.Events)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO game_results (
			id, match_id, game_number, winner_team_id, duration_minutes,
			player_stats, events, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, g.ID, g.MatchID, g.GameNumber, g.WinnerTeamID, g.DurationMin, statsJSON, eventsJSON, g.CreatedAt)
	return err
}

// ListGameResults retrieves every game played within a series, in order
func (r *MatchRepository) ListGameResults(ctx context.Context, matchID models.ID) ([]*models.GameResult, error) {
	query := `
		SELECT id, match_id, game_number, winner_team_id, duration_minutes, player_stats, events, created_at
		FROM game_results WHERE match_id = ? ORDER BY game_number
	`
	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*models.GameResult, 0)
	for rows.Next() {
		var g models.GameResult
		var statsJSON, eventsJSON []byte
		if err := rows.Scan(&g.ID, &g.MatchID, &g.GameNumber, &g.WinnerTeamID, &g.DurationMin, &statsJSON, &eventsJSON, &g.CreatedAt); err != nil {
			return nil, err
		}
		if len(statsJSON) > 0 {
			if err := json.Unmarshal(statsJSON, &g.PlayerStats); err != nil {
				return nil, err
			}
		}
		if len(eventsJSON) > 0 {
			if err := json.Unmarshal(eventsJSON, &g.Events); err != nil {
				return nil, err
			}
		}
		results = append(results, &g)
	}
	return results, nil
}
