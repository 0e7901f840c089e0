// internal/repositories/ladder_repository.go
// Solo ladder data access layer (spec.md §4.6): tournaments, per-player
// ratings, champion pool/version tiers, and ad hoc 5v5 matches.

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tournament-planner/internal/models"
)

// LadderRepository handles ladder data access
type LadderRepository struct {
	db *sql.DB
}

// NewLadderRepository creates a new ladder repository
func NewLadderRepository(db *sql.DB) *LadderRepository {
	return &LadderRepository{db: db}
}

// CreateTournament inserts a new ladder tournament, assigning the
// auto-incremented ID back onto it.
func (r *LadderRepository) CreateTournament(ctx context.Context, t *models.LadderTournament) error {
	query := `INSERT INTO ladder_tournaments (save_id, season, event_type, round, status) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, t.SaveID, t.Season, t.EventType, t.Round, t.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = models.ID(id)
	return nil
}

// GetTournament retrieves a ladder tournament by ID
func (r *LadderRepository) GetTournament(ctx context.Context, id models.ID) (*models.LadderTournament, error) {
	query := `SELECT id, save_id, season, event_type, round, status FROM ladder_tournaments WHERE id = ?`
	var t models.LadderTournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.SaveID, &t.Season, &t.EventType, &t.Round, &t.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ladder tournament not found")
	}
	return &t, err
}

// GetTournamentBySeason retrieves the (at most one) ladder tournament for
// a save's season and event type.
func (r *LadderRepository) GetTournamentBySeason(ctx context.Context, saveID models.ID, season uint32, eventType models.LadderEventType) (*models.LadderTournament, error) {
	query := `SELECT id, save_id, season, event_type, round, status FROM ladder_tournaments WHERE save_id = ? AND season = ? AND event_type = ?`
	var t models.LadderTournament
	err := r.db.QueryRowContext(ctx, query, saveID, season, eventType).Scan(&t.ID, &t.SaveID, &t.Season, &t.EventType, &t.Round, &t.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &t, err
}

// AdvanceRound persists a ladder tournament's round counter and status
func (r *LadderRepository) AdvanceRound(ctx context.Context, id models.ID, round int, status models.LadderTournamentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE ladder_tournaments SET round = ?, status = ? WHERE id = ?`, round, status, id)
	return err
}

// GetOrCreateRating retrieves a player's ladder rating, seeding it at
// BaseLadderRating if this is their first appearance on this ladder.
func (r *LadderRepository) GetOrCreateRating(ctx context.Context, playerID, ladderID models.ID) (*models.LadderRating, error) {
	query := `
		SELECT player_id, ladder_id, rating, max_rating, games_played, wins, losses, mvp_count, total_influence
		FROM ladder_ratings WHERE player_id = ? AND ladder_id = ?
	`
	var rating models.LadderRating
	err := r.db.QueryRowContext(ctx, query, playerID, ladderID).Scan(
		&rating.PlayerID, &rating.LadderID, &rating.Rating, &rating.MaxRating,
		&rating.GamesPlayed, &rating.Wins, &rating.Losses, &rating.MVPCount, &rating.TotalInfluence,
	)
	if err == sql.ErrNoRows {
		rating = models.LadderRating{
			PlayerID: playerID, LadderID: ladderID,
			Rating: models.BaseLadderRating, MaxRating: models.BaseLadderRating,
		}
		insertQuery := `
			INSERT INTO ladder_ratings (player_id, ladder_id, rating, max_rating, games_played, wins, losses, mvp_count, total_influence)
			VALUES (?, ?, ?, ?, 0, 0, 0, 0, 0)
		`
		if _, err := r.db.ExecContext(ctx, insertQuery, playerID, ladderID, rating.Rating, rating.MaxRating); err != nil {
			return nil, err
		}
		return &rating, nil
	}
	return &rating, err
}

// UpdateRating persists a player's post-match ladder rating state
func (r *LadderRepository) UpdateRating(ctx context.Context, rating *models.LadderRating) error {
	query := `
		UPDATE ladder_ratings SET
			rating = ?, max_rating = ?, games_played = ?, wins = ?, losses = ?,
			mvp_count = ?, total_influence = ?
		WHERE player_id = ? AND ladder_id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		rating.Rating, rating.MaxRating, rating.GamesPlayed, rating.Wins, rating.Losses,
		rating.MVPCount, rating.TotalInfluence, rating.PlayerID, rating.LadderID,
	)
	return err
}

// RankLadder retrieves every rating on a ladder ordered (rating, wins, mvp_count) desc
func (r *LadderRepository) RankLadder(ctx context.Context, ladderID models.ID) ([]models.LadderRating, error) {
	query := `
		SELECT player_id, ladder_id, rating, max_rating, games_played, wins, losses, mvp_count, total_influence
		FROM ladder_ratings WHERE ladder_id = ?
		ORDER BY rating DESC, wins DESC, mvp_count DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ladderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]models.LadderRating, 0)
	for rows.Next() {
		var rt models.LadderRating
		if err := rows.Scan(&rt.PlayerID, &rt.LadderID, &rt.Rating, &rt.MaxRating,
			&rt.GamesPlayed, &rt.Wins, &rt.Losses, &rt.MVPCount, &rt.TotalInfluence); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, nil
}

// CreateMatch inserts a completed 5v5 ladder match, assigning the
// auto-incremented ID back onto it.
func (r *LadderRepository) CreateMatch(ctx context.Context, m *models.LadderMatch) error {
	query := `
		INSERT INTO ladder_matches (
			ladder_id, round, match_number, blue_team, red_team,
			blue_avg_rating, red_avg_rating, blue_power, red_power,
			winner_side, mvp_player_id, game_duration_min, played_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	blueJSON, err := json.Marshal(m.BlueTeam[:])
	if err != nil {
		return err
	}
	redJSON, err := json.Marshal(m.RedTeam[:])
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query,
		m.LadderID, m.Round, m.MatchNumber,
		blueJSON, redJSON,
		m.BlueAvgRating, m.RedAvgRating, m.BluePower, m.RedPower,
		m.WinnerSide, m.MVPPlayerID, m.GameDurationMin, m.PlayedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = models.ID(id)
	return nil
}

// ListMatchesByRound retrieves every match simulated for a ladder round
func (r *LadderRepository) ListMatchesByRound(ctx context.Context, ladderID models.ID, round int) ([]*models.LadderMatch, error) {
	query := `
		SELECT id, ladder_id, round, match_number, blue_team, red_team,
			blue_avg_rating, red_avg_rating, blue_power, red_power,
			winner_side, mvp_player_id, game_duration_min, played_at
		FROM ladder_matches WHERE ladder_id = ? AND round = ?
	`
	rows, err := r.db.QueryContext(ctx, query, ladderID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.LadderMatch, 0)
	for rows.Next() {
		var m models.LadderMatch
		var blueJSON, redJSON []byte
		if err := rows.Scan(&m.ID, &m.LadderID, &m.Round, &m.MatchNumber, &blueJSON, &redJSON,
			&m.BlueAvgRating, &m.RedAvgRating, &m.BluePower, &m.RedPower,
			&m.WinnerSide, &m.MVPPlayerID, &m.GameDurationMin, &m.PlayedAt); err != nil {
			return nil, err
		}
		if err := unmarshalIDArray(blueJSON, &m.BlueTeam); err != nil {
			return nil, err
		}
		if err := unmarshalIDArray(redJSON, &m.RedTeam); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

func unmarshalIDArray(raw []byte, out *[5]models.ID) error {
	if len(raw) == 0 {
		return nil
	}
	var ids []models.ID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return err
	}
	for i := 0; i < len(ids) && i < 5; i++ {
		out[i] = ids[i]
	}
	return nil
}

// ListChampionTiers retrieves every champion's version tier for a meta version
func (r *LadderRepository) ListChampionTiers(ctx context.Context, metaVersionID models.ID) ([]models.ChampionTier, error) {
	query := `SELECT meta_version_id, champion_id, tier FROM champion_tiers WHERE meta_version_id = ?`
	rows, err := r.db.QueryContext(ctx, query, metaVersionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := make([]models.ChampionTier, 0)
	for rows.Next() {
		var t models.ChampionTier
		if err := rows.Scan(&t.MetaVersionID, &t.ChampionID, &t.Tier); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// GetPlayerMastery retrieves a player's mastery tier on a champion, or zero if unplayed
func (r *LadderRepository) GetPlayerMastery(ctx context.Context, playerID, championID models.ID) (int, error) {
	query := `SELECT tier FROM player_champion_mastery WHERE player_id = ? AND champion_id = ?`
	var tier int
	err := r.db.QueryRowContext(ctx, query, playerID, championID).Scan(&tier)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return tier, err
}
