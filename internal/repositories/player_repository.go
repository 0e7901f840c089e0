// internal/repositories/player_repository.go
// Player data access layer

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tournament-planner/internal/models"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `
	id, save_id, game_id, age, ability, potential, stability, tag, status,
	position, team_id, salary, market_value, contract_end_season, join_season,
	is_starter, satisfaction, loyalty, traits, is_first_season
`

func scanPlayer(row interface{ Scan(...interface{}) error }, p *models.Player) error {
	var traitsJSON []byte
	err := row.Scan(
		&p.ID, &p.SaveID, &p.GameID, &p.Age, &p.Ability, &p.Potential, &p.Stability,
		&p.Tag, &p.Status, &p.Position, &p.TeamID, &p.Salary, &p.MarketValue,
		&p.ContractEndSeason, &p.JoinSeason, &p.IsStarter, &p.Satisfaction,
		&p.Loyalty, &traitsJSON, &p.IsFirstSeason,
	)
	if err != nil {
		return err
	}
	if len(traitsJSON) > 0 {
		if err := json.Unmarshal(traitsJSON, &p.Traits); err != nil {
			return err
		}
	}
	return nil
}

const playerInsertColumns = `
	save_id, game_id, age, ability, potential, stability, tag, status,
	position, team_id, salary, market_value, contract_end_season, join_season,
	is_starter, satisfaction, loyalty, traits, is_first_season
`

// Create inserts a new player, assigning the auto-incremented ID back onto
// it so callers can key dependent rows (e.g. PlayerFormFactors) immediately.
func (r *PlayerRepository) Create(ctx context.Context, p *models.Player) error {
	traitsJSON, err := json.Marshal(p.Traits)
	if err != nil {
		return err
	}
	query := `INSERT INTO players (` + playerInsertColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		p.SaveID, p.GameID, p.Age, p.Ability, p.Potential, p.Stability,
		p.Tag, p.Status, p.Position, p.TeamID, p.Salary, p.MarketValue,
		p.ContractEndSeason, p.JoinSeason, p.IsStarter, p.Satisfaction,
		p.Loyalty, traitsJSON, p.IsFirstSeason,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = models.ID(id)
	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, id models.ID) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ?`
	var p models.Player
	err := scanPlayer(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found")
	}
	return &p, err
}

// ListByTeam retrieves a team's full roster
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID models.ID) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

// ListFreeAgentsBySave retrieves every unattached active player in a save
func (r *PlayerRepository) ListFreeAgentsBySave(ctx context.Context, saveID models.ID) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE save_id = ? AND team_id IS NULL AND status = ?`
	rows, err := r.db.QueryContext(ctx, query, saveID, models.PlayerActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

// ListActiveBySave retrieves every active player in a save, for settlement passes
func (r *PlayerRepository) ListActiveBySave(ctx context.Context, saveID models.ID) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE save_id = ? AND status = ?`
	rows, err := r.db.QueryContext(ctx, query, saveID, models.PlayerActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

// Update persists the full mutable player row (used after settlement/transfer steps)
func (r *PlayerRepository) Update(ctx context.Context, p *models.Player) error {
	traitsJSON, err := json.Marshal(p.Traits)
	if err != nil {
		return err
	}
	query := `
		UPDATE players SET
			age = ?, ability = ?, potential = ?, stability = ?, tag = ?, status = ?,
			team_id = ?, salary = ?, market_value = ?, contract_end_season = ?,
			is_starter = ?, satisfaction = ?, loyalty = ?, traits = ?, is_first_season = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		p.Age, p.Ability, p.Potential, p.Stability, p.Tag, p.Status,
		p.TeamID, p.Salary, p.MarketValue, p.ContractEndSeason,
		p.IsStarter, p.Satisfaction, p.Loyalty, traitsJSON, p.IsFirstSeason,
		p.ID,
	)
	return err
}

// Reassign moves a player to a new team with a new salary/contract term,
// used by both the transfer window and the draft auction.
func (r *PlayerRepository) Reassign(ctx context.Context, playerID models.ID, teamID *models.ID, salary int64, contractEndSeason uint32) error {
	query := `UPDATE players SET team_id = ?, salary = ?, contract_end_season = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, teamID, salary, contractEndSeason, playerID)
	return err
}

// PlayerFormFactorsRepository handles the 1-to-1 runtime condition row per player
type PlayerFormFactorsRepository struct {
	db *sql.DB
}

func NewPlayerFormFactorsRepository(db *sql.DB) *PlayerFormFactorsRepository {
	return &PlayerFormFactorsRepository{db: db}
}

// GetByPlayer retrieves a player's form state, or a zero-value row if none exists yet.
func (r *PlayerFormFactorsRepository) GetByPlayer(ctx context.Context, playerID models.ID) (*models.PlayerFormFactors, error) {
	query := `
		SELECT player_id, form_cycle, momentum, last_performance, last_match_won, games_since_rest
		FROM player_form_factors WHERE player_id = ?
	`
	var f models.PlayerFormFactors
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&f.PlayerID, &f.FormCycle, &f.Momentum, &f.LastPerformance, &f.LastMatchWon, &f.GamesSinceRest,
	)
	if err == sql.ErrNoRows {
		return &models.PlayerFormFactors{PlayerID: playerID}, nil
	}
	return &f, err
}

// Upsert persists a player's form state after a simulated match.
func (r *PlayerFormFactorsRepository) Upsert(ctx context.Context, f *models.PlayerFormFactors) error {
	query := `
		INSERT INTO player_form_factors (
			player_id, form_cycle, momentum, last_performance, last_match_won, games_since_rest
		) VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			form_cycle = VALUES(form_cycle), momentum = VALUES(momentum),
			last_performance = VALUES(last_performance), last_match_won = VALUES(last_match_won),
			games_since_rest = VALUES(games_since_rest)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.PlayerID, f.FormCycle, f.Momentum, f.LastPerformance, f.LastMatchWon, f.GamesSinceRest,
	)
	return err
}
