// internal/repositories/honor_repository.go
// Honor data access layer (spec.md §4.6/§4.7): idempotent tournament and
// annual award rows.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// HonorRepository handles honor data access
type HonorRepository struct {
	db *sql.DB
}

// NewHonorRepository creates a new honor repository
func NewHonorRepository(db *sql.DB) *HonorRepository {
	return &HonorRepository{db: db}
}

// Exists reports whether a honor row already exists for a key, making
// honor emission idempotent across repeated settlement runs.
func (r *HonorRepository) Exists(ctx context.Context, saveID models.ID, key string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM honors WHERE save_id = ? AND ` + "`key`" + ` = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, saveID, key).Scan(&exists)
	return exists, err
}

// Create inserts a new honor row, assigning the auto-incremented ID back
// onto it.
func (r *HonorRepository) Create(ctx context.Context, h *models.Honor) error {
	query := `
		INSERT INTO honors (save_id, season, type, player_id, team_id, phase, ` + "`key`" + `, awarded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, h.SaveID, h.Season, h.Type, h.PlayerID, h.TeamID, h.Phase, h.Key, h.AwardedAt)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = models.ID(id)
	return nil
}

// ListByPlayer retrieves every honor awarded to a player
func (r *HonorRepository) ListByPlayer(ctx context.Context, playerID models.ID) ([]*models.Honor, error) {
	query := `
		SELECT id, save_id, season, type, player_id, team_id, phase, ` + "`key`" + `, awarded_at
		FROM honors WHERE player_id = ? ORDER BY awarded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHonors(rows)
}

// ListBySeasonType retrieves every honor of one type awarded within a season
// (used to rebuild Top 20 / All-Pro / Rookie / MVP listings).
func (r *HonorRepository) ListBySeasonType(ctx context.Context, saveID models.ID, season uint32, t models.HonorType) ([]*models.Honor, error) {
	query := `
		SELECT id, save_id, season, type, player_id, team_id, phase, ` + "`key`" + `, awarded_at
		FROM honors WHERE save_id = ? AND season = ? AND type = ?
	`
	rows, err := r.db.QueryContext(ctx, query, saveID, season, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHonors(rows)
}

func scanHonors(rows *sql.Rows) ([]*models.Honor, error) {
	honors := make([]*models.Honor, 0)
	for rows.Next() {
		var h models.Honor
		if err := rows.Scan(&h.ID, &h.SaveID, &h.Season, &h.Type, &h.PlayerID, &h.TeamID, &h.Phase, &h.Key, &h.AwardedAt); err != nil {
			return nil, err
		}
		honors = append(honors, &h)
	}
	return honors, nil
}
