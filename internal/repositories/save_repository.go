// internal/repositories/save_repository.go
// Save (world instance) and Region data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-planner/internal/models"
)

// SaveRepository handles Save and Region data access
type SaveRepository struct {
	db *sql.DB
}

// NewSaveRepository creates a new save repository
func NewSaveRepository(db *sql.DB) *SaveRepository {
	return &SaveRepository{db: db}
}

// Create inserts a new save, assigning the auto-incremented ID back onto it
// so callers can immediately use it to key dependent rows (e.g. Regions).
func (r *SaveRepository) Create(ctx context.Context, save *models.Save) error {
	query := `
		INSERT INTO saves (
			owner_id, name, current_season, current_phase, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		save.OwnerID, save.Name, save.CurrentSeason,
		save.CurrentPhase, save.CreatedAt, save.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	save.ID = models.ID(id)
	return nil
}

// GetByID retrieves a save by ID
func (r *SaveRepository) GetByID(ctx context.Context, id models.ID) (*models.Save, error) {
	query := `
		SELECT id, owner_id, name, current_season, current_phase, created_at, updated_at
		FROM saves WHERE id = ?
	`
	var s models.Save
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.CurrentSeason, &s.CurrentPhase, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("save not found")
	}
	return &s, err
}

// ListByOwner retrieves every save owned by a user
func (r *SaveRepository) ListByOwner(ctx context.Context, ownerID models.ID) ([]*models.Save, error) {
	query := `
		SELECT id, owner_id, name, current_season, current_phase, created_at, updated_at
		FROM saves WHERE owner_id = ? ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saves := make([]*models.Save, 0)
	for rows.Next() {
		var s models.Save
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.CurrentSeason, &s.CurrentPhase, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		saves = append(saves, &s)
	}
	return saves, nil
}

// UpdatePhase advances a save's season/phase pointer
func (r *SaveRepository) UpdatePhase(ctx context.Context, id models.ID, season uint32, phase models.SeasonPhase) error {
	query := `UPDATE saves SET current_season = ?, current_phase = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, season, phase, id)
	return err
}

// Delete removes a save and cascades to its owned entities (FK ON DELETE CASCADE).
func (r *SaveRepository) Delete(ctx context.Context, id models.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	return err
}

// CreateRegion inserts a region for a save
func (r *SaveRepository) CreateRegion(ctx context.Context, region *models.Region) error {
	query := `INSERT INTO regions (id, save_id, code, name) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, region.ID, region.SaveID, region.Code, region.Name)
	return err
}

// ListRegionsBySave retrieves every region within a save
func (r *SaveRepository) ListRegionsBySave(ctx context.Context, saveID models.ID) ([]*models.Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, save_id, code, name FROM regions WHERE save_id = ?`, saveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regions := make([]*models.Region, 0)
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.SaveID, &reg.Code, &reg.Name); err != nil {
			return nil, err
		}
		regions = append(regions, &reg)
	}
	return regions, nil
}
