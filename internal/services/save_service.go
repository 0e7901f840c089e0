// internal/services/save_service.go
// Save lifecycle: create_save, get_saves, load_save, delete_save (spec.md §6).

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// SaveService handles save-world creation and ownership.
type SaveService struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewSaveService creates a new save service.
func NewSaveService(repos *repositories.Container, logger *log.Logger) *SaveService {
	return &SaveService{repos: repos, logger: logger}
}

// DefaultRegions is the fixed set of league regions a new save starts with.
var DefaultRegions = []string{"LPL", "LCK", "LEC", "LCS"}

// Create materializes a new world: a Save, its Regions, and is the entry
// point fixture generation (team/player seeding) is layered on top of by
// the caller once the save exists.
func (s *SaveService) Create(ctx context.Context, ownerID models.ID, name string) (*models.Save, error) {
	save := &models.Save{
		OwnerID:       ownerID,
		Name:          name,
		CurrentSeason: 1,
		CurrentPhase:  models.PhaseSpringRegular,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.repos.Save.Create(ctx, save); err != nil {
		return nil, fmt.Errorf("failed to create save: %w", err)
	}

	for _, code := range DefaultRegions {
		region := &models.Region{SaveID: save.ID, Code: code, Name: code}
		if err := s.repos.Save.CreateRegion(ctx, region); err != nil {
			return nil, fmt.Errorf("failed to create region %s: %w", code, err)
		}
	}

	return save, nil
}

// GetByID retrieves a save by ID.
func (s *SaveService) GetByID(ctx context.Context, id models.ID) (*models.Save, error) {
	return s.repos.Save.GetByID(ctx, id)
}

// ListByOwner retrieves every save a user owns.
func (s *SaveService) ListByOwner(ctx context.Context, ownerID models.ID) ([]*models.Save, error) {
	return s.repos.Save.ListByOwner(ctx, ownerID)
}

// Regions lists the regions belonging to a save.
func (s *SaveService) Regions(ctx context.Context, saveID models.ID) ([]*models.Region, error) {
	return s.repos.Save.ListRegionsBySave(ctx, saveID)
}

// Delete removes a save and (via FK cascade at the schema level) everything
// it owns.
func (s *SaveService) Delete(ctx context.Context, id models.ID) error {
	return s.repos.Save.Delete(ctx, id)
}

// IsOwner checks whether a user owns the given save (mirrors the teacher's
// RequireTournamentOwner authorization check, applied here to Save
// ownership instead).
func (s *SaveService) IsOwner(ctx context.Context, saveID, userID models.ID) (bool, error) {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return false, err
	}
	return save.OwnerID == userID, nil
}
