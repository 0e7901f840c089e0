// internal/services/team_service.go
// Team roster and finance read/update operations (spec.md §6 "Teams / players").

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// TeamService handles team-related business logic.
type TeamService struct {
	repos  *repositories.Container
	cache  *CacheService
	logger *log.Logger
}

// NewTeamService creates a new team service.
func NewTeamService(repos *repositories.Container, cache *CacheService, logger *log.Logger) *TeamService {
	return &TeamService{repos: repos, cache: cache, logger: logger}
}

// GetByID retrieves a team by ID, using a short-lived cache entry.
func (s *TeamService) GetByID(ctx context.Context, id models.ID) (*models.Team, error) {
	cacheKey := fmt.Sprintf("team_%d", id)
	var team models.Team
	if err := s.cache.Get(cacheKey, &team); err == nil {
		return &team, nil
	}

	t, err := s.repos.Team.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, t, 1*time.Minute)
	return t, nil
}

// ListBySave retrieves every team in a save (get_all_teams).
func (s *TeamService) ListBySave(ctx context.Context, saveID models.ID) ([]*models.Team, error) {
	return s.repos.Team.ListBySave(ctx, saveID)
}

// ListByRegion retrieves a region's teams (get_teams_by_region).
func (s *TeamService) ListByRegion(ctx context.Context, regionID models.ID) ([]*models.Team, error) {
	return s.repos.Team.ListByRegion(ctx, regionID)
}

// Roster retrieves a team's active players (get_team_roster).
func (s *TeamService) Roster(ctx context.Context, teamID models.ID) ([]*models.Player, error) {
	return s.repos.Player.ListByTeam(ctx, teamID)
}

// Update persists organizer-editable team fields (update_team).
func (s *TeamService) Update(ctx context.Context, team *models.Team) error {
	if err := s.repos.Team.UpdateRecord(ctx, team); err != nil {
		return err
	}
	s.cache.Delete(fmt.Sprintf("team_%d", team.ID))
	return nil
}

// SetStarter toggles a player's starter flag within their team, enforcing
// exactly five starters at a time (one per Position) is the caller's
// responsibility at the command layer; this just persists the flip.
func (s *TeamService) SetStarter(ctx context.Context, player *models.Player, starter bool) error {
	player.IsStarter = starter
	return s.repos.Player.Update(ctx, player)
}
