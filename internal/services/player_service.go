// internal/services/player_service.go
// Player detail, condition, traits and market-value maintenance
// (spec.md §6 "Teams / players").

package services

import (
	"context"
	"fmt"
	"log"

	"tournament-planner/internal/engines"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// PlayerService handles player read/update operations and the engines that
// derive condition, traits, and market value from a player's stored state.
type PlayerService struct {
	repos     *repositories.Container
	cache     *CacheService
	logger    *log.Logger
	condition *engines.ConditionEngine
}

// NewPlayerService creates a new player service.
func NewPlayerService(repos *repositories.Container, cache *CacheService, logger *log.Logger) *PlayerService {
	return &PlayerService{
		repos:     repos,
		cache:     cache,
		logger:    logger,
		condition: engines.NewConditionEngine(),
	}
}

// GetByID retrieves a player by ID.
func (s *PlayerService) GetByID(ctx context.Context, id models.ID) (*models.Player, error) {
	return s.repos.Player.GetByID(ctx, id)
}

// ListByTeam retrieves a team's roster.
func (s *PlayerService) ListByTeam(ctx context.Context, teamID models.ID) ([]*models.Player, error) {
	return s.repos.Player.ListByTeam(ctx, teamID)
}

// ListFreeAgents retrieves every unsigned active player in a save.
func (s *PlayerService) ListFreeAgents(ctx context.Context, saveID models.ID) ([]*models.Player, error) {
	return s.repos.Player.ListFreeAgentsBySave(ctx, saveID)
}

// Update persists organizer-editable player fields (update_player).
func (s *PlayerService) Update(ctx context.Context, p *models.Player) error {
	if !p.ValidAbility() || !p.ValidAge() {
		return fmt.Errorf("%w: ability/age out of range", ErrInvalidInput)
	}
	return s.repos.Player.Update(ctx, p)
}

// Traits returns a player's current trait list (get_player_traits).
func (s *PlayerService) Traits(ctx context.Context, id models.ID) ([]models.TraitType, error) {
	p, err := s.repos.Player.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Traits, nil
}

// Condition computes a player's current in-match condition band from their
// stored form factors and the phase's competitive pressure (get_player_condition).
func (s *PlayerService) Condition(ctx context.Context, id models.ID, phase models.SeasonPhase) (int8, error) {
	form, err := s.repos.PlayerForm.GetByPlayer(ctx, id)
	if err != nil {
		return 0, err
	}
	p, err := s.repos.Player.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	pressure := engines.MatchPressure(phase)
	return s.condition.Condition(*form, p.Age, pressure), nil
}

// PlayerFullDetail bundles a player's record, current form, and traits for
// the get_player_full_detail command.
type PlayerFullDetail struct {
	Player *models.Player
	Form   *models.PlayerFormFactors
	Traits []models.TraitType
}

// FullDetail assembles a player's full detail view (get_player_full_detail).
func (s *PlayerService) FullDetail(ctx context.Context, id models.ID) (*PlayerFullDetail, error) {
	p, err := s.repos.Player.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form, err := s.repos.PlayerForm.GetByPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PlayerFullDetail{Player: p, Form: form, Traits: p.Traits}, nil
}

// UpdateMarketValue recomputes and persists one player's market value
// (update_player_market_value), folding in their accumulated honor score.
func (s *PlayerService) UpdateMarketValue(ctx context.Context, id models.ID) (int64, error) {
	p, err := s.repos.Player.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	honorScore, err := s.honorScore(ctx, id)
	if err != nil {
		return 0, err
	}
	p.MarketValue = engines.MarketValue(*p, p.RegionCode, honorScore)
	if err := s.repos.Player.Update(ctx, p); err != nil {
		return 0, err
	}
	return p.MarketValue, nil
}

// UpdateAllMarketValues recomputes market value for every active player in
// a save (update_all_market_values); it runs when that command is called.
func (s *PlayerService) UpdateAllMarketValues(ctx context.Context, saveID models.ID) (int, error) {
	players, err := s.repos.Player.ListActiveBySave(ctx, saveID)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, p := range players {
		honorScore, err := s.honorScore(ctx, p.ID)
		if err != nil {
			s.logger.Printf("market value: skipping player %d: %v", p.ID, err)
			continue
		}
		p.MarketValue = engines.MarketValue(*p, p.RegionCode, honorScore)
		if err := s.repos.Player.Update(ctx, p); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// honorScore folds a player's career honors into the multiplier MarketValue
// expects: 1.0 with none, rising toward 3.0 with deep championship pedigree.
func (s *PlayerService) honorScore(ctx context.Context, id models.ID) (float64, error) {
	honors, err := s.repos.Honor.ListByPlayer(ctx, id)
	if err != nil {
		return 1.0, err
	}
	score := 1.0
	for _, h := range honors {
		switch h.Type {
		case models.HonorPlayerChampion:
			score += 0.4
		case models.HonorTournamentMVP, models.HonorFinalsMVP:
			score += 0.3
		case models.HonorAnnualMVP:
			score += 0.6
		case models.HonorAnnualAllPro:
			score += 0.2
		case models.HonorAnnualRookie:
			score += 0.15
		default:
			score += 0.1
		}
	}
	return score, nil
}

// AdvanceForm applies one match's outcome to a player's form factors.
// MatchService does not call it; it advances form through its own
// advanceRosterForm after each simulated series.
func (s *PlayerService) AdvanceForm(ctx context.Context, playerID models.ID, age uint8, performance float64, won bool) error {
	form, err := s.repos.PlayerForm.GetByPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	s.condition.Advance(form, age, performance, won)
	return s.repos.PlayerForm.Upsert(ctx, form)
}
