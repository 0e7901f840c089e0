// internal/services/match_service.go
// Match simulation orchestration: wires MatchSimulationEngine to a
// tournament's pending fixtures (spec.md §6 "Simulation").

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/engines"
	"tournament-planner/internal/events"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// MatchService drives one match (or a tournament's full remaining
// schedule) through the simulation kernel and persists the result.
type MatchService struct {
	repos  *repositories.Container
	events *events.Store
	rng    *engines.RNG
	cache  *CacheService
	logger *log.Logger
	engine *engines.MatchSimulationEngine
}

// NewMatchService creates a new match service.
func NewMatchService(repos *repositories.Container, eventStore *events.Store, rng *engines.RNG, cache *CacheService, logger *log.Logger) *MatchService {
	return &MatchService{
		repos:  repos,
		events: eventStore,
		rng:    rng,
		cache:  cache,
		logger: logger,
		engine: engines.NewMatchSimulationEngine(rng),
	}
}

// GetByID retrieves a match by ID.
func (s *MatchService) GetByID(ctx context.Context, id models.ID) (*models.Match, error) {
	return s.repos.Match.GetByID(ctx, id)
}

// ListByTournament retrieves every match in a tournament's bracket.
func (s *MatchService) ListByTournament(ctx context.Context, tournamentID models.ID) ([]*models.Match, error) {
	return s.repos.Match.ListByTournament(ctx, tournamentID)
}

// SaveIDForTournament resolves a tournament back to its owning save, so the
// api layer can enforce save ownership on tournament/match-scoped routes.
func (s *MatchService) SaveIDForTournament(ctx context.Context, tournamentID models.ID) (models.ID, error) {
	t, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return 0, err
	}
	return t.SaveID, nil
}

// SaveIDForMatch resolves a match back to its owning save via its tournament.
func (s *MatchService) SaveIDForMatch(ctx context.Context, matchID models.ID) (models.ID, error) {
	m, err := s.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}
	return s.SaveIDForTournament(ctx, m.TournamentID)
}

// roster loads a team's five starters as simulation-ready roster slots.
func (s *MatchService) roster(ctx context.Context, teamID models.ID) ([]engines.RosterSlot, error) {
	players, err := s.repos.Player.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	slots := make([]engines.RosterSlot, 0, 5)
	for _, p := range players {
		if !p.IsStarter {
			continue
		}
		form, err := s.repos.PlayerForm.GetByPlayer(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("form for player %d: %w", p.ID, err)
		}
		slots = append(slots, engines.RosterSlot{Player: *p, Form: *form})
	}
	return slots, nil
}

// SimulateNextMatch finds a tournament's next pending match and simulates
// it (simulate_next_match), persisting the series result, game logs, and
// the resulting standings/form updates.
func (s *MatchService) SimulateNextMatch(ctx context.Context, tournamentID models.ID) (*models.Match, error) {
	matches, err := s.repos.Match.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	var next *models.Match
	for _, m := range matches {
		if m.Status == models.MatchPending && m.Team1ID != nil && m.Team2ID != nil {
			next = m
			break
		}
	}
	if next == nil {
		return nil, fmt.Errorf("%w: no pending match ready to simulate", ErrPreconditionFailed)
	}
	return s.simulate(ctx, next)
}

// SimulateMatch simulates one specific match by ID (simulate_match_detailed).
func (s *MatchService) SimulateMatch(ctx context.Context, matchID models.ID) (*models.Match, error) {
	m, err := s.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status == models.MatchCompleted {
		return nil, fmt.Errorf("%w: match already completed", ErrConflict)
	}
	if m.Team1ID == nil || m.Team2ID == nil {
		return nil, fmt.Errorf("%w: match is missing one or both teams", ErrPreconditionFailed)
	}
	return s.simulate(ctx, m)
}

// SimulateAllMatches runs simulate_next_match repeatedly until the
// tournament's bracket has no pending, both-sides-known matches left.
func (s *MatchService) SimulateAllMatches(ctx context.Context, tournamentID models.ID) ([]*models.Match, error) {
	var played []*models.Match
	for {
		m, err := s.SimulateNextMatch(ctx, tournamentID)
		if err != nil {
			if played == nil {
				return nil, err
			}
			break
		}
		played = append(played, m)
	}
	return played, nil
}

func (s *MatchService) simulate(ctx context.Context, m *models.Match) (*models.Match, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, m.TournamentID)
	if err != nil {
		return nil, err
	}

	home, err := s.roster(ctx, *m.Team1ID)
	if err != nil {
		return nil, err
	}
	away, err := s.roster(ctx, *m.Team2ID)
	if err != nil {
		return nil, err
	}

	tournamentType := string(tournament.Format)
	round := fmt.Sprintf("round_%d", m.RoundNumber)
	result := s.engine.SimulateMatch(home, away, tournamentType, round, m.ID, m.Format)

	var winnerID models.ID
	if result.WinnerIdx == 0 {
		winnerID = *m.Team1ID
	} else {
		winnerID = *m.Team2ID
	}

	for _, g := range result.Games {
		if err := s.repos.Match.CreateGameResult(ctx, &g); err != nil {
			return nil, fmt.Errorf("persist game %d: %w", g.GameNumber, err)
		}
	}

	if err := s.repos.Match.SetFinalResult(ctx, m.ID, result.HomeScore, result.AwayScore, winnerID, result.MVPPlayerID); err != nil {
		return nil, err
	}

	if err := s.advanceRosterForm(ctx, home, result.HomeScore > result.AwayScore); err != nil {
		s.logger.Printf("match %d: form update failed: %v", m.ID, err)
	}
	if err := s.advanceRosterForm(ctx, away, result.AwayScore > result.HomeScore); err != nil {
		s.logger.Printf("match %d: form update failed: %v", m.ID, err)
	}

	if !tournament.IsInternational() {
		winnerGames, loserGames := result.HomeScore, result.AwayScore
		if result.AwayScore > result.HomeScore {
			winnerGames, loserGames = result.AwayScore, result.HomeScore
		}
		if err := s.recordStanding(ctx, m.TournamentID, winnerID, true, winnerGames, loserGames); err != nil {
			s.logger.Printf("match %d: standing update failed: %v", m.ID, err)
		}
		loserID := *m.Team2ID
		if winnerID == loserID {
			loserID = *m.Team1ID
		}
		if err := s.recordStanding(ctx, m.TournamentID, loserID, false, loserGames, winnerGames); err != nil {
			s.logger.Printf("match %d: standing update failed: %v", m.ID, err)
		}
	}

	s.events.Append(ctx, events.Event{
		SaveID:     uint64(tournament.SaveID),
		Season:     tournament.Season,
		Kind:       events.KindMatch,
		Headline:   fmt.Sprintf("Match %d decided %d-%d", m.ID, result.HomeScore, result.AwayScore),
		Importance: 2,
		CreatedAt:  time.Now(),
	})

	return s.repos.Match.GetByID(ctx, m.ID)
}

func (s *MatchService) advanceRosterForm(ctx context.Context, roster []engines.RosterSlot, won bool) error {
	conditions := engines.NewConditionEngine()
	for _, slot := range roster {
		form := slot.Form
		conditions.Advance(&form, slot.Player.Age, form.LastPerformance, won)
		if err := s.repos.PlayerForm.Upsert(ctx, &form); err != nil {
			return err
		}
	}
	return nil
}

func (s *MatchService) recordStanding(ctx context.Context, tournamentID, teamID models.ID, won bool, gamesWon, gamesLost int) error {
	entries, err := s.repos.Standing.ListByTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.TeamID != teamID {
			continue
		}
		return s.repos.Standing.RecordResult(ctx, e.ID, won, gamesWon, gamesLost)
	}
	return fmt.Errorf("%w: no standing entry for team %d in tournament %d", ErrNotFound, teamID, tournamentID)
}

// Prediction is a lightweight pre-match win-probability estimate, derived
// from each side's average power rating rather than a full simulation
// (get_match_prediction).
type Prediction struct {
	HomeWinProbability float64
	AwayWinProbability float64
}

// Predict estimates a match's outcome odds from both teams' power ratings
// without mutating any state.
func (s *MatchService) Predict(ctx context.Context, matchID models.ID) (*Prediction, error) {
	m, err := s.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Team1ID == nil || m.Team2ID == nil {
		return nil, fmt.Errorf("%w: match is missing one or both teams", ErrPreconditionFailed)
	}
	home, err := s.repos.Team.GetByID(ctx, *m.Team1ID)
	if err != nil {
		return nil, err
	}
	away, err := s.repos.Team.GetByID(ctx, *m.Team2ID)
	if err != nil {
		return nil, err
	}
	total := home.PowerRating + away.PowerRating
	if total <= 0 {
		return &Prediction{HomeWinProbability: 0.5, AwayWinProbability: 0.5}, nil
	}
	homeP := home.PowerRating / total
	return &Prediction{HomeWinProbability: homeP, AwayWinProbability: 1 - homeP}, nil
}
