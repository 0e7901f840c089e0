// internal/services/ladder_service.go
// The off-season solo ladder (spec.md §4.6, §6 "Ladder"): initializes a
// 12-round douyu/douyin/huya event, simulates one round of balanced 5v5s
// at a time, and produces the final (rating, wins, mvp_count) standings.

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

// LadderService drives one solo ladder tournament through its fixed
// LadderRounds schedule.
type LadderService struct {
	repos      *repositories.Container
	events     *events.Store
	logger     *log.Logger
	matchmaker *engines.LadderMatchmaker
	simulator  *engines.LadderSimulator
}

// NewLadderService creates a new ladder service.
func NewLadderService(repos *repositories.Container, eventStore *events.Store, rng *engines.RNG, logger *log.Logger) *LadderService {
	return &LadderService{
		repos:      repos,
		events:     eventStore,
		logger:     logger,
		matchmaker: engines.NewLadderMatchmaker(rng),
		simulator:  engines.NewLadderSimulator(rng),
	}
}

// InitializeLadderTournament creates a new ladder event for a save's
// current season (initialize_ladder_tournament). Every active player's
// rating is created here, up front, via GetOrCreateRating.
func (s *LadderService) InitializeLadderTournament(ctx context.Context, saveID models.ID, eventType models.LadderEventType) (*models.LadderTournament, error) {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repos.Ladder.GetTournamentBySeason(ctx, saveID, save.CurrentSeason, eventType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a %s ladder already exists for season %d", ErrConflict, eventType, save.CurrentSeason)
	}

	tournament := &models.LadderTournament{
		SaveID:    saveID,
		Season:    save.CurrentSeason,
		EventType: eventType,
		Round:     1,
		Status:    models.LadderNotStarted,
	}
	if err := s.repos.Ladder.CreateTournament(ctx, tournament); err != nil {
		return nil, err
	}

	players, err := s.repos.Player.ListActiveBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if _, err := s.repos.Ladder.GetOrCreateRating(ctx, p.ID, tournament.ID); err != nil {
			return nil, err
		}
	}
	return tournament, nil
}

// entrants builds the matchmaker-facing snapshot of every rated player on
// a ladder.
func (s *LadderService) entrants(ctx context.Context, saveID, ladderID models.ID) ([]engines.LadderPlayer, map[models.ID]*models.Player, error) {
	players, err := s.repos.Player.ListActiveBySave(ctx, saveID)
	if err != nil {
		return nil, nil, err
	}
	entrants := make([]engines.LadderPlayer, 0, len(players))
	byID := make(map[models.ID]*models.Player, len(players))
	for _, p := range players {
		rating, err := s.repos.Ladder.GetOrCreateRating(ctx, p.ID, ladderID)
		if err != nil {
			return nil, nil, err
		}
		entrants = append(entrants, engines.LadderPlayer{PlayerID: p.ID, Rating: rating.Rating, GamesPlayed: rating.GamesPlayed})
		byID[p.ID] = p
	}
	return entrants, byID, nil
}

// ladderInput assembles one entrant's simulation inputs. Champion pick and
// mastery are not part of this event's surface yet, so every entrant plays
// at a neutral VersionTier with whatever mastery their best-known champion
// would grant, looked up against champion 1 as a stand-in until a pick
// phase is introduced.
func (s *LadderService) ladderInput(ctx context.Context, p *models.Player) engines.PlayerLadderInput {
	mastery, err := s.repos.Ladder.GetPlayerMastery(ctx, p.ID, 1)
	if err != nil {
		mastery = 0
	}
	return engines.PlayerLadderInput{
		PlayerID:     p.ID,
		Ability:      p.Ability,
		Traits:       p.Traits,
		ChampionTier: models.TierB,
		MasteryBonus: float64(mastery) * 0.5,
	}
}

// SimulateLadderRound plays out every balanced 5v5 pairing for the
// tournament's current round, persists ratings and match records, and
// advances the round counter (simulate_ladder_round).
func (s *LadderService) SimulateLadderRound(ctx context.Context, ladderID models.ID) error {
	tournament, err := s.repos.Ladder.GetTournament(ctx, ladderID)
	if err != nil {
		return err
	}
	if tournament.Status == models.LadderCompleted {
		return fmt.Errorf("%w: ladder tournament already completed", ErrConflict)
	}
	if tournament.Round > models.LadderRounds {
		return s.CompleteLadderTournament(ctx, ladderID)
	}

	entrants, byID, err := s.entrants(ctx, tournament.SaveID, ladderID)
	if err != nil {
		return err
	}
	pairings, byes := s.matchmaker.CreateRoundMatches(entrants)

	for i, pairing := range pairings {
		var blueIn, redIn [5]engines.PlayerLadderInput
		for j, lp := range pairing[0] {
			blueIn[j] = s.ladderInput(ctx, byID[lp.PlayerID])
		}
		for j, lp := range pairing[1] {
			redIn[j] = s.ladderInput(ctx, byID[lp.PlayerID])
		}

		result := s.simulator.SimulateMatch(blueIn, redIn)
		updates := engines.ApplyRatingChanges(pairing[0], pairing[1], result)
		for _, u := range updates {
			rating, err := s.repos.Ladder.GetOrCreateRating(ctx, u.PlayerID, ladderID)
			if err != nil {
				return err
			}
			rating.Rating = u.NewRating
			if rating.Rating > rating.MaxRating {
				rating.MaxRating = rating.Rating
			}
			rating.GamesPlayed++
			if u.Won {
				rating.Wins++
			} else {
				rating.Losses++
			}
			if u.IsMVP {
				rating.MVPCount++
			}
			rating.TotalInfluence += u.Influence
			if err := s.repos.Ladder.UpdateRating(ctx, rating); err != nil {
				return err
			}
		}

		var blueIDs, redIDs [5]models.ID
		for j, lp := range pairing[0] {
			blueIDs[j] = lp.PlayerID
		}
		for j, lp := range pairing[1] {
			redIDs[j] = lp.PlayerID
		}
		mvp := result.MVPPlayerID
		match := &models.LadderMatch{
			LadderID: ladderID, Round: tournament.Round, MatchNumber: i + 1,
			BlueTeam: blueIDs, RedTeam: redIDs,
			BlueAvgRating: averagePairingRating(pairing[0]), RedAvgRating: averagePairingRating(pairing[1]),
			BluePower: result.BluePower, RedPower: result.RedPower,
			WinnerSide: result.Winner, MVPPlayerID: &mvp, GameDurationMin: result.DurationMin,
			PlayedAt: time.Now(),
		}
		if err := s.repos.Ladder.CreateMatch(ctx, match); err != nil {
			return err
		}
	}

	if len(byes) > 0 {
		s.logger.Printf("ladder %d round %d: %d entrants drew a bye", ladderID, tournament.Round, len(byes))
	}

	nextRound := tournament.Round + 1
	status := models.LadderInProgress
	if nextRound > models.LadderRounds {
		status = models.LadderCompleted
	}
	if err := s.repos.Ladder.AdvanceRound(ctx, ladderID, nextRound, status); err != nil {
		return err
	}
	if status == models.LadderCompleted {
		return s.CompleteLadderTournament(ctx, ladderID)
	}
	return nil
}

func averagePairingRating(side [5]engines.LadderPlayer) float64 {
	var total float64
	for _, p := range side {
		total += p.Rating
	}
	return total / 5
}

// CompleteLadderTournament finalizes standings and records the champion's
// newsfeed moment (complete_ladder_tournament). Safe to call once the
// round counter has already passed LadderRounds.
func (s *LadderService) CompleteLadderTournament(ctx context.Context, ladderID models.ID) error {
	tournament, err := s.repos.Ladder.GetTournament(ctx, ladderID)
	if err != nil {
		return err
	}
	if tournament.Status != models.LadderCompleted {
		if err := s.repos.Ladder.AdvanceRound(ctx, ladderID, tournament.Round, models.LadderCompleted); err != nil {
			return err
		}
	}

	standings, err := s.GetLadderRankings(ctx, ladderID)
	if err != nil {
		return err
	}
	if len(standings) == 0 {
		return nil
	}
	champion := standings[0]
	return s.events.Append(ctx, events.Event{
		SaveID: uint64(tournament.SaveID), Season: tournament.Season, Kind: events.KindLadderMatch,
		Headline:   fmt.Sprintf("Player %d tops the %s ladder", champion.PlayerID, tournament.EventType),
		Detail:     fmt.Sprintf("Final rating %.0f across %d games (%d wins, %d MVPs)", champion.Rating, champion.GamesPlayed, champion.Wins, champion.MVPCount),
		Importance: 2,
		CreatedAt:  time.Now(),
	})
}

// GetLadderRankings returns the final (rating, wins, mvp_count) standings
// for a ladder tournament (get_ladder_rankings).
func (s *LadderService) GetLadderRankings(ctx context.Context, ladderID models.ID) ([]models.LadderRating, error) {
	ratings, err := s.repos.Ladder.RankLadder(ctx, ladderID)
	if err != nil {
		return nil, err
	}
	return engines.RankLadder(ratings), nil
}
