// internal/services/honors_service.go
// The honor hall and annual awards (spec.md §4.6/§4.7): browsing a
// player's awarded honors, recomputing one tournament's bracket-placement
// honors on demand, and deriving/persisting the season-end Top 20,
// All-Pro, Rookie of the Year, and Annual MVP.

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

// HonorsService computes and serves every honor a save has awarded.
type HonorsService struct {
	repos  *repositories.Container
	events *events.Store
	logger *log.Logger
	engine *engines.HonorsEngine
}

// NewHonorsService creates a new honors service.
func NewHonorsService(repos *repositories.Container, eventStore *events.Store, logger *log.Logger) *HonorsService {
	return &HonorsService{
		repos:  repos,
		events: eventStore,
		logger: logger,
		engine: engines.NewHonorsEngine(),
	}
}

// GetHonorHall returns every honor a player has ever been awarded, newest
// first (get_honor_hall).
func (s *HonorsService) GetHonorHall(ctx context.Context, playerID models.ID) ([]*models.Honor, error) {
	return s.repos.Honor.ListByPlayer(ctx, playerID)
}

// RegenerateTournamentHonors recomputes one tournament's bracket-placement
// honors from its final standings (regenerate_tournament_honors). Honor
// rows are idempotent on their key, so this is safe to call repeatedly --
// it only fills in rows that are missing, e.g. after a standings
// correction.
func (s *HonorsService) RegenerateTournamentHonors(ctx context.Context, tournamentID models.ID) error {
	t, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != models.TournamentCompleted {
		return fmt.Errorf("%w: tournament %d is not yet completed", ErrPreconditionFailed, tournamentID)
	}
	save, err := s.repos.Save.GetByID(ctx, t.SaveID)
	if err != nil {
		return err
	}

	entries, err := s.repos.Standing.ListByTournament(ctx, t.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Points > entries[i].Points {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	placements := []struct {
		kind models.HonorType
		pts  uint32
	}{
		{models.HonorTeamChampion, 100},
		{models.HonorTeamRunnerUp, 60},
		{models.HonorTeamThird, 35},
		{models.HonorTeamFourth, 20},
	}
	for i, p := range placements {
		if i >= len(entries) {
			break
		}
		teamID := entries[i].TeamID
		key := models.HonorKey(t.Season, p.kind, t.Phase, uint64(teamID))
		exists, err := s.repos.Honor.Exists(ctx, t.SaveID, key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		h := &models.Honor{
			SaveID: t.SaveID, Season: t.Season, Type: p.kind,
			TeamID: &teamID, Phase: t.Phase, Key: key, AwardedAt: time.Now(),
		}
		if err := s.repos.Honor.Create(ctx, h); err != nil {
			return err
		}
	}
	s.logger.Printf("regenerated honors for tournament %d (save %d, season %d)", tournamentID, save.ID, save.CurrentSeason)
	return nil
}

// seasonLines aggregates every active player's per-game performances
// across all of a save's tournaments this season into the statlines
// EvaluateAnnualAwards needs.
func (s *HonorsService) seasonLines(ctx context.Context, saveID models.ID, season uint32) ([]engines.PlayerSeasonLine, error) {
	players, err := s.repos.Player.ListActiveBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	lines := make(map[models.ID]*engines.PlayerSeasonLine, len(players))
	for _, p := range players {
		if p.TeamID == nil {
			continue
		}
		lines[p.ID] = &engines.PlayerSeasonLine{
			PlayerID: p.ID, TeamID: *p.TeamID, Position: p.Position, Age: p.Age,
		}
	}

	championHonors, err := s.repos.Honor.ListBySeasonType(ctx, saveID, season, models.HonorPlayerChampion)
	if err != nil {
		return nil, err
	}
	championBonus := make(map[models.ID]float64, len(championHonors))
	for _, h := range championHonors {
		if h.PlayerID != nil {
			championBonus[*h.PlayerID]++
		}
	}

	tournaments, err := s.repos.Tournament.GetBySeason(ctx, saveID, season)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		matches, err := s.repos.Match.ListByTournament(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if m.Status != models.MatchCompleted {
				continue
			}
			games, err := s.repos.Match.ListGameResults(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			for _, g := range games {
				for _, stat := range g.PlayerStats {
					line, ok := lines[stat.PlayerID]
					if !ok {
						continue
					}
					line.GamesPlayed++
					line.Impacts = append(line.Impacts, stat.PerformanceVal)
				}
			}
		}
	}

	out := make([]engines.PlayerSeasonLine, 0, len(lines))
	for id, line := range lines {
		line.ChampionshipBonus = championBonus[id]
		out = append(out, *line)
	}
	return out, nil
}

// GetAnnualAwardsData computes this season's Top 20, All-Pro, Rookie of
// the Year, and Annual MVP without persisting anything
// (get_annual_awards_data).
func (s *HonorsService) GetAnnualAwardsData(ctx context.Context, saveID models.ID, season uint32) (engines.AnnualAwards, error) {
	lines, err := s.seasonLines(ctx, saveID, season)
	if err != nil {
		return engines.AnnualAwards{}, err
	}
	return s.engine.EvaluateAnnualAwards(lines), nil
}

// PersistAnnualAwards computes and idempotently writes season-end honor
// rows for every annual award, and posts the newsfeed moment for the
// Annual MVP. Intended to run once per season, ahead of StartNewSeason.
func (s *HonorsService) PersistAnnualAwards(ctx context.Context, saveID models.ID, season uint32) error {
	awards, err := s.GetAnnualAwardsData(ctx, saveID, season)
	if err != nil {
		return err
	}

	const phase = models.PhaseSeasonEnd
	award := func(t models.HonorType, playerID models.ID, teamID models.ID) error {
		key := models.HonorKey(season, t, phase, playerID)
		exists, err := s.repos.Honor.Exists(ctx, saveID, key)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		team := teamID
		return s.repos.Honor.Create(ctx, &models.Honor{
			SaveID: saveID, Season: season, Type: t,
			PlayerID: &playerID, TeamID: &team, Phase: phase, Key: key, AwardedAt: time.Now(),
		})
	}

	for _, line := range awards.Top20 {
		if err := award(models.HonorAnnualTop20, line.PlayerID, line.TeamID); err != nil {
			return err
		}
	}
	for _, line := range awards.AllPro {
		if err := award(models.HonorAnnualAllPro, line.PlayerID, line.TeamID); err != nil {
			return err
		}
	}
	if awards.Rookie != nil {
		if err := award(models.HonorAnnualRookie, awards.Rookie.PlayerID, awards.Rookie.TeamID); err != nil {
			return err
		}
	}
	if awards.MVP != nil {
		if err := award(models.HonorAnnualMVP, awards.MVP.PlayerID, awards.MVP.TeamID); err != nil {
			return err
		}
		s.events.Append(ctx, events.Event{
			SaveID: uint64(saveID), Season: season, Kind: events.KindHonor,
			Headline:   fmt.Sprintf("Player %d named Annual MVP", awards.MVP.PlayerID),
			Detail:     fmt.Sprintf("Yearly score %.2f across %d games", awards.MVP.YearlyScore(), awards.MVP.GamesPlayed),
			Importance: 3,
			CreatedAt:  time.Now(),
		})
	}
	return nil
}
