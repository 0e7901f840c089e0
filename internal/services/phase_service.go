// internal/services/phase_service.go
// The season phase state machine (spec.md §4.1): get_time_state,
// initialize_phase, complete_phase, start_new_season.

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

// PhaseService drives a save through its 14-phase season, materializing
// the tournaments/windows/auctions each phase needs and advancing once
// they report complete.
type PhaseService struct {
	repos   *repositories.Container
	match   *MatchService
	events  *events.Store
	logger  *log.Logger
	honors  *engines.HonorsEngine
	settler *engines.SettlementEngine
}

// NewPhaseService creates a new phase service.
func NewPhaseService(repos *repositories.Container, match *MatchService, eventStore *events.Store, logger *log.Logger) *PhaseService {
	return &PhaseService{
		repos:   repos,
		match:   match,
		events:  eventStore,
		logger:  logger,
		honors:  engines.NewHonorsEngine(),
		settler: engines.NewSettlementEngine(match.rng),
	}
}

// availableActions computed from the command table (spec.md §6).
func availableActions(phase models.SeasonPhase, status models.PhaseStatus) []string {
	switch status {
	case models.PhaseNotInitialized:
		return []string{"initialize_phase"}
	case models.PhaseInProgress:
		switch phase {
		case models.PhaseTransferWindow:
			return []string{"execute_transfer_round", "fast_forward_transfers"}
		case models.PhaseDraft:
			return []string{"make_draft_pick", "ai_auto_draft", "execute_auction_round", "fast_forward_auction"}
		default:
			return []string{"simulate_next_match", "simulate_all_matches"}
		}
	default:
		return []string{"complete_phase"}
	}
}

// GetTimeState reports a save's current phase and what can be done next
// (get_time_state).
func (s *PhaseService) GetTimeState(ctx context.Context, saveID models.ID) (*models.GameTimeState, error) {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return nil, err
	}
	status, err := s.phaseStatus(ctx, save)
	if err != nil {
		return nil, err
	}
	return &models.GameTimeState{
		Season:           save.CurrentSeason,
		Phase:            save.CurrentPhase,
		PhaseStatus:      status,
		AvailableActions: availableActions(save.CurrentPhase, status),
		CanAdvance:       status == models.PhaseCompleted,
	}, nil
}

// phaseStatus derives NotInitialized/InProgress/Completed for the save's
// current phase from whatever container (tournament, window, pool,
// auction, or ladder) that phase type uses.
func (s *PhaseService) phaseStatus(ctx context.Context, save *models.Save) (models.PhaseStatus, error) {
	switch save.CurrentPhase {
	case models.PhaseTransferWindow:
		w, err := s.repos.Transfer.GetWindowBySeason(ctx, save.ID, save.CurrentSeason)
		if err != nil {
			return "", err
		}
		if w == nil {
			return models.PhaseNotInitialized, nil
		}
		if w.Status == models.WindowCompleted {
			return models.PhaseCompleted, nil
		}
		return models.PhaseInProgress, nil

	case models.PhaseDraft:
		pool, err := s.repos.Draft.GetPoolBySeason(ctx, save.ID, save.CurrentSeason)
		if err != nil {
			return "", err
		}
		if pool == nil {
			return models.PhaseNotInitialized, nil
		}
		auction, err := s.repos.Draft.GetAuctionBySeason(ctx, save.ID, save.CurrentSeason)
		if err != nil {
			return "", err
		}
		if auction == nil || auction.Status != models.AuctionCompleted {
			return models.PhaseInProgress, nil
		}
		return models.PhaseCompleted, nil

	case models.PhaseSeasonEnd:
		// SeasonEnd has no standalone container; it is "complete" the
		// instant it is entered, allowing start_new_season immediately.
		return models.PhaseCompleted, nil

	default:
		tournaments, err := s.repos.Tournament.GetBySeasonPhase(ctx, save.ID, save.CurrentSeason, save.CurrentPhase)
		if err != nil {
			return "", err
		}
		if len(tournaments) == 0 {
			return models.PhaseNotInitialized, nil
		}
		for _, t := range tournaments {
			if t.Status != models.TournamentCompleted {
				return models.PhaseInProgress, nil
			}
		}
		return models.PhaseCompleted, nil
	}
}

// InitializePhase materializes the tournaments/matches (or window/pool/
// auction container) for the save's current phase (initialize_phase).
func (s *PhaseService) InitializePhase(ctx context.Context, saveID models.ID) error {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return err
	}
	status, err := s.phaseStatus(ctx, save)
	if err != nil {
		return err
	}
	if status != models.PhaseNotInitialized {
		return fmt.Errorf("%w: phase %s already initialized", ErrAlreadyInitialized, save.CurrentPhase)
	}

	switch save.CurrentPhase {
	case models.PhaseTransferWindow:
		return s.initTransferWindow(ctx, save)
	case models.PhaseDraft:
		return s.initDraftPool(ctx, save)
	case models.PhaseSeasonEnd:
		return nil
	default:
		if save.CurrentPhase.IsInternational() {
			return s.initInternationalTournament(ctx, save)
		}
		if save.CurrentPhase.IsPlayoff() {
			return s.initPlayoffBracket(ctx, save)
		}
		return s.initRegularSeason(ctx, save)
	}
}

// initRegularSeason creates one round-robin Tournament per region and a
// single round of BO3 fixtures among every pair of that region's teams.
func (s *PhaseService) initRegularSeason(ctx context.Context, save *models.Save) error {
	regions, err := s.repos.Save.ListRegionsBySave(ctx, save.ID)
	if err != nil {
		return err
	}
	for _, region := range regions {
		teams, err := s.repos.Team.ListByRegion(ctx, region.ID)
		if err != nil {
			return err
		}
		if len(teams) < 2 {
			continue
		}
		regionID := region.ID
		tournament := &models.Tournament{
			SaveID:      save.ID,
			Season:      save.CurrentSeason,
			Phase:       save.CurrentPhase,
			RegionID:    &regionID,
			Format:      models.FormatRoundRobin,
			Status:      models.TournamentInProgress,
			RoundsTotal: len(teams) - 1,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.repos.Tournament.Create(ctx, tournament); err != nil {
			return err
		}
		for seed, t := range teams {
			entry := &models.TournamentEntry{TournamentID: tournament.ID, TeamID: t.ID, Seed: seed + 1}
			if err := s.repos.Standing.Create(ctx, entry); err != nil {
				return err
			}
		}
		if err := s.createRoundRobinMatches(ctx, tournament, teams); err != nil {
			return err
		}
	}
	return nil
}

// createRoundRobinMatches pairs every team against every other team once,
// as a single round of independent BO3 matches (spec.md §4.1's fixed
// league shape, simplified from a multi-week round-robin calendar into
// one simulation round per matchup).
func (s *PhaseService) createRoundRobinMatches(ctx context.Context, tournament *models.Tournament, teams []*models.Team) error {
	matchNumber := 1
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			home, away := teams[i].ID, teams[j].ID
			m := &models.Match{
				TournamentID: tournament.ID,
				RoundNumber:  1,
				MatchNumber:  matchNumber,
				Format:       models.BestOf3,
				Team1ID:      &home,
				Team2ID:      &away,
				Status:       models.MatchPending,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if err := s.repos.Match.Create(ctx, m); err != nil {
				return err
			}
			matchNumber++
		}
	}
	return nil
}

// initPlayoffBracket seeds a single-elimination bracket per region from
// that region's regular-season standings (top 4 by points).
func (s *PhaseService) initPlayoffBracket(ctx context.Context, save *models.Save) error {
	regions, err := s.repos.Save.ListRegionsBySave(ctx, save.ID)
	if err != nil {
		return err
	}
	priorPhase := regularSeasonPhaseFor(save.CurrentPhase)
	for _, region := range regions {
		teams, err := s.seededPlayoffTeams(ctx, save, region.ID, priorPhase, 4)
		if err != nil {
			return err
		}
		if len(teams) < 2 {
			continue
		}
		if err := s.createBracket(ctx, save, &region.ID, teams, models.BestOf5); err != nil {
			return err
		}
	}
	return nil
}

// initInternationalTournament seeds a cross-region bracket from each
// region's best-placed team(s) in the immediately preceding phase.
func (s *PhaseService) initInternationalTournament(ctx context.Context, save *models.Save) error {
	regions, err := s.repos.Save.ListRegionsBySave(ctx, save.ID)
	if err != nil {
		return err
	}
	var invited []*models.Team
	priorPhase := regularSeasonPhaseFor(save.CurrentPhase)
	for _, region := range regions {
		teams, err := s.seededPlayoffTeams(ctx, save, region.ID, priorPhase, 2)
		if err != nil {
			return err
		}
		invited = append(invited, teams...)
	}
	if len(invited) < 2 {
		return nil
	}
	return s.createBracket(ctx, save, nil, invited, models.BestOf5)
}

// regularSeasonPhaseFor maps a playoff/international phase to the regular
// season or playoff phase whose standings seed it.
func regularSeasonPhaseFor(phase models.SeasonPhase) models.SeasonPhase {
	switch phase {
	case models.PhaseSpringPlayoffs:
		return models.PhaseSpringRegular
	case models.PhaseSummerPlayoffs:
		return models.PhaseSummerRegular
	case models.PhaseMsi, models.PhaseMadridMasters:
		return models.PhaseSpringPlayoffs
	default:
		return models.PhaseSummerPlayoffs
	}
}

// seededPlayoffTeams ranks a region's teams by their standing points in
// the given prior phase's tournament and returns the top n.
func (s *PhaseService) seededPlayoffTeams(ctx context.Context, save *models.Save, regionID models.ID, priorPhase models.SeasonPhase, n int) ([]*models.Team, error) {
	tournaments, err := s.repos.Tournament.GetBySeasonPhase(ctx, save.ID, save.CurrentSeason, priorPhase)
	if err != nil {
		return nil, err
	}
	var entries []*models.TournamentEntry
	for _, t := range tournaments {
		if t.RegionID == nil || *t.RegionID != regionID {
			continue
		}
		e, err := s.repos.Standing.ListByTournament(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e...)
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Points > entries[i].Points {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	teams := make([]*models.Team, 0, len(entries))
	for _, e := range entries {
		t, err := s.repos.Team.GetByID(ctx, e.TeamID)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// createBracket builds a single-elimination Tournament from a seeded team
// list, pairing 1vN, 2vN-1, ... in round one.
func (s *PhaseService) createBracket(ctx context.Context, save *models.Save, regionID *models.ID, teams []*models.Team, format models.MatchFormat) error {
	tournament := &models.Tournament{
		SaveID:      save.ID,
		Season:      save.CurrentSeason,
		Phase:       save.CurrentPhase,
		RegionID:    regionID,
		Format:      models.FormatSingleElimination,
		Status:      models.TournamentInProgress,
		RoundsTotal: bracketRounds(len(teams)),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repos.Tournament.Create(ctx, tournament); err != nil {
		return err
	}
	for seed, t := range teams {
		entry := &models.TournamentEntry{TournamentID: tournament.ID, TeamID: t.ID, Seed: seed + 1}
		if err := s.repos.Standing.Create(ctx, entry); err != nil {
			return err
		}
	}
	matchNumber := 1
	for i, j := 0, len(teams)-1; i < j; i, j = i+1, j-1 {
		home, away := teams[i].ID, teams[j].ID
		m := &models.Match{
			TournamentID: tournament.ID,
			RoundNumber:  1,
			MatchNumber:  matchNumber,
			Format:       format,
			Team1ID:      &home,
			Team2ID:      &away,
			Status:       models.MatchPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := s.repos.Match.Create(ctx, m); err != nil {
			return err
		}
		matchNumber++
	}
	return nil
}

func bracketRounds(teams int) int {
	rounds := 0
	for n := teams; n > 1; n = (n + 1) / 2 {
		rounds++
	}
	return rounds
}

func (s *PhaseService) initTransferWindow(ctx context.Context, save *models.Save) error {
	w := &models.TransferWindow{SaveID: save.ID, Season: save.CurrentSeason, Round: models.RoundContractsRetirement, Status: models.WindowInProgress}
	return s.repos.Transfer.CreateWindow(ctx, w)
}

func (s *PhaseService) initDraftPool(ctx context.Context, save *models.Save) error {
	pool := &models.DraftPool{SaveID: save.ID, Season: save.CurrentSeason, Status: models.DraftPoolOpen}
	return s.repos.Draft.CreatePool(ctx, pool)
}

// CompletePhase requires phase_status=Completed. For regular-season and
// playoff phases it emits placement honors and rolls standings into team
// annual points; international, transfer-window, draft and season-end
// phases award nothing here, so cross-year points are never updated by
// this call. It then advances to the next phase (or, at SeasonEnd, leaves
// the advance to StartNewSeason).
func (s *PhaseService) CompletePhase(ctx context.Context, saveID models.ID) (*models.GameTimeState, error) {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return nil, err
	}
	status, err := s.phaseStatus(ctx, save)
	if err != nil {
		return nil, err
	}
	if status != models.PhaseCompleted {
		return nil, fmt.Errorf("%w: phase %s is not complete", ErrPreconditionFailed, save.CurrentPhase)
	}

	if !save.CurrentPhase.IsInternational() && save.CurrentPhase != models.PhaseTransferWindow &&
		save.CurrentPhase != models.PhaseDraft && save.CurrentPhase != models.PhaseSeasonEnd &&
		save.CurrentPhase != models.PhaseSpringPlayoffs && save.CurrentPhase != models.PhaseSummerPlayoffs {
		if err := s.awardPhaseHonors(ctx, save); err != nil {
			return nil, err
		}
	} else if save.CurrentPhase.IsPlayoff() {
		if err := s.awardPhaseHonors(ctx, save); err != nil {
			return nil, err
		}
	}

	if save.CurrentPhase == models.PhaseSeasonEnd {
		return s.GetTimeState(ctx, saveID)
	}

	next, ok := save.CurrentPhase.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no successor", ErrInvalidPhaseTransition, save.CurrentPhase)
	}
	if err := s.repos.Save.UpdatePhase(ctx, save.ID, save.CurrentSeason, next); err != nil {
		return nil, err
	}
	return s.GetTimeState(ctx, saveID)
}

// awardPhaseHonors evaluates every tournament completed this phase and
// writes its bracket-placement honors, idempotent on the honor key.
func (s *PhaseService) awardPhaseHonors(ctx context.Context, save *models.Save) error {
	tournaments, err := s.repos.Tournament.GetBySeasonPhase(ctx, save.ID, save.CurrentSeason, save.CurrentPhase)
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		entries, err := s.repos.Standing.ListByTournament(ctx, t.ID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			continue
		}
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[j].Points > entries[i].Points {
					entries[i], entries[j] = entries[j], entries[i]
				}
			}
		}
		if err := s.awardTeamPlacementHonors(ctx, save, t, entries); err != nil {
			return err
		}
	}
	return nil
}

func (s *PhaseService) awardTeamPlacementHonors(ctx context.Context, save *models.Save, t *models.Tournament, ranked []*models.TournamentEntry) error {
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
		if i >= len(ranked) {
			break
		}
		teamID := ranked[i].TeamID
		key := models.HonorKey(save.CurrentSeason, p.kind, save.CurrentPhase, uint64(teamID))
		exists, err := s.repos.Honor.Exists(ctx, save.ID, key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		h := &models.Honor{
			SaveID: save.ID, Season: save.CurrentSeason, Type: p.kind,
			TeamID: &teamID, Phase: save.CurrentPhase, Key: key, AwardedAt: time.Now(),
		}
		if err := s.repos.Honor.Create(ctx, h); err != nil {
			return err
		}
		team, err := s.repos.Team.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		team.AnnualPoints += p.pts
		if t.IsInternational() {
			team.CrossYearPoints += p.pts
		}
		if err := s.repos.Team.UpdateRecord(ctx, team); err != nil {
			return err
		}
	}
	return nil
}

// StartNewSeason runs end-of-season settlement for every active player in
// the save, then resets to SpringRegular with season+1 (start_new_season).
func (s *PhaseService) StartNewSeason(ctx context.Context, saveID models.ID) error {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return err
	}
	if save.CurrentPhase != models.PhaseSeasonEnd {
		return fmt.Errorf("%w: season can only be started from season_end", ErrInvalidPhaseTransition)
	}

	players, err := s.repos.Player.ListActiveBySave(ctx, save.ID)
	if err != nil {
		return err
	}
	for _, p := range players {
		form, err := s.repos.PlayerForm.GetByPlayer(ctx, p.ID)
		if err != nil {
			s.logger.Printf("season settlement: no form for player %d: %v", p.ID, err)
			continue
		}
		consecutiveLowPerformances := 0
		if form.LastPerformance < 40 {
			consecutiveLowPerformances = 1
		}
		settlementEvents := s.settler.SettleSeason(p, *form, save.CurrentSeason, consecutiveLowPerformances, int64(save.CurrentSeason)-int64(p.JoinSeason))
		if err := s.repos.Player.Update(ctx, p); err != nil {
			return fmt.Errorf("persist settled player %d: %w", p.ID, err)
		}
		for _, e := range settlementEvents {
			s.events.Append(ctx, events.Event{
				SaveID: uint64(save.ID), Season: save.CurrentSeason, Kind: events.KindSettlement,
				Headline: fmt.Sprintf("Player %d: %s", e.PlayerID, e.Kind), Detail: e.Detail, CreatedAt: time.Now(),
			})
		}
	}

	teams, err := s.repos.Team.ListBySave(ctx, save.ID)
	if err != nil {
		return err
	}
	for _, t := range teams {
		if err := s.repos.Team.ResetAnnualPoints(ctx, t.ID); err != nil {
			return err
		}
	}

	return s.repos.Save.UpdatePhase(ctx, save.ID, save.CurrentSeason+1, models.PhaseSpringRegular)
}
