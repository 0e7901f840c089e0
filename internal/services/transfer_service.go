// internal/services/transfer_service.go
// The five-round transfer window orchestration (spec.md §4.4, §6
// "Transfers"): wires TransferWindowEngine to the repository layer, one
// round at a time.

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

// TransferService advances a save's transfer window through its five
// rounds and records every resulting move to the permanent ledger.
type TransferService struct {
	repos    *repositories.Container
	events   *events.Store
	strategy *StrategyService
	logger   *log.Logger
	engine   *engines.TransferWindowEngine
}

// NewTransferService creates a new transfer service.
func NewTransferService(repos *repositories.Container, eventStore *events.Store, strategy *StrategyService, rng *engines.RNG, logger *log.Logger) *TransferService {
	return &TransferService{
		repos:    repos,
		events:   eventStore,
		strategy: strategy,
		logger:   logger,
		engine:   engines.NewTransferWindowEngine(rng, strategy),
	}
}

// Window retrieves a transfer window by ID.
func (s *TransferService) Window(ctx context.Context, id models.ID) (*models.TransferWindow, error) {
	return s.repos.Transfer.GetWindow(ctx, id)
}

// ExecuteTransferRound advances a window through its current round
// (execute_transfer_round), dispatching to the round-specific logic and
// persisting every resulting record, listing, and newsfeed event.
func (s *TransferService) ExecuteTransferRound(ctx context.Context, windowID models.ID) error {
	window, err := s.repos.Transfer.GetWindow(ctx, windowID)
	if err != nil {
		return err
	}
	if window.Status == models.WindowCompleted {
		return fmt.Errorf("%w: transfer window already completed", ErrConflict)
	}

	switch window.Round {
	case models.RoundContractsRetirement:
		err = s.runContractsRound(ctx, window)
	case models.RoundFreeAgents:
		err = s.runFreeAgentsRound(ctx, window)
	case models.RoundFinancialClearance:
		err = s.runFinancialClearanceRound(ctx, window)
	case models.RoundReinforcement:
		err = s.runReinforcementRound(ctx, window)
	case models.RoundFinalize:
		err = s.runFinalizeRound(ctx, window)
	default:
		return fmt.Errorf("%w: unknown transfer round %d", ErrInvalidInput, window.Round)
	}
	if err != nil {
		return err
	}

	next := window.Round + 1
	status := models.WindowInProgress
	if window.Round == models.MaxTransferRound {
		status = models.WindowCompleted
	}
	return s.repos.Transfer.AdvanceRound(ctx, windowID, next, status)
}

// FastForwardTransfers runs every remaining round to completion in one
// call (fast_forward_transfers).
func (s *TransferService) FastForwardTransfers(ctx context.Context, windowID models.ID) error {
	for {
		window, err := s.repos.Transfer.GetWindow(ctx, windowID)
		if err != nil {
			return err
		}
		if window.Status == models.WindowCompleted {
			return nil
		}
		if err := s.ExecuteTransferRound(ctx, windowID); err != nil {
			return err
		}
	}
}

// runContractsRound (R1) reads every active player and emits a
// contract-expiry event and a free-agent pool entry for each one with no
// team whose contract ended by this season. ListActiveBySave returns no
// retired players, so the retirement case below never matches and this
// round emits no retirement events.
func (s *TransferService) runContractsRound(ctx context.Context, window *models.TransferWindow) error {
	players, err := s.repos.Player.ListActiveBySave(ctx, window.SaveID)
	if err != nil {
		return err
	}
	var decisions []engines.RetirementDecision
	for _, p := range players {
		switch {
		case p.Status == models.PlayerRetired:
			decisions = append(decisions, engines.RetirementDecision{PlayerID: p.ID, Retired: true})
		case p.TeamID == nil && p.ContractEndSeason <= window.Season:
			decisions = append(decisions, engines.RetirementDecision{PlayerID: p.ID, ContractExpired: true})
		}
	}

	evts, freeAgentIDs := s.engine.ExecuteContractsRound(*window, decisions)
	for i := range evts {
		evts[i].CreatedAt = time.Now()
		if err := s.repos.Transfer.CreateEvent(ctx, &evts[i]); err != nil {
			return err
		}
	}
	for _, pid := range freeAgentIDs {
		p, err := s.repos.Player.GetByID(ctx, pid)
		if err != nil {
			return err
		}
		fa := &models.FreeAgent{
			WindowID:     window.ID,
			PlayerID:     pid,
			SalaryDemand: p.Salary,
			Reason:       "contract_expired",
			Status:       models.FreeAgentAvailable,
		}
		if err := s.repos.Transfer.CreateFreeAgent(ctx, fa); err != nil {
			return err
		}
	}
	return nil
}

// runFreeAgentsRound (R2) collects every team's strategy and matches free
// agents against them.
func (s *TransferService) runFreeAgentsRound(ctx context.Context, window *models.TransferWindow) error {
	pool, err := s.repos.Transfer.ListFreeAgentsByWindow(ctx, window.ID)
	if err != nil {
		return err
	}
	var freeAgents []models.Player
	for _, fa := range pool {
		if fa.Status != models.FreeAgentAvailable {
			continue
		}
		p, err := s.repos.Player.GetByID(ctx, fa.PlayerID)
		if err != nil {
			return err
		}
		freeAgents = append(freeAgents, *p)
	}
	if len(freeAgents) == 0 {
		return nil
	}

	teams, err := s.repos.Team.ListBySave(ctx, window.SaveID)
	if err != nil {
		return err
	}
	strategies, err := s.buildTeamStrategies(ctx, teams, window, freeAgents)
	if err != nil {
		return err
	}

	signings, evts := s.engine.ExecuteFreeAgentsRound(*window, freeAgents, strategies, 3)
	for _, rec := range signings {
		rec.SaveID = window.SaveID
		rec.OccurredAt = time.Now()
		if err := s.repos.Transfer.CreateRecord(ctx, &rec); err != nil {
			return err
		}
		if rec.ToTeamID != nil {
			if err := s.repos.Player.Reassign(ctx, rec.PlayerID, rec.ToTeamID, rec.NewSalary, window.Season+3); err != nil {
				return err
			}
		}
		for _, fa := range pool {
			if fa.PlayerID == rec.PlayerID {
				if err := s.repos.Transfer.UpdateFreeAgentStatus(ctx, fa.ID, models.FreeAgentSigned); err != nil {
					return err
				}
			}
		}
	}
	for i := range evts {
		evts[i].CreatedAt = time.Now()
		if err := s.repos.Transfer.CreateEvent(ctx, &evts[i]); err != nil {
			return err
		}
	}
	return nil
}

// buildTeamStrategies asks the configured strategy generator for every
// team's plan this round.
func (s *TransferService) buildTeamStrategies(ctx context.Context, teams []*models.Team, window *models.TransferWindow, freeAgents []models.Player) (map[engines.ID]engines.TeamStrategy, error) {
	strategies := make(map[engines.ID]engines.TeamStrategy, len(teams))
	otherRosters := make(map[engines.ID][]models.Player, len(teams))
	for _, t := range teams {
		roster, err := s.repos.Player.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		players := make([]models.Player, 0, len(roster))
		for _, p := range roster {
			players = append(players, *p)
		}
		otherRosters[t.ID] = players
	}
	for _, t := range teams {
		profile := models.DefaultGMProfile(t.GMPersonality)
		roster := otherRosters[t.ID]
		strat := s.strategy.GenerateTeamStrategy(*t, roster, profile, freeAgents, otherRosters, engines.TransferContext{Season: window.Season, Round: window.Round})
		strategies[t.ID] = strat
	}
	return strategies, nil
}

// runFinancialClearanceRound (R3) flags teams whose wage bill or balance
// has gone negative, forcing a withdrawal of their outstanding targets
// rather than letting R4 execute an unaffordable deal.
func (s *TransferService) runFinancialClearanceRound(ctx context.Context, window *models.TransferWindow) error {
	teams, err := s.repos.Team.ListBySave(ctx, window.SaveID)
	if err != nil {
		return err
	}
	for _, t := range teams {
		if t.Balance >= 0 {
			continue
		}
		evt := models.TransferEvent{
			WindowID: window.ID, Round: models.RoundFinancialClearance, Kind: models.EventListingExpired,
			Importance: 1, Headline: fmt.Sprintf("%s enters financial clearance with a negative balance", t.Name),
			CreatedAt: time.Now(),
		}
		if err := s.repos.Transfer.CreateEvent(ctx, &evt); err != nil {
			return err
		}
	}
	return nil
}

// runReinforcementRound (R4) resolves bids on every open rostered-player
// listing.
func (s *TransferService) runReinforcementRound(ctx context.Context, window *models.TransferWindow) error {
	listings, err := s.repos.Transfer.ListListingsByWindow(ctx, window.ID)
	if err != nil {
		return err
	}
	var open []models.TransferListing
	var offers []engines.ReinforcementOffer
	for _, l := range listings {
		if l.Status != models.TransferListingOpen {
			continue
		}
		open = append(open, *l)
		bids, err := s.repos.Transfer.ListOffersByListing(ctx, l.ID)
		if err != nil {
			return err
		}
		for _, o := range bids {
			offers = append(offers, engines.ReinforcementOffer{ListingID: l.ID, PlayerID: l.PlayerID, BuyerTeamID: o.BuyerTeamID, Amount: o.Amount})
		}
	}
	if len(open) == 0 {
		return nil
	}

	sold, evts := s.engine.ExecuteReinforcementRound(*window, open, offers)
	for _, rec := range sold {
		rec.SaveID = window.SaveID
		rec.OccurredAt = time.Now()
		if err := s.repos.Transfer.CreateRecord(ctx, &rec); err != nil {
			return err
		}
		if rec.ToTeamID != nil {
			player, err := s.repos.Player.GetByID(ctx, rec.PlayerID)
			if err != nil {
				return err
			}
			if err := s.repos.Player.Reassign(ctx, rec.PlayerID, rec.ToTeamID, player.Salary, window.Season+3); err != nil {
				return err
			}
		}
		if rec.FromTeamID != nil {
			if err := s.repos.Team.UpdateBalance(ctx, *rec.FromTeamID, rec.Fee); err != nil {
				return err
			}
		}
		if rec.ToTeamID != nil {
			if err := s.repos.Team.UpdateBalance(ctx, *rec.ToTeamID, -rec.Fee); err != nil {
				return err
			}
		}
		for _, l := range open {
			if l.PlayerID == rec.PlayerID {
				if err := s.repos.Transfer.UpdateListingStatus(ctx, l.ID, models.TransferListingAccepted); err != nil {
					return err
				}
			}
		}
	}
	for i := range evts {
		evts[i].CreatedAt = time.Now()
		if err := s.repos.Transfer.CreateEvent(ctx, &evts[i]); err != nil {
			return err
		}
	}
	return nil
}

// runFinalizeRound (R5) expires every listing nobody bought and emits the
// window's closing summary event.
func (s *TransferService) runFinalizeRound(ctx context.Context, window *models.TransferWindow) error {
	listings, err := s.repos.Transfer.ListListingsByWindow(ctx, window.ID)
	if err != nil {
		return err
	}
	for _, l := range listings {
		if l.Status != models.TransferListingOpen {
			continue
		}
		if err := s.repos.Transfer.UpdateListingStatus(ctx, l.ID, models.TransferListingExpired); err != nil {
			return err
		}
	}
	s.events.Append(ctx, events.Event{
		SaveID: uint64(window.SaveID), Season: window.Season, Kind: events.KindTransfer,
		Headline: "Transfer window closes", Importance: 1, CreatedAt: time.Now(),
	})
	return nil
}

// Events returns a window's newsfeed, newest first (get_transfer_events).
func (s *TransferService) Events(ctx context.Context, windowID models.ID) ([]*models.TransferEvent, error) {
	return s.repos.Transfer.ListEventsByWindow(ctx, windowID)
}
