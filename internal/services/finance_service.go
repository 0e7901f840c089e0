// internal/services/finance_service.go
// Team finances (spec.md §4.5, §6 "Finance"): wage bills, league revenue
// sharing, and tournament prize payouts, all recorded to the permanent
// ledger that draft-pick auction settlement also writes to.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// FinanceService reads and mutates team balances through the ledger.
type FinanceService struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewFinanceService creates a new finance service.
func NewFinanceService(repos *repositories.Container, logger *log.Logger) *FinanceService {
	return &FinanceService{repos: repos, logger: logger}
}

// TeamFinanceSummary is one team's current balance, roster wage bill, and
// recent ledger activity.
type TeamFinanceSummary struct {
	TeamID       models.ID                      `json:"team_id"`
	TeamName     string                         `json:"team_name"`
	Balance      int64                          `json:"balance"`
	WeeklyWages  int64                          `json:"weekly_wages"`
	RecentLedger []*models.FinancialTransaction `json:"recent_ledger"`
}

func (s *FinanceService) summarize(ctx context.Context, t *models.Team) (*TeamFinanceSummary, error) {
	roster, err := s.repos.Player.ListByTeam(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	var wages int64
	for _, p := range roster {
		wages += p.Salary
	}
	ledger, err := s.repos.Ledger.ListByTeam(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if len(ledger) > 20 {
		ledger = ledger[:20]
	}
	return &TeamFinanceSummary{
		TeamID: t.ID, TeamName: t.Name, Balance: t.Balance, WeeklyWages: wages, RecentLedger: ledger,
	}, nil
}

// GetTeamFinanceSummary returns one team's balance, wage bill, and recent
// ledger activity (get_team_finance_summary).
func (s *FinanceService) GetTeamFinanceSummary(ctx context.Context, teamID models.ID) (*TeamFinanceSummary, error) {
	t, err := s.repos.Team.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, t)
}

// GetAllTeamsFinance returns every team's finance summary within a save
// (get_all_teams_finance).
func (s *FinanceService) GetAllTeamsFinance(ctx context.Context, saveID models.ID) ([]*TeamFinanceSummary, error) {
	teams, err := s.repos.Team.ListBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	summaries := make([]*TeamFinanceSummary, 0, len(teams))
	for _, t := range teams {
		summary, err := s.summarize(ctx, t)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// PayTeamSalaries debits every team's full roster wage bill for the
// season and records one ledger entry per team (pay_team_salaries).
func (s *FinanceService) PayTeamSalaries(ctx context.Context, saveID models.ID) error {
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return err
	}
	teams, err := s.repos.Team.ListBySave(ctx, saveID)
	if err != nil {
		return err
	}
	for _, t := range teams {
		roster, err := s.repos.Player.ListByTeam(ctx, t.ID)
		if err != nil {
			return err
		}
		var wages int64
		for _, p := range roster {
			wages += p.Salary
		}
		if wages == 0 {
			continue
		}
		if err := s.repos.Ledger.Create(ctx, &models.FinancialTransaction{
			TeamID: t.ID, Season: save.CurrentSeason, Kind: "salary", Amount: -wages, CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := s.repos.Team.UpdateBalance(ctx, t.ID, -wages); err != nil {
			return err
		}
	}
	return nil
}

// DistributeLeagueShare splits a fixed revenue pool evenly across every
// team in the save (distribute_league_share) and records each credit.
func (s *FinanceService) DistributeLeagueShare(ctx context.Context, saveID models.ID, totalPool int64) error {
	if totalPool <= 0 {
		return fmt.Errorf("%w: league share pool must be positive", ErrInvalidInput)
	}
	save, err := s.repos.Save.GetByID(ctx, saveID)
	if err != nil {
		return err
	}
	teams, err := s.repos.Team.ListBySave(ctx, saveID)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return nil
	}
	share := totalPool / int64(len(teams))
	for _, t := range teams {
		if err := s.repos.Ledger.Create(ctx, &models.FinancialTransaction{
			TeamID: t.ID, Season: save.CurrentSeason, Kind: "league_share", Amount: share, CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := s.repos.Team.UpdateBalance(ctx, t.ID, share); err != nil {
			return err
		}
	}
	return nil
}

// TournamentPrizePool ranks 1st..4th payout amounts for one completed
// tournament.
var TournamentPrizePool = []int64{500_000, 250_000, 100_000, 50_000}

// DistributeTournamentPrizes pays out a completed tournament's final
// standings against TournamentPrizePool (distribute_tournament_prizes),
// crediting balances for as many places as the field and pool cover.
func (s *FinanceService) DistributeTournamentPrizes(ctx context.Context, tournamentID models.ID) error {
	t, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != models.TournamentCompleted {
		return fmt.Errorf("%w: tournament %d is not yet completed", ErrPreconditionFailed, tournamentID)
	}
	entries, err := s.repos.Standing.ListByTournament(ctx, t.ID)
	if err != nil {
		return err
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Points > entries[i].Points {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	for i, prize := range TournamentPrizePool {
		if i >= len(entries) {
			break
		}
		teamID := entries[i].TeamID
		reference := tournamentID
		if err := s.repos.Ledger.Create(ctx, &models.FinancialTransaction{
			TeamID: teamID, Season: t.Season, Kind: "tournament_prize", Amount: prize, Reference: &reference, CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		if err := s.repos.Team.UpdateBalance(ctx, teamID, prize); err != nil {
			return err
		}
	}
	return nil
}
