// internal/api/finance_handlers.go
// Team and league finance command surface (spec.md §6 "Finance").

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetTeamFinanceSummary returns one team's balance, wage bill, and
// cashflow summary (get_team_finance_summary).
func HandleGetTeamFinanceSummary(financeService *services.FinanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := ParamID(c, "team_id")
		if !ok {
			return
		}
		summary, err := financeService.GetTeamFinanceSummary(c.Request.Context(), teamID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, summary)
	}
}

// HandleGetAllTeamsFinance returns every team's finance summary in a save
// (get_all_teams_finance).
func HandleGetAllTeamsFinance(financeService *services.FinanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		summaries, err := financeService.GetAllTeamsFinance(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, summaries)
	}
}

// HandlePayTeamSalaries debits every active player's wage from their team's
// balance (pay_team_salaries).
func HandlePayTeamSalaries(financeService *services.FinanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := financeService.PayTeamSalaries(c.Request.Context(), saveID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"paid": true})
	}
}

// HandleDistributeLeagueShare splits a pooled broadcast/sponsorship revenue
// figure evenly across every team in a save (distribute_league_share).
func HandleDistributeLeagueShare(financeService *services.FinanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		var req struct {
			TotalPool int64 `json:"total_pool" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		if err := financeService.DistributeLeagueShare(c.Request.Context(), saveID, req.TotalPool); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"distributed": true})
	}
}

// HandleDistributeTournamentPrizes pays out a completed tournament's prize
// pool to its top finishers (distribute_tournament_prizes).
func HandleDistributeTournamentPrizes(financeService *services.FinanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, ok := ParamID(c, "tournament_id")
		if !ok {
			return
		}
		if err := financeService.DistributeTournamentPrizes(c.Request.Context(), tournamentID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"distributed": true})
	}
}
