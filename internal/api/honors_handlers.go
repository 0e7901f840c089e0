// internal/api/honors_handlers.go
// Honors and annual awards command surface (spec.md §6 "Honors & awards").

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetHonorHall returns a player's full trophy case (get_honor_hall).
func HandleGetHonorHall(honorsService *services.HonorsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		honors, err := honorsService.GetHonorHall(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, honors)
	}
}

// HandleRegenerateTournamentHonors recomputes a completed tournament's
// placement honors from its final standings (regenerate_tournament_honors).
func HandleRegenerateTournamentHonors(honorsService *services.HonorsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, ok := ParamID(c, "tournament_id")
		if !ok {
			return
		}
		if err := honorsService.RegenerateTournamentHonors(c.Request.Context(), tournamentID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"regenerated": true})
	}
}

// HandleGetAnnualAwardsData previews a season's end-of-year awards without
// persisting them (get_annual_awards_data).
func HandleGetAnnualAwardsData(honorsService *services.HonorsService, saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		save, err := saveService.GetByID(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		awards, err := honorsService.GetAnnualAwardsData(c.Request.Context(), saveID, save.CurrentSeason)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, awards)
	}
}
