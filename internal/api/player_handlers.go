// internal/api/player_handlers.go
// Player read/update command surface (spec.md §6 "Teams / players").

package api

import (
	"net/http"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleUpdatePlayer persists organizer-editable player fields
// (update_player).
func HandleUpdatePlayer(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		p, err := playerService.GetByID(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		var req struct {
			Salary      *int64          `json:"salary"`
			IsStarter   *bool           `json:"is_starter"`
			Position    *models.Position `json:"position"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		if req.Salary != nil {
			p.Salary = *req.Salary
		}
		if req.IsStarter != nil {
			p.IsStarter = *req.IsStarter
		}
		if req.Position != nil {
			p.Position = *req.Position
		}
		if err := playerService.Update(c.Request.Context(), p); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, p)
	}
}

// HandlePlayerTraits returns a player's trait list (get_player_traits).
func HandlePlayerTraits(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		traits, err := playerService.Traits(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, traits)
	}
}

// HandlePlayerCondition returns a player's current condition band, derived
// from their save's current phase pressure (get_player_condition).
func HandlePlayerCondition(playerService *services.PlayerService, saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		p, err := playerService.GetByID(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		save, err := saveService.GetByID(c.Request.Context(), p.SaveID)
		if err != nil {
			Fail(c, err)
			return
		}
		condition, err := playerService.Condition(c.Request.Context(), playerID, save.CurrentPhase)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"condition": condition})
	}
}

// HandlePlayerFullDetail returns a player's bundled record/form/traits
// (get_player_full_detail).
func HandlePlayerFullDetail(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		detail, err := playerService.FullDetail(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, detail)
	}
}

// HandleUpdatePlayerMarketValue recomputes one player's market value
// (update_player_market_value).
func HandleUpdatePlayerMarketValue(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		value, err := playerService.UpdateMarketValue(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"market_value": value})
	}
}

// HandleUpdateAllMarketValues recomputes every active player's market value
// in a save (update_all_market_values).
func HandleUpdateAllMarketValues(playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		count, err := playerService.UpdateAllMarketValues(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"updated": count})
	}
}
