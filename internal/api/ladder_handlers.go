// internal/api/ladder_handlers.go
// Off-season ladder tournament command surface (spec.md §6 "Ladder").

package api

import (
	"net/http"

	"tournament-planner/internal/models"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleInitializeLadderTournament seeds a new sponsor-branded ladder
// tournament (initialize_ladder_tournament).
func HandleInitializeLadderTournament(ladderService *services.LadderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		var req struct {
			EventType models.LadderEventType `json:"event_type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		ladder, err := ladderService.InitializeLadderTournament(c.Request.Context(), saveID, req.EventType)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusCreated, ladder)
	}
}

// HandleSimulateLadderRound simulates a ladder tournament's next round
// (simulate_ladder_round).
func HandleSimulateLadderRound(ladderService *services.LadderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ladderID, ok := ParamID(c, "ladder_id")
		if !ok {
			return
		}
		if err := ladderService.SimulateLadderRound(c.Request.Context(), ladderID); err != nil {
			Fail(c, err)
			return
		}
		rankings, err := ladderService.GetLadderRankings(c.Request.Context(), ladderID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, rankings)
	}
}

// HandleCompleteLadderTournament closes out a ladder tournament and awards
// its final standings (complete_ladder_tournament).
func HandleCompleteLadderTournament(ladderService *services.LadderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ladderID, ok := ParamID(c, "ladder_id")
		if !ok {
			return
		}
		if err := ladderService.CompleteLadderTournament(c.Request.Context(), ladderID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"completed": true})
	}
}

// HandleGetLadderRankings returns a ladder tournament's current standings
// (get_ladder_rankings).
func HandleGetLadderRankings(ladderService *services.LadderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ladderID, ok := ParamID(c, "ladder_id")
		if !ok {
			return
		}
		rankings, err := ladderService.GetLadderRankings(c.Request.Context(), ladderID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, rankings)
	}
}
