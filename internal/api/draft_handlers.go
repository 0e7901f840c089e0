// internal/api/draft_handlers.go
// Rookie draft and draft-pick auction command surface (spec.md §6 "Draft").

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGenerateDraftPool generates a season's rookie prospect pool
// (generate_draft_pool).
func HandleGenerateDraftPool(draftService *services.DraftService, saveService *services.SaveService) gin.HandlerFunc {
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
		pool, err := draftService.GenerateDraftPool(c.Request.Context(), saveID, save.CurrentSeason)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusCreated, pool)
	}
}

// HandleRunDraftLottery seeds the draft order by inverse standings with a
// weighted lottery for the bottom slots (run_draft_lottery).
func HandleRunDraftLottery(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := ParamID(c, "pool_id")
		if !ok {
			return
		}
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		orders, err := draftService.RunDraftLottery(c.Request.Context(), poolID, saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, orders)
	}
}

// HandleMakeDraftPick records one team's selection (make_draft_pick).
func HandleMakeDraftPick(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := ParamID(c, "pool_id")
		if !ok {
			return
		}
		var req struct {
			TeamID   uint64 `json:"team_id" binding:"required"`
			PlayerID uint64 `json:"player_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		pick, err := draftService.MakeDraftPick(c.Request.Context(), poolID, req.TeamID, req.PlayerID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, pick)
	}
}

// HandleAIAutoDraft resolves every remaining draft slot with the AI's
// best-available-prospect heuristic (ai_auto_draft).
func HandleAIAutoDraft(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := ParamID(c, "pool_id")
		if !ok {
			return
		}
		picks, err := draftService.AIAutoDraft(c.Request.Context(), poolID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, picks)
	}
}

// HandleStartDraftAuction opens the sealed-bid auction on every unused draft
// order slot whose team's GM is willing to list it (start_draft_auction).
func HandleStartDraftAuction(draftService *services.DraftService, saveService *services.SaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		poolID, ok := ParamID(c, "pool_id")
		if !ok {
			return
		}
		save, err := saveService.GetByID(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		auction, err := draftService.StartDraftAuction(c.Request.Context(), saveID, save.CurrentSeason, poolID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusCreated, auction)
	}
}

// HandleExecuteAuctionRound runs one sealed-bid round over every open
// listing (execute_auction_round).
func HandleExecuteAuctionRound(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID, ok := ParamID(c, "auction_id")
		if !ok {
			return
		}
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := draftService.ExecuteAuctionRound(c.Request.Context(), auctionID, saveID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"executed": true})
	}
}

// HandleFastForwardAuction runs every remaining auction round to completion
// (fast_forward_auction).
func HandleFastForwardAuction(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID, ok := ParamID(c, "auction_id")
		if !ok {
			return
		}
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := draftService.FastForwardAuction(c.Request.Context(), auctionID, saveID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"finished": true})
	}
}

// HandleFinalizeAuction closes the auction, returning unsold slots to their
// sellers (finalize_auction).
func HandleFinalizeAuction(draftService *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auctionID, ok := ParamID(c, "auction_id")
		if !ok {
			return
		}
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := draftService.FinalizeAuction(c.Request.Context(), auctionID, saveID); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, gin.H{"finalized": true})
	}
}
