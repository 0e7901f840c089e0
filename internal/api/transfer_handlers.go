// internal/api/transfer_handlers.go
// Transfer window command surface (spec.md §6 "Transfers"). Opening a
// window is not a distinct TransferService call -- it happens as a side
// effect of PhaseService.InitializePhase when a save's current phase is
// the transfer window, so "start_transfer_window" is served by
// HandleInitializeCurrentPhase (see phase_handlers.go and DESIGN.md).

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetTransferWindow returns a transfer window by ID (get_transfer_window).
func HandleGetTransferWindow(transferService *services.TransferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowID, ok := ParamID(c, "window_id")
		if !ok {
			return
		}
		window, err := transferService.Window(c.Request.Context(), windowID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, window)
	}
}

// HandleExecuteTransferRound advances a window through its current round
// (execute_transfer_round).
func HandleExecuteTransferRound(transferService *services.TransferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowID, ok := ParamID(c, "window_id")
		if !ok {
			return
		}
		if err := transferService.ExecuteTransferRound(c.Request.Context(), windowID); err != nil {
			Fail(c, err)
			return
		}
		window, err := transferService.Window(c.Request.Context(), windowID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, window)
	}
}

// HandleFastForwardTransfers runs every remaining round to completion in one
// call (fast_forward_transfers).
func HandleFastForwardTransfers(transferService *services.TransferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowID, ok := ParamID(c, "window_id")
		if !ok {
			return
		}
		if err := transferService.FastForwardTransfers(c.Request.Context(), windowID); err != nil {
			Fail(c, err)
			return
		}
		window, err := transferService.Window(c.Request.Context(), windowID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, window)
	}
}

// HandleGetTransferEvents returns a window's newsfeed, newest first
// (get_transfer_events).
func HandleGetTransferEvents(transferService *services.TransferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowID, ok := ParamID(c, "window_id")
		if !ok {
			return
		}
		evts, err := transferService.Events(c.Request.Context(), windowID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, evts)
	}
}
