// internal/api/phase_handlers.go
// Season phase/time command surface (spec.md §6 "Phase & time").

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetGameState returns a save's current phase/status/actions
// (get_game_state, backed by PhaseService.GetTimeState).
func HandleGetGameState(phaseService *services.PhaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		state, err := phaseService.GetTimeState(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, state)
	}
}

// HandleInitializeCurrentPhase creates the current phase's tournaments/
// windows/auctions (initialize_current_phase).
func HandleInitializeCurrentPhase(phaseService *services.PhaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := phaseService.InitializePhase(c.Request.Context(), saveID); err != nil {
			Fail(c, err)
			return
		}
		state, err := phaseService.GetTimeState(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, state)
	}
}

// HandleAdvancePhase is the single "do the next thing" action: it
// initializes the current phase if nothing has started yet, or completes it
// and moves to the next phase if everything initialized for it is done
// (advance_phase -- a thin dispatch wrapper over initialize_phase/
// complete_phase kept since the UI command table lists both granular steps
// and this combined one; see DESIGN.md).
func HandleAdvancePhase(phaseService *services.PhaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		state, err := phaseService.GetTimeState(ctx, saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		switch state.PhaseStatus {
		case "not_initialized":
			if err := phaseService.InitializePhase(ctx, saveID); err != nil {
				Fail(c, err)
				return
			}
		case "completed":
			newState, err := phaseService.CompletePhase(ctx, saveID)
			if err != nil {
				Fail(c, err)
				return
			}
			Ok(c, http.StatusOK, newState)
			return
		default:
			FailWith(c, http.StatusConflict, "ERR_PHASE", "current phase is still in progress")
			return
		}
		newState, err := phaseService.GetTimeState(ctx, saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, newState)
	}
}

// HandleCompleteCurrentPhase completes the current phase and advances to
// the next one (complete_current_phase).
func HandleCompleteCurrentPhase(phaseService *services.PhaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		state, err := phaseService.CompletePhase(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, state)
	}
}

// HandleRunSeasonSettlement persists the season's annual awards ahead of
// rolling the season number (run_season_settlement -- the honors half of
// what StartNewSeason otherwise folds together; split out so the UI can
// show the awards screen before committing to the new season).
func HandleRunSeasonSettlement(honorsService *services.HonorsService, saveService *services.SaveService) gin.HandlerFunc {
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
		if err := honorsService.PersistAnnualAwards(c.Request.Context(), saveID, save.CurrentSeason); err != nil {
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

// HandleStartNewSeason settles every active player's season and rolls the
// save into next season's spring regular phase (start_new_season).
func HandleStartNewSeason(phaseService *services.PhaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		if err := phaseService.StartNewSeason(c.Request.Context(), saveID); err != nil {
			Fail(c, err)
			return
		}
		state, err := phaseService.GetTimeState(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, state)
	}
}
