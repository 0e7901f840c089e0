// internal/api/match_handlers.go
// Match simulation command surface (spec.md §6 "Simulation"): driving the
// kernel one match or one whole tournament bracket at a time, plus
// read-only prediction and lookup.

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetMatch returns one match by ID (get_match).
func HandleGetMatch(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, ok := ParamID(c, "match_id")
		if !ok {
			return
		}
		m, err := matchService.GetByID(c.Request.Context(), matchID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, m)
	}
}

// HandleListTournamentMatches lists every match in a tournament's bracket.
func HandleListTournamentMatches(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, ok := ParamID(c, "tournament_id")
		if !ok {
			return
		}
		matches, err := matchService.ListByTournament(c.Request.Context(), tournamentID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, matches)
	}
}

// HandleSimulateNextMatch simulates a tournament's next pending match
// (simulate_next_match).
func HandleSimulateNextMatch(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, ok := ParamID(c, "tournament_id")
		if !ok {
			return
		}
		m, err := matchService.SimulateNextMatch(c.Request.Context(), tournamentID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, m)
	}
}

// HandleSimulateAllMatches fast-forwards a tournament's bracket to
// completion (simulate_all_matches).
func HandleSimulateAllMatches(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentID, ok := ParamID(c, "tournament_id")
		if !ok {
			return
		}
		matches, err := matchService.SimulateAllMatches(c.Request.Context(), tournamentID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, matches)
	}
}

// HandleSimulateMatch simulates one specific match by ID
// (simulate_match_detailed).
func HandleSimulateMatch(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, ok := ParamID(c, "match_id")
		if !ok {
			return
		}
		m, err := matchService.SimulateMatch(c.Request.Context(), matchID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, m)
	}
}

// HandleMatchPrediction returns a pre-match win-probability estimate
// (get_match_prediction).
func HandleMatchPrediction(matchService *services.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, ok := ParamID(c, "match_id")
		if !ok {
			return
		}
		pred, err := matchService.Predict(c.Request.Context(), matchID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, pred)
	}
}
