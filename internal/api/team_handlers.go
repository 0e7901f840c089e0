// internal/api/team_handlers.go
// Team read/update command surface (spec.md §6 "Teams / players").

package api

import (
	"net/http"

	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleListTeams lists every team in a save (get_all_teams).
func HandleListTeams(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saveID, ok := ParamID(c, "save_id")
		if !ok {
			return
		}
		teams, err := teamService.ListBySave(c.Request.Context(), saveID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, teams)
	}
}

// HandleListTeamsByRegion lists a region's teams (get_teams_by_region).
func HandleListTeamsByRegion(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		regionID, ok := ParamID(c, "region_id")
		if !ok {
			return
		}
		teams, err := teamService.ListByRegion(c.Request.Context(), regionID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, teams)
	}
}

// HandleGetTeam returns one team by ID (get_team).
func HandleGetTeam(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := ParamID(c, "team_id")
		if !ok {
			return
		}
		t, err := teamService.GetByID(c.Request.Context(), teamID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, t)
	}
}

// HandleGetTeamRoster returns a team's roster (get_team_roster).
func HandleGetTeamRoster(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := ParamID(c, "team_id")
		if !ok {
			return
		}
		roster, err := teamService.Roster(c.Request.Context(), teamID)
		if err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, roster)
	}
}

// HandleUpdateTeam persists organizer-editable team fields (update_team).
func HandleUpdateTeam(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := ParamID(c, "team_id")
		if !ok {
			return
		}
		team, err := teamService.GetByID(c.Request.Context(), teamID)
		if err != nil {
			Fail(c, err)
			return
		}
		var req struct {
			Name      *string  `json:"name"`
			ShortName *string  `json:"short_name"`
			Balance   *int64   `json:"balance"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		if req.Name != nil {
			team.Name = *req.Name
		}
		if req.ShortName != nil {
			team.ShortName = *req.ShortName
		}
		if req.Balance != nil {
			team.Balance = *req.Balance
		}
		if err := teamService.Update(c.Request.Context(), team); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, team)
	}
}

// HandleSetStarter toggles a player's starter flag (set_starter).
func HandleSetStarter(teamService *services.TeamService, playerService *services.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := ParamID(c, "player_id")
		if !ok {
			return
		}
		var req struct {
			Starter bool `json:"starter"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			FailWith(c, http.StatusBadRequest, "ERR_INVALID_INPUT", err.Error())
			return
		}
		player, err := playerService.GetByID(c.Request.Context(), playerID)
		if err != nil {
			Fail(c, err)
			return
		}
		if err := teamService.SetStarter(c.Request.Context(), player, req.Starter); err != nil {
			Fail(c, err)
			return
		}
		Ok(c, http.StatusOK, player)
	}
}
