// internal/api/routes.go
// Central route registration for the esports-management command surface
// (spec.md §6). Every authenticated route carries the {success,data,error}
// envelope from response.go.

package api

import (
	"tournament-planner/internal/middleware"
	"tournament-planner/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration/login/session routes.
func RegisterAuthRoutes(router *gin.RouterGroup, svc *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", HandleRegister(svc.Auth))
		auth.POST("/login", HandleLogin(svc.Auth))
		auth.POST("/refresh", HandleRefreshToken(svc.Auth))
		auth.POST("/logout", middleware.RequireAuth(svc.Auth), HandleLogout(svc.Auth))
		auth.PUT("/password", middleware.RequireAuth(svc.Auth), HandleChangePassword(svc.Auth))
	}
}

// RegisterSaveRoutes registers save lifecycle, phase/time, draft, finance
// and ladder-initiation routes -- everything addressed by :save_id.
func RegisterSaveRoutes(router *gin.RouterGroup, svc *services.Container) {
	saves := router.Group("/saves")
	saves.Use(middleware.RequireAuth(svc.Auth))
	{
		saves.POST("", HandleCreateSave(svc.Save))
		saves.GET("", HandleListSaves(svc.Save))
		saves.GET("/current", HandleCurrentSaveID(svc.Save))
	}

	owned := saves.Group("/:save_id")
	owned.Use(middleware.RequireSaveOwner(svc))
	{
		owned.GET("", HandleLoadSave(svc.Save))
		owned.DELETE("", HandleDeleteSave(svc.Save))

		owned.GET("/teams", HandleListTeams(svc.Team))
		owned.PUT("/players/market-values", HandleUpdateAllMarketValues(svc.Player))

		owned.GET("/phase", HandleGetGameState(svc.Phase))
		owned.POST("/phase/initialize", HandleInitializeCurrentPhase(svc.Phase))
		owned.POST("/phase/advance", HandleAdvancePhase(svc.Phase))
		owned.POST("/phase/complete", HandleCompleteCurrentPhase(svc.Phase))
		owned.POST("/season/settlement", HandleRunSeasonSettlement(svc.Honors, svc.Save))
		owned.GET("/season/awards", HandleGetAnnualAwardsData(svc.Honors, svc.Save))
		owned.POST("/season/new", HandleStartNewSeason(svc.Phase))

		owned.POST("/draft/pools", HandleGenerateDraftPool(svc.Draft, svc.Save))
		owned.POST("/draft/pools/:pool_id/lottery", HandleRunDraftLottery(svc.Draft))
		owned.POST("/draft/pools/:pool_id/auction", HandleStartDraftAuction(svc.Draft, svc.Save))
		owned.POST("/draft/auctions/:auction_id/rounds", HandleExecuteAuctionRound(svc.Draft))
		owned.POST("/draft/auctions/:auction_id/fast-forward", HandleFastForwardAuction(svc.Draft))
		owned.POST("/draft/auctions/:auction_id/finalize", HandleFinalizeAuction(svc.Draft))

		owned.GET("/finance/teams", HandleGetAllTeamsFinance(svc.Finance))
		owned.POST("/finance/salaries", HandlePayTeamSalaries(svc.Finance))
		owned.POST("/finance/league-share", HandleDistributeLeagueShare(svc.Finance))

		owned.POST("/ladder", HandleInitializeLadderTournament(svc.Ladder))
	}
}

// RegisterRegionRoutes registers region-scoped reads.
func RegisterRegionRoutes(router *gin.RouterGroup, svc *services.Container) {
	regions := router.Group("/regions")
	regions.Use(middleware.RequireAuth(svc.Auth))
	{
		regions.GET("/:region_id/teams", HandleListTeamsByRegion(svc.Team))
	}
}

// RegisterTeamRoutes registers team read/update/finance routes addressed
// by :team_id directly. Ownership is enforced at the owning save's routes;
// these sit one level below that boundary.
func RegisterTeamRoutes(router *gin.RouterGroup, svc *services.Container) {
	teams := router.Group("/teams")
	teams.Use(middleware.RequireAuth(svc.Auth))
	{
		teams.GET("/:team_id", HandleGetTeam(svc.Team))
		teams.PUT("/:team_id", HandleUpdateTeam(svc.Team))
		teams.GET("/:team_id/roster", HandleGetTeamRoster(svc.Team))
		teams.GET("/:team_id/finance", HandleGetTeamFinanceSummary(svc.Finance))
	}
}

// RegisterPlayerRoutes registers player read/update routes addressed by
// :player_id directly.
func RegisterPlayerRoutes(router *gin.RouterGroup, svc *services.Container) {
	players := router.Group("/players")
	players.Use(middleware.RequireAuth(svc.Auth))
	{
		players.GET("/:player_id", HandlePlayerFullDetail(svc.Player))
		players.PUT("/:player_id", HandleUpdatePlayer(svc.Player))
		players.GET("/:player_id/traits", HandlePlayerTraits(svc.Player))
		players.GET("/:player_id/condition", HandlePlayerCondition(svc.Player, svc.Save))
		players.PUT("/:player_id/market-value", HandleUpdatePlayerMarketValue(svc.Player))
		players.PUT("/:player_id/starter", HandleSetStarter(svc.Team, svc.Player))
		players.GET("/:player_id/honors", HandleGetHonorHall(svc.Honors))
	}
}

// RegisterTournamentRoutes registers bracket/simulation/prize routes
// addressed by :tournament_id, ownership-checked via the match service's
// tournament->save resolution.
func RegisterTournamentRoutes(router *gin.RouterGroup, svc *services.Container) {
	tournaments := router.Group("/tournaments")
	tournaments.Use(middleware.RequireAuth(svc.Auth), middleware.RequireTournamentSaveOwner(svc))
	{
		tournaments.GET("/:tournament_id/matches", HandleListTournamentMatches(svc.Match))
		tournaments.POST("/:tournament_id/matches/next", HandleSimulateNextMatch(svc.Match))
		tournaments.POST("/:tournament_id/matches/simulate-all", HandleSimulateAllMatches(svc.Match))
		tournaments.POST("/:tournament_id/honors/regenerate", HandleRegenerateTournamentHonors(svc.Honors))
		tournaments.POST("/:tournament_id/prizes", HandleDistributeTournamentPrizes(svc.Finance))
	}
}

// RegisterMatchRoutes registers single-match routes addressed by
// :match_id, ownership-checked via the match service's match->save
// resolution.
func RegisterMatchRoutes(router *gin.RouterGroup, svc *services.Container) {
	matches := router.Group("/matches")
	matches.Use(middleware.RequireAuth(svc.Auth), middleware.RequireMatchSaveOwner(svc))
	{
		matches.GET("/:match_id", HandleGetMatch(svc.Match))
		matches.POST("/:match_id/simulate", HandleSimulateMatch(svc.Match))
		matches.GET("/:match_id/prediction", HandleMatchPrediction(svc.Match))
	}
}

// RegisterTransferRoutes registers transfer window routes addressed by
// :window_id.
func RegisterTransferRoutes(router *gin.RouterGroup, svc *services.Container) {
	windows := router.Group("/transfers/windows")
	windows.Use(middleware.RequireAuth(svc.Auth))
	{
		windows.GET("/:window_id", HandleGetTransferWindow(svc.Transfer))
		windows.POST("/:window_id/rounds", HandleExecuteTransferRound(svc.Transfer))
		windows.POST("/:window_id/fast-forward", HandleFastForwardTransfers(svc.Transfer))
		windows.GET("/:window_id/events", HandleGetTransferEvents(svc.Transfer))
	}
}

// RegisterLadderRoutes registers ladder-tournament routes addressed by
// :ladder_id.
func RegisterLadderRoutes(router *gin.RouterGroup, svc *services.Container) {
	ladders := router.Group("/ladder")
	ladders.Use(middleware.RequireAuth(svc.Auth))
	{
		ladders.POST("/:ladder_id/rounds", HandleSimulateLadderRound(svc.Ladder))
		ladders.POST("/:ladder_id/complete", HandleCompleteLadderTournament(svc.Ladder))
		ladders.GET("/:ladder_id/rankings", HandleGetLadderRankings(svc.Ladder))
	}
}
