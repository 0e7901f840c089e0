// internal/engines/match.go
// The match simulation kernel: turns two five-player rosters into a
// best-of-N series result. Grounded on original_source's
// commands/match_commands.rs simulate_match_detailed (duration roll,
// Box-Muller game-level noise, BO3 point rule) generalized into a reusable
// engine instead of an inline Tauri command handler.

package engines

import "tournament-planner/internal/models"

// RosterSlot pairs one starting player with their current form state for
// one simulated match.
type RosterSlot struct {
	Player models.Player
	Form   models.PlayerFormFactors
}

// MatchSimulationEngine simulates a best-of-N series between two rosters.
type MatchSimulationEngine struct {
	rng        *RNG
	conditions *ConditionEngine
	traits     *TraitEngine
}

func NewMatchSimulationEngine(rng *RNG) *MatchSimulationEngine {
	return &MatchSimulationEngine{rng: rng, conditions: NewConditionEngine(), traits: NewTraitEngine()}
}

// SeriesResult is the outcome of one simulated best-of-N match.
type SeriesResult struct {
	HomeScore int
	AwayScore int
	WinnerIdx int // 0 = home roster, 1 = away roster
	Games     []models.GameResult
	MVPPlayerID models.ID
}

// SimulateMatch plays out games until one side reaches wins_needed,
// updating each player's form factors in place as the series progresses.
func (e *MatchSimulationEngine) SimulateMatch(home, away []RosterSlot, tournamentType, round string, matchID models.ID, format models.MatchFormat) SeriesResult {
	winsNeeded := format.WinsNeeded()
	var result SeriesResult
	var best models.GameEvent
	bestScore := -1.0

	for gameNumber := 1; result.HomeScore < winsNeeded && result.AwayScore < winsNeeded; gameNumber++ {
		duration := 25 + e.rng.Range(0, 24)
		scoreDiff := int8(result.HomeScore - result.AwayScore)

		homePerf, homeStats := e.simulateSide(home, tournamentType, round, uint8(gameNumber), scoreDiff)
		awayPerf, awayStats := e.simulateSide(away, tournamentType, round, uint8(gameNumber), -scoreDiff)

		gaussian := e.rng.Gaussian(0, gameStdDev)
		finalDiff := (homePerf - awayPerf) + gaussian

		homeWon := finalDiff > 0
		var winnerTeamID models.ID
		if homeWon {
			result.HomeScore++
			if len(home) > 0 {
				winnerTeamID = *home[0].Player.TeamID
			}
		} else {
			result.AwayScore++
			if len(away) > 0 {
				winnerTeamID = *away[0].Player.TeamID
			}
		}

		for i := range homeStats {
			homeStats[i].Won = homeWon
		}
		for i := range awayStats {
			awayStats[i].Won = !homeWon
		}
		allStats := append(append([]models.PlayerGameStats{}, homeStats...), awayStats...)
		for _, s := range allStats {
			if s.PerformanceVal > bestScore {
				bestScore = s.PerformanceVal
				best = models.GameEvent{MinuteMark: duration / 2, Kind: "mvp_play", PlayerID: &s.PlayerID}
			}
		}

		game := models.GameResult{
			MatchID:      matchID,
			GameNumber:   gameNumber,
			WinnerTeamID: winnerTeamID,
			DurationMin:  duration,
			PlayerStats:  allStats,
		}
		result.Games = append(result.Games, game)

		e.advanceForm(home, homePerf, homeWon)
		e.advanceForm(away, awayPerf, !homeWon)
	}

	if best.PlayerID != nil {
		result.MVPPlayerID = *best.PlayerID
	}
	if result.HomeScore > result.AwayScore {
		result.WinnerIdx = 0
	} else {
		result.WinnerIdx = 1
	}
	return result
}

// gameStdDev is the per-game performance-noise standard deviation
// (original_source: game_std_dev = 3.0).
const gameStdDev = 3.0

func (e *MatchSimulationEngine) simulateSide(roster []RosterSlot, tournamentType, round string, gameNumber uint8, scoreDiff int8) (teamPerf float64, stats []models.PlayerGameStats) {
	stats = make([]models.PlayerGameStats, 0, len(roster))
	var total float64
	for _, slot := range roster {
		p := slot.Player
		ctx := NewTraitContext(tournamentType, round, p.Age, p.IsFirstSeason, slot.Form.GamesSinceRest, gameNumber, scoreDiff)
		pressure := MatchPressure(classifyPhase(tournamentType, round))
		baseCondition := e.conditions.Condition(slot.Form, p.Age, pressure)
		combined := e.traits.CalculateCombinedModifiers(p.Traits, ctx)
		ability, _, condition, _ := e.traits.ApplyModifiers(p.Ability, p.Stability, baseCondition, combined)

		noiseStddev := float64(100-p.Stability) / 20.0
		noise := e.rng.Gaussian(0, noiseStddev)
		actual := float64(ability) + float64(condition) + noise

		total += actual
		var teamID models.ID
		if p.TeamID != nil {
			teamID = *p.TeamID
		}
		stats = append(stats, models.PlayerGameStats{
			PlayerID:       p.ID,
			TeamID:         teamID,
			Position:       p.Position,
			PerformanceVal: actual,
			Won:            false, // set by caller once the game outcome is known
		})
	}
	if len(roster) > 0 {
		teamPerf = total / float64(len(roster))
	}
	return
}

func (e *MatchSimulationEngine) advanceForm(roster []RosterSlot, perf float64, won bool) {
	for i := range roster {
		e.conditions.Advance(&roster[i].Form, roster[i].Player.Age, perf, won)
	}
}

// classifyPhase maps a tournament_type/round pair back onto a SeasonPhase
// for pressure estimation; unknown combinations default to regular season.
func classifyPhase(tournamentType, round string) models.SeasonPhase {
	if internationalTournamentTypes[tournamentType] {
		return models.PhaseMsi
	}
	if playoffRounds[round] {
		return models.PhaseSpringPlayoffs
	}
	return models.PhaseSpringRegular
}

// LeaguePoints returns the (winner, loser) standings points for a
// completed BO3 series (spec.md §4.1 / original_source's point rule).
func LeaguePoints(winnerGamesWon, winnerGamesLost int) (winnerPts, loserPts int) {
	if winnerGamesLost == 0 {
		return 3, 0
	}
	return 2, 1
}
