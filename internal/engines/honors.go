// internal/engines/honors.go
// Tournament and annual honors (spec.md §4.7). Grounded on
// original_source's commands/awards_commands.rs (games_played >= 10
// floor, per-position All-Pro, age <= 20 rookie gate, yearly_top_score
// ordering) and honor_commands.rs's idempotent-honor-row convention.

package engines

import (
	"sort"

	"github.com/montanaflynn/stats"
	"tournament-planner/internal/models"
)

// MinGamesForAnnualHonors is the games_played floor below which a player
// is excluded from every annual award (spec.md §4.7).
const MinGamesForAnnualHonors = 10

// RookieMaxAge is the inclusive age ceiling for Rookie of the Year.
const RookieMaxAge = 20

// PlayerSeasonLine is one player's aggregated per-season statline, the
// input to every annual-award computation.
type PlayerSeasonLine struct {
	PlayerID    ID
	TeamID      ID
	Position    models.Position
	Age         uint8
	GamesPlayed int
	Impacts     []float64 // per-game impact score, averaged by YearlyScore
	ChampionshipBonus float64
}

// YearlyScore computes PlayerYearScore from a season line's average
// impact (mean of Impacts via montanaflynn/stats, matching the teacher
// pack's use of the library for aggregate match/season statistics).
func (l PlayerSeasonLine) YearlyScore() float64 {
	avg, err := stats.Mean(l.Impacts)
	if err != nil {
		avg = 0
	}
	return models.PlayerYearScore(avg, l.ChampionshipBonus)
}

// HonorsEngine computes tournament and annual honors from season lines.
type HonorsEngine struct{}

func NewHonorsEngine() *HonorsEngine { return &HonorsEngine{} }

// eligible reports whether a season line clears the games-played floor.
func eligible(l PlayerSeasonLine) bool { return l.GamesPlayed >= MinGamesForAnnualHonors }

// TournamentHonors is one tournament's full bracket-placement and
// per-player award set.
type TournamentHonors struct {
	ChampionTeamID  ID
	RunnerUpTeamID  ID
	ThirdTeamID     *ID
	FourthTeamID    *ID
	ChampionPlayers []ID // winning team's 5 starters
	RunnerUpPlayers []ID // finalist team's 5 starters
	TournamentMVP   ID
	FinalsMVP       ID
}

// EvaluateTournament derives bracket-placement and MVP honors from final
// standings and per-game MVP tallies. standings is ranked 1st..Nth;
// gameMVPScores sums a player's mvp_score across every game they played
// in the tournament, finalsMVPScores the same restricted to the final
// series.
func (e *HonorsEngine) EvaluateTournament(standings []ID, championStarters, runnerUpStarters []ID, gameMVPScores, finalsMVPScores map[ID]float64) TournamentHonors {
	h := TournamentHonors{ChampionPlayers: championStarters, RunnerUpPlayers: runnerUpStarters}
	if len(standings) > 0 {
		h.ChampionTeamID = standings[0]
	}
	if len(standings) > 1 {
		h.RunnerUpTeamID = standings[1]
	}
	if len(standings) > 2 {
		h.ThirdTeamID = &standings[2]
	}
	if len(standings) > 3 {
		h.FourthTeamID = &standings[3]
	}
	h.TournamentMVP = topScorer(gameMVPScores)
	h.FinalsMVP = topScorer(finalsMVPScores)
	return h
}

func topScorer(scores map[ID]float64) ID {
	var best ID
	bestScore := -1.0
	for id, s := range scores {
		if s > bestScore {
			bestScore, best = s, id
		}
	}
	return best
}

// AnnualAwards bundles every season-end award (spec.md §4.7).
type AnnualAwards struct {
	Top20      []PlayerSeasonLine
	AllPro     map[models.Position]PlayerSeasonLine
	Rookie     *PlayerSeasonLine
	MVP        *PlayerSeasonLine
}

// EvaluateAnnualAwards ranks every eligible season line and derives
// Top 20, per-position All-Pro, Rookie of the Year, and Annual MVP
// (the #1 entry on Top 20).
func (e *HonorsEngine) EvaluateAnnualAwards(lines []PlayerSeasonLine) AnnualAwards {
	var pool []PlayerSeasonLine
	for _, l := range lines {
		if eligible(l) {
			pool = append(pool, l)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].YearlyScore() > pool[j].YearlyScore() })

	awards := AnnualAwards{AllPro: make(map[models.Position]PlayerSeasonLine)}
	if len(pool) > 20 {
		awards.Top20 = pool[:20]
	} else {
		awards.Top20 = pool
	}
	if len(awards.Top20) > 0 {
		mvp := awards.Top20[0]
		awards.MVP = &mvp
	}

	for _, pos := range models.Positions {
		var best *PlayerSeasonLine
		for i := range pool {
			if pool[i].Position != pos {
				continue
			}
			if best == nil || pool[i].YearlyScore() > best.YearlyScore() {
				best = &pool[i]
			}
		}
		if best != nil {
			awards.AllPro[pos] = *best
		}
	}

	for i := range pool {
		if pool[i].Age <= RookieMaxAge {
			rookie := pool[i]
			awards.Rookie = &rookie
			break
		}
	}

	return awards
}
