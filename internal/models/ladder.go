// internal/models/ladder.go
// The off-season ladder: a 12-round individual-rating spectacle event
// pairing players into ad hoc 5v5s, independent of league standings
// (spec.md §4.6).

package models

import (
	"math"
	"time"
)

// LadderEventType is the closed set of sponsor-branded ladder formats.
type LadderEventType string

const (
	LadderDouyu LadderEventType = "douyu"
	LadderDouyin LadderEventType = "douyin"
	LadderHuya  LadderEventType = "huya"
)

// LadderRounds is the fixed season length of one ladder tournament.
const LadderRounds = 12

// LadderTournamentStatus tracks the event's lifecycle.
type LadderTournamentStatus string

const (
	LadderNotStarted LadderTournamentStatus = "not_started"
	LadderInProgress LadderTournamentStatus = "in_progress"
	LadderCompleted  LadderTournamentStatus = "completed"
)

// LadderTournament is one off-season ladder event.
type LadderTournament struct {
	ID        ID                     `json:"id" db:"id"`
	SaveID    ID                     `json:"save_id" db:"save_id"`
	Season    uint32                 `json:"season" db:"season"`
	EventType LadderEventType        `json:"event_type" db:"event_type"`
	Round     int                    `json:"round" db:"round"`
	Status    LadderTournamentStatus `json:"status" db:"status"`
}

// LadderRating is a player's current individual ladder rating, scoped to
// one LadderTournament (ratings do not carry across editions).
type LadderRating struct {
	PlayerID      ID      `json:"player_id" db:"player_id"`
	LadderID      ID      `json:"ladder_id" db:"ladder_id"`
	Rating        float64 `json:"rating" db:"rating"`
	MaxRating     float64 `json:"max_rating" db:"max_rating"`
	GamesPlayed   int     `json:"games_played" db:"games_played"`
	Wins          int     `json:"wins" db:"wins"`
	Losses        int     `json:"losses" db:"losses"`
	MVPCount      int     `json:"mvp_count" db:"mvp_count"`
	TotalInfluence float64 `json:"total_influence" db:"total_influence"`
}

// AvgInfluence is a rating's mean per-game performance contribution.
func (r LadderRating) AvgInfluence() float64 {
	if r.GamesPlayed == 0 {
		return 0
	}
	return r.TotalInfluence / float64(r.GamesPlayed)
}

// BaseLadderRating is every player's starting rating (spec.md §4.6).
const BaseLadderRating = 1200.0

// LadderKFactor returns the Elo update magnitude for a player's experience
// level: higher for new entrants, decaying as games_played grows.
func LadderKFactor(gamesPlayed int) float64 {
	switch {
	case gamesPlayed < 3:
		return 40.0
	case gamesPlayed < 8:
		return 24.0
	default:
		return 16.0
	}
}

// ExpectedScore returns the Elo expected win probability for ratingA vs ratingB.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// MVPScoreBonus is added to a player's raw score (1.0 win, 0.0 loss) when
// they earn the match MVP, before the Elo update is applied. The MVP may
// come from either side.
const MVPScoreBonus = 0.2

// PlayerScore returns the Elo input score for one side of a ladder
// match: 1.0/0.0 for win/loss, boosted if that player was the MVP.
func PlayerScore(won, isMVP bool) float64 {
	score := 0.0
	if won {
		score = 1.0
	}
	if isMVP {
		score += MVPScoreBonus
	}
	return score
}

// UpdateElo returns the new ratings for A and B after one ladder match,
// where scoreA is A's PlayerScore result and gamesPlayedA/B drive each
// side's own K-factor (spec.md §4.6: "K depends on games_played").
func UpdateElo(ratingA, ratingB, scoreA float64, gamesPlayedA, gamesPlayedB int) (newA, newB float64) {
	expectedA := ExpectedScore(ratingA, ratingB)
	newA = ratingA + LadderKFactor(gamesPlayedA)*(scoreA-expectedA)
	scoreB := 1.0 - scoreA
	expectedB := 1.0 - expectedA
	newB = ratingB + LadderKFactor(gamesPlayedB)*(scoreB-expectedB)
	return newA, newB
}

// VersionTier is a champion's patch-strength classification.
type VersionTier string

const (
	TierS VersionTier = "S"
	TierA VersionTier = "A"
	TierB VersionTier = "B"
	TierC VersionTier = "C"
)

// VersionTierMultiplier scales actual_ability by a champion's current tier.
func VersionTierMultiplier(t VersionTier) float64 {
	switch t {
	case TierS:
		return 1.05
	case TierA:
		return 1.02
	case TierC:
		return 0.97
	default:
		return 1.0
	}
}

// ChampionCount is the fixed size of the draftable champion pool (spec.md §4.6).
const ChampionCount = 50

// Champion is one entry in the fixed 50-champion pool.
type Champion struct {
	ID        ID       `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Position  Position `json:"position" db:"position"`
	Archetype string   `json:"archetype" db:"archetype"` // e.g. "carry", "control", "split_push"
}

// MetaVersion assigns every champion's VersionTier for one ladder season.
type MetaVersion struct {
	ID     ID     `json:"id" db:"id"`
	SaveID ID     `json:"save_id" db:"save_id"`
	Season uint32 `json:"season" db:"season"`
}

// ChampionTier is one (champion, season) version-tier assignment row.
type ChampionTier struct {
	MetaVersionID ID          `json:"meta_version_id" db:"meta_version_id"`
	ChampionID    ID          `json:"champion_id" db:"champion_id"`
	Tier          VersionTier `json:"tier" db:"tier"`
}

// PlayerChampionMastery is a player's proficiency with one champion,
// raising their effective performance when playing it on the ladder.
type PlayerChampionMastery struct {
	PlayerID   ID  `json:"player_id" db:"player_id"`
	ChampionID ID  `json:"champion_id" db:"champion_id"`
	Tier       int `json:"tier" db:"tier"` // 1..5, higher is more proficient
}

// LadderSide names one half of a ladder match's blue/red split.
type LadderSide string

const (
	SideBlue LadderSide = "blue"
	SideRed  LadderSide = "red"
)

// LadderMatch is one ad hoc 5v5 pairing within a ladder round. Rosters are
// assembled fresh each round by the matchmaker, not persistent Teams.
type LadderMatch struct {
	ID             ID         `json:"id" db:"id"`
	LadderID       ID         `json:"ladder_id" db:"ladder_id"`
	Round          int        `json:"round_number" db:"round_number"`
	MatchNumber    int        `json:"match_number" db:"match_number"`
	BlueTeam       [5]ID      `json:"-" db:"-"`
	RedTeam        [5]ID      `json:"-" db:"-"`
	BlueAvgRating  float64    `json:"blue_avg_rating" db:"blue_avg_rating"`
	RedAvgRating   float64    `json:"red_avg_rating" db:"red_avg_rating"`
	BluePower      float64    `json:"blue_power" db:"blue_power"`
	RedPower       float64    `json:"red_power" db:"red_power"`
	WinnerSide     LadderSide `json:"winner_side" db:"winner_side"`
	MVPPlayerID    *ID        `json:"mvp_player_id,omitempty" db:"mvp_player_id"`
	GameDurationMin int       `json:"game_duration" db:"game_duration"`
	PlayedAt       time.Time  `json:"played_at" db:"played_at"`
}

// Roster returns the five players on the given side.
func (m LadderMatch) Roster(side LadderSide) [5]ID {
	if side == SideBlue {
		return m.BlueTeam
	}
	return m.RedTeam
}
