// internal/models/match.go
// A Match is a best-of-N series between two teams; each series is made up
// of one or more Games simulated by the match engine (spec.md §4.2).

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MatchFormat is the best-of-N length of a series.
type MatchFormat int

const (
	BestOf1 MatchFormat = 1
	BestOf3 MatchFormat = 3
	BestOf5 MatchFormat = 5
)

// WinsNeeded returns the number of game wins required to take the series.
func (f MatchFormat) WinsNeeded() int {
	return int(f)/2 + 1
}

// MatchStatus is a series' lifecycle state.
type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

// Match is a best-of-N series between two teams within a Tournament.
type Match struct {
	ID           ID          `json:"id" db:"id"`
	TournamentID ID          `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int         `json:"round_number" db:"round_number"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	Format       MatchFormat `json:"format" db:"format"`
	Team1ID      *ID         `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID      *ID         `json:"team2_id,omitempty" db:"team2_id"`
	WinnerID     *ID         `json:"winner_id,omitempty" db:"winner_id"`
	Score1       int         `json:"score1" db:"score1"`
	Score2       int         `json:"score2" db:"score2"`
	Status       MatchStatus `json:"status" db:"status"`
	NextMatchID  *ID         `json:"next_match_id,omitempty" db:"next_match_id"`
	MvpPlayerID  *ID         `json:"mvp_player_id,omitempty" db:"mvp_player_id"`
	PlayedAt     *time.Time  `json:"played_at,omitempty" db:"played_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// GameResult is one game within a Match's series.
type GameResult struct {
	ID           ID        `json:"id" db:"id"`
	MatchID      ID        `json:"match_id" db:"match_id"`
	GameNumber   int       `json:"game_number" db:"game_number"`
	WinnerTeamID ID        `json:"winner_team_id" db:"winner_team_id"`
	DurationMin  int       `json:"duration_minutes" db:"duration_minutes"`
	PlayerStats  PlayerGameStatsList `json:"player_stats,omitempty" db:"player_stats"`
	Events       GameEventList       `json:"events,omitempty" db:"events"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PlayerGameStats is one player's per-game performance line.
type PlayerGameStats struct {
	PlayerID       ID      `json:"player_id"`
	TeamID         ID      `json:"team_id"`
	Position       Position `json:"position"`
	PerformanceVal float64 `json:"performance_value"`
	Won            bool    `json:"won"`
}

// PlayerGameStatsList is a JSON-column slice of per-player game stats.
type PlayerGameStatsList []PlayerGameStats

// GameEvent is one notable in-game moment recorded for the newsfeed/replay.
type GameEvent struct {
	MinuteMark int    `json:"minute_mark"`
	Kind       string `json:"kind"`
	PlayerID   *ID    `json:"player_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// GameEventList is a JSON-column slice of game events.
type GameEventList []GameEvent

func (s *PlayerGameStatsList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into PlayerGameStatsList", value)
	}
	return json.Unmarshal(bytes, s)
}

func (s PlayerGameStatsList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (e *GameEventList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into GameEventList", value)
	}
	return json.Unmarshal(bytes, e)
}

func (e GameEventList) Value() (driver.Value, error) {
	return json.Marshal(e)
}
