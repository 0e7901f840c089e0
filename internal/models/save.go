// internal/models/save.go
// A Save is a persistent world instance; it owns every other entity.

package models

import "time"

// Save is one playthrough's world state.
type Save struct {
	ID             ID          `json:"id" db:"id"`
	OwnerID        ID          `json:"owner_id" db:"owner_id"`
	Name           string      `json:"name" db:"name"`
	CurrentSeason  uint32      `json:"current_season" db:"current_season"`
	CurrentPhase   SeasonPhase `json:"current_phase" db:"current_phase"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// Region is a league region (LPL/LCK/LEC/LCS/...) owning a fixed Team roster.
type Region struct {
	ID     ID     `json:"id" db:"id"`
	SaveID ID     `json:"save_id" db:"save_id"`
	Code   string `json:"code" db:"code"` // e.g. "LPL"
	Name   string `json:"name" db:"name"`
}

// RegionFactor returns the market-value region multiplier from spec.md §4.3.4.
func RegionFactor(code string) float64 {
	switch code {
	case "LPL":
		return 1.3
	case "LCK":
		return 1.2
	case "LEC":
		return 1.0
	case "LCS":
		return 0.9
	default:
		return 1.0
	}
}
