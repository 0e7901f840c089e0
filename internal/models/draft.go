// internal/models/draft.go
// Draft pool and pick ordering for the rookie draft phase (spec.md §4.4.2).

package models

import "time"

// DraftPool is one season's set of draftable rookie prospects.
type DraftPool struct {
	ID     ID     `json:"id" db:"id"`
	SaveID ID     `json:"save_id" db:"save_id"`
	Season uint32 `json:"season" db:"season"`
	Status DraftPoolStatus `json:"status" db:"status"`
}

// DraftPoolStatus tracks the pool's lifecycle.
type DraftPoolStatus string

const (
	DraftPoolOpen    DraftPoolStatus = "open"
	DraftPoolClosed  DraftPoolStatus = "closed"
)

// DraftOrder is one team's pick position, worst-record-first (spec.md §4.4.2).
type DraftOrder struct {
	ID       ID `json:"id" db:"id"`
	PoolID   ID `json:"pool_id" db:"pool_id"`
	TeamID   ID `json:"team_id" db:"team_id"`
	Position int `json:"position" db:"position"`
	Used     bool `json:"used" db:"used"`
}

// DraftPick records the selection made at one DraftOrder position.
type DraftPick struct {
	ID         ID        `json:"id" db:"id"`
	PoolID     ID        `json:"pool_id" db:"pool_id"`
	TeamID     ID        `json:"team_id" db:"team_id"`
	PlayerID   ID        `json:"player_id" db:"player_id"`
	Position   int       `json:"position" db:"position"`
	PickedAt   time.Time `json:"picked_at" db:"picked_at"`
}
