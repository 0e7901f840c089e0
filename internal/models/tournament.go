// internal/models/tournament.go
// A Tournament is one competition instance within a phase: a regular
// season, a playoff bracket, an international event.

package models

import "time"

// TournamentFormat is the fixture-generation shape (spec.md §4.1).
type TournamentFormat string

const (
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
	FormatSwiss             TournamentFormat = "swiss"
	FormatGroupToKnockout   TournamentFormat = "group_to_knockout"
)

// TournamentStatus tracks a tournament's lifecycle within its phase.
type TournamentStatus string

const (
	TournamentNotStarted TournamentStatus = "not_started"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

// Tournament is one phase's competition instance, scoped to a region unless
// it is an international event (RegionID nil).
type Tournament struct {
	ID        ID               `json:"id" db:"id"`
	SaveID    ID               `json:"save_id" db:"save_id"`
	Season    uint32           `json:"season" db:"season"`
	Phase     SeasonPhase      `json:"phase" db:"phase"`
	RegionID  *ID              `json:"region_id,omitempty" db:"region_id"`
	Format    TournamentFormat `json:"format" db:"format"`
	Status    TournamentStatus `json:"status" db:"status"`
	RoundsTotal int            `json:"rounds_total" db:"rounds_total"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// IsInternational mirrors the owning phase's international classification.
func (t *Tournament) IsInternational() bool {
	return t.RegionID == nil
}
