// internal/models/player.go
// Player attributes, runtime form state, and the supporting enumerations
// from spec.md §3/§4.3.

package models

// Position is one of the five starting roles.
type Position string

const (
	PosTop Position = "top"
	PosJug Position = "jug"
	PosMid Position = "mid"
	PosAdc Position = "adc"
	PosSup Position = "sup"
)

// Positions lists all five roles in a stable order.
var Positions = []Position{PosTop, PosJug, PosMid, PosAdc, PosSup}

// PositionFactor returns the market-value position multiplier (spec.md §4.3.4).
func PositionFactor(p Position) float64 {
	switch p {
	case PosMid:
		return 1.2
	case PosAdc:
		return 1.15
	case PosJug:
		return 1.1
	case PosTop:
		return 1.0
	case PosSup:
		return 0.9
	default:
		return 1.0
	}
}

// AgeFactor returns the market-value age multiplier: a six-step curve
// peaking at 23-25 and tapering toward the edges of a playing career
// (spec.md §4.3.4).
func AgeFactor(age uint8) float64 {
	switch {
	case age <= 18:
		return 0.8
	case age <= 20:
		return 1.0
	case age <= 22:
		return 1.15
	case age <= 25:
		return 1.3
	case age <= 28:
		return 1.0
	default:
		return 0.6
	}
}

// PlayerTag marks the handful of players whose growth curve departs from
// the ability/potential baseline.
type PlayerTag string

const (
	TagNormal   PlayerTag = "normal"
	TagGenius   PlayerTag = "genius"
	TagOrdinary PlayerTag = "ordinary"
)

// PlayerStatus is Active or Retired; players are never deleted.
type PlayerStatus string

const (
	PlayerActive  PlayerStatus = "active"
	PlayerRetired PlayerStatus = "retired"
)

// Player is a roster member or free agent.
type Player struct {
	ID                ID           `json:"id" db:"id"`
	SaveID            ID           `json:"save_id" db:"save_id"`
	GameID            string       `json:"game_id" db:"game_id"`
	Age               uint8        `json:"age" db:"age"`
	Ability           uint8        `json:"ability" db:"ability"`
	Potential         uint8        `json:"potential" db:"potential"`
	Stability         uint8        `json:"stability" db:"stability"`
	Tag               PlayerTag    `json:"tag" db:"tag"`
	Status            PlayerStatus `json:"status" db:"status"`
	Position          Position     `json:"position" db:"position"`
	TeamID            *ID          `json:"team_id,omitempty" db:"team_id"`
	Salary            int64        `json:"salary" db:"salary"`
	MarketValue       int64        `json:"market_value" db:"market_value"`
	ContractEndSeason uint32       `json:"contract_end_season" db:"contract_end_season"`
	JoinSeason        uint32       `json:"join_season" db:"join_season"`
	IsStarter         bool         `json:"is_starter" db:"is_starter"`
	Satisfaction      uint8        `json:"satisfaction" db:"satisfaction"`
	Loyalty           uint8        `json:"loyalty" db:"loyalty"`
	Traits            []TraitType  `json:"traits" db:"traits"`
	IsFirstSeason     bool         `json:"is_first_season" db:"is_first_season"`
	RegionCode        string       `json:"region_code" db:"-"`
}

// ValidAbility reports Invariant 1: ability <= potential <= 100.
func (p *Player) ValidAbility() bool {
	return p.Ability <= p.Potential && p.Potential <= 100
}

// ValidAge reports Invariant 2: active players are aged 16..=36.
func (p *Player) ValidAge() bool {
	if p.Status != PlayerActive {
		return true
	}
	return p.Age >= 16 && p.Age <= 36
}

// HasTrait reports whether the player carries the given trait.
func (p *Player) HasTrait(t TraitType) bool {
	for _, pt := range p.Traits {
		if pt == t {
			return true
		}
	}
	return false
}

// PlayerFormFactors is the 1-to-1 runtime condition state for a Player
// (spec.md §4.3.1).
type PlayerFormFactors struct {
	PlayerID        ID      `json:"player_id" db:"player_id"`
	FormCycle       float64 `json:"form_cycle" db:"form_cycle"`
	Momentum        int8    `json:"momentum" db:"momentum"`
	LastPerformance float64 `json:"last_performance" db:"last_performance"`
	LastMatchWon    bool    `json:"last_match_won" db:"last_match_won"`
	GamesSinceRest  uint32  `json:"games_since_rest" db:"games_since_rest"`
}

// FormStep returns the per-match form_cycle increment for a player's age
// (spec.md §4.3.1: "small, ~0.5-1.5 per match").
func FormStep(age uint8) float64 {
	switch {
	case age <= 22:
		return 1.5
	case age <= 27:
		return 1.0
	default:
		return 0.5
	}
}

// ConditionRange returns the hard per-age clamp bounds for condition
// (spec.md §4.3.1 table).
func ConditionRange(age uint8) (lo, hi int8) {
	switch {
	case age <= 22:
		return -5, 8
	case age <= 25:
		return -3, 3
	case age <= 27:
		return -3, 3
	case age <= 29:
		return 0, 2
	default:
		return 0, 2
	}
}

// AgeConditionAmplitude returns A(age), the cyclical-component amplitude
// decaying from ~6 at age 18 to ~2 at age 30 (spec.md §4.2.1).
func AgeConditionAmplitude(age uint8) float64 {
	if age <= 18 {
		return 6.0
	}
	if age >= 30 {
		return 2.0
	}
	// linear interpolation between (18, 6.0) and (30, 2.0)
	t := float64(age-18) / 12.0
	return 6.0 - t*4.0
}
