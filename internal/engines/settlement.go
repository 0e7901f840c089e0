// internal/engines/settlement.go
// End-of-season settlement: aging, growth/decline, retirement, contract
// expiry, and trait awakening/decay for every active player (spec.md
// §4.3.3). Grounded on original_source's models/game_time.rs constants
// (already used by condition.go) and traits.rs's awakening/decay gates,
// since the original's settlement pass itself lived in a file the
// retrieval filter dropped — the per-step formulas below are transcribed
// directly from spec.md §4.3.3/§4.3.4.

package engines

import "tournament-planner/internal/models"

// SettlementStepKind names one of the six ordered settlement steps a
// player passes through each season (spec.md §4.3.3).
type SettlementStepKind string

const (
	StepAging           SettlementStepKind = "aging"
	StepGrowth          SettlementStepKind = "growth"
	StepDecline         SettlementStepKind = "decline"
	StepRetirement      SettlementStepKind = "retirement"
	StepContractExpire  SettlementStepKind = "contract_expire"
	StepTraitChange     SettlementStepKind = "trait_change"
)

// SettlementEvent is one emitted outcome of a player's settlement pass.
type SettlementEvent struct {
	PlayerID ID
	Kind     SettlementStepKind
	Detail   string
	Delta    int
}

// SettlementEngine runs one player at a time through the six ordered
// settlement steps for a completed season.
type SettlementEngine struct {
	rng    *RNG
	traits *TraitEngine
}

func NewSettlementEngine(rng *RNG) *SettlementEngine {
	return &SettlementEngine{rng: rng, traits: NewTraitEngine()}
}

// growthPotentialAge is the last age at which ability can still grow
// toward potential (spec.md §4.3.3).
const growthPotentialAge = 22

// declineStartAge is the age at which ability begins to erode, absent a
// trait that shifts it (spec.md §4.3.3; EarlyDecline moves this to 25).
const declineStartAge = 27

// SettleSeason advances one player through aging, growth/decline,
// retirement, contract expiry, and trait awakening/decay, mutating the
// player in place and returning every consequential event.
func (e *SettlementEngine) SettleSeason(p *models.Player, form models.PlayerFormFactors, currentSeason uint32, consecutiveLowPerformances int, seasonsInTeam int64) []SettlementEvent {
	var events []SettlementEvent

	// (1) Aging.
	p.Age++
	targetStability := ageTargetStability(p.Age)
	if p.Stability < targetStability {
		p.Stability++
	} else if p.Stability > targetStability {
		p.Stability--
	}
	if p.IsFirstSeason {
		p.IsFirstSeason = false
	}
	events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepAging, Delta: 1})

	declineStart := declineStartAge
	if p.HasTrait(models.TraitEarlyDecline) {
		declineStart = 25
	}

	// (2) Growth.
	if p.Age <= growthPotentialAge && p.Ability < p.Potential {
		delta := e.growthDelta(p)
		newAbility := int(p.Ability) + delta
		if newAbility > int(p.Potential) {
			newAbility = int(p.Potential)
		}
		gained := newAbility - int(p.Ability)
		p.Ability = uint8(newAbility)
		if gained > 0 {
			events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepGrowth, Delta: gained})
		}
	}

	// (3) Decline.
	if int(p.Age) >= declineStart {
		delta := e.declineDelta(p, declineStart)
		newAbility := int(p.Ability) - delta
		if newAbility < 0 {
			newAbility = 0
		}
		lost := int(p.Ability) - newAbility
		p.Ability = uint8(newAbility)
		if lost > 0 {
			events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepDecline, Delta: -lost})
		}
	}

	// (4) Retirement.
	if e.shouldRetire(p, consecutiveLowPerformances) {
		p.Status = models.PlayerRetired
		events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepRetirement})
		return events // a retired player skips contract/trait steps
	}

	// (5) Contracts.
	if p.ContractEndSeason == currentSeason {
		p.TeamID = nil
		events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepContractExpire})
	}

	// (6) Trait awakening/decay.
	result := e.traits.EvaluateAwakening(p.Ability, p.Age, int(form.GamesSinceRest), form.LastPerformance, p.Traits, seasonsInTeam, e.rng)
	for _, t := range result.Gained {
		p.Traits = append(p.Traits, t)
		events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepTraitChange, Detail: "gained:" + string(t)})
	}
	for _, t := range result.Lost {
		p.Traits = removeTrait(p.Traits, t)
		events = append(events, SettlementEvent{PlayerID: p.ID, Kind: StepTraitChange, Detail: "lost:" + string(t)})
	}

	return events
}

func removeTrait(traits []models.TraitType, remove models.TraitType) []models.TraitType {
	out := traits[:0]
	for _, t := range traits {
		if t != remove {
			out = append(out, t)
		}
	}
	return out
}

// ageTargetStability is the stability a player's age alone pulls toward;
// young players trend upward, aging players trend down.
func ageTargetStability(age uint8) uint8 {
	switch {
	case age <= 20:
		return 60
	case age <= 24:
		return 75
	case age <= 27:
		return 70
	case age <= 30:
		return 55
	default:
		return 40
	}
}

// growthDelta rolls a 1..4 ability gain biased by the gap to potential
// and the player's growth tag (spec.md §4.3.3: Genius x1.5, Ordinary x0.5).
func (e *SettlementEngine) growthDelta(p *models.Player) int {
	gap := int(p.Potential) - int(p.Ability)
	base := 1 + e.rng.Range(0, 3)
	if gap < base {
		base = gap
	}
	switch p.Tag {
	case models.TagGenius:
		base = int(float64(base) * 1.5)
	case models.TagOrdinary:
		base = int(float64(base) * 0.5)
	}
	if base < 1 && gap > 0 {
		base = 1
	}
	return base
}

// declineDelta rolls a 1..3 ability loss biased by years past the
// decline threshold; Resilient halves the magnitude (spec.md §4.3.3).
func (e *SettlementEngine) declineDelta(p *models.Player, declineStart int) int {
	yearsPast := int(p.Age) - declineStart
	base := 1 + e.rng.Range(0, 2)
	if yearsPast > 3 {
		base++
	}
	if p.HasTrait(models.TraitResilient) {
		base = (base + 1) / 2
	}
	return base
}

// shouldRetire evaluates the age/ability/performance retirement curve.
func (e *SettlementEngine) shouldRetire(p *models.Player, consecutiveLowPerformances int) bool {
	if p.Age < 30 {
		return false
	}
	prob := 0.0
	switch {
	case p.Age >= 36:
		prob = 0.9
	case p.Age >= 33:
		prob = 0.35
	case p.Age >= 30:
		prob = 0.1
	}
	if p.Ability < 50 {
		prob += 0.2
	}
	if consecutiveLowPerformances >= 3 {
		prob += 0.15
	}
	if p.Tag == models.TagGenius {
		prob -= 0.1
	}
	if prob <= 0 {
		return false
	}
	return e.rng.Bool(prob)
}

// MarketValue computes a player's market value (spec.md §4.3.4):
// base(ability) x f_age x f_pos x f_region x f_honor.
func MarketValue(p models.Player, regionCode string, honorScore float64) int64 {
	base := baseValue(p.Ability)
	fAge := models.AgeFactor(p.Age)
	fPos := models.PositionFactor(p.Position)
	fRegion := models.RegionFactor(regionCode)
	fHonor := honorFactor(honorScore)
	return int64(base * fAge * fPos * fRegion * fHonor)
}

// baseValue is the ability-only component of market value, before the
// age/position/region/honor multipliers (spec.md §4.3.4).
func baseValue(ability uint8) float64 {
	return float64(ability) * float64(ability) * 200.0
}

// honorFactor clamps the honors multiplier to spec.md's documented range.
func honorFactor(score float64) float64 {
	switch {
	case score < 1.0:
		return 1.0
	case score > 3.0:
		return 3.0
	default:
		return score
	}
}
