// internal/engines/traits_engine.go
// Computes trait modifiers, generates a rookie's starting traits, and
// evaluates season-end awakening/decay. Transcribed from
// original_source/src-tauri/src/engines/traits.rs — the match-arm-by-arm
// source of truth for every constant below.

package engines

import (
	"strings"

	"tournament-planner/internal/models"
)

// TraitModifiers is the additive modifier bundle one trait (or several,
// merged) contributes to a single match roll.
type TraitModifiers struct {
	AbilityMod         int8
	StabilityMod       int8
	ConditionMod       int8
	MomentumMultiplier float64
	AbilityCeilingMod  int8
}

// NewTraitModifiers returns the zero/identity modifier bundle.
func NewTraitModifiers() TraitModifiers {
	return TraitModifiers{MomentumMultiplier: 1.0}
}

// Merge folds other into m in place.
func (m *TraitModifiers) Merge(other TraitModifiers) {
	m.AbilityMod += other.AbilityMod
	m.StabilityMod += other.StabilityMod
	m.ConditionMod += other.ConditionMod
	m.MomentumMultiplier *= other.MomentumMultiplier
	m.AbilityCeilingMod += other.AbilityCeilingMod
}

// TraitContext is the per-game situational state trait modifiers react to.
type TraitContext struct {
	TournamentType  string
	IsPlayoff       bool
	IsInternational bool
	GameNumber      uint8
	ScoreDiff       int8
	Age             uint8
	IsFirstSeason   bool
	GamesSinceRest  uint32
}

var internationalTournamentTypes = map[string]bool{
	"msi": true, "worlds": true, "masters": true, "shanghai": true, "clauch": true,
}

var playoffRounds = map[string]bool{
	"playoff": true, "quarter": true, "semi": true, "final": true,
}

// NewTraitContext builds a TraitContext from a match's tournament type and
// round label, classifying international/playoff status the way
// TraitContext::from_match_context does.
func NewTraitContext(tournamentType, round string, age uint8, isFirstSeason bool, gamesSinceRest uint32, gameNumber uint8, scoreDiff int8) TraitContext {
	return TraitContext{
		TournamentType:  tournamentType,
		IsPlayoff:       playoffRounds[round],
		IsInternational: internationalTournamentTypes[tournamentType],
		GameNumber:      gameNumber,
		ScoreDiff:       scoreDiff,
		Age:             age,
		IsFirstSeason:   isFirstSeason,
		GamesSinceRest:  gamesSinceRest,
	}
}

var lateSeasonTournamentTypes = map[string]bool{
	"summer_regular": true, "summer_playoff": true, "worlds": true,
	"shanghai": true, "clauch": true, "super": true, "icp": true,
}

// TraitEngine computes the effect of a player's traits on one match.
type TraitEngine struct{}

func NewTraitEngine() *TraitEngine { return &TraitEngine{} }

// CalculateModifier computes the modifier contribution of a single trait
// under the given context.
func (e *TraitEngine) CalculateModifier(t models.TraitType, ctx TraitContext) TraitModifiers {
	m := NewTraitModifiers()

	switch t {
	case models.TraitClutch:
		if ctx.IsPlayoff || ctx.IsInternational {
			m.ConditionMod = 3
		}
	case models.TraitSlowStarter:
		switch {
		case ctx.GameNumber == 1:
			m.ConditionMod = -2
		case ctx.GameNumber >= 3:
			m.ConditionMod = 2
		}
	case models.TraitFastStarter:
		switch {
		case ctx.GameNumber == 1:
			m.ConditionMod = 2
		case ctx.GameNumber >= 3:
			m.ConditionMod = -1
		}
	case models.TraitFinalsKiller:
		if strings.Contains(ctx.TournamentType, "final") || ctx.GameNumber >= 4 {
			m.AbilityMod = 3
			m.ConditionMod = 2
		}
	case models.TraitRegularKing:
		switch {
		case !ctx.IsPlayoff && !ctx.IsInternational:
			m.ConditionMod = 2
			m.StabilityMod = 5
		case ctx.IsPlayoff:
			m.ConditionMod = -1
		}
	case models.TraitWinStreak:
		if ctx.ScoreDiff > 0 {
			m.ConditionMod = 2
		}
	case models.TraitExplosive:
		m.StabilityMod = -15
		m.AbilityCeilingMod = 5
	case models.TraitConsistent:
		m.StabilityMod = 10
		m.AbilityCeilingMod = -3
	case models.TraitStreaky:
		m.StabilityMod = -20
	case models.TraitBigGame:
		if ctx.IsPlayoff || ctx.IsInternational {
			m.ConditionMod = 2
			m.StabilityMod = 5
		}
	case models.TraitChoker:
		if ctx.IsPlayoff || ctx.IsInternational {
			m.ConditionMod = -3
			m.StabilityMod = -10
		}
	case models.TraitComebackKing:
		if ctx.ScoreDiff < 0 {
			m.ConditionMod = 3
		}
	case models.TraitTilter:
		switch {
		case ctx.ScoreDiff > 0:
			m.ConditionMod = -2
		case ctx.ScoreDiff < 0:
			m.ConditionMod = -3
		}
	case models.TraitMentalFortress:
		m.MomentumMultiplier = 0.5
	case models.TraitFragile:
		// no per-match modifier; no other layer applies a momentum penalty for it
	case models.TraitGambler:
		m.StabilityMod = -25
		m.AbilityCeilingMod = 8
	case models.TraitPressurePlayer:
		if ctx.ScoreDiff < 0 && (ctx.IsPlayoff || ctx.IsInternational) {
			m.AbilityMod = 2
			m.ConditionMod = 3
		}
	case models.TraitComplacent:
		if ctx.ScoreDiff > 0 {
			m.ConditionMod = -2
			m.StabilityMod = -5
		}
	case models.TraitIronman:
		// no per-match modifier; no fatigue-penalty exemption is applied elsewhere
	case models.TraitVolatile:
		m.StabilityMod = -10
	case models.TraitEndurance:
		if ctx.GameNumber >= 4 {
			m.ConditionMod = 2
		}
	case models.TraitSprinter:
		switch {
		case ctx.GameNumber >= 1 && ctx.GameNumber <= 2:
			m.ConditionMod = 2
		case ctx.GameNumber >= 4:
			m.ConditionMod = -2
		}
	case models.TraitNightOwl:
		if lateSeasonTournamentTypes[ctx.TournamentType] {
			m.ConditionMod = 2
		}
	case models.TraitPeakForm:
		if ctx.Age >= 25 && ctx.Age <= 29 {
			m.StabilityMod = 15
		}
	case models.TraitRisingStar:
		if ctx.IsFirstSeason {
			m.AbilityMod = 3
		}
	case models.TraitVeteran:
		if ctx.Age >= 30 {
			m.StabilityMod = 15
		}
	case models.TraitTeamLeader:
		// no per-match modifier; no teammate boost is applied elsewhere
	case models.TraitLoneWolf:
		m.AbilityMod = 2
		m.ConditionMod = -1
	case models.TraitSupportive:
		// no per-match modifier; no teammate condition bonus is applied elsewhere
	case models.TraitTroublemaker:
		m.AbilityMod = 1
		m.ConditionMod = -2
	case models.TraitMentor:
		// no per-match modifier; season settlement does not read this trait
	case models.TraitPerfectionist:
		// no per-match modifier; no chemistry bonus or penalty is applied elsewhere
	case models.TraitAdaptable:
		if ctx.IsFirstSeason {
			m.ConditionMod = 2
		}
	case models.TraitWorldStage:
		if ctx.TournamentType == "worlds" {
			m.AbilityMod = 3
			m.ConditionMod = 3
		}
	case models.TraitGroupStageExpert:
		if !ctx.IsPlayoff && ctx.IsInternational {
			m.ConditionMod = 2
			m.StabilityMod = 5
		}
	case models.TraitKnockoutSpecialist:
		if ctx.IsPlayoff && ctx.IsInternational {
			m.ConditionMod = 3
			m.AbilityMod = 2
		}
	case models.TraitCrossRegion:
		if ctx.IsInternational {
			m.ConditionMod = 1
		}
	case models.TraitTournamentHorse:
		if ctx.IsInternational && ctx.GamesSinceRest > 5 {
			m.ConditionMod = 2
		}
	case models.TraitGlassCannon:
		m.AbilityCeilingMod = 3
	// Growth/decline traits have no in-match effect; of these, season
	// settlement reads only EarlyDecline and Resilient.
	case models.TraitLateBlocker, models.TraitProdigy, models.TraitResilient,
		models.TraitLowCeiling, models.TraitLimitless, models.TraitBattleTested,
		models.TraitPeakAge, models.TraitEarlyDecline:
	}

	return m
}

// CalculateCombinedModifiers merges every trait's modifier and clamps the
// combined ranges (spec.md §4.3.2).
func (e *TraitEngine) CalculateCombinedModifiers(traits []models.TraitType, ctx TraitContext) TraitModifiers {
	combined := NewTraitModifiers()
	for _, t := range traits {
		combined.Merge(e.CalculateModifier(t, ctx))
	}
	combined.AbilityMod = clampI8(combined.AbilityMod, -10, 10)
	combined.StabilityMod = clampI8(combined.StabilityMod, -20, 20)
	combined.ConditionMod = clampI8(combined.ConditionMod, -5, 5)
	combined.AbilityCeilingMod = clampI8(combined.AbilityCeilingMod, -5, 10)
	return combined
}

// ApplyModifiers folds a modifier bundle onto base attributes, returning
// the modified ability, stability, condition, and ability ceiling.
func (e *TraitEngine) ApplyModifiers(baseAbility, baseStability uint8, baseCondition int8, m TraitModifiers) (ability, stability uint8, condition int8, ceiling uint8) {
	ability = clampU8(int16(baseAbility)+int16(m.AbilityMod), 1, 100)
	stability = clampU8(int16(baseStability)+int16(m.StabilityMod), 30, 100)
	condition = clampI8(int16(baseCondition)+int16(m.ConditionMod), -10, 10)
	ceiling = clampU8(int16(ability)+10+int16(m.AbilityCeilingMod), int16(ability), 100)
	return
}

func clampI8(v int16, lo, hi int8) int8 {
	if v < int16(lo) {
		return lo
	}
	if v > int16(hi) {
		return hi
	}
	return int8(v)
}

func clampU8(v int16, lo, hi int16) uint8 {
	if v < lo {
		return uint8(lo)
	}
	if v > hi {
		return uint8(hi)
	}
	return uint8(v)
}

// rookieTraitPool is the fixed candidate set generate_random_traits draws
// from before age/ability-gated additions.
var rookieTraitPool = []models.TraitType{
	models.TraitClutch, models.TraitSlowStarter, models.TraitFastStarter, models.TraitWinStreak,
	models.TraitExplosive, models.TraitConsistent, models.TraitStreaky,
	models.TraitComebackKing, models.TraitTilter, models.TraitMentalFortress, models.TraitFragile,
	models.TraitGambler, models.TraitPressurePlayer, models.TraitComplacent,
	models.TraitIronman, models.TraitVolatile, models.TraitEndurance, models.TraitSprinter, models.TraitNightOwl,
	models.TraitLoneWolf, models.TraitSupportive, models.TraitTroublemaker, models.TraitAdaptable, models.TraitCrossRegion,
}

// GenerateRandomTraits assigns a rookie's starting traits, weighted by
// rarity and filtered by ability/age-gated availability (spec.md §4.3.2).
func (e *TraitEngine) GenerateRandomTraits(ability, age uint8, rng *RNG) []models.TraitType {
	var traitCount int
	switch {
	case ability >= 68:
		traitCount = 2 + rng.IntN(2)
	case ability >= 61:
		traitCount = 1 + rng.IntN(2)
	case ability >= 54:
		traitCount = rng.IntN(2)
	default:
		if rng.Bool(0.3) {
			traitCount = 1
		}
	}
	if traitCount == 0 {
		return nil
	}

	available := append([]models.TraitType(nil), rookieTraitPool...)
	if age <= 20 {
		available = append(available, models.TraitRisingStar, models.TraitProdigy)
	}
	if age >= 28 {
		available = append(available, models.TraitVeteran)
	}
	if ability >= 65 {
		available = append(available, models.TraitTeamLeader, models.TraitMentor, models.TraitBigGame, models.TraitFinalsKiller)
	}
	if ability >= 70 {
		available = append(available, models.TraitWorldStage, models.TraitKnockoutSpecialist, models.TraitPeakForm, models.TraitLimitless)
	}
	available = append(available,
		models.TraitLateBlocker, models.TraitResilient, models.TraitGlassCannon, models.TraitLowCeiling,
		models.TraitBattleTested, models.TraitPeakAge, models.TraitEarlyDecline, models.TraitGroupStageExpert,
		models.TraitTournamentHorse, models.TraitRegularKing, models.TraitPerfectionist, models.TraitChoker,
	)

	var chosen []models.TraitType
	for i := 0; i < traitCount && len(available) > 0; i++ {
		weights := make([]float64, len(available))
		for j, t := range available {
			weights[j] = 1.0 / float64(t.Rarity())
		}
		idx := rng.WeightedPick(weights)
		selected := available[idx]
		chosen = append(chosen, selected)
		available = append(available[:idx], available[idx+1:]...)
		available = removeConflicting(available, selected)
	}
	return chosen
}

func removeConflicting(available []models.TraitType, selected models.TraitType) []models.TraitType {
	out := available[:0]
	for _, t := range available {
		if !models.ConflictsWith(selected, t) {
			out = append(out, t)
		}
	}
	return out
}

// AwakeningResult is the (gained, lost) pair from one season-end evaluation.
type AwakeningResult struct {
	Gained []models.TraitType
	Lost   []models.TraitType
}

// EvaluateAwakening runs the season-end trait awakening/decay roll for one
// player (spec.md §4.3.2/§4.5). Global awakening gate first, then at most
// one gained and one lost trait per season.
func (e *TraitEngine) EvaluateAwakening(ability, age uint8, gamesPlayed int, avgPerformance float64, existing []models.TraitType, seasonsInTeam int64, rng *RNG) AwakeningResult {
	var result AwakeningResult

	baseRate := 0.15
	switch {
	case ability >= 80:
		baseRate = 0.35
	case ability >= 70:
		baseRate = 0.25
	case ability >= 55:
		baseRate = 0.20
	}

	if !rng.Bool(baseRate) {
		for _, t := range existing {
			p := decayProbability(t, ability, age, gamesPlayed, avgPerformance)
			if p > 0 && rng.Bool(p) {
				result.Lost = append(result.Lost, t)
				break
			}
		}
		return result
	}

	candidates := awakeningCandidates(ability, age, gamesPlayed, avgPerformance, existing, seasonsInTeam)
	awakenedOne := false
	for _, c := range candidates {
		if awakenedOne {
			break
		}
		if containsTrait(existing, c.trait) {
			continue
		}
		temp := append(append([]models.TraitType(nil), existing...), result.Gained...)
		conflict := false
		for _, conf := range c.trait.Conflicts() {
			if containsTrait(temp, conf) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		if rng.Bool(c.prob) {
			result.Gained = append(result.Gained, c.trait)
			awakenedOne = true
		}
	}

	for _, t := range existing {
		p := decayProbability(t, ability, age, gamesPlayed, avgPerformance)
		if p > 0 && rng.Bool(p) {
			result.Lost = append(result.Lost, t)
			break
		}
	}

	return result
}

func containsTrait(traits []models.TraitType, t models.TraitType) bool {
	for _, x := range traits {
		if x == t {
			return true
		}
	}
	return false
}

type traitCandidate struct {
	trait models.TraitType
	prob  float64
}

func awakeningCandidates(ability, age uint8, gamesPlayed int, avgPerf float64, existing []models.TraitType, seasonsInTeam int64) []traitCandidate {
	var c []traitCandidate
	add := func(t models.TraitType, p float64) { c = append(c, traitCandidate{t, p}) }

	if ability >= 75 && gamesPlayed >= 40 && avgPerf > 0.8 {
		add(models.TraitClutch, 0.06)
		add(models.TraitBigGame, 0.08)
	}
	if ability >= 80 && avgPerf > 1.5 {
		add(models.TraitFinalsKiller, 0.04)
	}
	if gamesPlayed >= 40 && avgPerf > 0.2 && avgPerf < 0.8 && ability >= 65 {
		add(models.TraitRegularKing, 0.08)
	}
	if avgPerf > 1.0 && gamesPlayed >= 35 && ability >= 70 {
		add(models.TraitWinStreak, 0.08)
	}
	if ability >= 72 && avgPerf > 0.8 {
		add(models.TraitExplosive, 0.05)
	}
	if gamesPlayed >= 40 && avgPerf > 0.0 && avgPerf < 0.5 && ability >= 65 {
		add(models.TraitConsistent, 0.08)
	}
	if ability >= 70 && avgPerf > 0.5 {
		add(models.TraitGambler, 0.03)
	}
	if avgPerf > 0.8 && ability >= 72 && gamesPlayed >= 30 {
		add(models.TraitComebackKing, 0.06)
		add(models.TraitPressurePlayer, 0.05)
	}
	if avgPerf < -0.8 && gamesPlayed >= 25 {
		add(models.TraitTilter, 0.10)
		add(models.TraitFragile, 0.06)
		add(models.TraitChoker, 0.06)
	}
	if gamesPlayed >= 50 && avgPerf > 0.0 {
		add(models.TraitIronman, 0.06)
		add(models.TraitEndurance, 0.08)
	}
	if gamesPlayed >= 55 && avgPerf > 0.3 {
		add(models.TraitTournamentHorse, 0.05)
	}
	if ability >= 75 && avgPerf > 0.5 && gamesPlayed >= 35 {
		add(models.TraitMentalFortress, 0.05)
	}
	if age >= 29 && ability >= 68 {
		add(models.TraitVeteran, 0.10)
		add(models.TraitBattleTested, 0.08)
	}
	if age >= 30 && ability >= 70 && seasonsInTeam >= 2 {
		add(models.TraitMentor, 0.06)
	}
	if age <= 19 && ability >= 70 {
		add(models.TraitProdigy, 0.06)
		add(models.TraitRisingStar, 0.08)
	}
	if seasonsInTeam >= 4 && ability >= 70 {
		add(models.TraitTeamLeader, 0.05)
	}
	if seasonsInTeam >= 3 && ability >= 65 && avgPerf > 0.0 {
		add(models.TraitSupportive, 0.06)
	}
	if age >= 24 && age <= 27 && ability >= 75 && avgPerf > 0.5 {
		add(models.TraitPeakAge, 0.08)
		add(models.TraitPeakForm, 0.04)
	}
	if age <= 21 && ability >= 72 && avgPerf > 0.8 {
		add(models.TraitLimitless, 0.04)
	}
	if age >= 25 && ability < 55 && avgPerf < -0.2 {
		add(models.TraitLowCeiling, 0.08)
	}
	if age >= 27 && avgPerf < -0.5 {
		add(models.TraitEarlyDecline, 0.06)
	}
	if seasonsInTeam <= 1 && avgPerf > 0.8 && ability >= 68 {
		add(models.TraitAdaptable, 0.08)
	}
	if ability >= 75 && avgPerf > 0.8 && seasonsInTeam <= 1 {
		add(models.TraitLoneWolf, 0.05)
	}
	if avgPerf < -0.5 && ability >= 68 {
		add(models.TraitTroublemaker, 0.05)
	}
	if age >= 30 && ability >= 70 {
		add(models.TraitResilient, 0.06)
	}
	if age >= 26 && ability >= 72 && avgPerf > 0.8 {
		add(models.TraitLateBlocker, 0.05)
	}
	if gamesPlayed >= 35 && avgPerf > 0.8 && ability >= 68 {
		add(models.TraitGroupStageExpert, 0.06)
	}
	if gamesPlayed >= 30 && avgPerf > 0.5 && seasonsInTeam <= 2 {
		add(models.TraitCrossRegion, 0.05)
	}
	if ability >= 80 && avgPerf > 1.5 {
		add(models.TraitWorldStage, 0.03)
		add(models.TraitKnockoutSpecialist, 0.04)
	}
	if seasonsInTeam >= 4 && avgPerf > 0.5 && ability >= 70 {
		add(models.TraitPerfectionist, 0.06)
	}

	out := c[:0]
	for _, cand := range c {
		if !containsTrait(existing, cand.trait) {
			out = append(out, cand)
		}
	}
	return out
}

func decayProbability(t models.TraitType, ability, age uint8, gamesPlayed int, avgPerf float64) float64 {
	switch t {
	case models.TraitClutch, models.TraitBigGame, models.TraitFinalsKiller:
		if avgPerf < -0.5 {
			return 0.10
		}
	case models.TraitMentalFortress:
		if avgPerf < -0.8 {
			return 0.08
		}
	case models.TraitConsistent:
		if avgPerf < -0.3 || avgPerf > 1.0 {
			return 0.06
		}
	case models.TraitTeamLeader, models.TraitSupportive:
		if avgPerf < -0.5 {
			return 0.08
		}
	case models.TraitRisingStar:
		if age >= 22 {
			return 0.50
		}
	case models.TraitPeakForm:
		if age >= 30 || age < 24 {
			return 0.15
		}
	case models.TraitPeakAge:
		if age >= 30 {
			return 0.30
		}
	case models.TraitProdigy:
		if age >= 25 {
			return 0.20
		}
	case models.TraitTilter, models.TraitFragile:
		if avgPerf > 0.5 && gamesPlayed >= 25 {
			return 0.12
		}
	case models.TraitChoker:
		if avgPerf > 0.8 {
			return 0.10
		}
	case models.TraitComplacent:
		if avgPerf > 0.3 {
			return 0.08
		}
	case models.TraitTroublemaker:
		if avgPerf > 0.5 {
			return 0.08
		}
	case models.TraitLowCeiling:
		if ability >= 68 {
			return 0.10
		}
	case models.TraitEarlyDecline:
		if ability >= 70 && age <= 27 {
			return 0.08
		}
	case models.TraitGlassCannon:
		if age <= 26 && avgPerf > 0.3 {
			return 0.06
		}
	case models.TraitStreaky:
		if avgPerf > 0.3 && gamesPlayed >= 30 {
			return 0.08
		}
	}
	return 0.0
}
