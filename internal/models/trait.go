// internal/models/trait.go
// The closed set of player traits (spec.md §4.3.2), grounded directly on
// the original Rust engine's TraitType enum and rarity/conflict tables.

package models

// TraitType is one of the closed set of named player modifiers.
type TraitType string

const (
	// Big-game performance
	TraitClutch      TraitType = "clutch"
	TraitSlowStarter TraitType = "slow_starter"
	TraitFastStarter TraitType = "fast_starter"
	TraitFinalsKiller TraitType = "finals_killer"
	TraitRegularKing  TraitType = "regular_king"
	TraitWinStreak    TraitType = "win_streak"

	// Mental
	TraitComebackKing   TraitType = "comeback_king"
	TraitTilter         TraitType = "tilter"
	TraitMentalFortress TraitType = "mental_fortress"
	TraitFragile        TraitType = "fragile"
	TraitGambler        TraitType = "gambler"
	TraitPressurePlayer TraitType = "pressure_player"
	TraitComplacent     TraitType = "complacent"

	// Stability
	TraitExplosive  TraitType = "explosive"
	TraitConsistent TraitType = "consistent"
	TraitStreaky    TraitType = "streaky"
	TraitBigGame    TraitType = "big_game"
	TraitChoker     TraitType = "choker"

	// Endurance
	TraitIronman  TraitType = "ironman"
	TraitVolatile TraitType = "volatile"
	TraitEndurance TraitType = "endurance"
	TraitSprinter TraitType = "sprinter"
	TraitNightOwl TraitType = "night_owl"
	TraitPeakForm TraitType = "peak_form"

	// Team interaction
	TraitTeamLeader   TraitType = "team_leader"
	TraitLoneWolf     TraitType = "lone_wolf"
	TraitSupportive   TraitType = "supportive"
	TraitTroublemaker TraitType = "troublemaker"
	TraitMentor       TraitType = "mentor"

	// Growth / decline
	TraitLateBlocker  TraitType = "late_blocker"
	TraitProdigy      TraitType = "prodigy"
	TraitResilient    TraitType = "resilient"
	TraitGlassCannon  TraitType = "glass_cannon"
	TraitLowCeiling   TraitType = "low_ceiling"
	TraitLimitless    TraitType = "limitless"
	TraitBattleTested TraitType = "battle_tested"
	TraitPeakAge      TraitType = "peak_age"
	TraitEarlyDecline TraitType = "early_decline"

	// Generic modifiers
	TraitRisingStar    TraitType = "rising_star"
	TraitVeteran       TraitType = "veteran"
	TraitPerfectionist TraitType = "perfectionist"
	TraitAdaptable     TraitType = "adaptable"

	// International
	TraitWorldStage         TraitType = "world_stage"
	TraitGroupStageExpert   TraitType = "group_stage_expert"
	TraitKnockoutSpecialist TraitType = "knockout_specialist"
	TraitCrossRegion        TraitType = "cross_region"
	TraitTournamentHorse    TraitType = "tournament_horse"
)

// AllTraits enumerates the full closed set, grouped as in spec.md §4.3.2.
var AllTraits = []TraitType{
	TraitClutch, TraitSlowStarter, TraitFastStarter, TraitFinalsKiller, TraitRegularKing, TraitWinStreak,
	TraitComebackKing, TraitTilter, TraitMentalFortress, TraitFragile, TraitGambler, TraitPressurePlayer, TraitComplacent,
	TraitExplosive, TraitConsistent, TraitStreaky, TraitBigGame, TraitChoker,
	TraitIronman, TraitVolatile, TraitEndurance, TraitSprinter, TraitNightOwl, TraitPeakForm,
	TraitTeamLeader, TraitLoneWolf, TraitSupportive, TraitTroublemaker, TraitMentor,
	TraitLateBlocker, TraitProdigy, TraitResilient, TraitGlassCannon, TraitLowCeiling, TraitLimitless, TraitBattleTested, TraitPeakAge, TraitEarlyDecline,
	TraitRisingStar, TraitVeteran, TraitPerfectionist, TraitAdaptable,
	TraitWorldStage, TraitGroupStageExpert, TraitKnockoutSpecialist, TraitCrossRegion, TraitTournamentHorse,
}

// Rarity returns a trait's rarity weight (1 = common, 5 = rare); sampling
// weight during generation is 1/rarity.
func (t TraitType) Rarity() uint8 {
	switch t {
	case TraitClutch:
		return 4
	case TraitSlowStarter, TraitFastStarter:
		return 2
	case TraitFinalsKiller:
		return 5
	case TraitRegularKing, TraitWinStreak, TraitExplosive:
		return 3
	case TraitConsistent:
		return 2
	case TraitStreaky, TraitChoker, TraitTilter, TraitFragile, TraitComplacent, TraitTroublemaker, TraitLowCeiling, TraitEarlyDecline:
		return 1
	case TraitBigGame, TraitComebackKing, TraitMentalFortress, TraitPressurePlayer:
		return 4
	case TraitGambler, TraitVolatile, TraitSprinter, TraitNightOwl, TraitLoneWolf, TraitGlassCannon, TraitGroupStageExpert:
		return 2
	case TraitIronman, TraitEndurance, TraitRisingStar, TraitVeteran, TraitSupportive, TraitLateBlocker, TraitBattleTested, TraitPeakAge, TraitPerfectionist, TraitAdaptable, TraitCrossRegion:
		return 3
	case TraitPeakForm, TraitTeamLeader, TraitMentor, TraitProdigy, TraitResilient, TraitLimitless, TraitWorldStage, TraitTournamentHorse, TraitKnockoutSpecialist:
		return 4
	default:
		return 3
	}
}

// IsNegative reports whether a trait is classified as a drawback trait.
func (t TraitType) IsNegative() bool {
	switch t {
	case TraitTilter, TraitFragile, TraitVolatile, TraitGlassCannon, TraitChoker,
		TraitComplacent, TraitStreaky, TraitTroublemaker, TraitLowCeiling, TraitEarlyDecline:
		return true
	default:
		return false
	}
}

// Conflicts returns the traits mutually exclusive with t (spec.md §4.3.2).
func (t TraitType) Conflicts() []TraitType {
	switch t {
	case TraitSlowStarter:
		return []TraitType{TraitFastStarter}
	case TraitFastStarter:
		return []TraitType{TraitSlowStarter}
	case TraitFinalsKiller:
		return []TraitType{TraitChoker}
	case TraitRegularKing:
		return []TraitType{TraitClutch, TraitBigGame}
	case TraitExplosive:
		return []TraitType{TraitConsistent, TraitPeakForm}
	case TraitConsistent:
		return []TraitType{TraitExplosive, TraitStreaky, TraitGambler}
	case TraitStreaky:
		return []TraitType{TraitConsistent, TraitPeakForm}
	case TraitBigGame:
		return []TraitType{TraitChoker, TraitRegularKing}
	case TraitChoker:
		return []TraitType{TraitBigGame, TraitClutch, TraitFinalsKiller, TraitPressurePlayer}
	case TraitComebackKing:
		return []TraitType{TraitTilter, TraitComplacent}
	case TraitTilter:
		return []TraitType{TraitComebackKing, TraitMentalFortress, TraitPressurePlayer}
	case TraitMentalFortress:
		return []TraitType{TraitFragile, TraitTilter}
	case TraitFragile:
		return []TraitType{TraitMentalFortress}
	case TraitGambler:
		return []TraitType{TraitConsistent, TraitPeakForm}
	case TraitPressurePlayer:
		return []TraitType{TraitTilter, TraitChoker, TraitComplacent}
	case TraitComplacent:
		return []TraitType{TraitComebackKing, TraitPressurePlayer}
	case TraitIronman:
		return []TraitType{TraitSprinter, TraitEndurance}
	case TraitEndurance:
		return []TraitType{TraitSprinter, TraitIronman}
	case TraitSprinter:
		return []TraitType{TraitIronman, TraitEndurance}
	case TraitPeakForm:
		return []TraitType{TraitExplosive, TraitStreaky, TraitGambler}
	case TraitTeamLeader:
		return []TraitType{TraitLoneWolf, TraitTroublemaker}
	case TraitLoneWolf:
		return []TraitType{TraitTeamLeader, TraitSupportive}
	case TraitSupportive:
		return []TraitType{TraitLoneWolf, TraitTroublemaker}
	case TraitTroublemaker:
		return []TraitType{TraitTeamLeader, TraitSupportive, TraitMentor}
	case TraitMentor:
		return []TraitType{TraitTroublemaker}
	case TraitLateBlocker:
		return []TraitType{TraitProdigy, TraitEarlyDecline}
	case TraitProdigy:
		return []TraitType{TraitLateBlocker}
	case TraitResilient:
		return []TraitType{TraitGlassCannon, TraitEarlyDecline}
	case TraitGlassCannon:
		return []TraitType{TraitResilient}
	case TraitLowCeiling:
		return []TraitType{TraitLimitless}
	case TraitLimitless:
		return []TraitType{TraitLowCeiling}
	case TraitEarlyDecline:
		return []TraitType{TraitLateBlocker, TraitResilient}
	case TraitWorldStage:
		return []TraitType{TraitGroupStageExpert}
	case TraitGroupStageExpert:
		return []TraitType{TraitWorldStage, TraitKnockoutSpecialist}
	case TraitKnockoutSpecialist:
		return []TraitType{TraitGroupStageExpert}
	default:
		return nil
	}
}

// ConflictsWith reports whether a and b are mutually exclusive.
func ConflictsWith(a, b TraitType) bool {
	for _, c := range a.Conflicts() {
		if c == b {
			return true
		}
	}
	return false
}
