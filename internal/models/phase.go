// internal/models/phase.go
// The 14-phase season state machine (spec.md §4.1).

package models

// SeasonPhase is one of the 14 ordered phases of a season.
type SeasonPhase string

const (
	PhaseSpringRegular         SeasonPhase = "spring_regular"
	PhaseSpringPlayoffs        SeasonPhase = "spring_playoffs"
	PhaseMsi                   SeasonPhase = "msi"
	PhaseMadridMasters         SeasonPhase = "madrid_masters"
	PhaseSummerRegular         SeasonPhase = "summer_regular"
	PhaseSummerPlayoffs        SeasonPhase = "summer_playoffs"
	PhaseClaudeIntercontinental SeasonPhase = "claude_intercontinental"
	PhaseWorldChampionship     SeasonPhase = "world_championship"
	PhaseShanghaiMasters       SeasonPhase = "shanghai_masters"
	PhaseIcpIntercontinental   SeasonPhase = "icp_intercontinental"
	PhaseSuperIntercontinental SeasonPhase = "super_intercontinental"
	PhaseTransferWindow        SeasonPhase = "transfer_window"
	PhaseDraft                 SeasonPhase = "draft"
	PhaseSeasonEnd             SeasonPhase = "season_end"
)

// PhaseOrder is the strict ordering of phases within one season.
var PhaseOrder = []SeasonPhase{
	PhaseSpringRegular,
	PhaseSpringPlayoffs,
	PhaseMsi,
	PhaseMadridMasters,
	PhaseSummerRegular,
	PhaseSummerPlayoffs,
	PhaseClaudeIntercontinental,
	PhaseWorldChampionship,
	PhaseShanghaiMasters,
	PhaseIcpIntercontinental,
	PhaseSuperIntercontinental,
	PhaseTransferWindow,
	PhaseDraft,
	PhaseSeasonEnd,
}

// Next returns the phase following p and true, or "" and false when p is
// the last phase of the season (or not a known phase).
func (p SeasonPhase) Next() (SeasonPhase, bool) {
	for i, ph := range PhaseOrder {
		if ph == p {
			if i+1 < len(PhaseOrder) {
				return PhaseOrder[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// Index returns p's position in PhaseOrder, or -1 if unknown.
func (p SeasonPhase) Index() int {
	for i, ph := range PhaseOrder {
		if ph == p {
			return i
		}
	}
	return -1
}

// PhaseStatus is the three-value status of a phase's tournament(s).
type PhaseStatus string

const (
	PhaseNotInitialized PhaseStatus = "not_initialized"
	PhaseInProgress     PhaseStatus = "in_progress"
	PhaseCompleted      PhaseStatus = "completed"
)

// GameTimeState is the result of get_time_state.
type GameTimeState struct {
	Season            uint32      `json:"season"`
	Phase             SeasonPhase `json:"phase"`
	PhaseStatus       PhaseStatus `json:"phase_status"`
	AvailableActions  []string    `json:"available_actions"`
	CanAdvance        bool        `json:"can_advance"`
}

// IsInternational reports whether a phase's tournament type counts as an
// international event for trait-context purposes (spec.md §4.3.2 WorldStage
// and the TraitContext.from_match_context equivalence in original_source).
func (p SeasonPhase) IsInternational() bool {
	switch p {
	case PhaseMsi, PhaseMadridMasters, PhaseClaudeIntercontinental,
		PhaseWorldChampionship, PhaseShanghaiMasters, PhaseIcpIntercontinental,
		PhaseSuperIntercontinental:
		return true
	default:
		return false
	}
}

// IsPlayoff reports whether a phase represents a playoff/knockout stage.
func (p SeasonPhase) IsPlayoff() bool {
	switch p {
	case PhaseSpringPlayoffs, PhaseSummerPlayoffs:
		return true
	default:
		return p.IsInternational()
	}
}
