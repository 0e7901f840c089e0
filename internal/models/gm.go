// internal/models/gm.go
// GM personality biases auction valuation and transfer-strategy generation.

package models

// GMPersonality is one of the closed set of team management archetypes
// (spec.md §4.4/§4.5).
type GMPersonality string

const (
	GMChampionship     GMPersonality = "championship"
	GMYouthDevelopment GMPersonality = "youth_development"
	GMBalanced         GMPersonality = "balanced"
	GMSpeculator       GMPersonality = "speculator"
	GMRebuilding       GMPersonality = "rebuilding"
	GMCustom           GMPersonality = "custom"
)

// GMProfile carries the scoring multipliers a personality contributes to
// draft-pick valuation and bid aggressiveness (spec.md §4.5).
type GMProfile struct {
	Personality            GMPersonality
	DraftPickSellThreshold  float64 // below this perceived slot value, list the pick
	DraftPickBidAggression  float64 // multiplies a slot's valuation when bidding
}

// DefaultGMProfile returns the baseline multipliers for a personality.
func DefaultGMProfile(p GMPersonality) GMProfile {
	switch p {
	case GMChampionship:
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.9, DraftPickBidAggression: 1.3}
	case GMYouthDevelopment:
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.3, DraftPickBidAggression: 1.2}
	case GMSpeculator:
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.6, DraftPickBidAggression: 1.4}
	case GMRebuilding:
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.4, DraftPickBidAggression: 1.1}
	case GMCustom:
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.5, DraftPickBidAggression: 1.0}
	default: // GMBalanced
		return GMProfile{Personality: p, DraftPickSellThreshold: 0.55, DraftPickBidAggression: 1.0}
	}
}
