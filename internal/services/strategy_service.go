// internal/services/strategy_service.go
// Pluggable GM decision-making for the transfer window (spec.md §4.4/§5):
// a deterministic rule-based default, with room for an LLM-backed
// implementation behind the same engines.StrategyGenerator contract and a
// hard timeout that falls back to the rule-based generator.

package services

import (
	"context"
	"log"
	"time"

	"tournament-planner/internal/config"
	"tournament-planner/internal/engines"
	"tournament-planner/internal/models"
)

// StrategyService is itself an engines.StrategyGenerator: it wraps
// whichever generator is currently configured (rule-based, or an
// LLM-backed one once wired) and enforces the hard timeout/fallback rule
// so the transfer engine never blocks on a misbehaving advisor.
type StrategyService struct {
	fallback engines.StrategyGenerator
	advisor  engines.StrategyGenerator // nil unless an LLM advisor is configured
	timeout  time.Duration
	logger   *log.Logger
}

// NewStrategyService creates a new strategy service around the rule-based
// fallback. Nothing assigns the advisor field, so every call is answered
// by the rule-based generator.
func NewStrategyService(timeout time.Duration, logger *log.Logger) *StrategyService {
	if timeout < 10*time.Second {
		timeout = 10 * time.Second
	}
	rng := engines.NewRNG(0)
	return &StrategyService{
		fallback: engines.NewRuleBasedStrategy(rng),
		timeout:  timeout,
		logger:   logger,
	}
}

// llmEnabled reports whether an LLM advisor is currently configured.
func (s *StrategyService) llmEnabled() bool {
	_, ok := config.CurrentLLMConfig()
	return ok && s.advisor != nil
}

// GenerateTeamStrategy satisfies engines.StrategyGenerator, racing the
// configured advisor against the hard timeout and falling back to the
// rule-based generator on timeout or panic.
func (s *StrategyService) GenerateTeamStrategy(team models.Team, roster []models.Player, profile models.GMProfile, freeAgents []models.Player, otherRosters map[engines.ID][]models.Player, ctx engines.TransferContext) engines.TeamStrategy {
	if !s.llmEnabled() {
		return s.fallback.GenerateTeamStrategy(team, roster, profile, freeAgents, otherRosters, ctx)
	}

	resultCh := make(chan engines.TeamStrategy, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("strategy advisor panicked for team %d: %v", team.ID, r)
			}
		}()
		resultCh <- s.advisor.GenerateTeamStrategy(team, roster, profile, freeAgents, otherRosters, ctx)
	}()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	select {
	case strat := <-resultCh:
		return strat
	case <-timeoutCtx.Done():
		s.logger.Printf("strategy advisor timed out for team %d after %s, falling back to rule-based", team.ID, s.timeout)
		return s.fallback.GenerateTeamStrategy(team, roster, profile, freeAgents, otherRosters, ctx)
	}
}

// EvaluateOffer satisfies engines.StrategyGenerator with the same
// race-and-fall-back behavior as GenerateTeamStrategy.
func (s *StrategyService) EvaluateOffer(player models.Player, strategy engines.TeamStrategy, offer models.TransferOffer) engines.OfferEvaluation {
	if !s.llmEnabled() {
		return s.fallback.EvaluateOffer(player, strategy, offer)
	}

	resultCh := make(chan engines.OfferEvaluation, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("strategy advisor panicked evaluating offer for player %d: %v", player.ID, r)
			}
		}()
		resultCh <- s.advisor.EvaluateOffer(player, strategy, offer)
	}()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	select {
	case eval := <-resultCh:
		return eval
	case <-timeoutCtx.Done():
		s.logger.Printf("strategy advisor timed out evaluating offer for player %d, falling back to rule-based", player.ID)
		return s.fallback.EvaluateOffer(player, strategy, offer)
	}
}
