// internal/engines/transfer.go
// The five-round transfer window engine (spec.md §4.4). Grounded on
// original_source's commands/transfer_commands.rs (buy_listed_player,
// sign_free_agent, contract-expiry and 3-year-default-contract shapes),
// restructured from ad hoc Tauri commands into a round-driven engine a
// save advances through one round at a time.

package engines

import "tournament-planner/internal/models"

// TeamStrategy is one team's plan for a transfer window, as produced by
// a StrategyGenerator. Every field mirrors spec.md's
// generate_team_strategy return shape.
type TeamStrategy struct {
	TeamID           ID
	Targets          []ID // player IDs this team wants to acquire
	WillingToSell    []ID // roster player IDs this team will list
	PriorityPositions []models.Position
	BudgetAllocation  int64
	Reasoning         string
	AnalysisSteps     []string
}

// OfferEvaluation is a listed/free-agent player's response to one offer,
// as produced by a StrategyGenerator, mirroring spec.md's evaluate_offer.
type OfferEvaluation struct {
	Accept     bool
	Confidence float64
	Scores     map[string]float64 // e.g. "money", "playing_time", "team_strength"
	Reasoning  string
}

// StrategyGenerator produces GM decisions for the transfer window. The
// engine never calls an LLM directly: it only ever holds a
// StrategyGenerator value, which may be backed by rules or by an LLM
// satisfying this same interface (spec.md §4.4/§5).
type StrategyGenerator interface {
	GenerateTeamStrategy(team models.Team, roster []models.Player, profile models.GMProfile, freeAgents []models.Player, otherRosters map[ID][]models.Player, ctx TransferContext) TeamStrategy
	EvaluateOffer(player models.Player, strategy TeamStrategy, offer models.TransferOffer) OfferEvaluation
}

// TransferContext is read-only window state passed to a StrategyGenerator.
type TransferContext struct {
	Season uint32
	Round  models.TransferRound
}

// RuleBasedStrategy is the deterministic default StrategyGenerator
// (spec.md: "a deterministic rule-based implementation MUST be the
// default"). Grounded on the GM personality valuation multipliers in
// models/gm.go and the salary-floor rule in original_source's
// sign_free_agent ("salary offer too low" at 80% of demand).
type RuleBasedStrategy struct{ rng *RNG }

func NewRuleBasedStrategy(rng *RNG) *RuleBasedStrategy { return &RuleBasedStrategy{rng: rng} }

// MinAcceptableSalaryFraction is the floor below which a free agent
// rejects an offer outright (original_source: salary < demand * 0.8).
const MinAcceptableSalaryFraction = 0.8

func (s *RuleBasedStrategy) GenerateTeamStrategy(team models.Team, roster []models.Player, profile models.GMProfile, freeAgents []models.Player, otherRosters map[ID][]models.Player, ctx TransferContext) TeamStrategy {
	strat := TeamStrategy{TeamID: team.ID, BudgetAllocation: team.Balance / 2}
	steps := []string{"scan roster for weak positions", "rank free agents by ability-to-salary ratio"}

	counts := map[models.Position]int{}
	for _, p := range roster {
		counts[p.Position]++
	}
	for _, pos := range models.Positions {
		if counts[pos] == 0 {
			strat.PriorityPositions = append(strat.PriorityPositions, pos)
		}
	}

	for _, p := range roster {
		if p.Age >= 27 && p.Ability < 60 {
			strat.WillingToSell = append(strat.WillingToSell, p.ID)
		}
	}

	for _, fa := range freeAgents {
		wantsPosition := len(strat.PriorityPositions) == 0 || containsPosition(strat.PriorityPositions, fa.Position)
		if wantsPosition && float64(fa.Ability)*profile.DraftPickBidAggression > 0 {
			strat.Targets = append(strat.Targets, fa.ID)
		}
	}

	strat.Reasoning = "fill empty starting positions from the free agent pool within budget"
	strat.AnalysisSteps = steps
	return strat
}

func (s *RuleBasedStrategy) EvaluateOffer(player models.Player, strategy TeamStrategy, offer models.TransferOffer) OfferEvaluation {
	scores := map[string]float64{
		"money": float64(offer.Amount+offer.SalaryOffered) / 1_000_000.0,
	}
	accept := offer.SalaryOffered >= int64(float64(player.Salary)*MinAcceptableSalaryFraction)
	confidence := 0.6
	if accept {
		confidence = 0.8
	}
	return OfferEvaluation{Accept: accept, Confidence: confidence, Scores: scores, Reasoning: "compared salary offer against current demand floor"}
}

func containsPosition(list []models.Position, p models.Position) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}

// TransferWindowEngine advances one TransferWindow through its five
// rounds, emitting TransferEvent newsfeed rows for each consequential
// action (spec.md §4.4).
type TransferWindowEngine struct {
	rng       *RNG
	strategy  StrategyGenerator
}

func NewTransferWindowEngine(rng *RNG, strategy StrategyGenerator) *TransferWindowEngine {
	return &TransferWindowEngine{rng: rng, strategy: strategy}
}

// RetirementDecision pairs a player with the round-one outcome the
// settlement engine already computed for them this season.
type RetirementDecision struct {
	PlayerID  ID
	Retired   bool
	ContractExpired bool
}

// ExecuteContractsRound (R1) emits retirement and contract-expiry events
// for players the settlement engine already flagged, and returns the IDs
// that enter the free-agent pool as a result.
func (e *TransferWindowEngine) ExecuteContractsRound(window models.TransferWindow, decisions []RetirementDecision) (events []models.TransferEvent, newFreeAgents []ID) {
	for _, d := range decisions {
		pid := d.PlayerID
		switch {
		case d.Retired:
			events = append(events, models.TransferEvent{
				WindowID: window.ID, Round: models.RoundContractsRetirement, Kind: models.EventRetirement,
				PlayerID: &pid, Importance: 3, Headline: "Player announces retirement",
			})
		case d.ContractExpired:
			events = append(events, models.TransferEvent{
				WindowID: window.ID, Round: models.RoundContractsRetirement, Kind: models.EventContractExpire,
				PlayerID: &pid, Importance: 2, Headline: "Contract expires, player becomes a free agent",
			})
			newFreeAgents = append(newFreeAgents, pid)
		}
	}
	return events, newFreeAgents
}

// ExecuteFreeAgentsRound (R2) matches free agents against team strategies,
// signing the best mutually-acceptable offer per agent. A signed agent's
// FreeAgent.Status transitions to Signed.
func (e *TransferWindowEngine) ExecuteFreeAgentsRound(window models.TransferWindow, freeAgents []models.Player, strategies map[ID]TeamStrategy, contractYears int) (signings []models.TransferRecord, events []models.TransferEvent) {
	for _, fa := range freeAgents {
		var bestTeam ID
		var bestSalary int64
		found := false
		for teamID, strat := range strategies {
			if !containsID(strat.Targets, fa.ID) {
				continue
			}
			salary := int64(float64(fa.Salary) * 1.1)
			offer := models.TransferOffer{PlayerID: fa.ID, BuyerTeamID: teamID, SalaryOffered: salary}
			eval := e.strategy.EvaluateOffer(fa, strat, offer)
			if eval.Accept && (!found || salary > bestSalary) {
				bestTeam, bestSalary, found = teamID, salary, true
			}
		}
		if !found {
			continue
		}
		pid := fa.ID
		to := bestTeam
		signings = append(signings, models.TransferRecord{
			Season: window.Season, PlayerID: fa.ID, ToTeamID: &to,
			NewSalary: bestSalary, WasFreeAgent: true,
		})
		events = append(events, models.TransferEvent{
			WindowID: window.ID, Round: models.RoundFreeAgents, Kind: models.EventFreeAgentSign,
			PlayerID: &pid, ToTeamID: &to, NewSalary: bestSalary, ContractYears: contractYears,
			Importance: 2, Headline: "Free agent signs with a new team",
		})
	}
	return signings, events
}

func containsID(list []ID, id ID) bool {
	for _, x := range list {
		if x == id {
			return true
		}
	}
	return false
}

// ReinforcementOffer is one buyer's bid on a listed player during R4.
type ReinforcementOffer struct {
	ListingID   ID
	PlayerID    ID
	BuyerTeamID ID
	Amount      int64
}

// ExecuteReinforcementRound (R4) resolves competing offers on each open
// listing, selling to the highest bid when it meets the listing's asking
// price; the seller's strategy is not consulted. Listings with more than
// one bid are flagged was_bidding_war.
func (e *TransferWindowEngine) ExecuteReinforcementRound(window models.TransferWindow, listings []models.TransferListing, offers []ReinforcementOffer) (sold []models.TransferRecord, events []models.TransferEvent) {
	byListing := map[ID][]ReinforcementOffer{}
	for _, o := range offers {
		byListing[o.ListingID] = append(byListing[o.ListingID], o)
	}
	for _, listing := range listings {
		bids := byListing[listing.ID]
		if len(bids) == 0 {
			continue
		}
		best := bids[0]
		for _, b := range bids[1:] {
			if b.Amount > best.Amount {
				best = b
			}
		}
		if best.Amount < listing.AskingPrice {
			continue
		}
		pid := listing.PlayerID
		from := listing.SellerTeamID
		to := best.BuyerTeamID
		sold = append(sold, models.TransferRecord{
			Season: window.Season, PlayerID: pid, FromTeamID: &from, ToTeamID: &to, Fee: best.Amount,
		})
		events = append(events, models.TransferEvent{
			WindowID: window.ID, Round: models.RoundReinforcement, Kind: models.EventPurchase,
			PlayerID: &pid, FromTeamID: &from, ToTeamID: &to, TransferFee: best.Amount,
			CompetingTeams: len(bids), WasBiddingWar: len(bids) > 1,
			Importance: 3, Headline: "Transfer completed",
		})
	}
	return sold, events
}
