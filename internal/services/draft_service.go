// internal/services/draft_service.go
// Rookie draft and draft-pick auction orchestration (spec.md §4.4.2/§4.4.3,
// §6 "Draft").

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/engines"
	"tournament-planner/internal/events"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// ProspectsPerPool is the fixed rookie-class size (spec.md §3 "20 prospects").
const ProspectsPerPool = 20

// DraftService runs the rookie draft pool/lottery/picks, then the
// sealed-bid pick auction that follows it.
type DraftService struct {
	repos   *repositories.Container
	events  *events.Store
	rng     *engines.RNG
	logger  *log.Logger
	traits  *engines.TraitEngine
	auction *engines.DraftAuctionEngine
}

// NewDraftService creates a new draft service.
func NewDraftService(repos *repositories.Container, eventStore *events.Store, rng *engines.RNG, logger *log.Logger) *DraftService {
	return &DraftService{
		repos:   repos,
		events:  eventStore,
		rng:     rng,
		logger:  logger,
		traits:  engines.NewTraitEngine(),
		auction: engines.NewDraftAuctionEngine(rng),
	}
}

// GenerateDraftPool creates this season's 20-prospect rookie class
// (generate_draft_pool), each a fresh 18-20 year old free-agent Player.
func (s *DraftService) GenerateDraftPool(ctx context.Context, saveID models.ID, season uint32) (*models.DraftPool, error) {
	pool := &models.DraftPool{SaveID: saveID, Season: season, Status: models.DraftPoolOpen}
	if err := s.repos.Draft.CreatePool(ctx, pool); err != nil {
		return nil, err
	}

	for i := 0; i < ProspectsPerPool; i++ {
		age := uint8(18 + s.rng.IntN(3))
		ability := uint8(35 + s.rng.IntN(30))
		potential := ability + uint8(s.rng.IntN(30))
		if potential > 99 {
			potential = 99
		}
		position := models.Positions[s.rng.IntN(len(models.Positions))]
		prospect := &models.Player{
			SaveID:            saveID,
			Age:               age,
			Ability:           ability,
			Potential:         potential,
			Stability:         uint8(40 + s.rng.IntN(30)),
			Tag:               models.TagNormal,
			Status:            models.PlayerActive,
			Position:          position,
			Salary:            80_000,
			ContractEndSeason: season + 1,
			JoinSeason:        season,
			IsStarter:         false,
			Satisfaction:      70,
			Loyalty:           50,
			Traits:            s.traits.GenerateRandomTraits(ability, age, s.rng),
			IsFirstSeason:     true,
		}
		if err := s.repos.Player.Create(ctx, prospect); err != nil {
			return nil, fmt.Errorf("create prospect %d: %w", i, err)
		}
		form := &models.PlayerFormFactors{PlayerID: prospect.ID, FormCycle: 0, LastPerformance: 50}
		if err := s.repos.PlayerForm.Upsert(ctx, form); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// RunDraftLottery assigns each team a DraftOrder position, worst prior
// annual-points finish first, with the bottom three reordered by a
// weighted lottery roll (run_draft_lottery).
func (s *DraftService) RunDraftLottery(ctx context.Context, poolID, saveID models.ID) ([]*models.DraftOrder, error) {
	teams, err := s.repos.Team.ListBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			if teams[j].AnnualPoints < teams[i].AnnualPoints {
				teams[i], teams[j] = teams[j], teams[i]
			}
		}
	}

	lotteryWeights := []float64{3, 2, 1}
	if len(teams) >= 3 {
		idx := s.rng.WeightedPick(lotteryWeights)
		teams[0], teams[idx] = teams[idx], teams[0]
	}

	orders := make([]*models.DraftOrder, 0, len(teams))
	for i, t := range teams {
		order := &models.DraftOrder{PoolID: poolID, TeamID: t.ID, Position: i + 1}
		if err := s.repos.Draft.CreateOrder(ctx, order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// MakeDraftPick records a team's selection at their current DraftOrder
// slot and removes the prospect from the pool (make_draft_pick).
func (s *DraftService) MakeDraftPick(ctx context.Context, poolID, teamID, playerID models.ID) (*models.DraftPick, error) {
	orders, err := s.repos.Draft.ListOrderByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	var order *models.DraftOrder
	for _, o := range orders {
		if o.TeamID == teamID && !o.Used {
			order = o
			break
		}
	}
	if order == nil {
		return nil, fmt.Errorf("%w: team %d has no pending draft slot", ErrPreconditionFailed, teamID)
	}

	player, err := s.repos.Player.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.TeamID != nil {
		return nil, fmt.Errorf("%w: player %d is already rostered", ErrConflict, playerID)
	}

	pick := &models.DraftPick{PoolID: poolID, TeamID: teamID, PlayerID: playerID, Position: order.Position, PickedAt: time.Now()}
	if err := s.repos.Draft.CreatePick(ctx, pick); err != nil {
		return nil, err
	}
	if err := s.repos.Draft.MarkOrderUsed(ctx, order.ID); err != nil {
		return nil, err
	}
	if err := s.repos.Player.Reassign(ctx, playerID, &teamID, player.Salary, 0); err != nil {
		return nil, err
	}
	return pick, nil
}

// AIAutoDraft resolves every remaining unused DraftOrder slot by having
// each team pick its highest-ability available prospect (ai_auto_draft).
func (s *DraftService) AIAutoDraft(ctx context.Context, poolID models.ID) ([]*models.DraftPick, error) {
	orders, err := s.repos.Draft.ListOrderByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	var picks []*models.DraftPick
	for _, o := range orders {
		if o.Used {
			continue
		}
		best, err := s.bestAvailableProspect(ctx, o)
		if err != nil {
			return nil, err
		}
		if best == nil {
			continue
		}
		pick, err := s.MakeDraftPick(ctx, poolID, o.TeamID, best.ID)
		if err != nil {
			return nil, err
		}
		picks = append(picks, pick)
	}
	return picks, nil
}

func (s *DraftService) bestAvailableProspect(ctx context.Context, order *models.DraftOrder) (*models.Player, error) {
	pool, err := s.repos.Draft.ListPicksByPool(ctx, order.PoolID)
	if err != nil {
		return nil, err
	}
	taken := map[models.ID]bool{}
	for _, p := range pool {
		taken[p.PlayerID] = true
	}

	poolRow, err := s.poolByID(ctx, order.PoolID)
	if err != nil {
		return nil, err
	}
	agents, err := s.repos.Player.ListFreeAgentsBySave(ctx, poolRow.SaveID)
	if err != nil {
		return nil, err
	}
	var best *models.Player
	for _, p := range agents {
		if taken[p.ID] || p.JoinSeason != poolRow.Season || !p.IsFirstSeason {
			continue
		}
		if best == nil || p.Ability > best.Ability {
			best = p
		}
	}
	return best, nil
}

// poolByID is a small indirection over GetPoolBySeason, which is the only
// lookup the repository exposes; callers that already hold a pool ID use
// this to recover its (saveID, season) without a dedicated by-ID query.
func (s *DraftService) poolByID(ctx context.Context, poolID models.ID) (*models.DraftPool, error) {
	orders, err := s.repos.Draft.ListOrderByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: empty draft pool %d", ErrNotFound, poolID)
	}
	team, err := s.repos.Team.GetByID(ctx, orders[0].TeamID)
	if err != nil {
		return nil, err
	}
	// The pool's season is recovered from any team's current save season
	// rather than a direct pool lookup (the repository keys pools by
	// save+season, not a season-agnostic GetByID).
	save, err := s.repos.Save.GetByID(ctx, team.SaveID)
	if err != nil {
		return nil, err
	}
	return s.repos.Draft.GetPoolBySeason(ctx, team.SaveID, save.CurrentSeason)
}

// StartDraftAuction opens the sealed-bid auction on every team's unsold
// draft order slot that its GM is willing to list (start_draft_auction).
func (s *DraftService) StartDraftAuction(ctx context.Context, saveID models.ID, season uint32, poolID models.ID) (*models.DraftPickAuction, error) {
	auction := &models.DraftPickAuction{SaveID: saveID, Season: season, Round: 1, Status: models.AuctionInProgress}
	if err := s.repos.Draft.CreateAuction(ctx, auction); err != nil {
		return nil, err
	}

	orders, err := s.repos.Draft.ListOrderByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Used {
			continue
		}
		team, err := s.repos.Team.GetByID(ctx, o.TeamID)
		if err != nil {
			return nil, err
		}
		profile := models.DefaultGMProfile(team.GMPersonality)
		if !s.auction.WillListPick(*o, profile) {
			continue
		}
		pricing := engines.DraftPickPricing(o.Position)
		listing := &models.Listing{
			AuctionID: auction.ID, SellerTeamID: o.TeamID, DraftPosition: o.Position,
			ReservePrice: pricing.StartingPrice, Status: models.ListingOpen, CreatedAt: time.Now(),
		}
		if err := s.repos.Draft.CreateListing(ctx, listing); err != nil {
			return nil, err
		}
	}
	return auction, nil
}

// ExecuteAuctionRound runs one sealed-bid round over every open listing
// (execute_auction_round), settling listings that stop attracting new
// bids. It does not move the auction's round counter; FastForwardAuction
// and FinalizeAuction do.
func (s *DraftService) ExecuteAuctionRound(ctx context.Context, auctionID, saveID models.ID) error {
	auction, err := s.repos.Draft.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	listings, err := s.repos.Draft.ListListingsByAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	teams, err := s.repos.Team.ListBySave(ctx, saveID)
	if err != nil {
		return err
	}
	bidders := make([]engines.TeamBidder, 0, len(teams))
	for _, t := range teams {
		bidders = append(bidders, engines.TeamBidder{TeamID: t.ID, Balance: t.Balance, Profile: models.DefaultGMProfile(t.GMPersonality)})
	}

	for _, listing := range listings {
		if listing.Status != models.ListingOpen {
			continue
		}
		bids := s.auction.RunBiddingRound(*listing, bidders)
		if len(bids) == 0 {
			existing, err := s.repos.Draft.ListBidsByListing(ctx, listing.ID)
			if err != nil {
				return err
			}
			if err := s.settleListing(ctx, listing, existing, auction.Season); err != nil {
				return err
			}
			continue
		}
		for _, b := range bids {
			bid := &models.Bid{ListingID: listing.ID, BidderTeamID: b.TeamID, Amount: b.Amount}
			if err := s.repos.Draft.CreateBid(ctx, bid); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *DraftService) settleListing(ctx context.Context, listing *models.Listing, bids []models.Bid, season uint32) error {
	winner, txns := s.auction.FinalizeAuction(listing, bids, season)
	if err := s.repos.Draft.SettleListing(ctx, listing); err != nil {
		return err
	}
	if winner == nil {
		return nil
	}
	return s.repos.Ledger.CreateBatch(ctx, txns)
}

// FastForwardAuction runs every remaining auction round until no listing
// is still open (fast_forward_auction).
func (s *DraftService) FastForwardAuction(ctx context.Context, auctionID, saveID models.ID) error {
	for round := 1; round <= models.MaxAuctionRounds; round++ {
		if err := s.ExecuteAuctionRound(ctx, auctionID, saveID); err != nil {
			return err
		}
		if err := s.repos.Draft.AdvanceAuctionRound(ctx, auctionID, round, models.AuctionInProgress); err != nil {
			return err
		}
	}
	return s.FinalizeAuction(ctx, auctionID, saveID)
}

// FinalizeAuction closes the auction: every listing still open after
// MaxAuctionRounds is marked Unsold and returned to its seller, and the
// auction and rookie draft pool are both closed out (finalize_auction).
func (s *DraftService) FinalizeAuction(ctx context.Context, auctionID, saveID models.ID) error {
	auction, err := s.repos.Draft.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	listings, err := s.repos.Draft.ListListingsByAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	for _, listing := range listings {
		if listing.Status != models.ListingOpen {
			continue
		}
		listing.Status = models.ListingUnsold
		if err := s.repos.Draft.SettleListing(ctx, listing); err != nil {
			return err
		}
	}
	if err := s.repos.Draft.AdvanceAuctionRound(ctx, auctionID, models.MaxAuctionRounds, models.AuctionCompleted); err != nil {
		return err
	}
	pool, err := s.repos.Draft.GetPoolBySeason(ctx, saveID, auction.Season)
	if err != nil {
		return err
	}
	return s.repos.Draft.ClosePool(ctx, pool.ID)
}
