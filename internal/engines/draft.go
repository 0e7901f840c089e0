// internal/engines/draft.go
// The sealed-bid draft-pick auction (spec.md §4.4.3/§4.5). Grounded on
// original_source's commands/draft_auction_commands.rs (start_draft_auction's
// per-slot starting_price/min_increment pricing table, GM sell/bid
// aggressiveness thresholds, three-round auction window, house commission).

package engines

import "tournament-planner/internal/models"

// SlotPricing is one draft position's starting price and minimum raise.
type SlotPricing struct {
	StartingPrice int64
	MinIncrement  int64
}

// DraftPickPricing returns the starting_price/min_increment for a draft
// position, highest pick commanding the steepest price (spec.md §4.5).
func DraftPickPricing(position int) SlotPricing {
	switch {
	case position <= 2:
		return SlotPricing{StartingPrice: 2_000_000, MinIncrement: 200_000}
	case position <= 5:
		return SlotPricing{StartingPrice: 1_000_000, MinIncrement: 100_000}
	case position <= 10:
		return SlotPricing{StartingPrice: 400_000, MinIncrement: 50_000}
	default:
		return SlotPricing{StartingPrice: 150_000, MinIncrement: 20_000}
	}
}

// SlotValuation is a team's internal perceived value of one draft slot,
// used both to decide whether to list it and to cap a bid.
func SlotValuation(position int) int64 {
	return DraftPickPricing(position).StartingPrice * 2
}

// DraftAuctionEngine runs the sealed-bid auction window team by team,
// round by round.
type DraftAuctionEngine struct{ rng *RNG }

func NewDraftAuctionEngine(rng *RNG) *DraftAuctionEngine { return &DraftAuctionEngine{rng: rng} }

// WillListPick reports whether a team's GM lists their draft order
// position for sale: a low DraftPickSellThreshold means the team keeps
// the pick unless the perceived slot value is low (spec.md §4.5).
func (e *DraftAuctionEngine) WillListPick(order models.DraftOrder, profile models.GMProfile) bool {
	normalized := 1.0 - (float64(order.Position) / 20.0) // earlier picks score higher
	return normalized < profile.DraftPickSellThreshold
}

// TeamBidder is one team's auction-relevant state for one round.
type TeamBidder struct {
	TeamID  ID
	Balance int64
	Profile models.GMProfile
}

// SealedBid is one bidder's secret offer on a listing within one round.
type SealedBid struct {
	TeamID ID
	Amount int64
}

// RunBiddingRound collects each eligible bidder's sealed bid on a
// listing: a team bids only if it can afford current_price+min_increment
// and its aggressiveness-weighted valuation of the slot clears the
// current price (spec.md §4.5).
func (e *DraftAuctionEngine) RunBiddingRound(listing models.Listing, bidders []TeamBidder) []SealedBid {
	var bids []SealedBid
	pricing := DraftPickPricing(listing.DraftPosition)
	nextPrice := listing.FinalPrice
	if nextPrice == 0 {
		nextPrice = listing.ReservePrice
	}
	minBid := nextPrice + pricing.MinIncrement

	for _, b := range bidders {
		if b.TeamID == listing.SellerTeamID {
			continue
		}
		if b.Balance < minBid {
			continue
		}
		valuation := SlotValuation(listing.DraftPosition) * int64(b.Profile.DraftPickBidAggression*100) / 100
		if valuation <= nextPrice {
			continue
		}
		bids = append(bids, SealedBid{TeamID: b.TeamID, Amount: minBid})
	}
	return bids
}

// FinalizeAuction settles a listing once a round produces no new bid:
// Sold when at least one qualifying bid was received, Withdrawn
// otherwise. Returns the two financial_transactions rows (buyer debit,
// seller credit net of commission) required by spec.md §4.5.
func (e *DraftAuctionEngine) FinalizeAuction(listing *models.Listing, bids []models.Bid, season uint32) (winner *models.Bid, txns []models.FinancialTransaction) {
	winner, sellerNet := listing.Settle(bids)
	if winner == nil {
		return nil, nil
	}
	txns = []models.FinancialTransaction{
		{TeamID: winner.BidderTeamID, Season: season, Kind: "auction_purchase", Amount: -winner.Amount, Reference: &listing.ID},
		{TeamID: listing.SellerTeamID, Season: season, Kind: "auction_sale", Amount: sellerNet, Reference: &listing.ID},
	}
	return winner, txns
}
