// internal/models/auction.go
// The sealed-bid draft-pick auction engine's entities (spec.md §4.4.3):
// GMs may list their draft picks for sale, other GMs submit sealed bids,
// and the house takes a commission on every completed sale.

package models

import "time"

// AuctionStatus tracks the whole-season auction window.
type AuctionStatus string

const (
	AuctionNotStarted AuctionStatus = "not_started"
	AuctionInProgress AuctionStatus = "in_progress"
	AuctionCompleted  AuctionStatus = "completed"
)

// DraftPickAuction is one season's sealed-bid auction window, up to
// MaxAuctionRounds rounds of listing and bidding.
type DraftPickAuction struct {
	ID          ID            `json:"id" db:"id"`
	SaveID      ID            `json:"save_id" db:"save_id"`
	Season      uint32        `json:"season" db:"season"`
	Round       int           `json:"round" db:"round"`
	Status      AuctionStatus `json:"status" db:"status"`
}

// MaxAuctionRounds bounds the sealed-bid auction window (spec.md §4.4.3).
const MaxAuctionRounds = 3

// HouseCommissionRate is taken from every Sold listing (spec.md §4.4.3).
const HouseCommissionRate = 0.05

// ListingStatus is a draft-pick listing's lifecycle state.
type ListingStatus string

const (
	ListingOpen   ListingStatus = "open"
	ListingSold   ListingStatus = "sold"
	ListingUnsold ListingStatus = "unsold"
	ListingWithdrawn ListingStatus = "withdrawn"
)

// Listing is one team's draft pick offered for sale in the auction.
type Listing struct {
	ID            ID            `json:"id" db:"id"`
	AuctionID     ID            `json:"auction_id" db:"auction_id"`
	SellerTeamID  ID            `json:"seller_team_id" db:"seller_team_id"`
	DraftPosition int           `json:"draft_position" db:"draft_position"`
	ReservePrice  int64         `json:"reserve_price" db:"reserve_price"`
	Status        ListingStatus `json:"status" db:"status"`
	WinningBidID  *ID           `json:"winning_bid_id,omitempty" db:"winning_bid_id"`
	FinalPrice    int64         `json:"final_price" db:"final_price"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// Bid is one team's sealed bid on a Listing.
type Bid struct {
	ID         ID    `json:"id" db:"id"`
	ListingID  ID    `json:"listing_id" db:"listing_id"`
	BidderTeamID ID  `json:"bidder_team_id" db:"bidder_team_id"`
	Amount     int64 `json:"amount" db:"amount"`
}

// Settle resolves a listing's highest bid against its reserve price,
// applying the house commission to the seller's net proceeds.
func (l *Listing) Settle(bids []Bid) (winner *Bid, sellerNet int64) {
	var best *Bid
	for i := range bids {
		if bids[i].Amount < l.ReservePrice {
			continue
		}
		if best == nil || bids[i].Amount > best.Amount {
			best = &bids[i]
		}
	}
	if best == nil {
		l.Status = ListingUnsold
		return nil, 0
	}
	l.Status = ListingSold
	l.WinningBidID = &best.ID
	l.FinalPrice = best.Amount
	net := int64(float64(best.Amount) * (1 - HouseCommissionRate))
	return best, net
}

// AuctionEvent is a newsfeed-worthy moment during the auction (spec.md §4.4.3).
type AuctionEvent struct {
	AuctionID ID        `json:"auction_id"`
	Round     int       `json:"round"`
	Kind      string    `json:"kind"`
	ListingID *ID       `json:"listing_id,omitempty"`
	TeamID    *ID        `json:"team_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
