// internal/repositories/draft_repository.go
// Rookie draft (spec.md §4.4.2) and sealed-bid draft-pick auction
// (spec.md §4.4.3) data access layer.

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-planner/internal/models"
)

// DraftRepository handles draft pool/order/pick and auction data access
type DraftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// CreatePool inserts a season's draftable rookie pool
func (r *DraftRepository) CreatePool(ctx context.Context, p *models.DraftPool) error {
	query := `INSERT INTO draft_pools (id, save_id, season, status) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.SaveID, p.Season, p.Status)
	return err
}

// GetPoolBySeason retrieves a save's draft pool for a season
func (r *DraftRepository) GetPoolBySeason(ctx context.Context, saveID models.ID, season uint32) (*models.DraftPool, error) {
	query := `SELECT id, save_id, season, status FROM draft_pools WHERE save_id = ? AND season = ?`
	var p models.DraftPool
	err := r.db.QueryRowContext(ctx, query, saveID, season).Scan(&p.ID, &p.SaveID, &p.Season, &p.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft pool not found")
	}
	return &p, err
}

// ClosePool marks a pool closed once every order position has picked
func (r *DraftRepository) ClosePool(ctx context.Context, id models.ID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE draft_pools SET status = ? WHERE id = ?`, models.DraftPoolClosed, id)
	return err
}

// CreateOrder inserts one team's worst-record-first pick position
func (r *DraftRepository) CreateOrder(ctx context.Context, o *models.DraftOrder) error {
	query := `INSERT INTO draft_orders (id, pool_id, team_id, position, used) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, o.ID, o.PoolID, o.TeamID, o.Position, o.Used)
	return err
}

// ListOrderByPool retrieves a pool's full pick order
func (r *DraftRepository) ListOrderByPool(ctx context.Context, poolID models.ID) ([]*models.DraftOrder, error) {
	query := `SELECT id, pool_id, team_id, position, used FROM draft_orders WHERE pool_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.DraftOrder, 0)
	for rows.Next() {
		var o models.DraftOrder
		if err := rows.Scan(&o.ID, &o.PoolID, &o.TeamID, &o.Position, &o.Used); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, nil
}

// MarkOrderUsed flags a pick position as spent
func (r *DraftRepository) MarkOrderUsed(ctx context.Context, id models.ID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE draft_orders SET used = TRUE WHERE id = ?`, id)
	return err
}

// CreatePick records a selection made at a pick position
func (r *DraftRepository) CreatePick(ctx context.Context, p *models.DraftPick) error {
	query := `INSERT INTO draft_picks (id, pool_id, team_id, player_id, position, picked_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.PoolID, p.TeamID, p.PlayerID, p.Position, p.PickedAt)
	return err
}

// ListPicksByPool retrieves every selection made in a pool, in pick order
func (r *DraftRepository) ListPicksByPool(ctx context.Context, poolID models.ID) ([]*models.DraftPick, error) {
	query := `SELECT id, pool_id, team_id, player_id, position, picked_at FROM draft_picks WHERE pool_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	picks := make([]*models.DraftPick, 0)
	for rows.Next() {
		var p models.DraftPick
		if err := rows.Scan(&p.ID, &p.PoolID, &p.TeamID, &p.PlayerID, &p.Position, &p.PickedAt); err != nil {
			return nil, err
		}
		picks = append(picks, &p)
	}
	return picks, nil
}

// CreateAuction inserts a season's sealed-bid draft-pick auction window,
// assigning the auto-incremented ID back onto it.
func (r *DraftRepository) CreateAuction(ctx context.Context, a *models.DraftPickAuction) error {
	query := `INSERT INTO draft_pick_auctions (save_id, season, round, status) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, a.SaveID, a.Season, a.Round, a.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = models.ID(id)
	return nil
}

// GetAuction retrieves a sealed-bid draft-pick auction window by ID
func (r *DraftRepository) GetAuction(ctx context.Context, id models.ID) (*models.DraftPickAuction, error) {
	query := `SELECT id, save_id, season, round, status FROM draft_pick_auctions WHERE id = ?`
	var a models.DraftPickAuction
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.SaveID, &a.Season, &a.Round, &a.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft auction not found")
	}
	return &a, err
}

// GetAuctionBySeason retrieves a save's auction window for a season
func (r *DraftRepository) GetAuctionBySeason(ctx context.Context, saveID models.ID, season uint32) (*models.DraftPickAuction, error) {
	query := `SELECT id, save_id, season, round, status FROM draft_pick_auctions WHERE save_id = ? AND season = ?`
	var a models.DraftPickAuction
	err := r.db.QueryRowContext(ctx, query, saveID, season).Scan(&a.ID, &a.SaveID, &a.Season, &a.Round, &a.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft auction not found")
	}
	return &a, err
}

// AdvanceAuctionRound moves an auction window to its next round
func (r *DraftRepository) AdvanceAuctionRound(ctx context.Context, id models.ID, round int, status models.AuctionStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE draft_pick_auctions SET round = ?, status = ? WHERE id = ?`, round, status, id)
	return err
}

// CreateListing inserts a team's draft pick offered for sale
func (r *DraftRepository) CreateListing(ctx context.Context, l *models.Listing) error {
	query := `
		INSERT INTO draft_pick_listings (
			id, auction_id, seller_team_id, draft_position, reserve_price, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.AuctionID, l.SellerTeamID, l.DraftPosition, l.ReservePrice, l.Status, l.CreatedAt)
	return err
}

// ListListingsByAuction retrieves every pick listing for an auction window
func (r *DraftRepository) ListListingsByAuction(ctx context.Context, auctionID models.ID) ([]*models.Listing, error) {
	query := `
		SELECT id, auction_id, seller_team_id, draft_position, reserve_price,
			status, winning_bid_id, final_price, created_at
		FROM draft_pick_listings WHERE auction_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]*models.Listing, 0)
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.AuctionID, &l.SellerTeamID, &l.DraftPosition, &l.ReservePrice,
			&l.Status, &l.WinningBidID, &l.FinalPrice, &l.CreatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}
	return listings, nil
}

// SettleListing persists a listing's final sale outcome
func (r *DraftRepository) SettleListing(ctx context.Context, l *models.Listing) error {
	query := `
		UPDATE draft_pick_listings SET
			status = ?, winning_bid_id = ?, final_price = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, l.Status, l.WinningBidID, l.FinalPrice, l.ID)
	return err
}

// CreateBid inserts a sealed bid on a listing
func (r *DraftRepository) CreateBid(ctx context.Context, b *models.Bid) error {
	query := `INSERT INTO draft_pick_bids (id, listing_id, bidder_team_id, amount) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ListingID, b.BidderTeamID, b.Amount)
	return err
}

// ListBidsByListing retrieves every sealed bid submitted on a listing
func (r *DraftRepository) ListBidsByListing(ctx context.Context, listingID models.ID) ([]models.Bid, error) {
	query := `SELECT id, listing_id, bidder_team_id, amount FROM draft_pick_bids WHERE listing_id = ?`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]models.Bid, 0)
	for rows.Next() {
		var b models.Bid
		if err := rows.Scan(&b.ID, &b.ListingID, &b.BidderTeamID, &b.Amount); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}

// CreateAuctionEvent inserts an auction newsfeed row
func (r *DraftRepository) CreateAuctionEvent(ctx context.Context, e *models.AuctionEvent) error {
	query := `
		INSERT INTO auction_events (auction_id, round, kind, listing_id, team_id, detail, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, e.AuctionID, e.Round, e.Kind, e.ListingID, e.TeamID, e.Detail, e.At)
	return err
}
