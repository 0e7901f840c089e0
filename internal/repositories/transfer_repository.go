// internal/repositories/transfer_repository.go
// Transfer window data access layer (spec.md §4.4): windows, free agents,
// listings, offers, settled records, and newsfeed events.

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tournament-planner/internal/models"
)

// TransferRepository handles transfer-window data access
type TransferRepository struct {
	db *sql.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// CreateWindow inserts a new transfer window
func (r *TransferRepository) CreateWindow(ctx context.Context, w *models.TransferWindow) error {
	query := `INSERT INTO transfer_windows (id, save_id, season, round, status) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.SaveID, w.Season, w.Round, w.Status)
	return err
}

// GetWindow retrieves a transfer window by ID
func (r *TransferRepository) GetWindow(ctx context.Context, id models.ID) (*models.TransferWindow, error) {
	query := `SELECT id, save_id, season, round, status FROM transfer_windows WHERE id = ?`
	var w models.TransferWindow
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.SaveID, &w.Season, &w.Round, &w.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transfer window not found")
	}
	return &w, err
}

// GetWindowBySeason retrieves the (at most one) transfer window for a
// save's season.
func (r *TransferRepository) GetWindowBySeason(ctx context.Context, saveID models.ID, season uint32) (*models.TransferWindow, error) {
	query := `SELECT id, save_id, season, round, status FROM transfer_windows WHERE save_id = ? AND season = ?`
	var w models.TransferWindow
	err := r.db.QueryRowContext(ctx, query, saveID, season).Scan(&w.ID, &w.SaveID, &w.Season, &w.Round, &w.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &w, err
}

// AdvanceRound moves a window to the next of its five rounds
func (r *TransferRepository) AdvanceRound(ctx context.Context, id models.ID, round models.TransferRound, status models.TransferWindowStatus) error {
	query := `UPDATE transfer_windows SET round = ?, status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, round, status, id)
	return err
}

// CreateFreeAgent inserts a pool entry for an unattached player
func (r *TransferRepository) CreateFreeAgent(ctx context.Context, f *models.FreeAgent) error {
	query := `INSERT INTO free_agents (id, window_id, player_id, salary_demand, reason, status) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.WindowID, f.PlayerID, f.SalaryDemand, f.Reason, f.Status)
	return err
}

// ListFreeAgentsByWindow retrieves every pool entry for a window
func (r *TransferRepository) ListFreeAgentsByWindow(ctx context.Context, windowID models.ID) ([]*models.FreeAgent, error) {
	query := `SELECT id, window_id, player_id, salary_demand, reason, status FROM free_agents WHERE window_id = ?`
	rows, err := r.db.QueryContext(ctx, query, windowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]*models.FreeAgent, 0)
	for rows.Next() {
		var f models.FreeAgent
		if err := rows.Scan(&f.ID, &f.WindowID, &f.PlayerID, &f.SalaryDemand, &f.Reason, &f.Status); err != nil {
			return nil, err
		}
		agents = append(agents, &f)
	}
	return agents, nil
}

// UpdateFreeAgentStatus transitions a pool entry's status
func (r *TransferRepository) UpdateFreeAgentStatus(ctx context.Context, id models.ID, status models.FreeAgentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE free_agents SET status = ? WHERE id = ?`, status, id)
	return err
}

// CreateListing inserts a rostered-player transfer listing
func (r *TransferRepository) CreateListing(ctx context.Context, l *models.TransferListing) error {
	query := `INSERT INTO transfer_listings (id, window_id, player_id, seller_team_id, asking_price, status) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.WindowID, l.PlayerID, l.SellerTeamID, l.AskingPrice, l.Status)
	return err
}

// ListListingsByWindow retrieves every open or settled listing for a window
func (r *TransferRepository) ListListingsByWindow(ctx context.Context, windowID models.ID) ([]*models.TransferListing, error) {
	query := `SELECT id, window_id, player_id, seller_team_id, asking_price, status FROM transfer_listings WHERE window_id = ?`
	rows, err := r.db.QueryContext(ctx, query, windowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]*models.TransferListing, 0)
	for rows.Next() {
		var l models.TransferListing
		if err := rows.Scan(&l.ID, &l.WindowID, &l.PlayerID, &l.SellerTeamID, &l.AskingPrice, &l.Status); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}
	return listings, nil
}

// UpdateListingStatus transitions a listing's lifecycle status
func (r *TransferRepository) UpdateListingStatus(ctx context.Context, id models.ID, status models.TransferListingStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transfer_listings SET status = ? WHERE id = ?`, status, id)
	return err
}

// CreateOffer inserts a buying team's bid on a listing or free agent
func (r *TransferRepository) CreateOffer(ctx context.Context, o *models.TransferOffer) error {
	query := `INSERT INTO transfer_offers (id, listing_id, player_id, buyer_team_id, amount, salary_offered, accepted) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, o.ID, o.ListingID, o.PlayerID, o.BuyerTeamID, o.Amount, o.SalaryOffered, o.Accepted)
	return err
}

// ListOffersByListing retrieves every offer submitted against a listing
func (r *TransferRepository) ListOffersByListing(ctx context.Context, listingID models.ID) ([]*models.TransferOffer, error) {
	query := `SELECT id, listing_id, player_id, buyer_team_id, amount, salary_offered, accepted FROM transfer_offers WHERE listing_id = ?`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]*models.TransferOffer, 0)
	for rows.Next() {
		var o models.TransferOffer
		if err := rows.Scan(&o.ID, &o.ListingID, &o.PlayerID, &o.BuyerTeamID, &o.Amount, &o.SalaryOffered, &o.Accepted); err != nil {
			return nil, err
		}
		offers = append(offers, &o)
	}
	return offers, nil
}

// CreateRecord inserts the permanent ledger entry for a completed move
func (r *TransferRepository) CreateRecord(ctx context.Context, rec *models.TransferRecord) error {
	query := `
		INSERT INTO transfer_records (
			id, save_id, season, player_id, from_team_id, to_team_id,
			fee, new_salary, was_free_agent, occurred_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.SaveID, rec.Season, rec.PlayerID, rec.FromTeamID, rec.ToTeamID,
		rec.Fee, rec.NewSalary, rec.WasFreeAgent, rec.OccurredAt,
	)
	return err
}

// ListRecordsBySave retrieves a save's complete transfer history, newest first
func (r *TransferRepository) ListRecordsBySave(ctx context.Context, saveID models.ID) ([]*models.TransferRecord, error) {
	query := `
		SELECT id, save_id, season, player_id, from_team_id, to_team_id, fee, new_salary, was_free_agent, occurred_at
		FROM transfer_records WHERE save_id = ? ORDER BY occurred_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, saveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.TransferRecord, 0)
	for rows.Next() {
		var rec models.TransferRecord
		if err := rows.Scan(&rec.ID, &rec.SaveID, &rec.Season, &rec.PlayerID, &rec.FromTeamID, &rec.ToTeamID, &rec.Fee, &rec.NewSalary, &rec.WasFreeAgent, &rec.OccurredAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, nil
}

// CreateEvent inserts a transfer-window newsfeed row
func (r *TransferRepository) CreateEvent(ctx context.Context, e *models.TransferEvent) error {
	query := `
		INSERT INTO transfer_events (
			id, window_id, round, event_type, player_id, from_team_id, to_team_id,
			transfer_fee, new_salary, contract_years, headline, description,
			importance, competing_teams, was_bidding_war, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.WindowID, e.Round, e.Kind, e.PlayerID, e.FromTeamID, e.ToTeamID,
		e.TransferFee, e.NewSalary, e.ContractYears, e.Headline, e.Description,
		e.Importance, e.CompetingTeams, e.WasBiddingWar, e.CreatedAt,
	)
	return err
}

// ListEventsByWindow retrieves a window's newsfeed, newest first
func (r *TransferRepository) ListEventsByWindow(ctx context.Context, windowID models.ID) ([]*models.TransferEvent, error) {
	query := `
		SELECT id, window_id, round, event_type, player_id, from_team_id, to_team_id,
			transfer_fee, new_salary, contract_years, headline, description,
			importance, competing_teams, was_bidding_war, created_at
		FROM transfer_events WHERE window_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, windowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.TransferEvent, 0)
	for rows.Next() {
		var e models.TransferEvent
		if err := rows.Scan(&e.ID, &e.WindowID, &e.Round, &e.Kind, &e.PlayerID, &e.FromTeamID, &e.ToTeamID,
			&e.TransferFee, &e.NewSalary, &e.ContractYears, &e.Headline, &e.Description,
			&e.Importance, &e.CompetingTeams, &e.WasBiddingWar, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, nil
}
