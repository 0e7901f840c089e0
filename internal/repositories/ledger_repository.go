// internal/repositories/ledger_repository.go
// Financial ledger data access layer. Adapted from the teacher's payment
// stub repository: instead of Stripe charge/intent rows, it stores every
// signed FinancialTransaction written by draft-pick auction settlement and
// by the finance service.

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// LedgerRepository handles financial transaction data access
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Create inserts a single signed balance movement
func (r *LedgerRepository) Create(ctx context.Context, tx *models.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, team_id, season, kind, amount, reference_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, tx.ID, tx.TeamID, tx.Season, tx.Kind, tx.Amount, tx.Reference, tx.CreatedAt)
	return err
}

// CreateBatch inserts every transaction produced by one settlement step
// (e.g. an auction's buyer-debit/seller-credit pair) in one
// transaction so the team balance updates they imply stay atomic.
func (r *LedgerRepository) CreateBatch(ctx context.Context, txs []models.FinancialTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i := range txs {
		query := `
			INSERT INTO financial_transactions (id, team_id, season, kind, amount, reference_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := dbTx.ExecContext(ctx, query, txs[i].ID, txs[i].TeamID, txs[i].Season, txs[i].Kind, txs[i].Amount, txs[i].Reference, txs[i].CreatedAt); err != nil {
			dbTx.Rollback()
			return err
		}
		balanceQuery := `UPDATE teams SET balance = balance + ? WHERE id = ?`
		if _, err := dbTx.ExecContext(ctx, balanceQuery, txs[i].Amount, txs[i].TeamID); err != nil {
			dbTx.Rollback()
			return err
		}
	}
	return dbTx.Commit()
}

// ListByTeam retrieves a team's ledger, newest first
func (r *LedgerRepository) ListByTeam(ctx context.Context, teamID models.ID) ([]*models.FinancialTransaction, error) {
	query := `
		SELECT id, team_id, season, kind, amount, reference_id, created_at
		FROM financial_transactions WHERE team_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]*models.FinancialTransaction, 0)
	for rows.Next() {
		var tx models.FinancialTransaction
		if err := rows.Scan(&tx.ID, &tx.TeamID, &tx.Season, &tx.Kind, &tx.Amount, &tx.Reference, &tx.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
