// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"
	"tournament-planner/internal/database"
)

// Container holds all repository instances
type Container struct {
	User        *UserRepository
	Save        *SaveRepository
	Team        *TeamRepository
	Player      *PlayerRepository
	PlayerForm  *PlayerFormFactorsRepository
	Tournament  *TournamentRepository
	Standing    *StandingRepository
	Match       *MatchRepository
	Transfer    *TransferRepository
	Draft       *DraftRepository
	Ladder      *LadderRepository
	Honor       *HonorRepository
	Ledger      *LedgerRepository
	db          *sql.DB
}

// NewContainer creates a new repository container
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		User:       NewUserRepository(conn.MySQL),
		Save:       NewSaveRepository(conn.MySQL),
		Team:       NewTeamRepository(conn.MySQL),
		Player:     NewPlayerRepository(conn.MySQL),
		PlayerForm: NewPlayerFormFactorsRepository(conn.MySQL),
		Tournament: NewTournamentRepository(conn.MySQL),
		Standing:   NewStandingRepository(conn.MySQL),
		Match:      NewMatchRepository(conn.MySQL),
		Transfer:   NewTransferRepository(conn.MySQL),
		Draft:      NewDraftRepository(conn.MySQL),
		Ladder:     NewLadderRepository(conn.MySQL),
		Honor:      NewHonorRepository(conn.MySQL),
		Ledger:     NewLedgerRepository(conn.MySQL),
		db:         conn.MySQL,
	}
}

// BeginTx starts a new database transaction
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
