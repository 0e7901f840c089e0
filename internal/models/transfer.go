// internal/models/transfer.go
// The five-round transfer window engine's entities (spec.md §4.4).

package models

import "time"

// TransferRound is one of the five ordered rounds of a transfer window
// (spec.md §4.4: R1 contracts & retirements .. R5 finalize).
type TransferRound int

const (
	RoundContractsRetirement TransferRound = 1
	RoundFreeAgents          TransferRound = 2
	RoundFinancialClearance  TransferRound = 3
	RoundReinforcement       TransferRound = 4
	RoundFinalize            TransferRound = 5
)

// MaxTransferRound is the final round of a transfer window.
const MaxTransferRound = RoundFinalize

// TransferWindowStatus tracks the window's overall lifecycle.
type TransferWindowStatus string

const (
	WindowNotStarted TransferWindowStatus = "not_started"
	WindowInProgress TransferWindowStatus = "in_progress"
	WindowCompleted  TransferWindowStatus = "completed"
)

// TransferWindow is one season's transfer window.
type TransferWindow struct {
	ID     ID                    `json:"id" db:"id"`
	SaveID ID                    `json:"save_id" db:"save_id"`
	Season uint32                `json:"season" db:"season"`
	Round  TransferRound         `json:"round" db:"round"`
	Status TransferWindowStatus  `json:"status" db:"status"`
}

// FreeAgentStatus tracks a pool entry across the R2 free-agent round.
// Retired is set only when the player transitions to PlayerRetired during
// R1, not by any free-agent-round action (resolved Open Question).
type FreeAgentStatus string

const (
	FreeAgentAvailable FreeAgentStatus = "available"
	FreeAgentSigned    FreeAgentStatus = "signed"
	FreeAgentRetired   FreeAgentStatus = "retired"
)

// FreeAgent is one unattached player's asking terms for the window.
type FreeAgent struct {
	ID            ID              `json:"id" db:"id"`
	WindowID      ID              `json:"window_id" db:"window_id"`
	PlayerID      ID              `json:"player_id" db:"player_id"`
	SalaryDemand  int64           `json:"salary_demand" db:"salary_demand"`
	Reason        string          `json:"reason" db:"reason"` // e.g. "contract_expired", "released"
	Status        FreeAgentStatus `json:"status" db:"status"`
}

// TransferListingStatus is a player listing's lifecycle state.
type TransferListingStatus string

const (
	TransferListingOpen      TransferListingStatus = "open"
	TransferListingAccepted  TransferListingStatus = "accepted"
	TransferListingWithdrawn TransferListingStatus = "withdrawn"
	TransferListingExpired   TransferListingStatus = "expired"
)

// TransferListing is a team offering a rostered player for transfer.
type TransferListing struct {
	ID           ID                     `json:"id" db:"id"`
	WindowID     ID                     `json:"window_id" db:"window_id"`
	PlayerID     ID                     `json:"player_id" db:"player_id"`
	SellerTeamID ID                     `json:"seller_team_id" db:"seller_team_id"`
	AskingPrice  int64                  `json:"asking_price" db:"asking_price"`
	Status       TransferListingStatus  `json:"status" db:"status"`
}

// TransferOffer is a buying team's bid on a TransferListing or free agent.
type TransferOffer struct {
	ID            ID    `json:"id" db:"id"`
	ListingID     *ID   `json:"listing_id,omitempty" db:"listing_id"`
	PlayerID      ID    `json:"player_id" db:"player_id"`
	BuyerTeamID   ID    `json:"buyer_team_id" db:"buyer_team_id"`
	Amount        int64 `json:"amount" db:"amount"`
	SalaryOffered int64 `json:"salary_offered" db:"salary_offered"`
	Accepted      bool  `json:"accepted" db:"accepted"`
}

// TransferRecord is the permanent ledger entry of a completed move.
type TransferRecord struct {
	ID           ID        `json:"id" db:"id"`
	SaveID       ID        `json:"save_id" db:"save_id"`
	Season       uint32    `json:"season" db:"season"`
	PlayerID     ID        `json:"player_id" db:"player_id"`
	FromTeamID   *ID       `json:"from_team_id,omitempty" db:"from_team_id"`
	ToTeamID     *ID       `json:"to_team_id,omitempty" db:"to_team_id"`
	Fee          int64     `json:"fee" db:"fee"`
	NewSalary    int64     `json:"new_salary" db:"new_salary"`
	WasFreeAgent bool      `json:"was_free_agent" db:"was_free_agent"`
	OccurredAt   time.Time `json:"occurred_at" db:"occurred_at"`
}

// FinancialTransaction is a single balance movement on a team's ledger,
// covering draft-pick auction purchases and sales, salaries, league revenue
// shares, and tournament prizes.
type FinancialTransaction struct {
	ID        ID        `json:"id" db:"id"`
	TeamID    ID        `json:"team_id" db:"team_id"`
	Season    uint32    `json:"season" db:"season"`
	Kind      string    `json:"kind" db:"kind"` // auction_purchase, auction_sale, salary, league_share, tournament_prize
	Amount    int64     `json:"amount" db:"amount"` // signed: credit positive, debit negative
	Reference *ID       `json:"reference_id,omitempty" db:"reference_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TransferEventKind is the closed set of newsfeed-worthy transfer moments.
type TransferEventKind string

const (
	EventRetirement     TransferEventKind = "retirement"
	EventContractExpire TransferEventKind = "contract_expire"
	EventFreeAgentSign  TransferEventKind = "free_agent_sign"
	EventPurchase       TransferEventKind = "purchase"
	EventListingExpired TransferEventKind = "listing_expired"
	EventRosterFill     TransferEventKind = "roster_fill"
)

// TransferEvent is one newsfeed row emitted by a transfer-window round
// (spec.md §4.4: round/event_type/status/player_id/.../was_bidding_war).
type TransferEvent struct {
	ID              ID                `json:"id" db:"id"`
	WindowID        ID                `json:"window_id" db:"window_id"`
	Round           TransferRound     `json:"round" db:"round"`
	Kind            TransferEventKind `json:"event_type" db:"event_type"`
	PlayerID        *ID               `json:"player_id,omitempty" db:"player_id"`
	FromTeamID      *ID               `json:"from_team_id,omitempty" db:"from_team_id"`
	ToTeamID        *ID               `json:"to_team_id,omitempty" db:"to_team_id"`
	TransferFee     int64             `json:"transfer_fee" db:"transfer_fee"`
	NewSalary       int64             `json:"new_salary" db:"new_salary"`
	ContractYears   int               `json:"contract_years" db:"contract_years"`
	Headline        string            `json:"headline" db:"headline"`
	Description     string            `json:"description" db:"description"`
	Importance      int               `json:"importance" db:"importance"`
	CompetingTeams  int               `json:"competing_teams" db:"competing_teams"`
	WasBiddingWar   bool              `json:"was_bidding_war" db:"was_bidding_war"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}
