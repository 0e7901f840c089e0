// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"
	"math/rand/v2"

	"tournament-planner/internal/config"
	"tournament-planner/internal/database"
	"tournament-planner/internal/engines"
	"tournament-planner/internal/events"
	"tournament-planner/internal/repositories"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth     *AuthService
	Save     *SaveService
	Phase    *PhaseService
	Team     *TeamService
	Player   *PlayerService
	Match    *MatchService
	Transfer *TransferService
	Draft    *DraftService
	Ladder   *LadderService
	Honors   *HonorsService
	Finance  *FinanceService
	Strategy *StrategyService
	Cache    *CacheService
	Events   *events.Store
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	// Initialize repositories
	repos := repositories.NewContainer(db)

	// Initialize cache service
	cache := NewCacheService(db.Redis, logger)

	// Initialize append-only newsfeed event store
	eventStore := events.NewStore(db.MongoDB)

	seed := cfg.Simulation.RNGSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := engines.NewRNG(seed)

	strategy := NewStrategyService(cfg.Simulation.StrategyTimeout, logger)
	auth := NewAuthService(repos.User, cfg.Auth, cache, logger)
	save := NewSaveService(repos, logger)
	team := NewTeamService(repos, cache, logger)
	player := NewPlayerService(repos, cache, logger)
	match := NewMatchService(repos, eventStore, rng, cache, logger)
	phase := NewPhaseService(repos, match, eventStore, logger)
	honors := NewHonorsService(repos, eventStore, logger)
	transfer := NewTransferService(repos, eventStore, strategy, rng, logger)
	draft := NewDraftService(repos, eventStore, rng, logger)
	ladder := NewLadderService(repos, eventStore, rng, logger)
	finance := NewFinanceService(repos, logger)

	return &Container{
		Auth:     auth,
		Save:     save,
		Phase:    phase,
		Team:     team,
		Player:   player,
		Match:    match,
		Transfer: transfer,
		Draft:    draft,
		Ladder:   ladder,
		Honors:   honors,
		Finance:  finance,
		Strategy: strategy,
		Cache:    cache,
		Events:   eventStore,
	}
}

// Common errors used across services, mapped to ERR_<KIND> prefixes at the
// api boundary (spec.md §7).
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrNoSaveLoaded         = errors.New("no save loaded")
	ErrAlreadyInitialized   = errors.New("phase already initialized")
	ErrInvalidPhaseTransition = errors.New("invalid phase transition")
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrConflict             = errors.New("conflict")
	ErrExternalService      = errors.New("external service error")
)
