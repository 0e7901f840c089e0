// internal/engines/ladder.go
// The off-season ladder: matchmaking, per-match simulation, and Elo
// rating updates for the 12-round douyu/douyin/huya spectacle events.
// Grounded on original_source's commands/ladder_commands.rs
// (simulate_ladder_round), whose inline SQL-and-logic blend is split
// here into a matchmaker, a simulator, and a rating updater.

package engines

import "tournament-planner/internal/models"

// LadderPlayer is one entrant's matchmaking-relevant snapshot for a round.
type LadderPlayer struct {
	PlayerID ID
	Rating   float64
	GamesPlayed int
}

// ID mirrors models.ID to avoid an import cycle concern; kept as an alias
// for readability in this file.
type ID = models.ID

// LadderMatchmaker pairs rated players into 10-player (5v5) matches,
// shuffling then splitting consecutive rating-sorted pairs across sides
// so that team averages stay close without requiring an exhaustive search.
type LadderMatchmaker struct{ rng *RNG }

func NewLadderMatchmaker(rng *RNG) *LadderMatchmaker { return &LadderMatchmaker{rng: rng} }

// CreateRoundMatches groups players into balanced 5v5 matches. A player
// count not divisible by 10 leaves the tail of the shuffled pool (a random
// remainder, not the lowest-rated one) as byes.
func (m *LadderMatchmaker) CreateRoundMatches(players []LadderPlayer) (matches [][2][5]LadderPlayer, byes []LadderPlayer) {
	pool := append([]LadderPlayer(nil), players...)
	m.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	usable := (len(pool) / 10) * 10
	byes = append(byes, pool[usable:]...)
	pool = pool[:usable]

	for i := 0; i < len(pool); i += 10 {
		group := pool[i : i+10]
		blue, red := splitByRatingSnake(group)
		matches = append(matches, [2][5]LadderPlayer{blue, red})
	}
	return matches, byes
}

// splitByRatingSnake sorts ten players by rating and deals them alternately
// (snake draft: 1-2-2-1-1-2-2-1-1-2) so both sides end up with a similar
// average rating instead of one side getting every top player.
func splitByRatingSnake(group []LadderPlayer) (blue, red [5]LadderPlayer) {
	sorted := append([]LadderPlayer(nil), group...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Rating > sorted[j-1].Rating; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	var bi, ri int
	for i, p := range sorted {
		onBlue := i%4 == 0 || i%4 == 3
		if onBlue {
			blue[bi] = p
			bi++
		} else {
			red[ri] = p
			ri++
		}
	}
	return blue, red
}

// LadderGameStdDev is the per-match performance-noise standard deviation,
// matching the match simulation kernel's gameStdDev.
const LadderGameStdDev = 3.0

// LadderSimulator plays out one 5v5 ladder match.
type LadderSimulator struct {
	rng    *RNG
	traits *TraitEngine
}

func NewLadderSimulator(rng *RNG) *LadderSimulator {
	return &LadderSimulator{rng: rng, traits: NewTraitEngine()}
}

// PlayerLadderInput is everything the simulator needs about one entrant:
// their rated ability, equipped champion tier, and trait set.
type PlayerLadderInput struct {
	PlayerID   ID
	Ability    uint8
	Traits     []models.TraitType
	ChampionTier models.VersionTier
	MasteryBonus float64 // small per-tier boost from PlayerChampionMastery
}

// LadderMatchResult is one simulated 5v5 outcome.
type LadderMatchResult struct {
	BluePower, RedPower float64
	Winner              models.LadderSide
	MVPPlayerID         ID
	Performances        map[ID]float64
	DurationMin         int
}

// SimulateMatch simulates one ladder match from two five-player rosters.
func (s *LadderSimulator) SimulateMatch(blue, red [5]PlayerLadderInput) LadderMatchResult {
	result := LadderMatchResult{Performances: make(map[ID]float64, 10)}
	result.DurationMin = 20 + s.rng.Range(0, 20)

	result.BluePower = s.sidePower(blue, result.Performances)
	result.RedPower = s.sidePower(red, result.Performances)

	diff := (result.BluePower - result.RedPower) + s.rng.Gaussian(0, LadderGameStdDev)
	if diff >= 0 {
		result.Winner = models.SideBlue
	} else {
		result.Winner = models.SideRed
	}

	best := -1.0
	for _, p := range blue {
		if v := result.Performances[p.PlayerID]; v > best {
			best, result.MVPPlayerID = v, p.PlayerID
		}
	}
	for _, p := range red {
		if v := result.Performances[p.PlayerID]; v > best {
			best, result.MVPPlayerID = v, p.PlayerID
		}
	}
	return result
}

func (s *LadderSimulator) sidePower(side [5]PlayerLadderInput, out map[ID]float64) float64 {
	var total float64
	for _, p := range side {
		tierMult := models.VersionTierMultiplier(p.ChampionTier)
		actual := float64(p.Ability)*tierMult + p.MasteryBonus
		actual += s.rng.Gaussian(0, LadderGameStdDev)
		out[p.PlayerID] = actual
		total += actual
	}
	return total / float64(len(side))
}

// RatingUpdate is one player's ladder-rating delta after a simulated match.
type RatingUpdate struct {
	PlayerID   ID
	NewRating  float64
	Won        bool
	IsMVP      bool
	Influence  float64
}

// ApplyRatingChanges computes the Elo update for all ten participants of
// one ladder match given the simulated result and each player's prior
// rating/games_played.
func ApplyRatingChanges(blue, red [5]LadderPlayer, result LadderMatchResult) []RatingUpdate {
	updates := make([]RatingUpdate, 0, 10)
	blueWon := result.Winner == models.SideBlue

	avgRed := averageRating(red[:])
	avgBlue := averageRating(blue[:])

	for _, p := range blue {
		isMVP := p.PlayerID == result.MVPPlayerID
		score := models.PlayerScore(blueWon, isMVP)
		newRating, _ := models.UpdateElo(p.Rating, avgRed, score, p.GamesPlayed, p.GamesPlayed)
		updates = append(updates, RatingUpdate{PlayerID: p.PlayerID, NewRating: newRating, Won: blueWon, IsMVP: isMVP, Influence: result.Performances[p.PlayerID]})
	}
	for _, p := range red {
		isMVP := p.PlayerID == result.MVPPlayerID
		score := models.PlayerScore(!blueWon, isMVP)
		newRating, _ := models.UpdateElo(p.Rating, avgBlue, score, p.GamesPlayed, p.GamesPlayed)
		updates = append(updates, RatingUpdate{PlayerID: p.PlayerID, NewRating: newRating, Won: !blueWon, IsMVP: isMVP, Influence: result.Performances[p.PlayerID]})
	}
	return updates
}

func averageRating(players []LadderPlayer) float64 {
	var total float64
	for _, p := range players {
		total += p.Rating
	}
	return total / float64(len(players))
}

// RankLadder orders final standings by (rating, wins, mvp_count) desc,
// matching complete_ladder_tournament's ORDER BY.
func RankLadder(ratings []models.LadderRating) []models.LadderRating {
	out := append([]models.LadderRating(nil), ratings...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessLadderRank(out[j-1], out[j]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// lessLadderRank reports whether a ranks below b.
func lessLadderRank(a, b models.LadderRating) bool {
	if a.Rating != b.Rating {
		return a.Rating < b.Rating
	}
	if a.Wins != b.Wins {
		return a.Wins < b.Wins
	}
	return a.MVPCount < b.MVPCount
}
