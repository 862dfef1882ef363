package ranking

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Accumulator folds finished games into per-player and per-pair totals.
// Entries are materialized on first appearance, and the order of first
// appearance is kept so that callers can break ties by insertion order.
type Accumulator struct {
	players     map[string]*Stats
	playerOrder []string
	pairs       map[PairKey]*Stats
	pairOrder   []PairKey
	warnings    []Warning
	games       int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		players: make(map[string]*Stats),
		pairs:   make(map[PairKey]*Stats),
	}
}

// Add folds a single game. Games that are not finished are ignored.
// Finished games with inconsistent data are excluded and reported as a
// warning; they never abort the fold.
func (a *Accumulator) Add(g GameRecord) {
	if g.Status != StatusFinished {
		return
	}
	if err := validateFinished(g); err != nil {
		log.Warn("Excluding finished game from rankings", "gameID", g.ID, "error", err)
		a.warnings = append(a.warnings, Warning{GameID: g.ID, Reason: err.Error(), Err: err})
		return
	}

	winners, losers := g.Team1Players, g.Team2Players
	winScore, loseScore := g.Team1Score, g.Team2Score
	if g.Team2Score > g.Team1Score {
		winners, losers = losers, winners
		winScore, loseScore = loseScore, winScore
	}

	won := Stats{
		Wins:         1,
		PointsGained: winScore,
		PointsLost:   loseScore,
	}
	lost := Stats{
		Losses:       1,
		PointsGained: loseScore,
		PointsLost:   winScore,
	}
	if g.IsBuchuda {
		won.BuchudasGiven = 1
		lost.BuchudasTaken = 1
	}
	if g.IsBuchudaDeRe {
		won.BuchudaDeReGiven = 1
		lost.BuchudaDeReTaken = 1
	}

	a.foldSide(g.ID, winners, won)
	a.foldSide(g.ID, losers, lost)
	a.games++
}

// AddAll folds every game in order.
func (a *Accumulator) AddAll(games []GameRecord) {
	for _, g := range games {
		a.Add(g)
	}
}

func (a *Accumulator) foldSide(gameID string, team []string, delta Stats) {
	for _, playerID := range team {
		a.player(playerID).add(delta)
	}

	// Pairs are only tracked for two-player sides; other sizes still count
	// for the players above.
	key, err := NewPairKey(team)
	if err != nil {
		log.Debug("Skipping pair aggregation", "gameID", gameID, "size", len(team), "error", err)
		return
	}
	a.pair(key).add(delta)
}

// player is the single get-or-create path for player entries.
func (a *Accumulator) player(id string) *Stats {
	s, ok := a.players[id]
	if !ok {
		s = &Stats{}
		a.players[id] = s
		a.playerOrder = append(a.playerOrder, id)
	}
	return s
}

// pair is the single get-or-create path for pair entries.
func (a *Accumulator) pair(key PairKey) *Stats {
	s, ok := a.pairs[key]
	if !ok {
		s = &Stats{}
		a.pairs[key] = s
		a.pairOrder = append(a.pairOrder, key)
	}
	return s
}

func (s *Stats) add(d Stats) {
	s.Wins += d.Wins
	s.Losses += d.Losses
	s.PointsGained += d.PointsGained
	s.PointsLost += d.PointsLost
	s.BuchudasGiven += d.BuchudasGiven
	s.BuchudasTaken += d.BuchudasTaken
	s.BuchudaDeReGiven += d.BuchudaDeReGiven
	s.BuchudaDeReTaken += d.BuchudaDeReTaken
}

// Player returns the totals for a player. Unknown players report all zeros.
func (a *Accumulator) Player(id string) Stats {
	if s, ok := a.players[id]; ok {
		return *s
	}
	return Stats{}
}

// Pair returns the totals for a pair. Unknown pairs report all zeros.
func (a *Accumulator) Pair(key PairKey) Stats {
	if s, ok := a.pairs[key]; ok {
		return *s
	}
	return Stats{}
}

// PlayerIDs lists players in order of first appearance.
func (a *Accumulator) PlayerIDs() []string {
	return append([]string(nil), a.playerOrder...)
}

// PairKeys lists pairs in order of first appearance.
func (a *Accumulator) PairKeys() []PairKey {
	return append([]PairKey(nil), a.pairOrder...)
}

// GamesCounted is the number of games that contributed to the totals.
func (a *Accumulator) GamesCounted() int {
	return a.games
}

// Warnings lists the finished games that were excluded.
func (a *Accumulator) Warnings() []Warning {
	return append([]Warning(nil), a.warnings...)
}

func validateFinished(g GameRecord) error {
	if g.Team1Score < 0 || g.Team2Score < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNegativeScore, g.Team1Score, g.Team2Score)
	}
	if g.Team1Score == g.Team2Score {
		return fmt.Errorf("%w: %d-%d", ErrTiedScore, g.Team1Score, g.Team2Score)
	}
	if len(g.Team1Players) == 0 || len(g.Team2Players) == 0 {
		return ErrEmptyTeam
	}
	side := make(map[string]int, len(g.Team1Players)+len(g.Team2Players))
	for i, team := range [][]string{g.Team1Players, g.Team2Players} {
		for _, id := range team {
			prev, ok := side[id]
			switch {
			case ok && prev == i:
				return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
			case ok:
				return fmt.Errorf("%w: %s", ErrPlayerOnBothSides, id)
			}
			side[id] = i
		}
	}
	return nil
}
