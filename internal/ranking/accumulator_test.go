package ranking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finished(id string, team1, team2 []string, score1, score2 int) GameRecord {
	return GameRecord{
		ID:            id,
		CompetitionID: "comp1",
		CommunityID:   "comm1",
		Team1Players:  team1,
		Team2Players:  team2,
		Team1Score:    score1,
		Team2Score:    score2,
		Status:        StatusFinished,
	}
}

func scenarioGames() []GameRecord {
	g1 := finished("g1", []string{"A", "B"}, []string{"C", "D"}, 6, 2)
	g2 := finished("g2", []string{"A", "C"}, []string{"B", "D"}, 6, 0)
	g2.IsBuchuda = true
	g3 := finished("g3", []string{"A", "B"}, []string{"C", "D"}, 6, 6)
	return []GameRecord{g1, g2, g3}
}

func pairKey(t *testing.T, a, b string) PairKey {
	t.Helper()
	key, err := NewPairKey([]string{a, b})
	require.NoError(t, err)
	return key
}

func TestAccumulator_Scenario(t *testing.T) {
	acc := NewAccumulator()
	acc.AddAll(scenarioGames())

	a := acc.Player("A")
	assert.Equal(t, 2, a.Wins)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 2, a.TotalGames())
	assert.Equal(t, 12, a.PointsGained)
	assert.Equal(t, 2, a.PointsLost)
	assert.InDelta(t, 100.0, WinRate(a), 0.0001)

	d := acc.Player("D")
	assert.Equal(t, 0, d.Wins)
	assert.Equal(t, 2, d.Losses)
	assert.Equal(t, 1, d.BuchudasTaken)
	assert.Equal(t, 2, d.PointsGained)
	assert.Equal(t, 12, d.PointsLost)

	ab := acc.Pair(pairKey(t, "B", "A"))
	assert.Equal(t, 1, ab.Wins)
	assert.Equal(t, 0, ab.Losses)

	ac := acc.Pair(pairKey(t, "A", "C"))
	assert.Equal(t, 1, ac.Wins)
	assert.Equal(t, 1, ac.BuchudasGiven)

	bd := acc.Pair(pairKey(t, "B", "D"))
	assert.Equal(t, 1, bd.Losses)
	assert.Equal(t, 1, bd.BuchudasTaken)

	assert.Equal(t, 2, acc.GamesCounted())
	warnings := acc.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "g3", warnings[0].GameID)
	assert.ErrorIs(t, warnings[0].Err, ErrTiedScore)
}

func TestAccumulator_IgnoresUnfinishedGames(t *testing.T) {
	acc := NewAccumulator()
	pending := finished("g1", []string{"A", "B"}, []string{"C", "D"}, 0, 0)
	pending.Status = StatusPending
	inProgress := finished("g2", []string{"A", "B"}, []string{"C", "D"}, 3, 1)
	inProgress.Status = StatusInProgress

	acc.AddAll([]GameRecord{pending, inProgress})

	assert.Empty(t, acc.PlayerIDs())
	assert.Empty(t, acc.PairKeys())
	assert.Empty(t, acc.Warnings(), "unfinished games are expected, not warnings")
}

func TestAccumulator_ExcludesInconsistentGames(t *testing.T) {
	tests := []struct {
		name string
		game GameRecord
		err  error
	}{
		{name: "tied score", game: finished("g", []string{"A"}, []string{"B"}, 3, 3), err: ErrTiedScore},
		{name: "negative score", game: finished("g", []string{"A"}, []string{"B"}, -1, 3), err: ErrNegativeScore},
		{name: "empty team", game: finished("g", []string{"A"}, nil, 6, 0), err: ErrEmptyTeam},
		{name: "player twice in a team", game: finished("g", []string{"A", "A"}, []string{"B", "C"}, 6, 0), err: ErrDuplicatePlayer},
		{name: "player on both sides", game: finished("g", []string{"A", "B"}, []string{"B", "C"}, 6, 0), err: ErrPlayerOnBothSides},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator()
			acc.Add(tt.game)

			assert.Empty(t, acc.PlayerIDs())
			assert.Equal(t, 0, acc.GamesCounted())
			require.Len(t, acc.Warnings(), 1)
			assert.ErrorIs(t, acc.Warnings()[0].Err, tt.err)
		})
	}
}

func TestAccumulator_NonPairTeams(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(finished("solo", []string{"A"}, []string{"B"}, 6, 4))
	acc.Add(finished("trio", []string{"A", "C", "D"}, []string{"B", "E"}, 2, 6))

	assert.Equal(t, 1, acc.Player("A").Wins)
	assert.Equal(t, 1, acc.Player("A").Losses)
	assert.Equal(t, 1, acc.Player("C").Losses)
	assert.Equal(t, 1, acc.Player("B").Wins)
	assert.Equal(t, 1, acc.Player("B").Losses)
	assert.Equal(t, 1, acc.Player("E").Wins)

	keys := acc.PairKeys()
	require.Len(t, keys, 1, "only the two-player side forms a pair")
	assert.Equal(t, pairKey(t, "B", "E"), keys[0])
	assert.Empty(t, acc.Warnings())
}

func TestAccumulator_UnknownEntriesAreZero(t *testing.T) {
	acc := NewAccumulator()
	assert.Equal(t, Stats{}, acc.Player("nobody"))
	assert.Equal(t, Stats{}, acc.Pair(pairKey(t, "x", "y")))
}

func TestAccumulator_Commutative(t *testing.T) {
	games := []GameRecord{
		finished("g1", []string{"A", "B"}, []string{"C", "D"}, 6, 2),
		finished("g2", []string{"A", "C"}, []string{"B", "D"}, 1, 6),
		finished("g3", []string{"B", "C"}, []string{"A", "E"}, 6, 5),
		finished("g4", []string{"D"}, []string{"E"}, 0, 6),
		finished("g5", []string{"E", "A"}, []string{"D", "B"}, 6, 0),
	}
	games[1].IsBuchudaDeRe = true
	games[4].IsBuchuda = true

	reference := NewAccumulator()
	reference.AddAll(games)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]GameRecord(nil), games...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		acc := NewAccumulator()
		acc.AddAll(shuffled)

		assert.ElementsMatch(t, reference.PlayerIDs(), acc.PlayerIDs())
		for _, id := range reference.PlayerIDs() {
			assert.Equal(t, reference.Player(id), acc.Player(id), "player %s", id)
		}
		assert.ElementsMatch(t, reference.PairKeys(), acc.PairKeys())
		for _, key := range reference.PairKeys() {
			assert.Equal(t, reference.Pair(key), acc.Pair(key), "pair %s", key)
		}
	}
}

func TestAccumulator_Conservation(t *testing.T) {
	games := scenarioGames()
	acc := NewAccumulator()
	acc.AddAll(games)

	played := map[string]int{}
	for _, g := range games {
		if g.Team1Score == g.Team2Score {
			continue
		}
		for _, id := range append(append([]string{}, g.Team1Players...), g.Team2Players...) {
			played[id]++
		}
	}

	for _, id := range acc.PlayerIDs() {
		s := acc.Player(id)
		assert.Equal(t, s.Wins+s.Losses, s.TotalGames())
		assert.Equal(t, played[id], s.TotalGames(), "player %s", id)
	}
}

func TestAccumulator_PairSymmetry(t *testing.T) {
	forward := NewAccumulator()
	forward.Add(finished("g1", []string{"A", "B"}, []string{"C", "D"}, 6, 3))
	reversed := NewAccumulator()
	reversed.Add(finished("g1", []string{"B", "A"}, []string{"D", "C"}, 6, 3))

	assert.Equal(t, forward.PairKeys(), reversed.PairKeys())
	for _, key := range forward.PairKeys() {
		assert.Equal(t, forward.Pair(key), reversed.Pair(key))
	}
}
