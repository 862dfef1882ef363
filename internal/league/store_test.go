package league_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/domino-league/internal/database"
	"github.com/mauv0809/domino-league/internal/league"
	"github.com/mauv0809/domino-league/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return league.New(db), db, teardown
}

type fixture struct {
	community   *league.Community
	competition *league.Competition
	players     map[string]*league.Player
}

func seed(t *testing.T, store league.LeagueStore, names ...string) fixture {
	t.Helper()
	ctx := context.Background()

	community, err := store.CreateCommunity(ctx, "Domino Club")
	require.NoError(t, err)
	competition, err := store.CreateCompetition(ctx, community.ID, "Summer Cup")
	require.NoError(t, err)

	players := make(map[string]*league.Player)
	for _, name := range names {
		p, err := store.AddPlayer(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.AddCommunityMember(ctx, community.ID, p.ID))
		players[name] = p
	}
	return fixture{community: community, competition: competition, players: players}
}

func TestRecordAndFinishGame(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto", "Caro", "Dani")

	game, err := store.RecordGame(ctx, ranking.GameRecord{
		CompetitionID: f.competition.ID,
		Team1Players:  []string{f.players["Ana"].ID, f.players["Beto"].ID},
		Team2Players:  []string{f.players["Caro"].ID, f.players["Dani"].ID},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, ranking.StatusPending, game.Status)
	assert.Equal(t, f.community.ID, game.CommunityID, "community is taken from the competition")

	finished, err := store.FinishGame(ctx, game.ID, league.GameResult{Team1Score: 6, Team2Score: 0, IsBuchuda: true})
	require.NoError(t, err)
	assert.Equal(t, ranking.StatusFinished, finished.Status)
	assert.Equal(t, 6, finished.Team1Score)
	assert.True(t, finished.IsBuchuda)
	assert.False(t, finished.IsBuchudaDeRe)
	assert.Equal(t, game.Team1Players, finished.Team1Players)
	assert.Equal(t, game.Team2Players, finished.Team2Players)
	assert.Equal(t, game.CreatedAt, finished.CreatedAt)
}

func TestRecordGame_UnknownCompetition(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.RecordGame(context.Background(), ranking.GameRecord{CompetitionID: "missing"})
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestRecordGame_UnknownPlayer(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	f := seed(t, store, "Ana", "Beto")

	_, err := store.RecordGame(context.Background(), ranking.GameRecord{
		CompetitionID: f.competition.ID,
		Team1Players:  []string{f.players["Ana"].ID, "ghost1"},
		Team2Players:  []string{f.players["Beto"].ID, "ghost2"},
	})
	require.ErrorIs(t, err, league.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost1")

	var games int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM games").Scan(&games))
	assert.Zero(t, games, "nothing is stored for a rejected game")
}

func TestFinishGame_AlreadyFinished(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto")

	game, err := store.RecordGame(ctx, ranking.GameRecord{
		CompetitionID: f.competition.ID,
		Team1Players:  []string{f.players["Ana"].ID},
		Team2Players:  []string{f.players["Beto"].ID},
	})
	require.NoError(t, err)
	_, err = store.FinishGame(ctx, game.ID, league.GameResult{Team1Score: 6, Team2Score: 2})
	require.NoError(t, err)

	_, err = store.FinishGame(ctx, game.ID, league.GameResult{Team1Score: 1, Team2Score: 6})
	require.ErrorIs(t, err, league.ErrGameFinished)

	stored, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Team1Score, "the first final score is kept")
	assert.Equal(t, 2, stored.Team2Score)
}

func TestFinishGame_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.FinishGame(context.Background(), "missing", league.GameResult{Team1Score: 6})
	assert.ErrorIs(t, err, league.ErrNotFound)

	_, err = store.GetGame(context.Background(), "missing")
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestFetchFinishedGames(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto")

	otherCommunity, err := store.CreateCommunity(ctx, "Other Club")
	require.NoError(t, err)
	otherCompetition, err := store.CreateCompetition(ctx, otherCommunity.ID, "Winter Cup")
	require.NoError(t, err)

	ana, beto := f.players["Ana"].ID, f.players["Beto"].ID
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	record := func(competitionID string, status ranking.GameStatus, offset time.Duration) *ranking.GameRecord {
		g, err := store.RecordGame(ctx, ranking.GameRecord{
			CompetitionID: competitionID,
			Team1Players:  []string{ana},
			Team2Players:  []string{beto},
			Team1Score:    6,
			Team2Score:    3,
			Status:        status,
			CreatedAt:     base.Add(offset),
		})
		require.NoError(t, err)
		return g
	}

	second := record(f.competition.ID, ranking.StatusFinished, time.Minute)
	first := record(f.competition.ID, ranking.StatusFinished, 0)
	record(f.competition.ID, ranking.StatusInProgress, 2*time.Minute)
	other := record(otherCompetition.ID, ranking.StatusFinished, 3*time.Minute)

	t.Run("competition scope", func(t *testing.T) {
		games, err := store.FetchFinishedGames(ctx, ranking.CompetitionScope(f.competition.ID))
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, first.ID, games[0].ID, "oldest game first")
		assert.Equal(t, second.ID, games[1].ID)
	})

	t.Run("community scope", func(t *testing.T) {
		games, err := store.FetchFinishedGames(ctx, ranking.CommunityScope(otherCommunity.ID))
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, other.ID, games[0].ID)
	})

	t.Run("global scope", func(t *testing.T) {
		games, err := store.FetchFinishedGames(ctx, ranking.GlobalScope())
		require.NoError(t, err)
		assert.Len(t, games, 3)
		for _, g := range games {
			assert.Equal(t, ranking.StatusFinished, g.Status)
		}
	})

	t.Run("unknown scope id", func(t *testing.T) {
		games, err := store.FetchFinishedGames(ctx, ranking.CompetitionScope("missing"))
		require.NoError(t, err)
		assert.Empty(t, games)
	})
}

func TestFetchParticipants(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto", "Caro")

	require.NoError(t, store.AddCompetitionPlayer(ctx, f.competition.ID, f.players["Caro"].ID))
	require.NoError(t, store.AddCompetitionPlayer(ctx, f.competition.ID, f.players["Caro"].ID), "adding twice is a no-op")

	_, err := store.RecordGame(ctx, ranking.GameRecord{
		CompetitionID: f.competition.ID,
		Team1Players:  []string{f.players["Ana"].ID},
		Team2Players:  []string{f.players["Beto"].ID},
	})
	require.NoError(t, err)

	ids, err := store.FetchParticipants(ctx, f.competition.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{f.players["Ana"].ID, f.players["Beto"].ID, f.players["Caro"].ID}, ids)
}

func TestDisplayNames(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto")

	_, err := db.Exec(`INSERT INTO players (id, name, created_at) VALUES ('nameless', NULL, 0)`)
	require.NoError(t, err)

	names, err := store.DisplayNames(ctx, []string{f.players["Ana"].ID, f.players["Beto"].ID, "nameless", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		f.players["Ana"].ID:  "Ana",
		f.players["Beto"].ID: "Beto",
	}, names)

	names, err = store.DisplayNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDisplayNames_ManyIDs(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 1200; i++ {
		p, err := store.AddPlayer(ctx, "Player")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	names, err := store.DisplayNames(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, names, 1200)
}

func TestStoreAsRankingSource(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	f := seed(t, store, "Ana", "Beto", "Caro", "Dani", "Eli")
	require.NoError(t, store.AddCompetitionPlayer(ctx, f.competition.ID, f.players["Eli"].ID))

	a, b, c, d := f.players["Ana"].ID, f.players["Beto"].ID, f.players["Caro"].ID, f.players["Dani"].ID
	g1, err := store.RecordGame(ctx, ranking.GameRecord{CompetitionID: f.competition.ID, Team1Players: []string{a, b}, Team2Players: []string{c, d}})
	require.NoError(t, err)
	_, err = store.FinishGame(ctx, g1.ID, league.GameResult{Team1Score: 6, Team2Score: 2})
	require.NoError(t, err)

	assembler := ranking.NewAssembler(store, store, store)
	results, err := assembler.CompetitionResults(ctx, f.competition.ID)
	require.NoError(t, err)

	require.Len(t, results.Players, 5)
	assert.Equal(t, 1, results.Players[0].Rank)
	assert.Equal(t, 1, results.Players[1].Rank)
	assert.Equal(t, 3, results.Players[2].Rank)
	names := map[string]ranking.RankedPlayerStatLine{}
	for _, p := range results.Players {
		names[p.DisplayName] = p
	}
	assert.Equal(t, 1, names["Ana"].Wins)
	assert.Equal(t, 1, names["Dani"].Losses)
	assert.Equal(t, 0, names["Eli"].TotalGames)
	require.Len(t, results.Pairs, 2)
	assert.Equal(t, 1, results.Pairs[0].Wins)
}
