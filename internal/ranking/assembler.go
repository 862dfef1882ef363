package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// UnknownPlayerName is shown for participants whose name could not be resolved.
const UnknownPlayerName = "Unknown player"

// Assembler fetches the games of a scope and turns them into ranked tables.
type Assembler struct {
	games  GameRecordSource
	roster RosterSource
	names  NameLookup
}

// NewAssembler creates an Assembler on top of the given collaborators.
func NewAssembler(games GameRecordSource, roster RosterSource, names NameLookup) *Assembler {
	return &Assembler{
		games:  games,
		roster: roster,
		names:  names,
	}
}

// GlobalLeaderboard ranks every finished game. Truncation to a top N is left
// to the caller.
func (a *Assembler) GlobalLeaderboard(ctx context.Context) (Rankings, error) {
	return a.assemble(ctx, GlobalScope(), false)
}

// CommunityRankings ranks the finished games of one community.
func (a *Assembler) CommunityRankings(ctx context.Context, communityID string) (Rankings, error) {
	return a.assemble(ctx, CommunityScope(communityID), false)
}

// CompetitionResults ranks a single competition. Every registered participant
// is listed, including those without a finished game.
func (a *Assembler) CompetitionResults(ctx context.Context, competitionID string) (Rankings, error) {
	return a.assemble(ctx, CompetitionScope(competitionID), true)
}

func (a *Assembler) assemble(ctx context.Context, scope Scope, withRoster bool) (Rankings, error) {
	var (
		games  []GameRecord
		roster []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = a.games.FetchFinishedGames(gctx, scope)
		if err != nil {
			return fmt.Errorf("failed to fetch games for %s: %w", scope, err)
		}
		return nil
	})
	if withRoster {
		g.Go(func() error {
			var err error
			roster, err = a.roster.FetchParticipants(gctx, scope.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch participants for %s: %w", scope, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Rankings{}, err
	}

	names, err := a.names.DisplayNames(ctx, participantIDs(games, roster))
	if err != nil {
		return Rankings{}, fmt.Errorf("failed to resolve display names: %w", err)
	}

	rankings := Build(scope, games, Options{Roster: roster, Names: names})
	log.Debug("Assembled rankings", "scope", scope, "games", len(games), "players", len(rankings.Players), "pairs", len(rankings.Pairs), "warnings", len(rankings.Warnings))
	return rankings, nil
}

// Options tunes Build.
type Options struct {
	// Roster players without a counted game are listed with zero totals.
	Roster []string
	// Names maps player ids to display names.
	Names map[string]string
}

// Build is the pure ranking pipeline: filter to the scope's finished games,
// accumulate, compute rates, sort by wins and assign competition ranks.
// Ties in wins keep the order in which participants first appeared.
func Build(scope Scope, games []GameRecord, opts Options) Rankings {
	acc := NewAccumulator()
	for _, g := range games {
		if scope.Contains(g) {
			acc.Add(g)
		}
	}

	players := make([]PlayerStatLine, 0, len(acc.players)+len(opts.Roster))
	for _, id := range acc.PlayerIDs() {
		players = append(players, newPlayerLine(id, acc.Player(id), opts.Names))
	}
	listed := make(map[string]struct{}, len(players))
	for _, l := range players {
		listed[l.PlayerID] = struct{}{}
	}
	for _, id := range opts.Roster {
		if _, ok := listed[id]; ok {
			continue
		}
		listed[id] = struct{}{}
		players = append(players, newPlayerLine(id, Stats{}, opts.Names))
	}

	pairs := make([]PairStatLine, 0, len(acc.pairs))
	for _, key := range acc.PairKeys() {
		pairs = append(pairs, newPairLine(key, acc.Pair(key), opts.Names))
	}

	return Rankings{
		Scope:    scope,
		Players:  rankPlayers(players),
		Pairs:    rankPairs(pairs),
		Warnings: acc.Warnings(),
	}
}

func rankPlayers(lines []PlayerStatLine) []RankedPlayerStatLine {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Wins > lines[j].Wins
	})
	keys := make([]int, len(lines))
	for i, l := range lines {
		keys[i] = l.Wins
	}
	ranks := CompetitionRanks(keys)

	ranked := make([]RankedPlayerStatLine, len(lines))
	for i, l := range lines {
		ranked[i] = RankedPlayerStatLine{PlayerStatLine: l, Rank: ranks[i]}
	}
	return ranked
}

func rankPairs(lines []PairStatLine) []RankedPairStatLine {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Wins > lines[j].Wins
	})
	keys := make([]int, len(lines))
	for i, l := range lines {
		keys[i] = l.Wins
	}
	ranks := CompetitionRanks(keys)

	ranked := make([]RankedPairStatLine, len(lines))
	for i, l := range lines {
		ranked[i] = RankedPairStatLine{PairStatLine: l, Rank: ranks[i]}
	}
	return ranked
}

func newPlayerLine(id string, s Stats, names map[string]string) PlayerStatLine {
	return PlayerStatLine{
		PlayerID:    id,
		DisplayName: displayName(names, id),
		Stats:       s,
		TotalGames:  s.TotalGames(),
		WinRate:     WinRate(s),
	}
}

func newPairLine(key PairKey, s Stats, names map[string]string) PairStatLine {
	return PairStatLine{
		Player1ID:    key.First,
		Player2ID:    key.Second,
		DisplayNames: [2]string{displayName(names, key.First), displayName(names, key.Second)},
		Stats:        s,
		TotalGames:   s.TotalGames(),
		WinRate:      WinRate(s),
	}
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return UnknownPlayerName
}

// participantIDs collects every player id that can appear in the output,
// in order of first appearance.
func participantIDs(games []GameRecord, roster []string) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, g := range games {
		for _, id := range g.Team1Players {
			add(id)
		}
		for _, id := range g.Team2Players {
			add(id)
		}
	}
	for _, id := range roster {
		add(id)
	}
	return ids
}
