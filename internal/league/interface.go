package league

import (
	"context"

	"github.com/mauv0809/domino-league/internal/ranking"
)

// LeagueStore defines the interface for interacting with the league's data.
// It is also the game record, roster and display name source for rankings.
type LeagueStore interface {
	CreateCommunity(ctx context.Context, name string) (*Community, error)
	CreateCompetition(ctx context.Context, communityID, name string) (*Competition, error)
	GetCompetition(ctx context.Context, competitionID string) (*Competition, error)
	AddPlayer(ctx context.Context, name string) (*Player, error)
	AddCommunityMember(ctx context.Context, communityID, playerID string) error
	AddCompetitionPlayer(ctx context.Context, competitionID, playerID string) error
	RecordGame(ctx context.Context, game ranking.GameRecord) (*ranking.GameRecord, error)
	FinishGame(ctx context.Context, gameID string, result GameResult) (*ranking.GameRecord, error)
	GetGame(ctx context.Context, gameID string) (*ranking.GameRecord, error)

	ranking.GameRecordSource
	ranking.RosterSource
	ranking.NameLookup
}
