package ranking

import "context"

// GameRecordSource supplies the finished games of a scope. Retries, if any,
// belong to the implementation.
type GameRecordSource interface {
	FetchFinishedGames(ctx context.Context, scope Scope) ([]GameRecord, error)
}

// RosterSource lists the players registered for a competition.
type RosterSource interface {
	FetchParticipants(ctx context.Context, competitionID string) ([]string, error)
}

// NameLookup resolves display names for player ids. Ids without a name are
// simply absent from the returned map.
type NameLookup interface {
	DisplayNames(ctx context.Context, playerIDs []string) (map[string]string, error)
}
