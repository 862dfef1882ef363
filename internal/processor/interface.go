package processor

import (
	"context"

	"github.com/mauv0809/domino-league/internal/league"
	"github.com/mauv0809/domino-league/internal/notifier"
	"github.com/mauv0809/domino-league/internal/ranking"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetCompetition(ctx context.Context, competitionID string) (*league.Competition, error)
}

// Rankings computes the competition results posted after a game.
type Rankings interface {
	CompetitionResults(ctx context.Context, competitionID string) (ranking.Rankings, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
