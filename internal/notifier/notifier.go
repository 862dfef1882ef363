package notifier

import (
	"github.com/mauv0809/domino-league/internal/ranking"
)

// Notifier defines a high-level interface for publishing rankings.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished games
	SendCompetitionResults(competitionName string, rankings ranking.Rankings, dryRun bool) error
	SendLeaderboard(rankings ranking.Rankings, limit int, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(rankings ranking.Rankings, limit int) (any, error)
}
