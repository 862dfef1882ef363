package notifier

import (
	"sync"

	"github.com/mauv0809/domino-league/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendCompetitionResultsFunc    func(competitionName string, rankings ranking.Rankings, dryRun bool) error
	SendLeaderboardFunc           func(rankings ranking.Rankings, limit int, dryRun bool) error
	FormatLeaderboardResponseFunc func(rankings ranking.Rankings, limit int) (any, error)

	SendCompetitionResultsCalls []SendCompetitionResultsCall
	SendLeaderboardCalls        []SendLeaderboardCall
}

type SendCompetitionResultsCall struct {
	CompetitionName string
	Rankings        ranking.Rankings
	DryRun          bool
}

type SendLeaderboardCall struct {
	Rankings ranking.Rankings
	Limit    int
	DryRun   bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendCompetitionResults(competitionName string, rankings ranking.Rankings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCompetitionResultsCalls = append(m.SendCompetitionResultsCalls, SendCompetitionResultsCall{CompetitionName: competitionName, Rankings: rankings, DryRun: dryRun})
	if m.SendCompetitionResultsFunc != nil {
		return m.SendCompetitionResultsFunc(competitionName, rankings, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(rankings ranking.Rankings, limit int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, SendLeaderboardCall{Rankings: rankings, Limit: limit, DryRun: dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(rankings, limit, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(rankings ranking.Rankings, limit int) (any, error) {
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(rankings, limit)
	}
	return map[string]any{"players": rankings.TopPlayers(limit)}, nil
}
