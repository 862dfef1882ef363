package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	rankingsComputed map[string]int
	gamesExcluded    int
	rankingDurations []float64
	gamesRecorded    int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rankingsComputed: make(map[string]int),
		rankingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRankingsComputed(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingsComputed[scope]++
}

func (m *Mock) AddGamesExcluded(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesExcluded += count
}

func (m *Mock) ObserveRankingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingDurations = append(m.rankingDurations, duration)
}

func (m *Mock) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRecorded++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RankingsComputed returns how often IncRankingsComputed was called for a scope kind.
func (m *Mock) RankingsComputed(scope string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingsComputed[scope]
}

// GamesExcluded returns the sum passed to AddGamesExcluded.
func (m *Mock) GamesExcluded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesExcluded
}

// GamesRecorded returns the number of times IncGamesRecorded was called.
func (m *Mock) GamesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRecorded
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
