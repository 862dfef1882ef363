package ranking

import (
	"context"
	"sync"
)

// MockSource is a mock implementation of GameRecordSource, RosterSource and
// NameLookup for testing. It is safe for concurrent use.
type MockSource struct {
	mu sync.Mutex

	// Spies for method calls
	FetchFinishedGamesFunc func(ctx context.Context, scope Scope) ([]GameRecord, error)
	FetchParticipantsFunc  func(ctx context.Context, competitionID string) ([]string, error)
	DisplayNamesFunc       func(ctx context.Context, playerIDs []string) (map[string]string, error)

	// Call records
	FetchFinishedGamesCalls []Scope
	FetchParticipantsCalls  []string
	DisplayNamesCalls       [][]string
}

// NewMockSource creates a new mock instance.
func NewMockSource() *MockSource {
	return &MockSource{}
}

func (m *MockSource) FetchFinishedGames(ctx context.Context, scope Scope) ([]GameRecord, error) {
	m.mu.Lock()
	m.FetchFinishedGamesCalls = append(m.FetchFinishedGamesCalls, scope)
	fn := m.FetchFinishedGamesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, scope)
	}
	return nil, nil
}

func (m *MockSource) FetchParticipants(ctx context.Context, competitionID string) ([]string, error) {
	m.mu.Lock()
	m.FetchParticipantsCalls = append(m.FetchParticipantsCalls, competitionID)
	fn := m.FetchParticipantsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, competitionID)
	}
	return nil, nil
}

func (m *MockSource) DisplayNames(ctx context.Context, playerIDs []string) (map[string]string, error) {
	m.mu.Lock()
	m.DisplayNamesCalls = append(m.DisplayNamesCalls, playerIDs)
	fn := m.DisplayNamesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, playerIDs)
	}
	return map[string]string{}, nil
}
