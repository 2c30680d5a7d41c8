package haloinfinite

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchStatsFunc    func(matchID string) (MatchStats, error)
	GetUsersByIDFunc     func(xuids []string) ([]UserProfile, error)
	GetMedalMetadataFunc func() ([]Medal, error)

	// Call records
	GetMatchStatsCalls    []string
	GetUsersByIDCalls     [][]string
	GetMedalMetadataCalls int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchStatsCalls = nil
	m.GetUsersByIDCalls = nil
	m.GetMedalMetadataCalls = 0
}

func (m *MockClient) GetMatchStats(ctx context.Context, matchID string) (MatchStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchStatsCalls = append(m.GetMatchStatsCalls, matchID)
	if m.GetMatchStatsFunc != nil {
		return m.GetMatchStatsFunc(matchID)
	}
	return MatchStats{MatchID: matchID}, nil
}

func (m *MockClient) GetUsersByID(ctx context.Context, xuids []string) ([]UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetUsersByIDCalls = append(m.GetUsersByIDCalls, append([]string(nil), xuids...))
	if m.GetUsersByIDFunc != nil {
		return m.GetUsersByIDFunc(xuids)
	}
	return []UserProfile{}, nil
}

func (m *MockClient) GetMedalMetadata(ctx context.Context) ([]Medal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMedalMetadataCalls++
	if m.GetMedalMetadataFunc != nil {
		return m.GetMedalMetadataFunc()
	}
	return []Medal{}, nil
}
