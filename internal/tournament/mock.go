package tournament

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the TournamentClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetCategoryFunc   func(categoryID string) (*CategoryPayload, error)
	StoreSetScoreFunc func(score SetScore) error
	GetGameDetailFunc func(gameID int) (*GameDetail, error)

	// Call records
	GetCategoryCalls   []string
	StoreSetScoreCalls []SetScore
	GetGameDetailCalls []int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCategoryCalls = nil
	m.StoreSetScoreCalls = nil
	m.GetGameDetailCalls = nil
}

func (m *MockClient) GetCategory(ctx context.Context, categoryID string) (*CategoryPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCategoryCalls = append(m.GetCategoryCalls, categoryID)
	if m.GetCategoryFunc != nil {
		return m.GetCategoryFunc(categoryID)
	}
	return &CategoryPayload{}, nil
}

func (m *MockClient) StoreSetScore(ctx context.Context, score SetScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreSetScoreCalls = append(m.StoreSetScoreCalls, score)
	if m.StoreSetScoreFunc != nil {
		return m.StoreSetScoreFunc(score)
	}
	return nil
}

func (m *MockClient) GetGameDetail(ctx context.Context, gameID int) (*GameDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetGameDetailCalls = append(m.GetGameDetailCalls, gameID)
	if m.GetGameDetailFunc != nil {
		return m.GetGameDetailFunc(gameID)
	}
	return &GameDetail{}, nil
}
