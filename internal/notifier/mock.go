package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	NotifyMatchSyncedFunc  func(update MatchUpdate) error
	NotifyResyncFailedFunc func(failure ResyncFailure) error

	// Call records
	NotifyMatchSyncedCalls  []MatchUpdate
	NotifyResyncFailedCalls []ResyncFailure
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyMatchSyncedCalls = nil
	m.NotifyResyncFailedCalls = nil
}

func (m *Mock) NotifyMatchSynced(ctx context.Context, update MatchUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyMatchSyncedCalls = append(m.NotifyMatchSyncedCalls, update)
	if m.NotifyMatchSyncedFunc != nil {
		return m.NotifyMatchSyncedFunc(update)
	}
	return nil
}

func (m *Mock) NotifyResyncFailed(ctx context.Context, failure ResyncFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyResyncFailedCalls = append(m.NotifyResyncFailedCalls, failure)
	if m.NotifyResyncFailedFunc != nil {
		return m.NotifyResyncFailedFunc(failure)
	}
	return nil
}

// SyncedCalls returns a copy of the recorded NotifyMatchSynced calls.
func (m *Mock) SyncedCalls() []MatchUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchUpdate(nil), m.NotifyMatchSyncedCalls...)
}

// FailedCalls returns a copy of the recorded NotifyResyncFailed calls.
func (m *Mock) FailedCalls() []ResyncFailure {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ResyncFailure(nil), m.NotifyResyncFailedCalls...)
}
