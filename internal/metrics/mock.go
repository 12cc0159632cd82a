package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	categoryLoads   int
	bracketViews    int
	connectorMisses int
	identityMisses  int
	resyncs         map[string]int
	resyncDurations []float64
	notifSent       int
	notifFailed     int
	startupTime     float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		resyncs:         make(map[string]int),
		resyncDurations: make([]float64, 0),
	}
}

func (m *Mock) IncCategoryLoads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryLoads++
}

func (m *Mock) IncBracketViews() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bracketViews++
}

func (m *Mock) AddConnectorMisses(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectorMisses += n
}

func (m *Mock) AddIdentityMisses(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identityMisses += n
}

func (m *Mock) IncResync(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resyncs[outcome]++
}

func (m *Mock) ObserveResyncDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resyncDurations = append(m.resyncDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// CategoryLoads returns the number of times IncCategoryLoads was called.
func (m *Mock) CategoryLoads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoryLoads
}

// BracketViews returns the number of times IncBracketViews was called.
func (m *Mock) BracketViews() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bracketViews
}

// ConnectorMisses returns the sum passed to AddConnectorMisses.
func (m *Mock) ConnectorMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectorMisses
}

// Resyncs returns how often IncResync was called with outcome.
func (m *Mock) Resyncs(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resyncs[outcome]
}

// ResyncDurations returns the observed durations.
func (m *Mock) ResyncDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.resyncDurations...)
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
