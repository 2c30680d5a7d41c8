package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	matchesExported       int
	exportFailures        int
	participantsAssembled int
	unresolvedPlayers     int
	anomalies             map[string]int
	exportDurations       []float64
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		anomalies:       make(map[string]int),
		exportDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesExported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesExported++
}

func (m *Mock) IncExportFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportFailures++
}

func (m *Mock) AddParticipantsAssembled(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participantsAssembled += n
}

func (m *Mock) AddUnresolvedPlayers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unresolvedPlayers += n
}

func (m *Mock) IncAnomalies(field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomalies[field]++
}

func (m *Mock) ObserveExportDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportDurations = append(m.exportDurations, seconds)
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

// MatchesExported returns the number of times IncMatchesExported was called.
func (m *Mock) MatchesExported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesExported
}

// ExportFailures returns the number of times IncExportFailures was called.
func (m *Mock) ExportFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exportFailures
}

// ParticipantsAssembled returns the running total passed to AddParticipantsAssembled.
func (m *Mock) ParticipantsAssembled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.participantsAssembled
}

// UnresolvedPlayers returns the running total passed to AddUnresolvedPlayers.
func (m *Mock) UnresolvedPlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unresolvedPlayers
}

// Anomalies returns how many anomalies were recorded for field.
func (m *Mock) Anomalies(field string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anomalies[field]
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
