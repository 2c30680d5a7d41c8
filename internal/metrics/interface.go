package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesExported()
	IncExportFailures()
	AddParticipantsAssembled(n int)
	AddUnresolvedPlayers(n int)
	IncAnomalies(field string)
	ObserveExportDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
