package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesExported       prometheus.Counter
	ExportFailures        prometheus.Counter
	ParticipantsAssembled prometheus.Counter
	UnresolvedPlayers     prometheus.Counter
	Anomalies             *prometheus.CounterVec
	ExportDuration        prometheus.Histogram
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
