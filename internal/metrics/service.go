package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesExported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_matches_exported_total",
			Help: "The total number of matches exported.",
		}),
		ExportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_match_export_failures_total",
			Help: "The total number of match exports that failed.",
		}),
		ParticipantsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_participants_assembled_total",
			Help: "The total number of participant rows assembled.",
		}),
		UnresolvedPlayers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_unresolved_players_total",
			Help: "Players whose gamertag could not be resolved and fell back to their XUID.",
		}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "halo_data_anomalies_total",
			Help: "Inconsistent stats seen while assembling rows, by field.",
		}, []string{"field"}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "halo_match_export_duration_seconds",
			Help:    "The duration of a single match export.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "halo_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "halo_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesExported,
		s.ExportFailures,
		s.ParticipantsAssembled,
		s.UnresolvedPlayers,
		s.Anomalies,
		s.ExportDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesExported() {
	s.MatchesExported.Inc()
}

func (s *Service) IncExportFailures() {
	s.ExportFailures.Inc()
}

func (s *Service) AddParticipantsAssembled(n int) {
	s.ParticipantsAssembled.Add(float64(n))
}

func (s *Service) AddUnresolvedPlayers(n int) {
	s.UnresolvedPlayers.Add(float64(n))
}

func (s *Service) IncAnomalies(field string) {
	s.Anomalies.WithLabelValues(field).Inc()
}

func (s *Service) ObserveExportDuration(seconds float64) {
	s.ExportDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
