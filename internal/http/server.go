package http

import (
	"net/http"

	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/processor"
)

func NewServer(store exports.ExportStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, loadLookups LookupsLoader) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		LoadLookups:    loadLookups,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("GET /exports", Chain(s.ListExportsHandler(), paramsMiddleware))
	s.Router.Handle("GET /exports/{id}", Chain(s.GetExportHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
