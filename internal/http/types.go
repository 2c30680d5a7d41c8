package http

import (
	"context"
	"net/http"

	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/processor"
)

// LookupsLoader loads the draft and medal tables for a request.
type LookupsLoader func(ctx context.Context) (processor.Lookups, error)

type Server struct {
	Store          exports.ExportStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	LoadLookups    LookupsLoader
	Router         *http.ServeMux
}

// exportSummary is the JSON shape of a stored export in list responses.
type exportSummary struct {
	ID           string `json:"id"`
	MatchID      string `json:"matchId"`
	CreatedAt    int64  `json:"createdAt"`
	RowCount     int    `json:"rowCount"`
	AnomalyCount int    `json:"anomalyCount"`
}
