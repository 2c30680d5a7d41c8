package processor

import (
	"github.com/mauv0809/halo-league-export/internal/draft"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/notifier"
	"github.com/mauv0809/halo-league-export/internal/pubsub"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/mauv0809/halo-league-export/internal/table"
)

// Processor runs the match export pipeline.
type Processor struct {
	client   haloinfinite.Client
	resolver resolver.Resolver
	store    exports.ExportStore
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}

// Lookups are the read-only tables loaded once per run.
type Lookups struct {
	Medals medals.Table
	Draft  draft.Table
}

// Result is the outcome of Export.
type Result struct {
	Export *exports.Export
	Table  *table.Table
}
