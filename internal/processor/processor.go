package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/notifier"
	"github.com/mauv0809/halo-league-export/internal/pubsub"
	"github.com/mauv0809/halo-league-export/internal/record"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/mauv0809/halo-league-export/internal/table"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor. store, notifier and pubsub may be nil, in which
// case the matching side effect is skipped.
func New(client haloinfinite.Client, resolver resolver.Resolver, store exports.ExportStore, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		client:   client,
		resolver: resolver,
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// ProcessMatch fetches a match and turns it into the export table.
func (p *Processor) ProcessMatch(ctx context.Context, matchID string, lookups Lookups) (*table.Table, error) {
	log.Info("Processing match", "matchID", matchID)
	match, err := p.client.GetMatchStats(ctx, matchID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(match.Players))
	for _, player := range match.Players {
		ids = append(ids, player.PlayerID)
	}
	identities, err := p.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}
	unresolved := 0
	for _, xuid := range resolver.Normalize(ids) {
		if _, ok := identities[xuid]; !ok {
			log.Warn("No gamertag for player, using XUID", "matchID", matchID, "xuid", xuid)
			unresolved++
		}
	}
	p.metrics.AddUnresolvedPlayers(unresolved)

	// identities is read-only from here on.
	records := make([]record.Record, len(match.Players))
	g, _ := errgroup.WithContext(ctx)
	for i, player := range match.Players {
		g.Go(func() error {
			r, err := record.Assemble(record.Input{
				MatchID:    matchID,
				Player:     player,
				Identities: identities,
				Draft:      lookups.Draft,
				Medals:     lookups.Medals,
			})
			if err != nil {
				return err
			}
			records[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}

	for _, r := range records {
		for _, a := range r.Anomalies {
			log.Warn("Inconsistent player stats", "matchID", matchID, "player", a.Player, "field", a.Field, "value", a.Value)
			p.metrics.IncAnomalies(a.Field)
		}
	}

	t, err := table.Build(records)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}
	p.metrics.AddParticipantsAssembled(t.Len())
	log.Info("Finished processing match", "matchID", matchID, "rows", t.Len())
	return t, nil
}

// Export runs ProcessMatch and then stores, publishes and announces the result.
// A dry run only builds the table.
func (p *Processor) Export(ctx context.Context, matchID string, lookups Lookups, dryRun bool) (*Result, error) {
	startTime := time.Now()
	t, err := p.ProcessMatch(ctx, matchID, lookups)
	if err != nil {
		p.metrics.IncExportFailures()
		return nil, err
	}

	export := &exports.Export{
		MatchID:      matchID,
		Columns:      t.Columns,
		Rows:         t.Rows,
		RowCount:     t.Len(),
		AnomalyCount: countAnomalies(t.Records),
	}

	if dryRun {
		log.Info("[Dry Run] Would store and announce export", "matchID", matchID, "rows", export.RowCount)
	} else {
		if p.store != nil {
			if err := p.store.SaveExport(export); err != nil {
				p.metrics.IncExportFailures()
				return nil, fmt.Errorf("failed to save export of match %s: %w", matchID, err)
			}
		}
		if p.pubsub != nil {
			if err := p.pubsub.SendMessage(pubsub.EventMatchExported, matchExportedEvent(export, t)); err != nil {
				log.Error("Failed to publish export event", "error", err, "matchID", matchID)
			}
		}
	}
	if p.notifier != nil {
		if err := p.notifier.SendExportSummary(summarize(export, t), dryRun); err != nil {
			log.Error("Failed to send export summary", "error", err, "matchID", matchID)
		}
	}

	p.metrics.IncMatchesExported()
	p.metrics.ObserveExportDuration(time.Since(startTime).Seconds())
	return &Result{Export: export, Table: t}, nil
}

func countAnomalies(records []record.Record) int {
	n := 0
	for _, r := range records {
		n += len(r.Anomalies)
	}
	return n
}

func matchExportedEvent(export *exports.Export, t *table.Table) pubsub.MatchExported {
	event := pubsub.MatchExported{
		ExportID: export.ID,
		MatchID:  export.MatchID,
		RowCount: export.RowCount,
	}
	for _, r := range t.Records {
		switch {
		case r.Wins == 1:
			event.Winners = append(event.Winners, r.Gamertag)
		case r.Losses == 1:
			event.Losers = append(event.Losers, r.Gamertag)
		}
	}
	return event
}

func summarize(export *exports.Export, t *table.Table) notifier.ExportSummary {
	summary := notifier.ExportSummary{
		ExportID:  export.ID,
		MatchID:   export.MatchID,
		Anomalies: export.AnomalyCount,
	}
	for _, r := range t.Records {
		line := notifier.PlayerLine{
			Gamertag: r.Gamertag,
			DraftPos: r.DraftPos.String(),
			Kills:    r.Kills,
			Deaths:   r.Deaths,
			Goals:    r.Goals,
		}
		switch {
		case r.Wins == 1:
			summary.Winners = append(summary.Winners, line)
		case r.Losses == 1:
			summary.Losers = append(summary.Losers, line)
		default:
			summary.Others = append(summary.Others, line)
		}
	}
	return summary
}
