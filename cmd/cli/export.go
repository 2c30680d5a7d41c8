package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/auth"
	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/database"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/notifier"
	"github.com/mauv0809/halo-league-export/internal/notifier/slack"
	"github.com/mauv0809/halo-league-export/internal/processor"
	"github.com/mauv0809/halo-league-export/internal/pubsub"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	dryRun    bool
	showTable bool
	noHistory bool
)

func init() {
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the CSV without storing, publishing or announcing it")
	exportCmd.Flags().BoolVar(&showTable, "table", false, "Also print a summary table to stdout")
	exportCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the export in the database")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <match_id> <output_csv> <draft_csv>",
	Short: "Export one match to a CSV stat sheet",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		matchID, outputPath, draftPath := args[0], args[1], args[2]
		cfg := config.LoadCLI()
		if !verbose {
			log.SetLevel(cfg.ParseLevel())
		}
		ctx := cmd.Context()

		creds, err := auth.FromConfig(cfg).Credentials(ctx)
		if err != nil {
			return err
		}
		haloClient := haloinfinite.NewClient(creds.SpartanToken, creds.ClearanceToken, cfg.Halo.RequestsPerSecond)

		lookups, err := processor.LoadLookups(ctx, haloClient, cfg.MedalsFile, draftPath)
		if err != nil {
			return err
		}

		proc, teardown, err := newProcessor(ctx, cfg, haloClient)
		if err != nil {
			return err
		}
		defer teardown()

		return runExport(ctx, proc, matchID, lookups, outputPath, dryRun, showTable, cmd.OutOrStdout())
	},
}

// exporter is the part of the processor the export command drives.
type exporter interface {
	Export(ctx context.Context, matchID string, lookups processor.Lookups, dryRun bool) (*processor.Result, error)
}

// runExport claims the output location before exporting, so an unwritable
// path fails before anything is stored, published or announced. The CSV is
// written to a temp file next to outputPath and renamed into place.
func runExport(ctx context.Context, proc exporter, matchID string, lookups processor.Lookups, outputPath string, dryRun, showTable bool, out io.Writer) error {
	f, err := os.CreateTemp(filepath.Dir(outputPath), ".export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	tmpPath := f.Name()
	committed := false
	defer func() {
		if !committed {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	result, err := proc.Export(ctx, matchID, lookups, dryRun)
	if err != nil {
		return err
	}

	if err := result.Table.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outputPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("failed to move export to %s: %w", outputPath, err)
	}
	committed = true
	log.Info("Wrote export", "matchID", matchID, "file", outputPath, "rows", result.Table.Len())

	if showTable {
		return result.Table.Render(out)
	}
	return nil
}

// newProcessor wires the optional history, Slack and Pub/Sub side effects from cfg.
func newProcessor(ctx context.Context, cfg config.Config, haloClient haloinfinite.Client) (*processor.Processor, func(), error) {
	var teardowns []func()
	teardown := func() {
		for i := len(teardowns) - 1; i >= 0; i-- {
			teardowns[i]()
		}
	}
	metricsSvc := metrics.NewService(prometheus.NewRegistry())

	var store exports.ExportStore
	if !noHistory && !dryRun {
		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		teardowns = append(teardowns, dbTeardown)
		store = exports.New(db)
	}

	var slackNotifier notifier.Notifier
	if cfg.Slack.Token != "" {
		slackNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" && !dryRun {
		client, pubsubTeardown, err := pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			teardown()
			return nil, nil, err
		}
		teardowns = append(teardowns, pubsubTeardown)
		pubsubClient = client
	}

	proc := processor.New(haloClient, resolver.New(haloClient), store, slackNotifier, metricsSvc, pubsubClient)
	return proc, teardown, nil
}
