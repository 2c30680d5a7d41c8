package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/auth"
	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/database"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	server "github.com/mauv0809/halo-league-export/internal/http"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/notifier"
	"github.com/mauv0809/halo-league-export/internal/notifier/slack"
	"github.com/mauv0809/halo-league-export/internal/processor"
	"github.com/mauv0809/halo-league-export/internal/pubsub"
	"github.com/mauv0809/halo-league-export/internal/resolver"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	log.SetLevel(cfg.ParseLevel())
	ctx := context.Background()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	creds, err := auth.FromConfig(cfg).Credentials(ctx)
	if err != nil {
		log.Fatalf("Failed to get Halo credentials: %s", err)
	}

	exportStore := exports.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	haloClient := haloinfinite.NewClient(creds.SpartanToken, creds.ClearanceToken, cfg.Halo.RequestsPerSecond)

	var slackNotifier notifier.Notifier
	if cfg.Slack.Token != "" {
		slackNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}
	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, teardown, err := pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer teardown()
		pubsubClient = client
	}

	proc := processor.New(haloClient, resolver.New(haloClient), exportStore, slackNotifier, metricsSvc, pubsubClient)
	loadLookups := func(ctx context.Context) (processor.Lookups, error) {
		return processor.LoadLookups(ctx, haloClient, cfg.MedalsFile, cfg.DraftFile)
	}

	s := server.NewServer(
		exportStore,
		metricsSvc,
		metricsHandler,
		cfg,
		proc,
		loadLookups,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
