package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-brackets/internal/board"
	"github.com/mauv0809/padel-brackets/internal/bracket"
	"github.com/mauv0809/padel-brackets/internal/config"
	server "github.com/mauv0809/padel-brackets/internal/http"
	"github.com/mauv0809/padel-brackets/internal/hub"
	"github.com/mauv0809/padel-brackets/internal/live"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/notifier"
	"github.com/mauv0809/padel-brackets/internal/notifier/slack"
	"github.com/mauv0809/padel-brackets/internal/pubsub"
	"github.com/mauv0809/padel-brackets/internal/resync"
	"github.com/mauv0809/padel-brackets/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	origin := uuid.NewString()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	tournamentClient := tournament.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout)
	pubsubClient := pubsub.New(cfg.ProjectID)
	defer pubsubClient.Close()

	ctx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := hub.New()
	go wsHub.Run(ctx)

	notifiers := []notifier.Notifier{wsHub}
	if cfg.Slack.Enabled() {
		notifiers = append(notifiers, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc))
	} else {
		log.Info("Slack is not configured, notifications go to websocket viewers only")
	}

	layout := bracket.Options{
		CanvasHeight: cfg.Layout.CanvasHeight,
		Dimensions: bracket.Dimensions{
			Margin:          cfg.Layout.Margin,
			MatchWidth:      cfg.Layout.MatchWidth,
			MatchHeight:     cfg.Layout.MatchHeight,
			ColumnSpacing:   cfg.Layout.ColumnSpacing,
			VerticalSpacing: cfg.Layout.VerticalSpacing,
		},
	}
	registry := board.NewRegistry(tournamentClient, metricsSvc)
	broadcaster := live.New(registry, wsHub, layout, metricsSvc)
	controller := resync.New(tournamentClient, registry, layout, notifier.Multi(notifiers...), pubsubClient, metricsSvc, origin)
	controller.OnDone(broadcaster.OnDone)

	s := server.NewServer(
		cfg,
		registry,
		controller,
		broadcaster,
		wsHub,
		pubsubClient,
		metricsHandler,
		origin,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds(), "origin", origin)

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
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

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Websocket connections are hijacked, Shutdown does not wait for them.
		stopHub()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
