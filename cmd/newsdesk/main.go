package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tkaraca/newsdesk/internal/api"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/connectivity"
	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/mirror"
	"github.com/tkaraca/newsdesk/internal/notify"
	"github.com/tkaraca/newsdesk/internal/remote"
	"github.com/tkaraca/newsdesk/internal/store"
	"github.com/tkaraca/newsdesk/internal/syncer"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("backend", cfg.StoreBackend).Msg("Starting newsdesk...")

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local store
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing local store")
		}
	}()

	// Persisted user settings
	settings, err := store.OpenSettings(cfg.SettingsPath, cfg.CacheEnabled)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	notices := notify.NewRing(50)
	source := remote.NewClient(cfg)
	coordinator := syncer.New(source, st, settings, notices, cfg.DefaultQuery)

	// Optional snapshot mirror
	if m, err := mirror.NewR2(rootCtx, cfg); err != nil {
		log.Error().Err(err).Msg("Failed to initialize snapshot mirror, continuing without it")
	} else if m != nil {
		coordinator.SetMirror(m)
		log.Info().Str("bucket", cfg.R2Bucket).Msg("Snapshot mirror enabled")
	}

	// Connectivity monitor wiring
	monitor := connectivity.NewMonitor(connectivity.NewHTTPChecker(cfg), cfg.ProbeInterval, notices)
	monitor.LoadedOffline = func() bool {
		return coordinator.State().DataLoadedOffline
	}
	monitor.OnRestore = func() {
		coordinator.Sync(rootCtx, syncer.TriggerConnectivityRestored)
	}
	coordinator.Online = monitor.Online
	coordinator.WasOffline = monitor.WasOffline

	// Initial synchronous reachability check, then the startup sync
	probeCtx, probeCancel := context.WithTimeout(rootCtx, cfg.ProbeTimeout)
	monitor.Poll(probeCtx)
	probeCancel()

	coordinator.Sync(rootCtx, syncer.TriggerAppStart)
	monitor.Start(rootCtx)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: api.ErrorHandler,
	})

	app.Use(recover.New())
	api.SetupRoutes(app, cfg, coordinator, settings, st, notices)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
