package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/config"
	"github.com/aegisops/aegis-api/internal/handlers"
	"github.com/aegisops/aegis-api/internal/middleware"
	"github.com/aegisops/aegis-api/internal/migration"
	"github.com/aegisops/aegis-api/internal/notification"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/routes"
	"github.com/aegisops/aegis-api/internal/seed"
	"github.com/aegisops/aegis-api/internal/simulator"
	"github.com/aegisops/aegis-api/internal/store"
	"github.com/aegisops/aegis-api/internal/workflow"
)

type application struct {
	config *config.Config
	store  *store.Store
	bus    *notification.Bus
	feed   *simulator.Feed
	logger zerolog.Logger
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	// Load configuration.
	cfg := config.Load()

	ctx := context.Background()

	// Open the session-scoped store and apply migrations.
	st, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer st.Close()

	if err := migration.Run(st.DB(), logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repositories
	alarmRepo := repository.NewAlarmRepository(st.DB())
	issueRepo := repository.NewIssueRepository(st.DB())
	cameraRepo := repository.NewCameraRepository(st.DB())
	vehicleRepo := repository.NewVehicleRepository(st.DB())
	userRepo := repository.NewUserRepository(st.DB())

	// Seed the operator account and, optionally, the demo dataset.
	if _, err := userRepo.Create(ctx, cfg.Admin.Username, cfg.Admin.Name, "ADMIN", cfg.Admin.Password); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create admin user")
	}
	if cfg.SeedDemoData {
		err := seed.Load(ctx, seed.Repositories{
			Alarms:   alarmRepo,
			Issues:   issueRepo,
			Cameras:  cameraRepo,
			Vehicles: vehicleRepo,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Notification bus with a mirror into the structured log.
	bus := notification.NewBus(cfg.Toast.TTL, logger, notification.NewLogNotifier(logger))

	// Alarm feed, started on login and stopped on logout.
	var feed *simulator.Feed
	if cfg.Simulator.Enabled {
		feed = simulator.NewFeed(alarmRepo, bus, cfg.Simulator.MinDelay, cfg.Simulator.MaxDelay, logger)
	}

	app := &application{
		config: cfg,
		store:  st,
		bus:    bus,
		feed:   feed,
		logger: logger,
	}

	// Workflow and handlers.
	incident := workflow.NewIncident(st.DB(), alarmRepo, issueRepo, bus, logger)

	authHandler := handlers.NewAuthHandler(userRepo, feed, cfg.JWTSecret, logger)
	alarmHandler := handlers.NewAlarmHandler(alarmRepo, incident, logger)
	issueHandler := handlers.NewIssueHandler(issueRepo, incident, logger)
	toastHandler := handlers.NewToastHandler(bus, logger)
	cameraHandler := handlers.NewCameraHandler(cameraRepo, logger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo, logger)

	router := routes.NewRouter(authHandler, alarmHandler, issueHandler, toastHandler, cameraHandler, vehicleHandler)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.CORSOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler)

	logger.Info().Msg("Application terminated.")
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		app.logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		app.logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		app.logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		app.logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		app.logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Stop the alarm feed so no timer outlives the session.
	if app.feed != nil {
		app.feed.Stop()
	}
}
